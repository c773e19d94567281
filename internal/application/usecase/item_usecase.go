package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jhoicas/magazzino-api/internal/application/dto"
	appinv "github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
)

// ImageStore almacena imágenes de artículos y devuelve la URL pública.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}

// ItemUseCase casos de uso del registro de artículos. El stock no se toca aquí:
// solo se consulta para bloquear la desactivación con existencias.
type ItemUseCase struct {
	tx       appinv.TxRunner
	itemRepo repository.ItemRepository
	images   ImageStore
}

// NewItemUseCase construye el caso de uso. images puede ser nil (subida de imágenes desactivada).
func NewItemUseCase(tx appinv.TxRunner, itemRepo repository.ItemRepository, images ImageStore) *ItemUseCase {
	return &ItemUseCase{tx: tx, itemRepo: itemRepo, images: images}
}

// ImagesEnabled indica si hay almacenamiento de objetos configurado.
func (uc *ItemUseCase) ImagesEnabled() bool { return uc.images != nil }

// Create crea un artículo. El SKU normalizado debe ser único.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item := &entity.Item{
		SKU:             in.SKU,
		Name:            in.Name,
		CategoryID:      in.CategoryID,
		Active:          true,
		StockKind:       in.StockKind,
		UnitToCl:        in.UnitToCl,
		ContainerSizeCl: in.ContainerSizeCl,
		ContainerLabel:  in.ContainerLabel,
		ImageURL:        in.ImageURL,
		LastCostCents:   in.LastCostCents,
		Brand:           in.Brand,
		PackSize:        in.PackSize,
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	if in.MinStockBt != nil {
		item.MinStockBt = *in.MinStockBt
	}
	if in.CostCurrency != nil {
		item.CostCurrency = *in.CostCurrency
	}
	inventory.NormalizeItem(item)
	if item.SKU == "" {
		return nil, domain.Invalid("sku", "sku es requerido")
	}
	if item.Name == "" {
		return nil, domain.Invalid("name", "name es requerido")
	}
	if field := inventory.ValidateStockKind(item); field != "" {
		return nil, domain.Invalid(field, fmt.Sprintf("%s es obligatorio para stockKind %s", field, item.StockKind))
	}

	err := uc.tx.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository, _ repository.OrderRepository) error {
		existing, err := items.GetBySKU(ctx, item.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewRuleError(domain.ErrDuplicate,
				fmt.Sprintf("el SKU %s ya existe", item.SKU), map[string]any{"sku": item.SKU})
		}
		return items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// Update aplica una actualización parcial. Devuelve ErrNotFound si el SKU no existe.
// Desactivar un artículo con stock distinto de cero se rechaza.
func (uc *ItemUseCase) Update(ctx context.Context, sku string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	sku = inventory.NormalizeSKU(sku)
	var updated *entity.Item
	err := uc.tx.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository, _ repository.OrderRepository) error {
		current, err := items.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NewRuleError(domain.ErrNotFound, fmt.Sprintf("SKU %s no encontrado", sku), nil)
		}
		item := current.Clone()
		applyItemPatch(item, in)
		inventory.NormalizeItem(item)
		if item.Name == "" {
			return domain.Invalid("name", "name no puede quedar vacío")
		}
		// Solo se exige el factor de conversión si el patch toca la configuración de stock;
		// los artículos heredados sin unitToCl siguen siendo editables.
		if in.StockKind != nil || in.UnitToCl != nil || in.ContainerSizeCl != nil {
			if field := inventory.ValidateStockKind(item); field != "" {
				return domain.Invalid(field, fmt.Sprintf("%s es obligatorio para stockKind %s", field, item.StockKind))
			}
		}

		if current.Active && !item.Active {
			history, err := movs.ListBySKU(ctx, sku)
			if err != nil {
				return err
			}
			if stock := inventory.DeriveStock(history, sku); !stock.IsZero() {
				return domain.NewRuleError(domain.ErrStockNotZero,
					fmt.Sprintf("no se puede desactivar %s: stock actual %s", sku, stock.String()),
					map[string]any{"sku": sku, "currentStock": stock})
			}
		}
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToItemResponse(updated), nil
}

// List devuelve el registro completo en su orden.
func (uc *ItemUseCase) List(ctx context.Context) ([]*dto.ItemResponse, error) {
	list, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, ToItemResponse(it))
	}
	return out, nil
}

// GetBySKU obtiene un artículo; (nil, nil) si no existe.
func (uc *ItemUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ItemResponse, error) {
	it, err := uc.itemRepo.GetBySKU(ctx, inventory.NormalizeSKU(sku))
	if err != nil || it == nil {
		return nil, err
	}
	return ToItemResponse(it), nil
}

// UploadImage sube la imagen al almacenamiento de objetos y guarda su URL en el artículo.
func (uc *ItemUseCase) UploadImage(ctx context.Context, sku, filename, contentType string, r io.Reader, size int64) (*dto.ItemResponse, error) {
	if uc.images == nil {
		return nil, domain.Invalid("file", "almacenamiento de imágenes no configurado")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domain.Invalid("file", "el archivo debe ser una imagen")
	}
	sku = inventory.NormalizeSKU(sku)
	existing, err := uc.itemRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewRuleError(domain.ErrNotFound, fmt.Sprintf("SKU %s no encontrado", sku), nil)
	}

	key := "items/" + sku + strings.ToLower(path.Ext(filename))
	url, err := uc.images.Put(ctx, key, contentType, r, size)
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	return uc.Update(ctx, sku, dto.UpdateItemRequest{ImageURL: &url})
}

func applyItemPatch(item *entity.Item, in dto.UpdateItemRequest) {
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	if in.StockKind != nil {
		item.StockKind = *in.StockKind
	}
	if in.MinStockBt != nil {
		item.MinStockBt = *in.MinStockBt
	}
	if in.UnitToCl != nil {
		item.UnitToCl = in.UnitToCl
	}
	if in.ContainerSizeCl != nil {
		item.ContainerSizeCl = in.ContainerSizeCl
	}
	if in.ContainerLabel != nil {
		item.ContainerLabel = in.ContainerLabel
	}
	if in.Brand != nil {
		item.Brand = in.Brand
	}
	if in.PackSize != nil {
		item.PackSize = in.PackSize
	}
	if in.ImageURL != nil {
		item.ImageURL = in.ImageURL
	}
	if in.LastCostCents != nil {
		item.LastCostCents = in.LastCostCents
	}
	if in.CostCurrency != nil {
		item.CostCurrency = *in.CostCurrency
	}
}

// ToItemResponse convierte la entidad a DTO.
func ToItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ItemID:          it.ItemID,
		SKU:             it.SKU,
		Name:            it.Name,
		CategoryID:      it.CategoryID,
		Supplier:        it.Supplier,
		Active:          it.Active,
		StockKind:       it.StockKind,
		BaseUnit:        it.BaseUnit,
		MinStockBt:      it.MinStockBt,
		UnitToCl:        it.UnitToCl,
		ContainerSizeCl: it.ContainerSizeCl,
		ContainerLabel:  it.ContainerLabel,
		ImageURL:        it.ImageURL,
		LastCostCents:   it.LastCostCents,
		CostCurrency:    it.CostCurrency,
		Brand:           it.Brand,
		PackSize:        it.PackSize,
	}
}
