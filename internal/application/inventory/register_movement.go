package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Unidades operativas alternativas a quantity.
const (
	OpsUnitPZ   = "PZ"
	OpsUnitPACK = "PACK"
)

// RegisterMovementUseCase registra movimientos de stock dentro de una unidad de trabajo.
// El stock se deriva del registro; las salidas y ajustes nunca pueden dejarlo negativo.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// MovementInputDTO entrada para registrar un movimiento.
// Cantidad: Quantity, o bien OpsUnit (PZ|PACK) + OpsQty. Reason obligatoria en OUT/ADJUST.
type MovementInputDTO struct {
	SKU      string
	Type     string
	Quantity *decimal.Decimal
	Reason   string
	Note     string
	OpsUnit  string
	OpsQty   *decimal.Decimal
}

// RegisterMovement valida y registra un único movimiento.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.Movement, error) {
	movs, err := uc.RegisterBatch(ctx, []MovementInputDTO{input})
	if err != nil {
		return nil, err
	}
	return movs[0], nil
}

// RegisterBatch registra varios movimientos de forma atómica: si uno falla no se guarda ninguno.
// Cada movimiento ve el stock resultante de los anteriores del mismo lote.
func (uc *RegisterMovementUseCase) RegisterBatch(ctx context.Context, inputs []MovementInputDTO) ([]*entity.Movement, error) {
	if len(inputs) == 0 {
		return nil, domain.Invalid("lines", "no hay movimientos que registrar")
	}
	for i := range inputs {
		if err := validateShape(&inputs[i]); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	var out []*entity.Movement
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.OrderRepository,
	) error {
		out = out[:0]
		running := make(map[string]decimal.Decimal)
		for _, in := range inputs {
			item, err := itemRepo.GetBySKU(ctx, in.SKU)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.NewRuleError(domain.ErrInvalidInput,
					fmt.Sprintf("SKU %s no existe en el registro", in.SKU), map[string]any{"sku": in.SKU})
			}
			if !item.Active {
				return domain.NewRuleError(domain.ErrInactiveItem,
					fmt.Sprintf("SKU %s está desactivado", in.SKU), map[string]any{"sku": in.SKU})
			}

			qty := resolveQuantity(in, item)
			current, ok := running[in.SKU]
			if !ok {
				history, err := movRepo.ListBySKU(ctx, in.SKU)
				if err != nil {
					return err
				}
				current = inventory.DeriveStock(history, in.SKU)
			}

			mov := &entity.Movement{
				ID:       uuid.New().String(),
				SKU:      in.SKU,
				Quantity: qty,
				Type:     in.Type,
				Reason:   in.Reason,
				Note:     in.Note,
				Date:     now,
			}
			next := inventory.Apply(current, mov)
			if inventory.Decreases(in.Type) && next.IsNegative() {
				return domain.NewRuleError(domain.ErrInsufficientStock,
					fmt.Sprintf("stock insuficiente para %s: actual %s, solicitado %s", in.SKU, current.String(), qty.String()),
					map[string]any{
						"sku":          in.SKU,
						"currentStock": current,
						"requested":    qty,
						"resulting":    next,
					})
			}
			running[in.SKU] = next
			out = append(out, mov)
		}
		return movRepo.Append(ctx, out...)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista movimientos en orden cronológico.
func (uc *RegisterMovementUseCase) List(ctx context.Context, filter repository.MovementFilter) ([]*dto.MovementResponse, error) {
	if filter.SKU != "" {
		filter.SKU = inventory.NormalizeSKU(filter.SKU)
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// validateShape normaliza y valida la entrada sin tocar el almacenamiento.
func validateShape(in *MovementInputDTO) error {
	in.SKU = inventory.NormalizeSKU(in.SKU)
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	in.Reason = strings.ToUpper(strings.TrimSpace(in.Reason))
	in.OpsUnit = strings.ToUpper(strings.TrimSpace(in.OpsUnit))
	in.Note = strings.TrimSpace(in.Note)

	if in.SKU == "" {
		return domain.Invalid("sku", "sku es requerido")
	}
	switch in.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUST, entity.MovementTypeINVENTORY:
	default:
		return domain.Invalid("type", "type debe ser IN, OUT, ADJUST o INVENTORY")
	}

	// Una sola forma de cantidad.
	switch {
	case in.OpsUnit != "" && in.Quantity != nil:
		return domain.Invalid("quantity", "indicar quantity u opsUnit/opsQty, no ambos")
	case in.OpsUnit != "":
		if in.OpsUnit != OpsUnitPZ && in.OpsUnit != OpsUnitPACK {
			return domain.Invalid("opsUnit", "opsUnit debe ser PZ o PACK")
		}
		if in.OpsQty == nil {
			return domain.Invalid("opsQty", "opsQty es requerido con opsUnit")
		}
	case in.OpsQty != nil:
		return domain.Invalid("opsUnit", "opsUnit es requerido con opsQty")
	case in.Quantity == nil:
		return domain.Invalid("quantity", "quantity es requerido")
	}

	magnitude := in.Quantity
	if magnitude == nil {
		magnitude = in.OpsQty
	}
	if magnitude.IsNegative() {
		return domain.Invalid("quantity", "la cantidad no puede ser negativa")
	}
	if in.Type != entity.MovementTypeINVENTORY && magnitude.IsZero() {
		return domain.Invalid("quantity", "la cantidad debe ser mayor que cero")
	}

	switch in.Type {
	case entity.MovementTypeINVENTORY:
		in.Reason = entity.ReasonInventario
	case entity.MovementTypeOUT, entity.MovementTypeADJUST:
		if in.Reason == "" {
			return domain.Invalid("reason", in.Type+" requiere una reason obligatoria")
		}
	}
	if in.Reason != "" && !isClientReason(in.Reason) {
		return domain.Invalid("reason", "reason no admitida: "+in.Reason)
	}
	return nil
}

func resolveQuantity(in MovementInputDTO, item *entity.Item) decimal.Decimal {
	if in.Quantity != nil {
		return *in.Quantity
	}
	if in.OpsUnit == OpsUnitPACK {
		return in.OpsQty.Mul(decimal.NewFromInt(int64(item.EffectivePackSize())))
	}
	return *in.OpsQty
}

// ClientReasons motivos que un cliente puede indicar. RICEZIONE_ORDINE lo genera solo el sistema.
var ClientReasons = []string{
	entity.ReasonVendita, entity.ReasonResoCliente, entity.ReasonScarto,
	entity.ReasonFurto, entity.ReasonRettifica, entity.ReasonInventario,
}

func isClientReason(r string) bool {
	for _, c := range ClientReasons {
		if c == r {
			return true
		}
	}
	return false
}
