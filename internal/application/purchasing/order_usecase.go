package purchasing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	appinv "github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
	"github.com/jhoicas/magazzino-api/pkg/logger"
)

// OrderUseCase ciclo de vida de las órdenes de compra: DRAFT -> SENT -> PARTIAL -> RECEIVED.
type OrderUseCase struct {
	tx        appinv.TxRunner
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	pdf       OrderPDFGenerator
	notifier  SupplierNotifier
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso. pdf, notifier y log pueden ser nil.
func NewOrderUseCase(
	tx appinv.TxRunner,
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	pdf OrderPDFGenerator,
	notifier SupplierNotifier,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		tx:        tx,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		pdf:       pdf,
		notifier:  notifier,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create crea una orden en DRAFT con todas las cantidades recibidas a 0.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	supplier := strings.ToUpper(strings.TrimSpace(in.Supplier))
	if !inventory.IsSupplier(supplier) {
		return nil, domain.Invalid("supplier", "supplier debe ser DORECA, ALPORI o VARI")
	}
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("lines", "la orden necesita al menos una línea")
	}
	lines := make([]entity.OrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.OrderLine{SKU: inventory.NormalizeSKU(l.SKU), QtyOrderedConf: l.QtyOrderedConf})
	}

	order := &entity.Order{
		OrderID:   entity.OrderIDPrefix + uuid.New().String(),
		Supplier:  supplier,
		Status:    entity.OrderStatusDraft,
		CreatedAt: uc.now(),
		Notes:     trimmedOrNil(in.Notes),
		Lines:     lines,
	}
	err := uc.tx.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository, orders repository.OrderRepository) error {
		if err := validateLines(ctx, items, order.Lines); err != nil {
			return err
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// Update actualiza proveedor, estado, notas y/o líneas. El estado se vuelve a derivar de las líneas:
// DRAFT/SENT explícitos solo valen si no hubo recepción; un PARTIAL/RECEIVED que contradiga las líneas se rechaza.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var (
		updated   *entity.Order
		firstSent bool
	)
	err := uc.tx.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository, orders repository.OrderRepository) error {
		current, err := orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NewRuleError(domain.ErrNotFound, fmt.Sprintf("orden %s no encontrada", id), nil)
		}
		order := current.Clone()

		if in.Supplier != nil {
			sup := strings.ToUpper(strings.TrimSpace(*in.Supplier))
			if !inventory.IsSupplier(sup) {
				return domain.Invalid("supplier", "supplier debe ser DORECA, ALPORI o VARI")
			}
			order.Supplier = sup
		}
		if in.Notes != nil {
			order.Notes = trimmedOrNil(in.Notes)
		}
		if in.Lines != nil {
			lines := make([]entity.OrderLine, 0, len(*in.Lines))
			for _, l := range *in.Lines {
				lines = append(lines, entity.OrderLine{
					SKU:             inventory.NormalizeSKU(l.SKU),
					QtyOrderedConf:  l.QtyOrderedConf,
					QtyReceivedConf: l.QtyReceivedConf,
				})
			}
			if len(lines) == 0 {
				return domain.Invalid("lines", "la orden necesita al menos una línea")
			}
			if err := validateLines(ctx, items, lines); err != nil {
				return err
			}
			for _, l := range lines {
				if l.QtyReceivedConf > l.QtyOrderedConf {
					return domain.NewRuleError(domain.ErrOverReceipt,
						fmt.Sprintf("%s: recibido %d supera lo ordenado %d", l.SKU, l.QtyReceivedConf, l.QtyOrderedConf),
						map[string]any{"sku": l.SKU, "orderedConf": l.QtyOrderedConf, "receivedConf": l.QtyReceivedConf})
				}
			}
			order.Lines = lines
		}

		base := baseStatus(current)
		if in.Status != nil {
			requested := strings.ToUpper(strings.TrimSpace(*in.Status))
			if requested == entity.OrderStatusDraft || requested == entity.OrderStatusSent {
				base = requested
			}
		}
		derived := inventory.DeriveOrderStatus(order.Lines, base)
		if in.Status != nil {
			requested := strings.ToUpper(strings.TrimSpace(*in.Status))
			if requested != derived {
				return domain.NewRuleError(domain.ErrInvalidStatus,
					fmt.Sprintf("estado %s incompatible con las líneas (estado calculado %s)", requested, derived),
					map[string]any{"requested": requested, "derived": derived})
			}
		}
		order.Status = derived

		now := uc.now()
		if order.Status == entity.OrderStatusSent && order.SentAt == nil {
			order.SentAt = &now
			firstSent = true
		}
		if order.Status == entity.OrderStatusReceived {
			if order.ReceivedAt == nil {
				order.ReceivedAt = &now
			}
		} else {
			order.ReceivedAt = nil
		}

		if err := orders.Update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	if firstSent {
		uc.notifySent(ctx, updated)
	}
	return ToOrderResponse(updated), nil
}

// Get obtiene una orden. ErrNotFound si no existe.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewRuleError(domain.ErrNotFound, fmt.Sprintf("orden %s no encontrada", id), nil)
	}
	return ToOrderResponse(o), nil
}

// List lista órdenes filtradas, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, f dto.OrderFilter) ([]*dto.OrderResponse, error) {
	list, err := uc.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

// KPIs contadores sobre las órdenes que pasan el filtro. pending = total - received.
func (uc *OrderUseCase) KPIs(ctx context.Context, f dto.OrderFilter) (*dto.OrderKPIs, error) {
	list, err := uc.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	k := &dto.OrderKPIs{Total: len(list)}
	for _, o := range list {
		switch o.Status {
		case entity.OrderStatusDraft:
			k.Drafts++
		case entity.OrderStatusReceived:
			k.Received++
		}
		k.Lines += len(o.Lines)
	}
	k.Pending = k.Total - k.Received
	return k, nil
}

func (uc *OrderUseCase) filtered(ctx context.Context, f dto.OrderFilter) ([]*entity.Order, error) {
	all, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToUpper(strings.TrimSpace(f.Q))
	supplier := strings.ToUpper(strings.TrimSpace(f.Supplier))
	status := strings.ToUpper(strings.TrimSpace(f.Status))

	out := make([]*entity.Order, 0, len(all))
	for _, o := range all {
		if q != "" && !matchesQuery(o, q) {
			continue
		}
		if supplier != "" && supplier != "ALL" && o.Supplier != supplier {
			continue
		}
		if status != "" && status != "ALL" && o.Status != status {
			continue
		}
		if f.DateFrom != nil && o.CreatedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && o.CreatedAt.After(*f.DateTo) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func matchesQuery(o *entity.Order, q string) bool {
	if strings.Contains(strings.ToUpper(o.OrderID), q) ||
		strings.Contains(o.Supplier, q) ||
		strings.Contains(o.Status, q) {
		return true
	}
	for _, l := range o.Lines {
		if strings.Contains(l.SKU, q) {
			return true
		}
	}
	return false
}

// validateLines exige SKUs existentes, activos y sin repetir.
func validateLines(ctx context.Context, items repository.ItemRepository, lines []entity.OrderLine) error {
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l.SKU == "" {
			return domain.Invalid("lines.sku", "sku es requerido en cada línea")
		}
		if l.QtyOrderedConf <= 0 {
			return domain.NewRuleError(domain.ErrInvalidInput,
				fmt.Sprintf("%s: qtyOrderedConf debe ser mayor que cero", l.SKU),
				map[string]any{"field": "lines.qtyOrderedConf", "sku": l.SKU})
		}
		if l.QtyReceivedConf < 0 {
			return domain.NewRuleError(domain.ErrInvalidInput,
				fmt.Sprintf("%s: qtyReceivedConf no puede ser negativo", l.SKU),
				map[string]any{"field": "lines.qtyReceivedConf", "sku": l.SKU})
		}
		if seen[l.SKU] {
			return domain.NewRuleError(domain.ErrInvalidInput,
				fmt.Sprintf("SKU %s repetido en la orden", l.SKU), map[string]any{"sku": l.SKU})
		}
		seen[l.SKU] = true
		if err := requireActiveItem(ctx, items, l.SKU); err != nil {
			return err
		}
	}
	return nil
}

func requireActiveItem(ctx context.Context, items repository.ItemRepository, sku string) error {
	item, err := items.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.NewRuleError(domain.ErrInvalidInput,
			fmt.Sprintf("SKU %s no existe en el registro", sku), map[string]any{"sku": sku})
	}
	if !item.Active {
		return domain.NewRuleError(domain.ErrInactiveItem,
			fmt.Sprintf("SKU %s está desactivado", sku), map[string]any{"sku": sku})
	}
	return nil
}

// baseStatus estado explícito vigente (DRAFT o SENT) que aplica cuando aún no hay recepciones.
func baseStatus(o *entity.Order) string {
	switch o.Status {
	case entity.OrderStatusDraft, entity.OrderStatusSent:
		return o.Status
	}
	if o.SentAt != nil {
		return entity.OrderStatusSent
	}
	return entity.OrderStatusDraft
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// ToOrderResponse convierte la entidad a DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			SKU:             l.SKU,
			QtyOrderedConf:  l.QtyOrderedConf,
			QtyReceivedConf: l.QtyReceivedConf,
		})
	}
	return &dto.OrderResponse{
		OrderID:    o.OrderID,
		Supplier:   o.Supplier,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
		SentAt:     o.SentAt,
		ReceivedAt: o.ReceivedAt,
		Notes:      o.Notes,
		Lines:      lines,
	}
}
