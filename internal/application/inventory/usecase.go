package inventory

import (
	"context"

	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInputDTO{
		SKU:      in.SKU,
		Type:     in.Type,
		Quantity: in.Quantity,
		OpsQty:   in.OpsQty,
	}
	if in.Reason != nil {
		input.Reason = *in.Reason
	}
	if in.Note != nil {
		input.Note = *in.Note
	}
	if in.OpsUnit != nil {
		input.OpsUnit = *in.OpsUnit
	}
	mov, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// RegisterSaleEvent convierte las líneas de una venta del TPV en salidas VENDITA (todo o nada).
func (uc *RegisterMovementUseCase) RegisterSaleEvent(ctx context.Context, ev dto.CICEvent) ([]*dto.MovementResponse, error) {
	inputs := make([]MovementInputDTO, 0, len(ev.Lines))
	for _, l := range ev.Lines {
		q := l.Quantity
		inputs = append(inputs, MovementInputDTO{
			SKU:      l.SKU,
			Type:     entity.MovementTypeOUT,
			Quantity: &q,
			Reason:   entity.ReasonVendita,
			Note:     "CIC:" + ev.EventID,
		})
	}
	movs, err := uc.RegisterBatch(ctx, inputs)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// ToMovementResponse convierte la entidad a DTO.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:       m.ID,
		SKU:      m.SKU,
		Quantity: m.Quantity,
		Type:     m.Type,
		Reason:   m.Reason,
		Note:     m.Note,
		Date:     m.Date,
	}
}
