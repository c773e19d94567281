package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// SignatureHeader cabecera con el HMAC-SHA256 (hex) del cuerpo.
const SignatureHeader = "X-CIC-Signature"

// EventTypeSale único tipo de evento que mueve stock.
const EventTypeSale = "SALE"

// WebhookHandler recibe eventos del TPV externo.
type WebhookHandler struct {
	movements *inventory.RegisterMovementUseCase
	secret    []byte
}

// NewWebhookHandler construye el handler con el secreto compartido.
func NewWebhookHandler(movements *inventory.RegisterMovementUseCase, secret string) *WebhookHandler {
	return &WebhookHandler{movements: movements, secret: []byte(secret)}
}

// Sign calcula la firma esperada para body.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *WebhookHandler) validSignature(header string, body []byte) bool {
	got := strings.TrimPrefix(strings.TrimSpace(header), "sha256=")
	if got == "" {
		return false
	}
	want := Sign(h.secret, body)
	return hmac.Equal([]byte(strings.ToLower(got)), []byte(want))
}

// CIC godoc
// @Summary      Webhook del TPV
// @Description  Firma en X-CIC-Signature (HMAC-SHA256 hex del cuerpo, prefijo sha256= opcional).
// @Description  SALE genera salidas VENDITA (todo o nada); otros tipos se aceptan sin efecto.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CICEvent  true  "evento"
// @Success      201   {array}   dto.MovementResponse
// @Success      202   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /webhooks/cic [post]
func (h *WebhookHandler) CIC(c *fiber.Ctx) error {
	if !h.validSignature(c.Get(SignatureHeader), c.Body()) {
		return respondError(c, domain.NewRuleError(domain.ErrUnauthorized, "firma no válida", nil))
	}
	var ev dto.CICEvent
	if err := bindAndValidate(c, &ev); err != nil {
		return respondError(c, err)
	}
	if strings.ToUpper(ev.Type) != EventTypeSale {
		log.Info().Str("event_id", ev.EventID).Str("type", ev.Type).Msg("evento CIC ignorado")
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"ok": true, "ignored": true})
	}
	if len(ev.Lines) == 0 {
		return c.JSON([]*dto.MovementResponse{})
	}
	out, err := h.movements.RegisterSaleEvent(c.UserContext(), ev)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
