package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInactiveItem      = errors.New("artículo desactivado")
	ErrStockNotZero      = errors.New("stock distinto de cero")
	ErrOrderReceived     = errors.New("orden ya recibida")
	ErrOverReceipt       = errors.New("recepción superior a lo ordenado")
	ErrInvalidStatus     = errors.New("estado de orden incoherente")
)

// RuleError es una violación de regla de negocio con mensaje legible y, opcionalmente,
// las cantidades implicadas. Envuelve uno de los errores sentinela de arriba.
type RuleError struct {
	Err     error
	Message string
	Details map[string]any
}

// NewRuleError construye un RuleError sobre un sentinela.
func NewRuleError(err error, message string, details map[string]any) *RuleError {
	return &RuleError{Err: err, Message: message, Details: details}
}

func (e *RuleError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *RuleError) Unwrap() error { return e.Err }

// Invalid atajo para errores de validación (ErrInvalidInput) con el campo afectado.
func Invalid(field, message string) *RuleError {
	return &RuleError{Err: ErrInvalidInput, Message: message, Details: map[string]any{"field": field}}
}
