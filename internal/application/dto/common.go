package dto

// ErrorResponse cuerpo de error HTTP. Details lleva, cuando aplica, los campos
// inválidos o las cantidades implicadas en la regla violada.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    string `json:"time"`
}
