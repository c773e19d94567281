package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Cantidades como número JSON, igual que los archivos de datos existentes.
	decimal.MarshalJSONWithoutQuotes = true
}

// Tipos de movimiento de inventario.
const (
	MovementTypeIN        = "IN"        // entrada
	MovementTypeOUT       = "OUT"       // salida
	MovementTypeADJUST    = "ADJUST"    // ajuste (resta)
	MovementTypeINVENTORY = "INVENTORY" // conteo físico: fija el stock absoluto
)

// MovementTypes lista cerrada de tipos.
var MovementTypes = []string{MovementTypeIN, MovementTypeOUT, MovementTypeADJUST, MovementTypeINVENTORY}

// Motivos de movimiento.
const (
	ReasonVendita         = "VENDITA"
	ReasonResoCliente     = "RESO_CLIENTE"
	ReasonScarto          = "SCARTO"
	ReasonFurto           = "FURTO"
	ReasonRettifica       = "RETTIFICA"
	ReasonInventario      = "INVENTARIO"
	ReasonRicezioneOrdine = "RICEZIONE_ORDINE" // solo generado por el sistema
)

// Movement es un movimiento de stock. Append-only: nunca se modifica ni se elimina.
type Movement struct {
	ID       string
	SKU      string
	Quantity decimal.Decimal // magnitud no negativa; el signo lo da Type
	Type     string
	Reason   string
	Note     string
	Date     time.Time
}
