package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proces is one accounting period. Only one proces may be active at a time.
type Proces struct {
	ID          int64
	Actiu       bool
	DataInici   time.Time
	DataFi      *time.Time // nil while the proces is active
	QuantitatID int64
	Diners      decimal.Decimal // amount every user owes, copied from the quantitat at creation
}
