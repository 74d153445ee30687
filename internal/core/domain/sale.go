package domain

import (
	"errors"
	"time"
)

// SaleStatus represents the lifecycle state of a sale.
type SaleStatus string

const (
	SalePaid   SaleStatus = "PAGADA"
	SaleVoided SaleStatus = "ANULADA"
)

// Payment methods accepted at checkout.
const (
	PaymentCash = "EFECTIVO"
	PaymentCard = "TARJETA"
)

var ErrSaleNotFound = errors.New("sale not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrCardRequired = errors.New("card details are required for card payments")

// Sale records a completed payment against an order, scoped to the client
// that placed it.
type Sale struct {
	ID            int64      `json:"id" bson:"_id,omitempty"`
	OrderID       int64      `json:"order_id" bson:"order_id"`
	ClientID      int64      `json:"client_id" bson:"client_id"`
	TotalAmount   float64    `json:"total_amount" bson:"total_amount"`
	Status        SaleStatus `json:"status" bson:"status"`
	PaymentMethod string     `json:"payment_method" bson:"payment_method"`
	SaleDate      time.Time  `json:"sale_date" bson:"sale_date"`
}

// Card holds the details required for a TARJETA payment. It is request
// scoped and never persisted.
type Card struct {
	Number string
	CVV    string
	Expiry string
}

// Complete reports whether all mandatory card fields are present.
func (c *Card) Complete() bool {
	return c != nil && c.Number != "" && c.CVV != "" && c.Expiry != ""
}
