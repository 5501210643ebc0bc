// Package invoice holds the structured invoice record and turns raw model
// replies into it.
package invoice

import (
	"github.com/shopspring/decimal"
)

// Amount is a decimal that marshals as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) *Amount { return &Amount{Decimal: d} }

// MustAmount parses s and panics on failure; intended for tests and literals.
func MustAmount(s string) *Amount {
	return &Amount{Decimal: decimal.RequireFromString(s)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.Decimal.UnmarshalJSON(b)
}

// Party is a vendor or buyer.
type Party struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin"`
}

type LineItem struct {
	Description *string `json:"description"`
	HSNCode     *string `json:"hsn_code"`
	Quantity    *Amount `json:"quantity"`
	UnitPrice   *Amount `json:"unit_price"`
	Amount      *Amount `json:"amount"`
}

type TaxDetails struct {
	CGST     *Amount `json:"cgst"`
	SGST     *Amount `json:"sgst"`
	IGST     *Amount `json:"igst"`
	TotalTax *Amount `json:"total_tax"`
}

// Record is the extracted invoice. Every field is optional; nil encodes as null.
type Record struct {
	InvoiceNumber *string     `json:"invoice_number"`
	InvoiceDate   *string     `json:"invoice_date"`
	DueDate       *string     `json:"due_date"`
	Vendor        *Party      `json:"vendor"`
	Buyer         *Party      `json:"buyer"`
	LineItems     []LineItem  `json:"line_items"`
	Subtotal      *Amount     `json:"subtotal"`
	TaxDetails    *TaxDetails `json:"tax_details"`
	TotalAmount   *Amount     `json:"total_amount"`
	Currency      *string     `json:"currency"`
	PaymentTerms  *string     `json:"payment_terms"`
	Notes         *string     `json:"notes"`
}

// Str returns *p or "" for nil.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
