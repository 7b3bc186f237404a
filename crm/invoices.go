package crm

import (
	"context"
	"net/http"
	"time"
)

// InvoiceLine is one billed row. Amounts are integer cents.
type InvoiceLine struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitCents   int64  `json:"unitCents"`
}

// Invoice is a generated invoice or budget document. Rendering to PDF is
// the server's job; the client only carries line items.
type Invoice struct {
	ID         string        `json:"id"`
	Number     string        `json:"number"`
	Customer   string        `json:"customer"`
	Kind       string        `json:"kind"` // "invoice" or "budget"
	Lines      []InvoiceLine `json:"lines"`
	TotalCents int64         `json:"totalCents"`
	IssuedAt   time.Time     `json:"issuedAt"`
}

// InvoiceInput is the create payload for an invoice or budget.
type InvoiceInput struct {
	Customer string        `json:"customer"`
	Kind     string        `json:"kind"`
	Lines    []InvoiceLine `json:"lines"`
}

// Invoices lists generated invoices and budgets.
func (c *Client) Invoices(ctx context.Context) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices", nil, nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// CreateInvoice submits line items for a new invoice or budget.
func (c *Client) CreateInvoice(ctx context.Context, input InvoiceInput) (Invoice, error) {
	var invoice Invoice
	if err := c.do(ctx, http.MethodPost, "/invoices", nil, input, &invoice); err != nil {
		return Invoice{}, err
	}
	return invoice, nil
}
