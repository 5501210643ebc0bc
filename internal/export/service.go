package export

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-parser/internal/invoice"
)

// Entry is one parsed document for the workbook.
type Entry struct {
	Source string
	Record *invoice.Record
}

// Service renders parsed invoices as XLSX workbooks.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const (
	invoicesSheet  = "Invoices"
	lineItemsSheet = "Line Items"
)

var (
	invoiceHeaders = []string{
		"Source", "Invoice Number", "Invoice Date", "Due Date", "Currency",
		"Vendor", "Vendor GSTIN", "Buyer", "Buyer GSTIN",
		"Subtotal", "CGST", "SGST", "IGST", "Total Tax", "Total Amount",
		"Payment Terms", "Notes",
	}
	lineItemHeaders = []string{
		"Invoice Number", "Description", "HSN Code", "Qty", "Unit Price", "Amount",
	}
)

// InvoiceXLSX returns a workbook with one row per invoice on "Invoices" and
// one row per line item on "Line Items". Entries with a nil record are skipped.
func (s *Service) InvoiceXLSX(entries []Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("export.xlsx.close_error", "error", err)
		}
	}()

	// The default "Sheet1" becomes the invoices sheet.
	if err := f.SetSheetName("Sheet1", invoicesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(lineItemsSheet); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(invoicesSheet)
	f.SetActiveSheet(activeIndex)

	writeRow(f, invoicesSheet, 1, toAny(invoiceHeaders))
	writeRow(f, lineItemsSheet, 1, toAny(lineItemHeaders))

	invRow, itemRow := 2, 2
	for _, e := range entries {
		r := e.Record
		if r == nil {
			continue
		}
		vendor, buyer := partyOrEmpty(r.Vendor), partyOrEmpty(r.Buyer)
		tax := r.TaxDetails
		if tax == nil {
			tax = &invoice.TaxDetails{}
		}
		writeRow(f, invoicesSheet, invRow, []any{
			e.Source,
			invoice.Str(r.InvoiceNumber),
			invoice.Str(r.InvoiceDate),
			invoice.Str(r.DueDate),
			invoice.Str(r.Currency),
			invoice.Str(vendor.Name),
			invoice.Str(vendor.GSTIN),
			invoice.Str(buyer.Name),
			invoice.Str(buyer.GSTIN),
			cellAmount(r.Subtotal),
			cellAmount(tax.CGST),
			cellAmount(tax.SGST),
			cellAmount(tax.IGST),
			cellAmount(tax.TotalTax),
			cellAmount(r.TotalAmount),
			invoice.Str(r.PaymentTerms),
			truncate(invoice.Str(r.Notes), 140),
		})
		invRow++

		for _, li := range r.LineItems {
			writeRow(f, lineItemsSheet, itemRow, []any{
				invoice.Str(r.InvoiceNumber),
				invoice.Str(li.Description),
				invoice.Str(li.HSNCode),
				cellAmount(li.Quantity),
				cellAmount(li.UnitPrice),
				cellAmount(li.Amount),
			})
			itemRow++
		}
	}

	_ = f.SetColWidth(invoicesSheet, "A", "A", 28) // source
	_ = f.SetColWidth(invoicesSheet, "B", "E", 14)
	_ = f.SetColWidth(invoicesSheet, "F", "I", 24) // parties
	_ = f.SetColWidth(invoicesSheet, "J", "O", 14) // amounts
	_ = f.SetColWidth(invoicesSheet, "P", "Q", 40)
	_ = f.SetColWidth(lineItemsSheet, "A", "A", 16)
	_ = f.SetColWidth(lineItemsSheet, "B", "B", 48) // description
	_ = f.SetColWidth(lineItemsSheet, "C", "F", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"invoices", invRow-2,
		"line_items", itemRow-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// cellAmount writes amounts as numbers and leaves unset ones blank.
func cellAmount(a *invoice.Amount) any {
	if a == nil {
		return ""
	}
	return a.InexactFloat64()
}

func partyOrEmpty(p *invoice.Party) invoice.Party {
	if p == nil {
		return invoice.Party{}
	}
	return *p
}

// truncate caps s at n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
