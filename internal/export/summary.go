package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/invoice-parser/internal/invoice"
)

const na = "N/A"

// Summary writes a readable report of rec: basic information, parties,
// financial summary, tax breakdown, line items and any terms or notes.
func Summary(w io.Writer, rec *invoice.Record) error {
	currency := invoice.Str(rec.Currency)
	if currency == "" {
		currency = "INR"
	}
	vendor, buyer := partyOrEmpty(rec.Vendor), partyOrEmpty(rec.Buyer)
	tax := rec.TaxDetails
	if tax == nil {
		tax = &invoice.TaxDetails{}
	}

	var b strings.Builder
	section := func(title string) { fmt.Fprintf(&b, "\n%s\n%s\n", title, strings.Repeat("-", len(title))) }
	field := func(label string, v *string) { fmt.Fprintf(&b, "%-16s %s\n", label+":", orNA(v)) }
	money := func(label string, a *invoice.Amount) {
		fmt.Fprintf(&b, "%-16s %s\n", label+":", invoice.FormatCurrency(a, currency))
	}

	section("Basic Information")
	field("Invoice Number", rec.InvoiceNumber)
	field("Invoice Date", rec.InvoiceDate)
	field("Due Date", rec.DueDate)
	field("Currency", rec.Currency)

	section("Vendor Details")
	field("Name", vendor.Name)
	field("Address", vendor.Address)
	field("GSTIN", vendor.GSTIN)

	section("Buyer Details")
	field("Name", buyer.Name)
	field("Address", buyer.Address)
	field("GSTIN", buyer.GSTIN)

	section("Financial Summary")
	money("Subtotal", rec.Subtotal)
	money("Total Tax", tax.TotalTax)
	money("Total Amount", rec.TotalAmount)

	section("Tax Breakdown")
	money("CGST", tax.CGST)
	money("SGST", tax.SGST)
	money("IGST", tax.IGST)

	section("Line Items")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	b.Reset()

	if len(rec.LineItems) == 0 {
		b.WriteString("No line items extracted\n")
	} else {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Description", "HSN Code", "Qty", "Unit Price", "Amount"})
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, li := range rec.LineItems {
			table.Append([]string{
				orNA(li.Description),
				orNA(li.HSNCode),
				plain(li.Quantity),
				plain(li.UnitPrice),
				plain(li.Amount),
			})
		}
		table.Render()
	}

	if rec.PaymentTerms != nil || rec.Notes != nil {
		section("Additional Information")
		if rec.PaymentTerms != nil {
			field("Payment Terms", rec.PaymentTerms)
		}
		if rec.Notes != nil {
			field("Notes", rec.Notes)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func orNA(p *string) string {
	if p == nil || *p == "" {
		return na
	}
	return *p
}

func plain(a *invoice.Amount) string {
	if a == nil {
		return ""
	}
	return a.String()
}

var reUnsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName is the download name for a record: invoice_<number>.<ext>, or
// invoice_parsed.<ext> when the number is unknown. Characters that are not
// safe in file names become "-".
func FileName(rec *invoice.Record, ext string) string {
	id := "parsed"
	if rec != nil && rec.InvoiceNumber != nil {
		if s := strings.Trim(reUnsafeName.ReplaceAllString(*rec.InvoiceNumber, "-"), "-."); s != "" {
			id = s
		}
	}
	return "invoice_" + id + "." + strings.TrimPrefix(ext, ".")
}
