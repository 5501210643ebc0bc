package export

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-parser/internal/invoice"
)

func ptr(s string) *string { return &s }

func sampleRecord() *invoice.Record {
	return &invoice.Record{
		InvoiceNumber: ptr("INV/2024/001"),
		InvoiceDate:   ptr("2024-04-01"),
		Currency:      ptr("INR"),
		Vendor:        &invoice.Party{Name: ptr("Acme Traders"), GSTIN: ptr("29ABCDE1234F1Z5")},
		LineItems: []invoice.LineItem{
			{Description: ptr("Widget"), HSNCode: ptr("8471"), Quantity: invoice.MustAmount("2"), UnitPrice: invoice.MustAmount("500"), Amount: invoice.MustAmount("1000")},
			{Description: ptr("Service"), Amount: invoice.MustAmount("234.5")},
		},
		Subtotal:    invoice.MustAmount("1234.5"),
		TaxDetails:  &invoice.TaxDetails{CGST: invoice.MustAmount("111.11"), SGST: invoice.MustAmount("111.11")},
		TotalAmount: invoice.MustAmount("1456.72"),
		Notes:       ptr("Thank you"),
	}
}

func TestInvoiceXLSX(t *testing.T) {
	s := NewService(nil)
	b, err := s.InvoiceXLSX([]Entry{
		{Source: "a.pdf", Record: sampleRecord()},
		{Source: "broken.pdf"},
		{Source: "b.pdf", Record: &invoice.Record{InvoiceNumber: ptr("B2")}},
	})
	if err != nil {
		t.Fatalf("InvoiceXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != "Invoices" || got[1] != "Line Items" {
		t.Fatalf("sheets = %v", got)
	}

	rows, err := f.GetRows("Invoices")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 invoices, got %d rows", len(rows))
	}
	if rows[1][0] != "a.pdf" || rows[1][1] != "INV/2024/001" || rows[1][5] != "Acme Traders" {
		t.Fatalf("row = %v", rows[1])
	}
	if v, _ := f.GetCellValue("Invoices", "O2"); v != "1456.72" {
		t.Fatalf("total cell = %q", v)
	}
	if rows[2][1] != "B2" {
		t.Fatalf("second invoice row = %v", rows[2])
	}

	items, _ := f.GetRows("Line Items")
	if len(items) != 3 {
		t.Fatalf("expected header + 2 items, got %d", len(items))
	}
	if items[1][1] != "Widget" || items[1][2] != "8471" || items[1][5] != "1000" {
		t.Fatalf("item row = %v", items[1])
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, sampleRecord()); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Invoice Number:  INV/2024/001",
		"Due Date:        N/A",
		"Subtotal:        ₹1,234.50",
		"Total Tax:       N/A",
		"CGST:            ₹111.11",
		"Widget",
		"8471",
		"Notes:           Thank you",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Payment Terms") {
		t.Error("payment terms should be omitted when unset")
	}
}

func TestSummaryNoLineItems(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, &invoice.Record{Currency: ptr("USD"), TotalAmount: invoice.MustAmount("10")}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No line items extracted") {
		t.Fatal("expected empty line item notice")
	}
	if !strings.Contains(buf.String(), "USD 10.00") {
		t.Fatalf("expected code-prefixed amount:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Additional Information") {
		t.Fatal("no additional section without terms or notes")
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		rec  *invoice.Record
		ext  string
		want string
	}{
		{&invoice.Record{InvoiceNumber: ptr("A1")}, "json", "invoice_A1.json"},
		{&invoice.Record{InvoiceNumber: ptr("INV/2024/001")}, ".xlsx", "invoice_INV-2024-001.xlsx"},
		{&invoice.Record{}, "json", "invoice_parsed.json"},
		{&invoice.Record{InvoiceNumber: ptr("//")}, "json", "invoice_parsed.json"},
		{nil, "json", "invoice_parsed.json"},
	}
	for _, tc := range cases {
		if got := FileName(tc.rec, tc.ext); got != tc.want {
			t.Errorf("FileName() = %q, want %q", got, tc.want)
		}
	}
}

func TestTruncateKeepsRunes(t *testing.T) {
	got := truncate(strings.Repeat("₹", 60)+strings.Repeat("क", 100), 140)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 140 {
		t.Fatalf("rune count = %d, want 140", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if got := truncate("₹ 1,180", 140); got != "₹ 1,180" {
		t.Fatalf("short text changed: %q", got)
	}
}
