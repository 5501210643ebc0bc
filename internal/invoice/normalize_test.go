package invoice

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-parser/internal/common"
)

func TestParseReplyMinimal(t *testing.T) {
	rec, err := ParseReply(`{"invoice_number": "A1"}`, nil)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if Str(rec.InvoiceNumber) != "A1" {
		t.Fatalf("invoice_number = %v", rec.InvoiceNumber)
	}
	if rec.InvoiceDate != nil || rec.Vendor != nil || rec.LineItems != nil ||
		rec.TotalAmount != nil || rec.TaxDetails != nil || rec.Notes != nil {
		t.Fatalf("expected every other field unset: %+v", rec)
	}
}

func TestParseReplyExactValues(t *testing.T) {
	reply := "```json\n" + `{"invoice_number":"A1","total_amount":118.0,"tax_details":{"cgst":9.0,"sgst":9.0}}` + "\n```"
	rec, err := ParseReply(reply, nil)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if !rec.TotalAmount.Equal(decimal.NewFromInt(118)) {
		t.Fatalf("total = %s", rec.TotalAmount)
	}
	if !rec.TaxDetails.CGST.Equal(decimal.NewFromInt(9)) || !rec.TaxDetails.SGST.Equal(decimal.NewFromInt(9)) {
		t.Fatalf("tax = %+v", rec.TaxDetails)
	}
	if rec.TaxDetails.IGST != nil || rec.TaxDetails.TotalTax != nil || rec.Subtotal != nil {
		t.Fatal("unset fields should stay nil")
	}
}

func TestParseReplyNullsAreUnset(t *testing.T) {
	rec, err := ParseReply(`{"invoice_number":null,"vendor":null,"line_items":null,"subtotal":null}`, nil)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if rec.InvoiceNumber != nil || rec.Vendor != nil || rec.LineItems != nil || rec.Subtotal != nil {
		t.Fatalf("nulls should decode as unset: %+v", rec)
	}
}

func TestParseReplyMalformedKeepsRaw(t *testing.T) {
	raws := []string{
		"I could not read this invoice, sorry.",
		"```json\n{\"invoice_number\": \"A1\",\n```",
		"  [1, 2, 3]  ",
		`"A1"`,
		`{"invoice_number":"A1"}}`,
		`{"invoice_number":"A1"}]`,
		"{\"invoice_number\":\"A1\"} trailing words",
	}
	for _, raw := range raws {
		_, err := ParseReply(raw, nil)
		if !errors.Is(err, common.ErrMalformedReply) {
			t.Fatalf("%q: expected malformed reply, got %v", raw, err)
		}
		ae, ok := common.AsAppError(err)
		if !ok || ae.RawResponse == nil {
			t.Fatalf("%q: expected raw response on error", raw)
		}
		if *ae.RawResponse != raw {
			t.Fatalf("raw_response not byte-for-byte: %q vs %q", *ae.RawResponse, raw)
		}
	}
}

func TestParseReplyLenientSanitize(t *testing.T) {
	reply := `{
		"invoice_number": 1042,
		"vendor": "Acme Traders",
		"subtotal": "₹1,000.00",
		"total_amount": "Rs. 1,180",
		"tax_details": {"cgst": "90", "sgst": 90, "igst": "N/A"},
		"line_items": [
			{"description": "Widget", "hsn_code": 8471, "quantity": "2", "unit_price": 500, "amount": "1,000.00"}
		]
	}`
	rec, err := ParseReply(reply, nil)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if Str(rec.InvoiceNumber) != "1042" {
		t.Fatalf("invoice_number = %q", Str(rec.InvoiceNumber))
	}
	if rec.Vendor == nil || Str(rec.Vendor.Name) != "Acme Traders" {
		t.Fatalf("vendor = %+v", rec.Vendor)
	}
	if !rec.Subtotal.Equal(decimal.NewFromInt(1000)) || !rec.TotalAmount.Equal(decimal.NewFromInt(1180)) {
		t.Fatalf("amounts = %s / %s", rec.Subtotal, rec.TotalAmount)
	}
	if !rec.TaxDetails.CGST.Equal(decimal.NewFromInt(90)) || rec.TaxDetails.IGST != nil {
		t.Fatalf("tax = %+v", rec.TaxDetails)
	}
	if len(rec.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(rec.LineItems))
	}
	li := rec.LineItems[0]
	if Str(li.HSNCode) != "8471" || !li.Quantity.Equal(decimal.NewFromInt(2)) || !li.Amount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("line item = %+v", li)
	}
}

func TestRecordMarshalsNumbersAndNulls(t *testing.T) {
	n := "A1"
	rec := Record{InvoiceNumber: &n, TotalAmount: MustAmount("118.00")}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["total_amount"] != float64(118) {
		t.Fatalf("total_amount should be a JSON number, got %#v", m["total_amount"])
	}
	if v, ok := m["due_date"]; !ok || v != nil {
		t.Fatalf("unset fields should be present as null, got %#v", v)
	}
	if len(m) != 12 {
		t.Fatalf("expected 12 keys, got %d", len(m))
	}
}

func TestParseReplyLossyShapesAreMalformed(t *testing.T) {
	raws := []string{
		`{"invoice_number":"A1","total_amount":{"value":1}}`,
		`{"invoice_number":"A1","buyer":42}`,
		`{"invoice_number":"A1","subtotal":"about a thousand"}`,
		`{"invoice_number":"A1","line_items":[{"description":"Widget"},"garbage"]}`,
	}
	for _, raw := range raws {
		_, err := ParseReply(raw, nil)
		if !errors.Is(err, common.ErrMalformedReply) {
			t.Fatalf("%s: expected malformed reply, got %v", raw, err)
		}
		ae, ok := common.AsAppError(err)
		if !ok || ae.RawResponse == nil || *ae.RawResponse != raw {
			t.Fatalf("%s: raw response not kept", raw)
		}
	}
}

func TestParseReplyPlaceholdersBecomeNull(t *testing.T) {
	rec, err := ParseReply(`{"invoice_number":"A1","subtotal":"N/A","tax_details":{"igst":"-"}}`, nil)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if rec.Subtotal != nil || rec.TaxDetails == nil || rec.TaxDetails.IGST != nil {
		t.Fatalf("placeholders should be null: %+v", rec)
	}
}
