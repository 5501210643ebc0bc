package invoice

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numericFields = []string{"subtotal", "total_amount"}
	taxFields     = []string{"cgst", "sgst", "igst", "total_tax"}
	itemNumeric   = []string{"quantity", "unit_price", "amount"}
	stringFields  = []string{"invoice_number", "invoice_date", "due_date", "currency", "payment_terms", "notes"}
	partyFields   = []string{"name", "address", "gstin"}
	itemStrings   = []string{"description", "hsn_code"}

	// currency symbols, codes and grouping separators around a number
	reMoneyNoise = regexp.MustCompile(`(?i)(rs\.?|inr|usd|eur|gbp|[₹$€£,\s])`)
)

// sanitizeOptional coerces values the model commonly emits in the wrong shape
// so the reply can pass a second validation: numeric strings ("₹1,180.00")
// become numbers, numbers in string slots become strings, a bare string party
// becomes {"name": ...} and placeholders like "N/A" become null. Coercions
// that would lose data (wrong types, unparseable amounts, non-object line
// items) are reported as an error instead. It returns the paths it touched.
func sanitizeOptional(v any) (any, []string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("sanitize: top-level value is %T, not an object", v)
	}
	var touched, lossy []string
	note := func(path, what string) {
		touched = append(touched, path+"("+what+")")
		if what == "type" || what == "unparseable" {
			lossy = append(lossy, path)
		}
	}

	for _, k := range numericFields {
		coerceNumber(m, k, k, note)
	}
	for _, k := range stringFields {
		coerceString(m, k, k, note)
	}

	for _, pk := range []string{"vendor", "buyer"} {
		switch p := m[pk].(type) {
		case nil:
		case map[string]any:
			for _, k := range partyFields {
				coerceString(p, k, pk+"."+k, note)
			}
		case string:
			m[pk] = map[string]any{"name": p}
			note(pk, "string->name")
		default:
			m[pk] = nil
			note(pk, "type")
		}
	}

	switch td := m["tax_details"].(type) {
	case nil:
	case map[string]any:
		for _, k := range taxFields {
			coerceNumber(td, k, "tax_details."+k, note)
		}
	default:
		m["tax_details"] = nil
		note("tax_details", "type")
	}

	switch items := m["line_items"].(type) {
	case nil:
	case []any:
		kept := make([]any, 0, len(items))
		for i, it := range items {
			im, ok := it.(map[string]any)
			if !ok {
				note(fmt.Sprintf("line_items[%d]", i), "type")
				continue
			}
			for _, k := range itemNumeric {
				coerceNumber(im, k, fmt.Sprintf("line_items[%d].%s", i, k), note)
			}
			for _, k := range itemStrings {
				coerceString(im, k, fmt.Sprintf("line_items[%d].%s", i, k), note)
			}
			kept = append(kept, im)
		}
		m["line_items"] = kept
	default:
		m["line_items"] = nil
		note("line_items", "type")
	}
	if len(lossy) > 0 {
		return nil, touched, fmt.Errorf("unusable values at %s", strings.Join(lossy, ", "))
	}
	return m, touched, nil
}

func coerceNumber(m map[string]any, key, path string, note func(string, string)) {
	v, ok := m[key]
	if !ok {
		return
	}
	switch t := v.(type) {
	case nil, json.Number:
	case float64:
		m[key] = json.Number(decimal.NewFromFloat(t).String())
	case string:
		if d, ok := parseMoney(t); ok {
			m[key] = json.Number(d.String())
			note(path, "string->number")
		} else if isPlaceholder(t) {
			m[key] = nil
			note(path, "placeholder")
		} else {
			m[key] = nil
			note(path, "unparseable")
		}
	default:
		m[key] = nil
		note(path, "type")
	}
}

func coerceString(m map[string]any, key, path string, note func(string, string)) {
	v, ok := m[key]
	if !ok {
		return
	}
	switch t := v.(type) {
	case nil, string:
	case json.Number:
		m[key] = t.String()
		note(path, "number->string")
	case bool:
		m[key] = fmt.Sprint(t)
		note(path, "bool->string")
	default:
		m[key] = nil
		note(path, "type")
	}
}

// isPlaceholder reports whether s is how models write "no value".
func isPlaceholder(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-", "n/a", "na", "nil", "null", "none":
		return true
	}
	return false
}

// parseMoney accepts "1,180.00", "₹ 1180", "Rs. 99.5", "(12.00)" and similar.
func parseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.Trim(s, "()")
	s = reMoneyNoise.ReplaceAllString(s, "")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}
