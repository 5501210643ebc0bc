package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	nullableString = map[string]any{"type": []string{"string", "null"}}
	nullableNumber = map[string]any{"type": []string{"number", "null"}}
)

// BuildRecordJSONSchema describes Record. Every field is optional and nullable;
// unknown keys are tolerated.
func BuildRecordJSONSchema() map[string]any {
	party := map[string]any{
		"type": []string{"object", "null"},
		"properties": map[string]any{
			"name":    nullableString,
			"address": nullableString,
			"gstin":   nullableString,
		},
	}
	lineItem := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": nullableString,
			"hsn_code":    nullableString,
			"quantity":    nullableNumber,
			"unit_price":  nullableNumber,
			"amount":      nullableNumber,
		},
	}
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]any{
			"invoice_number": nullableString,
			"invoice_date":   nullableString,
			"due_date":       nullableString,
			"vendor":         party,
			"buyer":          party,
			"line_items": map[string]any{
				"type":  []string{"array", "null"},
				"items": lineItem,
			},
			"subtotal": nullableNumber,
			"tax_details": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"cgst":      nullableNumber,
					"sgst":      nullableNumber,
					"igst":      nullableNumber,
					"total_tax": nullableNumber,
				},
			},
			"total_amount":  nullableNumber,
			"currency":      nullableString,
			"payment_terms": nullableString,
			"notes":         nullableString,
		},
	}
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(BuildRecordJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("invoice.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile("invoice.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
})

// decodeValue decodes JSON keeping numbers as json.Number.
func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

// validateValue checks an already decoded value against the record schema.
func validateValue(v any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
