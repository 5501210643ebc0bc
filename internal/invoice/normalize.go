package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/invoice-parser/internal/common"
)

// ParseReply turns the model's raw reply into a Record. Fences are stripped,
// the remainder is validated against the record schema (with one lenient
// sanitize pass on failure) and decoded. Only lossless coercions are applied;
// anything else fails with the raw reply attached. Any failure is a MALFORMED_REPLY
// AppError whose RawResponse is raw, untouched.
func ParseReply(raw string, logger *slog.Logger) (*Record, error) {
	if logger == nil {
		logger = slog.Default()
	}
	body := []byte(StripFences(raw))

	v, err := decodeValue(body)
	if err != nil {
		logger.Warn("invoice.parse.decode_failed", "error", err, "raw_bytes", len(raw))
		return nil, common.MalformedReply(err, raw)
	}

	if vErr := validateValue(v); vErr != nil {
		cleaned, touched, sErr := sanitizeOptional(v)
		if sErr != nil {
			logger.Warn("invoice.parse.sanitize_failed", "error", sErr, "validation_error", vErr)
			return nil, common.MalformedReply(fmt.Errorf("%w: %v", vErr, sErr), raw)
		}
		if err := validateValue(cleaned); err != nil {
			logger.Warn("invoice.parse.schema_validation_failed", "error", err, "touched", touched)
			return nil, common.MalformedReply(err, raw)
		}
		logger.Warn("invoice.parse.lenient_sanitize_applied", "touched", touched)
		if body, err = json.Marshal(cleaned); err != nil {
			return nil, common.MalformedReply(err, raw)
		}
	}

	var rec Record
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&rec); err != nil {
		logger.Warn("invoice.parse.unmarshal_failed", "error", err)
		return nil, common.MalformedReply(fmt.Errorf("unmarshal record: %w", err), raw)
	}
	return &rec, nil
}
