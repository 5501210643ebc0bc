package invoice

import (
	"encoding/json"

	"github.com/joseph-ayodele/invoice-parser/constants"
	"github.com/joseph-ayodele/invoice-parser/internal/common"
)

// Outcome is the record-or-error envelope rendered to callers.
type Outcome struct {
	Record *Record
	Err    error
}

type errorBody struct {
	Error       string  `json:"error"`
	RawResponse *string `json:"raw_response,omitempty"`
}

// NewOutcome builds the envelope from an Extract result. A nil record with a
// nil error is treated as an internal failure so one variant is always set.
func NewOutcome(rec *Record, err error) Outcome {
	if err == nil && rec == nil {
		err = common.NewAppError(constants.CodeInternal, "no record produced", common.ErrInternal)
	}
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Record: rec}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Err == nil {
		return json.Marshal(o.Record)
	}
	body := errorBody{Error: o.Err.Error()}
	if ae, ok := common.AsAppError(o.Err); ok {
		body.Error = ae.Message
		body.RawResponse = ae.RawResponse
	}
	return json.Marshal(body)
}
