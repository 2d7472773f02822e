// Package json renders results as indented JSON documents.
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/precheck/pkg/errors"
)

// Renderer writes one JSON document per call.
type Renderer struct {
	encoder *json.Encoder
}

// New creates a JSON renderer.
func New(w io.Writer) *Renderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderResult encodes result as is.
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

type errorDocument struct {
	Error       string                 `json:"error"`
	Code        string                 `json:"code,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"`
	Remediation string                 `json:"remediation,omitempty"`
}

// RenderError encodes err with its code and details.
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}

	doc := errorDocument{Error: err.Error(), Remediation: errors.Remediation(err)}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		doc.Code = string(code)
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		doc.Details = make(map[string]interface{}, len(details))
		for k, v := range details {
			if k != errors.DetailRemediation {
				doc.Details[k] = v
			}
		}
	}
	return r.encoder.Encode(doc)
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
