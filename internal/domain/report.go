package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ReportKind tags which known response shape a report matched
type ReportKind string

const (
	// ReportKindProcessed is the full extraction payload: tokens, mode, response and output_file.
	ReportKindProcessed ReportKind = "processed"
	// ReportKindResponseOnly carries a response field and nothing we recognise beside it.
	ReportKindResponseOnly ReportKind = "response_only"
	// ReportKindOpaque is any other valid JSON value.
	ReportKindOpaque ReportKind = "opaque"
)

// Report is the decoded body of a successful submission.
type Report struct {
	Kind       ReportKind      `json:"-"`
	Raw        json.RawMessage `json:"-"`
	Tokens     int             `json:"-"`
	Mode       string          `json:"-"`
	Response   json.RawMessage `json:"-"`
	OutputFile string          `json:"-"`
}

type processedPayload struct {
	Tokens     *int            `json:"tokens"`
	Mode       *string         `json:"mode"`
	Response   json.RawMessage `json:"response"`
	OutputFile string          `json:"output_file"`
}

// ParseReport decodes a response body into a Report.
// Any valid JSON value is accepted; the error is only for bodies that are not JSON at all.
func ParseReport(body []byte) (*Report, error) {
	var probe interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON in response body: %w", err)
	}

	raw := json.RawMessage(bytes.TrimSpace(body))
	report := &Report{Kind: ReportKindOpaque, Raw: raw}

	fields, ok := probe.(map[string]interface{})
	if !ok {
		return report, nil
	}
	if _, has := fields["response"]; !has {
		return report, nil
	}

	var payload processedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		// A response field is present but the neighbours have unexpected types.
		var loose struct {
			Response json.RawMessage `json:"response"`
		}
		if err := json.Unmarshal(body, &loose); err != nil {
			return report, nil
		}
		report.Kind = ReportKindResponseOnly
		report.Response = loose.Response
		return report, nil
	}

	report.Response = payload.Response
	report.OutputFile = payload.OutputFile
	if payload.Tokens != nil && payload.Mode != nil {
		report.Kind = ReportKindProcessed
		report.Tokens = *payload.Tokens
		report.Mode = *payload.Mode
	} else {
		report.Kind = ReportKindResponseOnly
	}
	return report, nil
}

// MarshalJSON writes the report exactly as it was received.
func (r *Report) MarshalJSON() ([]byte, error) {
	if r == nil || len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}

// IsBlank reports whether the body was a falsy JSON value (null, false, 0 or "").
// A blank report is stored but never displayed.
func (r *Report) IsBlank() bool {
	if r == nil {
		return true
	}
	switch string(r.Raw) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}

// DisplayText returns the text shown in the result panel.
// Strings render as-is and structured values as indented JSON.
func (r *Report) DisplayText() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case ReportKindProcessed, ReportKindResponseOnly:
		return renderJSONValue(r.Response)
	default:
		return renderJSONValue(r.Raw)
	}
}

func renderJSONValue(value json.RawMessage) string {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	var out bytes.Buffer
	if err := json.Indent(&out, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return out.String()
}
