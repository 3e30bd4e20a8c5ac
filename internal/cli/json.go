// Package cli implements the command-line interface.
package cli

import (
	"encoding/json"
	"io"
)

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count     int   `json:"count,omitempty"`
	ElapsedMs int64 `json:"elapsed_ms,omitempty"`
}

// outputJSON writes the response as indented JSON.
func outputJSON(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess writes a successful JSON response.
func outputSuccess(w io.Writer, data interface{}, meta *Meta) {
	outputJSON(w, Response{
		OK:   true,
		Data: data,
		Meta: meta,
	})
}

// outputSuccessWithWarnings writes a successful JSON response with warnings.
func outputSuccessWithWarnings(w io.Writer, data interface{}, warnings []Warning, meta *Meta) {
	outputJSON(w, Response{
		OK:       true,
		Data:     data,
		Warnings: warnings,
		Meta:     meta,
	})
}

// outputError writes an error JSON response.
func outputError(w io.Writer, code, message string, details interface{}, suggestion string) {
	outputJSON(w, Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    message,
			Details:    details,
			Suggestion: suggestion,
		},
	})
}
