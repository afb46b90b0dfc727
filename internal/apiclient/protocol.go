package apiclient

import (
	"encoding/json"
	"fmt"
)

// HTTP API Reference
//
// Every endpoint answers with the same envelope. The client only reads.
//
//   Method  Path                   data
//   ──────  ─────────────────────  ──────────────────────────────────────────────
//   GET     /current               {location: [[draw, number], ...] | "message"}
//   GET     /analytics/monthly     {total_draws, statistics{...}, most_frequent[...]}
//   GET     /recommendations       {recommendations[...], disclaimer?}
//
// Envelope: {"success": bool, "data": ..., "error": "..."}
//
// Failure classes:
//   TransportError    network failure, non-2xx status or undecodable body
//   ApplicationError  success == false; carries the server's error text
//   DataShapeError    data does not match the region's shape

// Envelope is the common response wrapper of the backend API.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// TransportError reports a request that never produced a usable envelope.
type TransportError struct {
	Endpoint   string
	StatusCode int // 0 when the request failed before a response
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP error status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is an envelope with success == false.
type ApplicationError struct {
	Endpoint string
	Message  string
}

func (e *ApplicationError) Error() string { return e.Message }

// DataShapeError reports a payload whose data field has an unexpected shape.
type DataShapeError struct {
	Endpoint string
	Err      error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("%s: unexpected data shape: %v", e.Endpoint, e.Err)
}

func (e *DataShapeError) Unwrap() error { return e.Err }
