package httpcache

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Record is a cached response: status, headers, and body captured from
// one execution of the inner handler.
type Record struct {
	Status int         `json:"status"`
	Header http.Header `json:"header,omitempty"`
	Body   []byte      `json:"body,omitempty"`
}

// Encode serializes the record. The in-process store holds records
// directly; Encode exists for callers layering their own persistence.
func (rec *Record) Encode() ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("httpcache: failed to encode record: %w", err)
	}
	return data, nil
}

// DecodeRecord deserializes a record produced by Encode.
func DecodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("httpcache: failed to decode record: %w", err)
	}
	return &rec, nil
}

// serve replays the record onto a live response writer.
func (rec *Record) serve(w http.ResponseWriter) {
	for k, vs := range rec.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(rec.Status)
	_, _ = w.Write(rec.Body)
}
