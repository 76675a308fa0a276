package httpcache

import (
	"bytes"
	"net/http"
)

// recorder is the ResponseWriter handed to the inner handler so its
// output can be captured before anything reaches the client.
type recorder struct {
	header      http.Header
	status      int
	body        bytes.Buffer
	wroteHeader bool
}

func newRecorder() *recorder {
	return &recorder{
		header: make(http.Header),
		status: http.StatusOK,
	}
}

func (rw *recorder) Header() http.Header {
	return rw.header
}

func (rw *recorder) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	rw.status = code
}

func (rw *recorder) Write(p []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.body.Write(p)
}

// record snapshots the captured response. Headers and body are copied
// so the record is immune to later handler mutations.
func (rw *recorder) record() *Record {
	return &Record{
		Status: rw.status,
		Header: rw.header.Clone(),
		Body:   bytes.Clone(rw.body.Bytes()),
	}
}

// Ensure recorder implements http.ResponseWriter
var _ http.ResponseWriter = (*recorder)(nil)
