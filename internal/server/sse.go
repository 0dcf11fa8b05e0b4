package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/skill-gap-advisor/internal/advisor"
)

// Event names written to an analysis stream
const (
	EventStep     = "step"
	EventResult   = "result"
	EventError    = "error"
	EventComplete = "complete"
)

// SSEWriter writes Server-Sent Events for one streamed analysis
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one event. Events carry increasing ids starting at 1.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteStep forwards an advisor progress event
func (s *SSEWriter) WriteStep(event advisor.ProgressEvent) error {
	return s.WriteEvent(EventStep, event)
}

// WriteError sends an error event with the status the error would get as a plain response
func (s *SSEWriter) WriteError(err error) {
	s.WriteEvent(EventError, map[string]any{ //nolint:errcheck
		"error":  err.Error(),
		"status": HTTPStatus(err),
	})
}

// WriteComplete sends the final event of a successful stream
func (s *SSEWriter) WriteComplete(analysisID string) {
	s.WriteEvent(EventComplete, map[string]string{ //nolint:errcheck
		"analysis_id": analysisID,
		"status":      "completed",
	})
}
