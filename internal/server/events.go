package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/davetashner/launchdash/internal/controller"
)

// handleEvents streams snapshots as server-sent events: the current one on
// connect, then one per revision. A client that falls behind skips to the
// newest snapshot.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	updates := make(chan controller.Snapshot, 1)
	cancel := s.ctrl.Subscribe(func(snap controller.Snapshot) {
		// Listeners run one at a time, so after the drain there is room.
		select {
		case updates <- snap:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- snap
		}
	})
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, rc, s.ctrl.Snapshot()); err != nil {
		s.logger.Debug("event stream closed", "error", err)
		return
	}
	s.metrics.streams.Inc()
	defer s.metrics.streams.Dec()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			if err := writeEvent(w, rc, snap); err != nil {
				s.logger.Debug("event stream closed", "error", err)
				return
			}
		}
	}
}

func writeEvent(w io.Writer, rc *http.ResponseController, snap controller.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: snapshot\nid: %d\ndata: %s\n\n", snap.Revision, data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	if err := rc.Flush(); err != nil {
		return fmt.Errorf("flush event: %w", err)
	}
	return nil
}
