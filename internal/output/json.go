package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davetashner/launchdash/internal/chart"
	"github.com/davetashner/launchdash/internal/controller"
	"github.com/davetashner/launchdash/internal/selection"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope wraps both charts with the selection that produced them.
type JSONEnvelope struct {
	Selection   selection.State  `json:"selection"`
	Domain      selection.Domain `json:"domain"`
	Proportion  chart.Spec       `json:"proportion"`
	Correlation chart.Spec       `json:"correlation"`
	Metadata    JSONMetadata     `json:"metadata"`
}

// JSONMetadata identifies the snapshot the charts belong to.
type JSONMetadata struct {
	Revision    uint64 `json:"revision"`
	EventID     string `json:"event_id"`
	Event       string `json:"event"`
	GeneratedAt string `json:"generated_at"`
}

// JSONFormatter writes a snapshot as a JSON object with a metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces.
	Compact bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// NewJSONEnvelope builds the envelope for snap.
func NewJSONEnvelope(snap controller.Snapshot, now time.Time) JSONEnvelope {
	return JSONEnvelope{
		Selection:   snap.Selection,
		Domain:      snap.Domain,
		Proportion:  snap.Proportion,
		Correlation: snap.Correlation,
		Metadata: JSONMetadata{
			Revision:    snap.Revision,
			EventID:     snap.EventID,
			Event:       string(snap.Event),
			GeneratedAt: now.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}
}

// Format writes snap as a JSON document to w. Output is pretty-printed unless
// Compact is set or w is a pipe or regular file.
func (f *JSONFormatter) Format(snap controller.Snapshot, w io.Writer) error {
	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}
	envelope := NewJSONEnvelope(snap, now)

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(envelope)
	} else {
		data, err = json.MarshalIndent(envelope, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}
	return nil
}

// shouldCompact determines whether to use compact mode.
// If Compact is explicitly set, use that value.
// Otherwise, auto-detect: pretty-print for TTYs, compact for pipes.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}

	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false // default to pretty on error
		}
		if fi.Mode()&os.ModeCharDevice != 0 {
			return false // TTY -> pretty
		}
		return true // pipe/file -> compact
	}

	// For non-file writers (e.g., bytes.Buffer in tests), default to pretty.
	return false
}
