// Package report emits per-stage timing as one JSON object per line,
// selected by a "<sink-type>|<optional-prefix>" spec.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Reporter writes timing lines to a sink. A nil Reporter is valid and
// discards all reports.
type Reporter struct {
	out    io.Writer
	prefix string
}

type entry struct {
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Metric string  `json:"metric"`
	Unit   string  `json:"unit"`
}

// Parse parses a "<sink-type>|<optional-prefix>" spec into a Reporter writing
// to stdout. An empty spec disables reporting and returns nil; only the
// "json" sink type is supported.
func Parse(spec string) (*Reporter, error) {
	if spec == "" {
		return nil, nil
	}

	parts := strings.SplitN(spec, "|", 2)
	if parts[0] != "json" {
		return nil, fmt.Errorf("unsupported report sink type %q: only json is supported", parts[0])
	}

	r := New(os.Stdout, "")
	if len(parts) == 2 {
		r.prefix = parts[1]
	}
	return r, nil
}

// New creates a Reporter writing to the given sink with an optional line prefix
func New(out io.Writer, prefix string) *Reporter {
	return &Reporter{out: out, prefix: prefix}
}

// Report writes one timing line for a stage. The value is the elapsed time in
// microseconds.
func (r *Reporter) Report(stage string, elapsed time.Duration, metric, unit string) {
	if r == nil {
		return
	}

	line, err := json.Marshal(entry{
		Type:   stage,
		Value:  float64(elapsed.Nanoseconds()) / 1e3,
		Metric: metric,
		Unit:   unit,
	})
	if err != nil {
		return
	}
	fmt.Fprintf(r.out, "%s%s\n", r.prefix, line)
}
