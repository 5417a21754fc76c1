package main

import (
	"fmt"
	"io"

	"github.com/nmollerup/sensu-check-ssllabs/ssllabs"
)

// progressReporter prints a line whenever an endpoint's progress advances,
// and the cluster average after it.
type progressReporter struct {
	w       io.Writer
	seen    map[string]int
	average int
}

func newProgressReporter(w io.Writer) *progressReporter {
	return &progressReporter{w: w, seen: make(map[string]int)}
}

func (p *progressReporter) report(h *ssllabs.Host) {
	if h.Status == ssllabs.StatusDNS {
		fmt.Fprintf(p.w, "%s: %s\n", h.Host, h.StatusMessage)
		return
	}
	if len(h.Endpoints) == 0 {
		return
	}

	sum := 0
	for _, ep := range h.Endpoints {
		if ep.Progress > 0 {
			sum += ep.Progress
		}
		if ep.Progress <= 0 || ep.Progress == p.seen[ep.IPAddress] {
			continue
		}
		p.seen[ep.IPAddress] = ep.Progress
		name := ep.ServerName
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(p.w, "  %s (%s): %d%% %s\n", ep.IPAddress, name, ep.Progress, ep.StatusDetailsMessage)
	}

	if avg := sum / len(h.Endpoints); avg != p.average {
		p.average = avg
		fmt.Fprintf(p.w, "scanning: %d%%\n", avg)
	}
}
