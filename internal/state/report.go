package state

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

// WriteRunSummary writes per-galaxy intercept counts for a simulation run,
// busiest galaxy first.
func WriteRunSummary(w io.Writer, r RunResult) {
	fmt.Fprintf(w, "GRB Simulation @ %s\n", r.FinishedAt.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 50))
	fmt.Fprintf(w, "Bursts: %d  Intercepted: %d (%.4f%%)  Took: %s\n",
		r.Trials, r.Hits, r.HitFraction()*100, r.Duration.Round(time.Millisecond))

	if r.Hits == 0 {
		fmt.Fprintln(w, "No intercepts")
		return
	}

	names := make([]string, 0, len(r.GalaxyHits))
	for name := range r.GalaxyHits {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := r.GalaxyHits[b] - r.GalaxyHits[a]; d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})

	fmt.Fprintln(w, strings.Repeat("─", 50))
	fmt.Fprintf(w, "%-12s %8s %8s\n", "Galaxy", "Hits", "Share")
	for _, name := range names {
		n := r.GalaxyHits[name]
		fmt.Fprintf(w, "%-12s %8d %7.2f%%\n", name, n, float64(n)/float64(r.Hits)*100)
	}
}

// WriteEvents writes the last n events, oldest first.
func WriteEvents(w io.Writer, events []Event, n int) {
	fmt.Fprintln(w, "Event Log")
	fmt.Fprintln(w, strings.Repeat("─", 50))

	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}

	if len(events) > n {
		events = events[len(events)-n:]
	}

	for _, e := range events {
		ts := e.Timestamp.Format("15:04:05")
		switch e.Type {
		case EventIntercept:
			fmt.Fprintf(w, "%s %s #%-7d %-12s RA %7.3f° Dec %+7.3f°\n",
				ts, formatEventType(e.Type), e.Trial, e.Galaxy, e.RAdeg, e.DecDeg)
		default:
			fmt.Fprintf(w, "%s %s\n", ts, formatEventType(e.Type))
		}
	}
}

func formatEventType(t EventType) string {
	switch t {
	case EventIntercept:
		return "✦HIT "
	case EventResample:
		return "↻ROT "
	default:
		return string(t)
	}
}
