package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dock-allocation-service/internal/domain"

	"gopkg.in/yaml.v3"
)

type renderFunc func(w io.Writer, r *domain.Report) error

func renderer(format string) (renderFunc, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return renderText, nil
	case "json":
		return renderJSON, nil
	case "yaml", "yml":
		return renderYAML, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func renderJSON(w io.Writer, r *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func renderYAML(w io.Writer, r *domain.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func renderText(w io.Writer, r *domain.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (dock hours %s, buffer %d)\n",
		r.RunID, r.Bounds.Hours(), r.Bounds.UnloadBuffer)

	for _, a := range r.Allocations {
		fmt.Fprintf(&b, "\n%s (depot %d): %s", a.Company.ID, a.Company.Depot, a.Outcome)
		if a.Window != nil {
			fmt.Fprintf(&b, " window %s", a.Window)
		}
		if a.Plan != nil {
			fmt.Fprintf(&b, " vehicles %d total time %d", a.Plan.Vehicles, a.Plan.TotalTime)
			if t, ok := a.DockArrival(); ok {
				fmt.Fprintf(&b, " dock arrival %d", t)
			}
			b.WriteString("\n")
			b.WriteString(a.Plan.Trace)
		} else {
			b.WriteString("\n")
		}
	}

	remaining := make([]string, 0, len(r.Remaining))
	for _, rw := range r.Remaining {
		remaining = append(remaining, rw.String())
	}
	s := r.Summary
	fmt.Fprintf(&b, "\nserved %d, infeasible %d, unserved %d, vehicles %d, mean total time %.2f\n",
		s.Served, s.Infeasible, s.Unserved, s.Vehicles, s.MeanTotalTime)
	fmt.Fprintf(&b, "remaining windows: [%s]\n", strings.Join(remaining, " "))

	_, err := io.WriteString(w, b.String())
	return err
}
