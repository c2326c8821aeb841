// Package listing formats the designs a run resolves to for the terminal.
package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bfasst/bfasst/internal/flow"
)

// Entry is one design of a run as the list command reports it.
type Entry struct {
	Name          string `json:"name"`
	Top           string `json:"top"`
	Flow          string `json:"flow"`
	Verilog       int    `json:"verilog"`
	SystemVerilog int    `json:"system_verilog"`
	Synth         string `json:"synth_dir"`
	Impl          string `json:"impl_dir"`
}

// Entries describes each flow, in flow order.
func Entries(flows []flow.Flow) []Entry {
	entries := make([]Entry, 0, len(flows))
	for _, f := range flows {
		d := f.Design()
		entries = append(entries, Entry{
			Name:          d.Name,
			Top:           d.Top(),
			Flow:          f.Kind(),
			Verilog:       len(d.Sources.Verilog),
			SystemVerilog: len(d.Sources.SystemVerilog),
			Synth:         f.Layout().Synth,
			Impl:          f.Layout().Impl,
		})
	}
	return entries
}

// FormatTable writes entries as a formatted table to the provided writer.
// Output directories are shown relative to root.
// Returns the number of entries formatted.
func FormatTable(w io.Writer, entries []Entry, root string) int {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No designs found\n")
		return 0
	}

	// Print header row
	fmt.Fprintf(w, "%-24s %-16s %-10s %-7s %s\n",
		"DESIGN", "TOP", "FLOW", "SOURCES", "OUTPUT")
	fmt.Fprintf(w, "%-24s %-16s %-10s %-7s %s\n",
		"------------------------", "----------------", "----------", "-------", "----------------------------------------")

	// Print data rows
	for _, e := range entries {
		fmt.Fprintf(w, "%-24s %-16s %-10s %-7s %s\n",
			truncate(e.Name, 24),
			truncate(e.Top, 16),
			e.Flow,
			formatSources(e.Verilog, e.SystemVerilog),
			relative(root, filepath.Dir(e.Synth)),
		)
	}

	// Print count
	countMsg := "design"
	if len(entries) != 1 {
		countMsg = "designs"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(entries), countMsg)

	return len(entries)
}

// FormatJSONL writes entries as line-delimited JSON (JSONL) to the provided writer.
// Each entry is written as a single JSON object on its own line.
func FormatJSONL(w io.Writer, entries []Entry) error {
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal design to JSON: %w", err)
		}

		_, err = fmt.Fprintf(w, "%s\n", string(data))
		if err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// formatSources shows the Verilog and SystemVerilog counts as "v+sv".
func formatSources(verilog, systemVerilog int) string {
	return fmt.Sprintf("%d+%d", verilog, systemVerilog)
}

// truncate shortens s to width characters, marking the cut with "...".
func truncate(s string, width int) string {
	if len(s) > width {
		return s[:width-3] + "..."
	}
	return s
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
