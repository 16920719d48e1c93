// Package report renders build-model snapshots and query answers for
// humans (text), programs (json) and round-tripping into other HCL tooling
// (hcl).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vk/kmpgraph/internal/buildmodel"
)

// Format selects an output representation.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatHCL}
}

// ParseFormat validates a format name.
func ParseFormat(raw string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == raw {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or hcl)", raw)
}

// WriteSnapshot renders snap in the given format.
func WriteSnapshot(w io.Writer, format Format, snap buildmodel.Snapshot) error {
	switch format {
	case FormatText:
		return writeSnapshotText(w, snap)
	case FormatJSON:
		return writeJSON(w, snap)
	case FormatHCL:
		return writeSnapshotHCL(w, snap)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// QueryResult is one answered query.
type QueryResult struct {
	Kind  string   `json:"kind"`
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// WriteQuery renders a query answer: one item per line as text, an object
// as json. HCL output is not offered for single queries.
func WriteQuery(w io.Writer, format Format, result QueryResult) error {
	switch format {
	case FormatText:
		for _, item := range result.Items {
			if _, err := fmt.Fprintln(w, item); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return writeJSON(w, result)
	default:
		return fmt.Errorf("output format %q is not supported for queries", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSnapshotText(w io.Writer, snap buildmodel.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE SET\tDEPENDS ON\tCLOSURE\tDEPENDENTS\tCOMPILATIONS")
	for _, s := range snap.SourceSets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.Name, list(s.DependsOn), list(s.DependsOnClosure), list(s.ReverseDependsOnClosure), list(s.Compilations))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "COMPILATION\tSOURCE SETS")
	for _, c := range snap.Compilations {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID(), list(c.SourceSets))
	}
	return tw.Flush()
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
