package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Log writes the table to w in this format.
func (f Format) Log(w io.Writer, t *Table) error {
	if t == nil {
		return nil
	}

	switch f.Kind {
	case Silent:
		return nil
	case Human:
		return f.logHuman(w, t)
	case Simple:
		for _, row := range t.Rows {
			if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
				return err
			}
		}
		return nil
	case JSON, JSONCompact:
		encoder := json.NewEncoder(w)
		if f.Kind == JSON {
			encoder.SetIndent("", "  ")
		}
		return encoder.Encode(t.Records())
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(t.Records()); err != nil {
			return err
		}
		return encoder.Close()
	case CSV, TSV:
		cw := csv.NewWriter(w)
		if f.Kind == TSV {
			cw.Comma = '\t'
		}
		if err := cw.Write(t.Columns); err != nil {
			return err
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			return err
		}
		return cw.Error()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f.Kind)
	}
}

// logHuman prints one line per row. Single-column tables print the bare
// value; wider tables print "label: value", and verbose output appends the
// remaining columns.
func (f Format) logHuman(w io.Writer, t *Table) error {
	r := lipgloss.NewRenderer(w)
	label := r.NewStyle().Bold(true)
	extra := r.NewStyle().Faint(true)

	for _, row := range t.Rows {
		var line string
		switch {
		case len(row) == 0:
			continue
		case len(row) == 1:
			line = row[0]
		case f.Noise == Quiet:
			line = row[1]
		default:
			line = label.Render(row[0]+":") + " " + row[1]
			if f.Noise == Verbose {
				for i := 2; i < len(row) && i < len(t.Columns); i++ {
					line += "  " + extra.Render("("+t.Columns[i]+" "+row[i]+")")
				}
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
