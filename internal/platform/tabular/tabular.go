// Package tabular renderiza resultados de queries como tabla de texto, CSV, JSON o YAML.
package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat acepta "" como table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table", "text":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (table|csv|json|yaml)", s)
	}
}

// ContentType para respuestas HTTP.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Table es el resultado ya materializado: columnas en orden + filas.
type Table struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatTable:
		return writeText(w, t)
	case FormatCSV:
		return writeCSV(w, t)
	case FormatJSON:
		return writeJSON(w, t)
	case FormatYAML:
		return writeYAML(w, t)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func writeText(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(t.Columns) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))

		seps := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			seps[i] = strings.Repeat("-", max(len(c), 3))
		}
		fmt.Fprintln(tw, strings.Join(seps, "\t"))
	}

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = Cell(v, "NULL")
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d %s returned.\n", len(t.Rows), plural(len(t.Rows)))
	return err
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = Cell(v, "")
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, t Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(normalized(t))
}

// writeYAML emite una lista de registros respetando el orden de columnas.
func writeYAML(w io.Writer, t Table) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}

	for _, row := range t.Rows {
		rec := &yaml.Node{Kind: yaml.MappingNode}
		for i, col := range t.Columns {
			var v any
			if i < len(row) {
				v = Value(row[i])
			}

			val := &yaml.Node{}
			if err := val.Encode(v); err != nil {
				return fmt.Errorf("encode %s: %w", col, err)
			}
			rec.Content = append(rec.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				val,
			)
		}
		doc.Content = append(doc.Content, rec)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Cell convierte un valor escaneado del driver a texto.
func Cell(v any, null string) string {
	switch x := Value(v).(type) {
	case nil:
		return null
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func normalized(t Table) Table {
	out := Table{Columns: t.Columns, Rows: make([][]any, len(t.Rows))}
	if out.Columns == nil {
		out.Columns = []string{}
	}
	for i, row := range t.Rows {
		r := make([]any, len(row))
		for j, v := range row {
			r[j] = Value(v)
		}
		out.Rows[i] = r
	}
	return out
}

// Value lleva una celda a su forma de salida: []byte como texto, time.Time en RFC3339.
func Value(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return v
	}
}

func plural(n int) string {
	if n == 1 {
		return "row"
	}
	return "rows"
}
