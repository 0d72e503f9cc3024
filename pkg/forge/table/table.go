// Package table renders validated rules as fixed-width decision-table
// grids for terminals and logs. Rendering refuses invalid documents
// rather than drawing a misleading table.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/schema"
	"rulesmith-hq/forge/pkg/forge/validator"
)

const defaultMaxColWidth = 40

// Renderer draws rules as grids. One column per request field, then one
// per response field; one row per condition. Cells a condition does not
// constrain or set show a placeholder.
type Renderer struct {
	MaxColWidth int // Cell content width cap; longer lines wrap
}

// NewRenderer creates a renderer with the default column width cap.
func NewRenderer() *Renderer {
	return &Renderer{MaxColWidth: defaultMaxColWidth}
}

// Render draws the whole rule. Invalid documents return the validation
// report instead of a table.
func (rd *Renderer) Render(r *rule.Rule) (string, error) {
	if err := validator.Validate(r); err != nil {
		return "", err
	}
	return rd.grid(r, r.Conditions()), nil
}

// RenderCondition draws a single condition row by zero-based index.
func (rd *Renderer) RenderCondition(r *rule.Rule, idx int) (string, error) {
	if err := validator.Validate(r); err != nil {
		return "", err
	}
	conds := r.Conditions()
	if idx < 0 || idx >= len(conds) {
		return "", fmt.Errorf("condition index %d out of range (rule has %d)", idx, len(conds))
	}
	return rd.grid(r, conds[idx:idx+1]), nil
}

func (rd *Renderer) grid(r *rule.Rule, conds []*rule.Condition) string {
	width := rd.MaxColWidth
	if width <= 0 {
		width = defaultMaxColWidth
	}

	var headers []string
	for _, f := range r.RequestSchema() {
		headers = append(headers, f.Key)
	}
	for _, f := range r.ResponseSchema() {
		headers = append(headers, f.Key)
	}

	rows := make([][]string, 0, len(conds))
	for _, c := range conds {
		var row []string
		for _, f := range r.RequestSchema() {
			if cl, ok := c.Clause(f.Key); ok {
				row = append(row, clauseCell(cl))
			} else {
				row = append(row, "-")
			}
		}
		for _, f := range r.ResponseSchema() {
			if v, ok := c.Response(f.Key); ok {
				row = append(row, formatValue(v))
			} else {
				row = append(row, "-")
			}
		}
		rows = append(rows, row)
	}

	return drawGrid(headers, rows, width)
}

// clauseCell formats a clause as its operator tag, with operands on a
// second line when the operator takes any.
func clauseCell(cl *rule.Clause) string {
	if len(cl.Args) == 0 {
		return string(cl.Op)
	}
	parts := make([]string, len(cl.Args))
	for i, a := range cl.Args {
		parts[i] = formatValue(a)
	}
	return fmt.Sprintf("%s\n(%s)", cl.Op, strings.Join(parts, ", "))
}

// formatValue renders an operand or response value compactly. Numbers
// drop trailing zeros so 10 reads as "10", not "10.000000".
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case schema.Operator:
		return string(x)
	}
	return fmt.Sprintf("%v", v)
}

// drawGrid lays out a bordered grid: +---+ rules between rows, with a
// double rule under the header.
func drawGrid(headers []string, rows [][]string, maxWidth int) string {
	cols := len(headers)
	if cols == 0 {
		return ""
	}

	// Wrap every cell and compute column widths in runes, so non-ASCII
	// keys and operands keep the borders aligned.
	headerLines := make([][]string, cols)
	widths := make([]int, cols)
	for i, h := range headers {
		headerLines[i] = wrapCell(h, maxWidth)
		for _, line := range headerLines[i] {
			if n := utf8.RuneCountInString(line); n > widths[i] {
				widths[i] = n
			}
		}
	}
	rowLines := make([][][]string, len(rows))
	for ri, row := range rows {
		rowLines[ri] = make([][]string, cols)
		for i := 0; i < cols; i++ {
			cell := "-"
			if i < len(row) {
				cell = row[i]
			}
			rowLines[ri][i] = wrapCell(cell, maxWidth)
			for _, line := range rowLines[ri][i] {
				if n := utf8.RuneCountInString(line); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	var sb strings.Builder
	writeRule(&sb, widths, '-')
	writeRow(&sb, headerLines, widths)
	writeRule(&sb, widths, '=')
	for _, lines := range rowLines {
		writeRow(&sb, lines, widths)
		writeRule(&sb, widths, '-')
	}
	return sb.String()
}

func writeRule(sb *strings.Builder, widths []int, fill byte) {
	sb.WriteByte('+')
	for _, w := range widths {
		sb.WriteString(strings.Repeat(string(fill), w+2))
		sb.WriteByte('+')
	}
	sb.WriteByte('\n')
}

func writeRow(sb *strings.Builder, cells [][]string, widths []int) {
	height := 0
	for _, lines := range cells {
		if len(lines) > height {
			height = len(lines)
		}
	}
	for li := 0; li < height; li++ {
		sb.WriteByte('|')
		for ci, lines := range cells {
			line := ""
			if li < len(lines) {
				line = lines[li]
			}
			pad := widths[ci] - utf8.RuneCountInString(line)
			sb.WriteString(" " + line + strings.Repeat(" ", pad) + " |")
		}
		sb.WriteByte('\n')
	}
}

// wrapCell splits a cell into lines no longer than maxWidth runes,
// breaking on spaces where possible. Cuts fall on rune boundaries.
func wrapCell(s string, maxWidth int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		runes := []rune(line)
		for len(runes) > maxWidth {
			cut := lastSpace(runes[:maxWidth])
			if cut <= 0 {
				cut = maxWidth
			}
			out = append(out, strings.TrimRight(string(runes[:cut]), " "))
			runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
		}
		out = append(out, string(runes))
	}
	return out
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
