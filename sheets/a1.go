// ABOUTME: A1 notation range parsing
// ABOUTME: Splits "Tab!A2:F500" into a tab name and a row/column window
package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var cellRef = regexp.MustCompile(`^([A-Za-z]*)([0-9]*)$`)

// A1Range is a parsed range. Columns and rows are 1-based; 0 means unbounded.
type A1Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseA1 parses ranges such as "Orders!A2:F500", "'Final List'!A:G" or "Notes".
func ParseA1(spec string) (A1Range, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return A1Range{}, fmt.Errorf("empty range")
	}

	var r A1Range
	cells := ""
	if i := strings.LastIndex(spec, "!"); i >= 0 {
		r.Sheet = spec[:i]
		cells = spec[i+1:]
	} else {
		r.Sheet = spec
	}
	r.Sheet = strings.Trim(r.Sheet, "'")
	if r.Sheet == "" {
		return A1Range{}, fmt.Errorf("range %q has no sheet name", spec)
	}
	if cells == "" {
		return r, nil
	}

	start, end, hasEnd := strings.Cut(cells, ":")
	var err error
	if r.StartCol, r.StartRow, err = parseCell(start); err != nil {
		return A1Range{}, fmt.Errorf("range %q: %w", spec, err)
	}
	if hasEnd {
		if r.EndCol, r.EndRow, err = parseCell(end); err != nil {
			return A1Range{}, fmt.Errorf("range %q: %w", spec, err)
		}
	} else {
		r.EndCol, r.EndRow = r.StartCol, r.StartRow
	}
	return r, nil
}

func parseCell(ref string) (col, row int, err error) {
	m := cellRef.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	for _, ch := range strings.ToUpper(m[1]) {
		col = col*26 + int(ch-'A'+1)
	}
	if m[2] != "" {
		if row, err = strconv.Atoi(m[2]); err != nil {
			return 0, 0, fmt.Errorf("invalid row in %q: %w", ref, err)
		}
	}
	return col, row, nil
}

// Window cuts the range's rows and columns out of a full sheet, then trims
// trailing empty cells and rows the way the Sheets API does.
func (r A1Range) Window(sheet [][]string) [][]any {
	rows := make([][]any, 0)
	for i, line := range sheet {
		rowNum := i + 1
		if r.StartRow > 0 && rowNum < r.StartRow {
			continue
		}
		if r.EndRow > 0 && rowNum > r.EndRow {
			break
		}

		var row []any
		for j, cell := range line {
			colNum := j + 1
			if r.StartCol > 0 && colNum < r.StartCol {
				continue
			}
			if r.EndCol > 0 && colNum > r.EndCol {
				break
			}
			row = append(row, cell)
		}
		rows = append(rows, trimRow(row))
	}

	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func trimRow(row []any) []any {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	if end == 0 {
		return []any{}
	}
	return row[:end]
}
