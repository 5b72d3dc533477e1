package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/florzoye/shop/internal/domain/catalog"
)

var ErrEmptyWorkbook = errors.New("workbook has no rows")

// ReadWorkbook turns the active sheet into batch text, one row per line with
// cells joined by " | ". The first row is dropped only when it is a header:
// no category label in front and no numeric cell. Any other first row is
// parsed, so a misspelled category still gets its line error.
func ReadWorkbook(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		blank := true
		for i, c := range row {
			cells[i] = strings.TrimSpace(c)
			if cells[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	if len(lines) == 0 {
		return "", ErrEmptyWorkbook
	}
	return strings.Join(lines, "\n"), nil
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	if _, ok := catalog.ParseLabel(strings.TrimSpace(row[0])); ok {
		return false
	}
	for _, c := range row {
		c = strings.ReplaceAll(strings.TrimSpace(c), ",", ".")
		if _, err := strconv.ParseFloat(c, 64); err == nil {
			return false
		}
	}
	return true
}

// ParseWorkbook reads the workbook and parses its rows like a text batch.
func (p Parser) ParseWorkbook(r io.Reader) ([]Item, []string, error) {
	text, err := ReadWorkbook(r)
	if err != nil {
		return nil, nil, err
	}
	items, errs := p.Parse(text)
	return items, errs, nil
}
