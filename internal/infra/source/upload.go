package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
)

const utf8BOM = "\ufeff"

// Parse reads an uploaded dataset. The format follows the file extension:
// .xlsx is read with excelize (first sheet), .tsv is tab separated, anything
// else is treated as CSV.
func Parse(name string, r io.Reader) (*feedback.Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return parseXLSX(name, r)
	case ".tsv":
		return parseDelimited(name, r, '\t')
	default:
		return parseDelimited(name, r, ',')
	}
}

func parseDelimited(name string, r io.Reader, comma rune) (*feedback.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, inputErr(name, feedback.ErrEmptyDataset, "")
		}
		return nil, readErr(name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readErr(name, err)
		}
		rows = append(rows, rec)
	}
	return newTable(name, header, rows), nil
}

func parseXLSX(name string, r io.Reader) (*feedback.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readErr(name, err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, inputErr(name, feedback.ErrUnreadable, err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, inputErr(name, feedback.ErrEmptyDataset, "no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, inputErr(name, feedback.ErrUnreadable, err.Error())
	}
	if len(all) == 0 {
		return nil, inputErr(name, feedback.ErrEmptyDataset, "")
	}
	return newTable(name, all[0], all[1:]), nil
}

// newTable pads ragged rows and makes header names unique ("a", "a.1", ...).
func newTable(name string, header []string, rows [][]string) *feedback.Table {
	cols := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n+1)
		} else {
			seen[h] = 0
		}
		cols[i] = h
	}
	width := len(cols)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i := len(cols); i < width; i++ {
		cols = append(cols, "Unnamed: "+strconv.Itoa(i))
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	if rows == nil {
		rows = [][]string{}
	}
	return &feedback.Table{Name: filepath.Base(name), Columns: cols, Rows: rows}
}

func inputErr(name string, err error, detail string) error {
	return &feedback.InputError{Op: "read " + filepath.Base(name), Err: err, Detail: detail}
}

// readErr keeps transport failures distinct from malformed content.
func readErr(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return inputErr(name, feedback.ErrUnreadable, pe.Error())
	}
	return fmt.Errorf("read %s: %w", filepath.Base(name), err)
}
