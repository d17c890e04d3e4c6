package daftar

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/otabekj/dukon/internal/encoding"
	"github.com/otabekj/dukon/internal/ledger"
)

// Column headers accepted in a debt-book export. Both the Uzbek headers the
// shop's old spreadsheets use and plain English ones match.
var (
	nameCols    = []string{"name", "ism", "mijoz"}
	phoneCols   = []string{"phone", "telefon"}
	addressCols = []string{"address", "manzil"}
	debtCols    = []string{"initial_debt", "qarz", "boshlang'ich qarz"}
)

// Parser reads a debt-book CSV and produces client create params. It finds
// the header row by landmark matching, so leading title rows are skipped,
// and accepts either semicolon or comma separated files.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.ClientParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		clients, found, err := parseWith(data, comma)
		if err != nil {
			return nil, err
		}

		if found {
			return clients, nil
		}
	}

	return nil, fmt.Errorf("no header row found: expected a column named one of %s", strings.Join(nameCols, ", "))
}

// colIndex maps lowercased header names to their position in the row.
type colIndex map[string]int

func parseWith(data []byte, comma rune) ([]ledger.ClientParams, bool, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("read csv: %w", err)
	}

	headerIdx, cols := findHeader(rows)
	if cols == nil {
		return nil, false, nil
	}

	clients, err := parseRows(cols, rows[headerIdx+1:], headerIdx+1)
	if err != nil {
		return nil, false, err
	}

	return clients, true, nil
}

// findHeader scans for the first row carrying a recognizable name column.
func findHeader(rows [][]string) (int, colIndex) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if _, ok := lookup(cols, nameCols); ok {
			return rowIdx, cols
		}
	}

	return 0, nil
}

func lookup(cols colIndex, names []string) (int, bool) {
	for _, name := range names {
		if idx, ok := cols[name]; ok {
			return idx, true
		}
	}

	return -1, false
}

func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]ledger.ClientParams, error) {
	nameIdx, _ := lookup(cols, nameCols)
	phoneIdx, _ := lookup(cols, phoneCols)
	addressIdx, _ := lookup(cols, addressCols)
	debtIdx, hasDebt := lookup(cols, debtCols)

	var clients []ledger.ClientParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		name := cellValue(row, nameIdx)
		if name == "" {
			// Blank or footer row.
			continue
		}

		params := ledger.ClientParams{
			Name:    name,
			Phone:   cellValue(row, phoneIdx),
			Address: cellValue(row, addressIdx),
		}

		if hasDebt {
			if s := cellValue(row, debtIdx); s != "" {
				debt, err := parseDebt(s)
				if err != nil {
					return nil, fmt.Errorf("row %d: bad initial debt %q", rowNum, s)
				}

				params.InitialDebt = debt
			}
		}

		clients = append(clients, params)
	}

	return clients, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// parseDebt accepts "1 250 000", "1250000.50" and "1250000,50".
func parseDebt(s string) (float64, error) {
	clean := strings.ReplaceAll(s, " ", "")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return strconv.ParseFloat(clean, 64)
}
