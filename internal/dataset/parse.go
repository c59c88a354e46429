package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// nullTokens are the cell values read as missing.
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
	"-nan": true,
	"-NaN": true,
	"NULL": true,
	"null": true,
	"None": true,
	"#N/A": true,
	"<NA>": true,
	"#NA":  true,
}

// isNull reports whether a raw cell is a missing value.
func isNull(s string) bool {
	return nullTokens[strings.TrimSpace(s)]
}

// parseFloat parses a numeric cell. ok is false for a missing cell.
func parseFloat(s string) (v float64, ok bool, err error) {
	if isNull(s) {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false, eris.Wrapf(err, "parse number %q", s)
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	return v, true, nil
}

// parseYear parses an integer-like year cell ("2020" or "2020.0").
func parseYear(s string) (year int, ok bool, err error) {
	if isNull(s) {
		return 0, false, nil
	}
	s = strings.TrimSpace(s)
	if v, aErr := strconv.Atoi(s); aErr == nil {
		return v, true, nil
	}
	f, fErr := strconv.ParseFloat(s, 64)
	if fErr != nil || math.IsInf(f, 0) {
		return 0, false, eris.Errorf("parse year %q: not an integer", s)
	}
	if math.IsNaN(f) {
		return 0, false, nil
	}
	if f != math.Trunc(f) {
		return 0, false, eris.Errorf("parse year %q: not an integer", s)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false, eris.Errorf("parse year %q: out of range", s)
	}
	return int(f), true, nil
}

// normalizeCol trims whitespace and a UTF-8 byte order mark from a header cell.
func normalizeCol(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}

// mapColumns builds a column name → index map. The first occurrence of a name wins.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		name := normalizeCol(col)
		if _, dup := m[name]; dup {
			continue
		}
		m[name] = i
	}
	return m
}

// getCol gets a column value by name, returning "" for absent columns or short rows.
func getCol(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// formatFloat renders a value the shortest way that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
