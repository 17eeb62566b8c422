package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoHeader is returned when the input has no header record to derive
// column names from.
var ErrNoHeader = errors.New("csv input has no header record")

// ParseCSV reads an entire CSV document into a Dataset. The first record is
// the header and fixes the column list; cells are coerced to the most
// specific scalar kind (bool, number, datetime) with plain strings as the
// fallback. Ragged records are allowed: short records leave trailing columns
// null, extra cells are dropped.
func ParseCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	dataset := &Dataset{Columns: columns}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			if i >= len(record) {
				row[column] = Null()
				continue
			}
			row[column] = CoerceCell(record[i])
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	return dataset, nil
}

// decimalNumber gates numeric coercion to plain decimal notation.
// strconv.ParseFloat alone is too permissive: it also accepts NaN, Inf,
// hex floats and underscore separators, none of which are valid as bare
// SQL numeric literals.
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// CoerceCell converts one raw CSV cell into a tagged Value. Empty cells
// become Null; "true"/"false" become booleans; decimal numeric text becomes
// a number; recognized datetime layouts become timestamps. Anything else
// stays a string, untrimmed.
func CoerceCell(cell string) Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return Null()
	}

	switch strings.ToLower(trimmed) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	if decimalNumber.MatchString(trimmed) {
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Number(n)
		}
	}

	if t, ok := ParseDatetime(trimmed); ok {
		return Time(t)
	}

	return String(cell)
}
