package tabular

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"telcochurn/internal/errors"
)

// Writer persists tables as CSV files, creating parent directories as needed.
type Writer struct{}

// NewWriter creates a CSV writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteTable writes a DataFrame with a header row and no index column.
func (w *Writer) WriteTable(path string, df dataframe.DataFrame) error {
	return w.WriteRecords(path, TableRecords(df))
}

// WriteRecords writes raw records to path.
func (w *Writer) WriteRecords(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.OutputWriteFailed(path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.OutputWriteFailed(path, err)
	}

	cw := csv.NewWriter(file)
	if err := cw.WriteAll(records); err != nil {
		file.Close()
		return errors.OutputWriteFailed(path, err)
	}
	if err := file.Close(); err != nil {
		return errors.OutputWriteFailed(path, err)
	}
	return nil
}

// TableRecords renders a DataFrame as CSV records. Missing cells become empty
// strings and floats go through FormatFloat.
func TableRecords(df dataframe.DataFrame) [][]string {
	names := df.Names()
	records := make([][]string, df.Nrow()+1)
	records[0] = append([]string(nil), names...)
	for i := 1; i < len(records); i++ {
		records[i] = make([]string, len(names))
	}

	for j, name := range names {
		col := df.Col(name)
		for i := 0; i < col.Len(); i++ {
			records[i+1][j] = FormatCell(col.Elem(i), col.Type())
		}
	}
	return records
}

// FormatCell renders one series element for CSV output
func FormatCell(e series.Element, t series.Type) string {
	if e.IsNA() {
		return ""
	}
	if t == series.Float {
		return FormatFloat(e.Float())
	}
	return e.String()
}

// FormatFloat renders the shortest representation that round-trips, keeping
// a ".0" on whole numbers and switching to exponent form outside
// [1e-4, 1e16). NaN becomes an empty cell.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
