// Package tabular loads the raw churn table from CSV or XLSX files into a gota
// DataFrame and writes cleaned and derived tables back out as CSV.
package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"telcochurn/domain/churn"
	"telcochurn/domain/core"
	"telcochurn/internal"
	"telcochurn/internal/errors"
)

// NaNValues are the cell values read as missing. A lone space is not among
// them, so blank TotalCharges cells reach the cleaner as text.
var NaNValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "<nil>"}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{logger: logger}
}

// Load reads the file at path into a DataFrame and checks the churn schema.
func (r *DataReader) Load(ctx context.Context, path string) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	fileType, err := detectFileType(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.InputUnreadable(path, err)
	}
	r.logger.Info("[DataReader] Starting to read %s file: %s", fileType, path)

	if _, err := os.Stat(path); err != nil {
		return dataframe.DataFrame{}, errors.InputUnreadable(path, err)
	}

	readStart := time.Now()
	var rows [][]string
	switch fileType {
	case "csv":
		rows, err = readCSVRows(path)
	case "xlsx":
		rows, err = readExcelRows(path)
	}
	if err != nil {
		return dataframe.DataFrame{}, errors.InputUnreadable(path, err)
	}
	r.logger.Info("[DataReader] %s file read in %.2fms (%d rows)",
		strings.ToUpper(fileType), float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	df, err := LoadRecords(rows)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "cannot load %s", path)
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(fileType), df.Ncol(), df.Nrow())
	return df, nil
}

// LoadRecords builds the churn DataFrame from a header row plus data rows.
// customerID and TotalCharges stay text; other column types are detected.
func LoadRecords(rows [][]string) (dataframe.DataFrame, error) {
	if len(rows) == 0 {
		return dataframe.DataFrame{}, errors.InputUnreadable("records", fmt.Errorf("no header row"))
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	records := make([][]string, 0, len(rows))
	records = append(records, header)
	records = append(records, rows[1:]...)

	types := make(map[string]series.Type, len(churn.TextColumns))
	for _, col := range churn.TextColumns {
		types[col] = series.String
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(types),
		dataframe.NaNValues(NaNValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.InputUnreadable("records", df.Err)
	}

	if err := ValidateSchema(df); err != nil {
		return dataframe.DataFrame{}, err
	}
	return df, nil
}

// ValidateSchema checks required columns exist and numeric columns parsed as numbers.
func ValidateSchema(df dataframe.DataFrame) error {
	present := make(map[string]series.Type, df.Ncol())
	for i, name := range df.Names() {
		present[name] = df.Types()[i]
	}

	for _, col := range churn.RequiredColumns {
		if _, ok := present[col]; !ok {
			return errors.SchemaMismatch("input schema check failed", core.NewColumnMissingError(col))
		}
	}

	// An all-missing column is detected as text, which only matters when rows exist
	if df.Nrow() == 0 {
		return nil
	}
	for _, col := range []string{churn.ColTenure, churn.ColMonthlyCharges} {
		if t := present[col]; t != series.Int && t != series.Float {
			return errors.SchemaMismatch("input schema check failed", core.NewWrongTypeError(col, "numeric"))
		}
	}
	return nil
}

func detectFileType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return "csv", nil
	case ".xlsx":
		return "xlsx", nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedExt, filepath.Ext(path))
	}
}

// readCSVRows reads every record; ragged rows are a parse error
func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file has no header row")
	}
	return rows, nil
}

// readExcelRows reads the first sheet, padding rows excelize shortened
func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Excel file has no header row")
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) > width {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), width)
		}
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows, nil
}
