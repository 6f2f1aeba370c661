package analysis

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"telcochurn/domain/core"
	"telcochurn/internal/errors"
)

// TextValues returns cell values as strings with "" for missing cells
func TextValues(df dataframe.DataFrame, name string) ([]string, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, errors.SchemaMismatch("analysis input check failed", core.NewColumnMissingError(name))
	}

	out := make([]string, col.Len())
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			continue
		}
		out[i] = e.String()
	}
	return out, nil
}

// FloatValues returns a numeric column with NaN for missing cells
func FloatValues(df dataframe.DataFrame, name string) ([]float64, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, errors.SchemaMismatch("analysis input check failed", core.NewColumnMissingError(name))
	}
	if col.Type() != series.Float && col.Type() != series.Int {
		return nil, errors.SchemaMismatch("analysis input check failed", core.NewWrongTypeError(name, "numeric"))
	}

	out := make([]float64, col.Len())
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			out[i] = math.NaN()
			continue
		}
		out[i] = e.Float()
	}
	return out, nil
}

// NumericColumns lists int and float columns in table order
func NumericColumns(df dataframe.DataFrame) []string {
	var names []string
	for i, t := range df.Types() {
		if t == series.Int || t == series.Float {
			names = append(names, df.Names()[i])
		}
	}
	return names
}

// TextColumns lists string columns in table order
func TextColumns(df dataframe.DataFrame) []string {
	var names []string
	for i, t := range df.Types() {
		if t == series.String {
			names = append(names, df.Names()[i])
		}
	}
	return names
}
