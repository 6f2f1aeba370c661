package analysis

import (
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"telcochurn/domain/churn"
	"telcochurn/domain/core"
	"telcochurn/internal/errors"
)

// ChurnIndicator maps Churn to 1 for "Yes" (any case, surrounding spaces
// ignored) and 0 otherwise.
func ChurnIndicator(s series.Series) series.Series {
	out := make([]int, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(e.String()), churn.Yes) {
			out[i] = 1
		}
	}
	return series.New(out, series.Int, churn.ColChurnNumeric)
}

// WithChurnIndicator returns a copy of df carrying the Churn_numeric column
func WithChurnIndicator(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	col := df.Col(churn.ColChurn)
	if col.Err != nil {
		return dataframe.DataFrame{}, errors.SchemaMismatch("cannot derive churn indicator", core.NewColumnMissingError(churn.ColChurn))
	}
	out := df.Mutate(ChurnIndicator(col))
	if out.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(out.Err, "failed to add churn indicator")
	}
	return out, nil
}

// CorrelationMatrix computes Pearson correlations over every numeric column
// plus the churn indicator. Each pair uses only rows where both values are
// present; pairs with fewer than two such rows, or with a constant side, are NaN.
func CorrelationMatrix(df dataframe.DataFrame) (*churn.CorrelationMatrix, error) {
	if df.Nrow() == 0 {
		return nil, errors.EmptyTable(core.ErrEmptyTable)
	}

	withIndicator, err := WithChurnIndicator(df)
	if err != nil {
		return nil, err
	}

	labels := NumericColumns(withIndicator)
	columns := make([][]float64, len(labels))
	for i, name := range labels {
		if columns[i], err = FloatValues(withIndicator, name); err != nil {
			return nil, err
		}
	}

	values := make([][]float64, len(labels))
	for i := range values {
		values[i] = make([]float64, len(labels))
	}
	for i := range labels {
		for j := i; j < len(labels); j++ {
			r := pairwiseCorrelation(columns[i], columns[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &churn.CorrelationMatrix{Labels: labels, Values: values}, nil
}

func pairwiseCorrelation(a, b []float64) float64 {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	if len(x) < 2 || isConstant(x) || isConstant(y) {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
