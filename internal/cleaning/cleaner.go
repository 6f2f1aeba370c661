// Package cleaning repairs the raw churn table: TotalCharges is coerced to
// numbers and mean-imputed, SeniorCitizen is recoded to No/Yes, and every text
// cell is trimmed.
package cleaning

import (
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"

	"telcochurn/adapters/datareadiness/coercer"
	"telcochurn/domain/churn"
	"telcochurn/domain/core"
	"telcochurn/internal"
	"telcochurn/internal/errors"
)

// Cleaner applies the fixed cleaning rules to a churn table
type Cleaner struct {
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// Stats describes what a Clean call changed
type Stats struct {
	CoercedMissing int     // TotalCharges cells that failed numeric conversion
	ImputedMean    float64 // value written into those cells
	NumericRatio   float64 // share of non-blank TotalCharges cells that parsed

	MissingBefore []ColumnCount
	MissingAfter  []ColumnCount

	SeniorBefore []string // unique SeniorCitizen values before recoding
	SeniorAfter  []string
}

// ColumnCount pairs a column with a count, keeping table order
type ColumnCount struct {
	Column string
	Count  int
}

// NewCleaner creates a cleaner using the default coercion rules
func NewCleaner(logger *internal.Logger) *Cleaner {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Cleaner{
		coercer: coercer.NewTypeCoercer(coercer.DefaultCoercionConfig()),
		logger:  logger,
	}
}

// Clean returns the cleaned table. The input DataFrame is not modified.
func (c *Cleaner) Clean(df dataframe.DataFrame) (dataframe.DataFrame, Stats, error) {
	var st Stats
	st.MissingBefore = MissingCounts(df)

	df, err := c.repairTotalCharges(df, &st)
	if err != nil {
		return dataframe.DataFrame{}, st, err
	}

	senior := df.Col(churn.ColSeniorCitizen)
	if senior.Err != nil {
		return dataframe.DataFrame{}, st, errors.SchemaMismatch("cannot clean SeniorCitizen", core.NewColumnMissingError(churn.ColSeniorCitizen))
	}
	st.SeniorBefore = UniqueValues(senior)
	df = df.Mutate(RecodeSeniorCitizen(senior))
	if df.Err != nil {
		return dataframe.DataFrame{}, st, errors.Wrap(df.Err, "failed to recode SeniorCitizen")
	}
	st.SeniorAfter = UniqueValues(df.Col(churn.ColSeniorCitizen))

	df = TrimStrings(df)
	if df.Err != nil {
		return dataframe.DataFrame{}, st, errors.Wrap(df.Err, "failed to trim text columns")
	}

	st.MissingAfter = MissingCounts(df)
	if st.CoercedMissing > 0 {
		c.logger.Warn("[Cleaner] TotalCharges: %d values were not numeric and were replaced by the mean", st.CoercedMissing)
	}
	if unexpected := UnexpectedSeniorValues(st.SeniorAfter); len(unexpected) > 0 {
		c.logger.Warn("[Cleaner] SeniorCitizen: values %v are neither 0 nor 1 and were kept as is", unexpected)
	}
	c.logger.Info("[Cleaner] TotalCharges: %d values imputed with mean %.4f; SeniorCitizen %v -> %v",
		st.CoercedMissing, st.ImputedMean, st.SeniorBefore, st.SeniorAfter)
	return df, st, nil
}

// repairTotalCharges coerces the column to float and fills missing values with the mean of the rest
func (c *Cleaner) repairTotalCharges(df dataframe.DataFrame, st *Stats) (dataframe.DataFrame, error) {
	col := df.Col(churn.ColTotalCharges)
	if col.Err != nil {
		return dataframe.DataFrame{}, errors.SchemaMismatch("cannot clean TotalCharges", core.NewColumnMissingError(churn.ColTotalCharges))
	}

	values, raw := c.coerce(col)
	st.NumericRatio = c.coercer.AnalyzeTypeDistribution(raw).NumericRatio

	filled, mean, missing, err := ImputeMean(values)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "cannot impute TotalCharges")
	}
	st.CoercedMissing = missing
	st.ImputedMean = mean

	df = df.Mutate(series.New(filled, series.Float, churn.ColTotalCharges))
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "failed to replace TotalCharges")
	}
	return df, nil
}

// coerce converts a column of any type to floats, NaN marking missing cells
func (c *Cleaner) coerce(col series.Series) ([]float64, []string) {
	raw := make([]string, col.Len())
	for i := 0; i < col.Len(); i++ {
		if e := col.Elem(i); !e.IsNA() {
			raw[i] = e.String()
		}
	}

	if col.Type() != series.Float && col.Type() != series.Int {
		values, missing := c.coercer.CoerceColumn(raw)
		c.logger.Trace("[Cleaner] %s: %d of %d cells failed numeric coercion", col.Name, missing, len(raw))
		return values, raw
	}

	values := make([]float64, col.Len())
	for i := 0; i < col.Len(); i++ {
		if e := col.Elem(i); e.IsNA() {
			values[i] = math.NaN()
		} else {
			values[i] = e.Float()
		}
	}
	return values, raw
}

// ImputeMean replaces NaN entries with the mean of the non-NaN entries. The
// mean is computed once over the original valid values.
func ImputeMean(values []float64) (filled []float64, mean float64, missing int, err error) {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			missing++
			continue
		}
		valid = append(valid, v)
	}

	if len(valid) == 0 {
		return nil, math.NaN(), missing, core.NewNoValidValuesError(churn.ColTotalCharges)
	}

	mean, err = stats.Mean(valid)
	if err != nil {
		return nil, math.NaN(), missing, err
	}

	filled = make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			v = mean
		}
		filled[i] = v
	}
	return filled, mean, missing, nil
}

// RecodeSeniorCitizen maps numeric 0 to "No" and 1 to "Yes". Other numbers
// keep their text form, missing cells stay missing, and a text column is
// returned unchanged.
func RecodeSeniorCitizen(s series.Series) series.Series {
	if s.Type() != series.Int && s.Type() != series.Float {
		return s.Copy()
	}

	out := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		switch {
		case e.IsNA():
			out[i] = "NaN"
		case e.Float() == 0:
			out[i] = churn.No
		case e.Float() == 1:
			out[i] = churn.Yes
		default:
			out[i] = e.String()
		}
	}
	return series.New(out, series.String, s.Name)
}

// UnexpectedSeniorValues lists recoded SeniorCitizen values other than
// No, Yes and missing.
func UnexpectedSeniorValues(values []string) []string {
	var out []string
	for _, v := range values {
		if v != churn.No && v != churn.Yes && v != "NaN" {
			out = append(out, v)
		}
	}
	return out
}

// TrimStrings strips surrounding whitespace from every cell of every text column
func TrimStrings(df dataframe.DataFrame) dataframe.DataFrame {
	for _, name := range df.Names() {
		col := df.Col(name)
		if col.Type() != series.String {
			continue
		}

		trimmed := make([]string, col.Len())
		for i := 0; i < col.Len(); i++ {
			e := col.Elem(i)
			if e.IsNA() {
				trimmed[i] = "NaN"
				continue
			}
			trimmed[i] = strings.TrimSpace(e.String())
		}

		df = df.Mutate(series.New(trimmed, series.String, name))
		if df.Err != nil {
			return df
		}
	}
	return df
}

// MissingCounts counts missing cells per column
func MissingCounts(df dataframe.DataFrame) []ColumnCount {
	counts := make([]ColumnCount, 0, df.Ncol())
	for _, name := range df.Names() {
		col := df.Col(name)
		n := 0
		for _, na := range col.IsNaN() {
			if na {
				n++
			}
		}
		counts = append(counts, ColumnCount{Column: name, Count: n})
	}
	return counts
}

// UniqueValues lists distinct cell values in order of first appearance
func UniqueValues(s series.Series) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < s.Len(); i++ {
		v := s.Elem(i).String()
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
