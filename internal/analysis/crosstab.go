package analysis

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	"telcochurn/domain/churn"
	"telcochurn/domain/core"
	"telcochurn/internal/errors"
)

// Crosstab counts rowCol against colCol and normalizes each row to
// percentages rounded to 2 decimals. Rows with a missing value in either
// column are left out; labels are sorted.
func Crosstab(df dataframe.DataFrame, rowCol, colCol string) (*churn.Crosstab, error) {
	if df.Nrow() == 0 {
		return nil, errors.EmptyTable(core.ErrEmptyTable)
	}

	rows, err := TextValues(df, rowCol)
	if err != nil {
		return nil, err
	}
	cols, err := TextValues(df, colCol)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]map[string]int)
	colSet := make(map[string]bool)
	for i := range rows {
		r, c := rows[i], cols[i]
		if r == "" || c == "" {
			continue
		}
		if counts[r] == nil {
			counts[r] = make(map[string]int)
		}
		counts[r][c]++
		colSet[c] = true
	}

	ct := &churn.Crosstab{
		RowColumn: rowCol,
		ColColumn: colCol,
		RowLabels: sortedKeys(counts),
		ColLabels: sortedSet(colSet),
	}

	for _, r := range ct.RowLabels {
		rowTotal := 0
		for _, n := range counts[r] {
			rowTotal += n
		}

		rowCounts := make([]int, len(ct.ColLabels))
		rowValues := make([]float64, len(ct.ColLabels))
		for j, c := range ct.ColLabels {
			rowCounts[j] = counts[r][c]
			rowValues[j] = Round2(float64(counts[r][c]) / float64(rowTotal) * 100)
		}
		ct.Counts = append(ct.Counts, rowCounts)
		ct.Values = append(ct.Values, rowValues)
	}

	return ct, nil
}

// ChurnPivots computes the fixed cross-tabulations against Churn, in churn.Pivots order
func ChurnPivots(df dataframe.DataFrame) ([]*churn.Crosstab, error) {
	pivots := make([]*churn.Crosstab, 0, len(churn.Pivots))
	for _, p := range churn.Pivots {
		ct, err := Crosstab(df, p.Column, churn.ColChurn)
		if err != nil {
			return nil, errors.Wrapf(err, "pivot %s failed", p.Column)
		}
		pivots = append(pivots, ct)
	}
	return pivots, nil
}

func sortedKeys(m map[string]map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
