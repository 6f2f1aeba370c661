// Package report prints pipeline diagnostics to the console as tables.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-gota/gota/dataframe"
	"github.com/olekukonko/tablewriter"

	"telcochurn/adapters/tabular"
	"telcochurn/domain/churn"
	"telcochurn/domain/core"
	"telcochurn/internal/analysis"
	"telcochurn/internal/cleaning"
)

var (
	headingColor = color.New(color.FgYellow, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// Reporter writes report sections to out
type Reporter struct {
	out      io.Writer
	headRows int
}

// NewReporter creates a reporter printing headRows rows of table previews.
// A nil writer means stdout.
func NewReporter(out io.Writer, headRows int) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out, headRows: headRows}
}

// Table prints the shape, the first rows and the column types of df
func (r *Reporter) Table(title string, df dataframe.DataFrame) {
	r.heading("%s (%d rows x %d columns)", title, df.Nrow(), df.Ncol())

	n := r.headRows
	if n > df.Nrow() {
		n = df.Nrow()
	}
	if n > 0 {
		indexes := make([]int, n)
		for i := range indexes {
			indexes[i] = i
		}
		records := tabular.TableRecords(df.Subset(indexes))
		r.table(records[0], records[1:])
	}

	types := make([][]string, df.Ncol())
	for i, name := range df.Names() {
		types[i] = []string{name, string(df.Types()[i])}
	}
	r.table([]string{"Column", "Type"}, types)
}

// Cleaning prints missing counts before and after cleaning and the
// SeniorCitizen recoding.
func (r *Reporter) Cleaning(st cleaning.Stats) {
	r.heading("Missing values")
	after := make(map[string]int, len(st.MissingAfter))
	for _, c := range st.MissingAfter {
		after[c.Column] = c.Count
	}
	rows := make([][]string, 0, len(st.MissingBefore))
	for _, c := range st.MissingBefore {
		rows = append(rows, []string{c.Column, strconv.Itoa(c.Count), strconv.Itoa(after[c.Column])})
	}
	r.table([]string{"Column", "Before", "After"}, rows)

	infoColor.Fprintf(r.out, "TotalCharges: %d values imputed with mean %s\n",
		st.CoercedMissing, tabular.FormatFloat(st.ImputedMean))
	infoColor.Fprintf(r.out, "SeniorCitizen unique values: [%s] -> [%s]\n",
		strings.Join(st.SeniorBefore, " "), strings.Join(st.SeniorAfter, " "))
}

// KPIs prints the KPI table as written to disk
func (r *Reporter) KPIs(k churn.KPIs) {
	r.heading("KPIs")
	records := analysis.KPIRecords(k)
	r.table(records[0], records[1:])
}

// Pivots prints each churn cross-tabulation
func (r *Reporter) Pivots(pivots []*churn.Crosstab) {
	for _, ct := range pivots {
		r.heading("%s vs %s (%%)", ct.RowColumn, ct.ColColumn)
		records := analysis.CrosstabRecords(ct)
		r.table(records[0], records[1:])
	}
}

// Summaries prints the numeric and categorical describe tables
func (r *Reporter) Summaries(numeric []churn.NumericSummary, categorical []churn.CategoricalSummary) {
	r.heading("Numeric summary")
	records := analysis.WithStatisticColumn(analysis.NumericSummaryRecords(numeric), analysis.NumericStatistics)
	r.table(records[0], records[1:])

	r.heading("Categorical summary")
	records = analysis.WithStatisticColumn(analysis.CategoricalSummaryRecords(categorical), analysis.CategoricalStatistics)
	r.table(records[0], records[1:])
}

// Shapes prints skewness, kurtosis and outlier counts per numeric column
func (r *Reporter) Shapes(shapes []churn.DistributionShape) {
	r.heading("Distribution shape")
	rows := make([][]string, 0, len(shapes))
	for _, s := range shapes {
		rows = append(rows, []string{
			s.Column,
			formatStat(s.Skewness),
			formatStat(s.Kurtosis),
			fmt.Sprintf("[%s, %s]", formatStat(s.LowerFence), formatStat(s.UpperFence)),
			strconv.Itoa(s.Outliers),
		})
	}
	r.table([]string{"Column", "Skewness", "Excess kurtosis", "IQR fences", "Outliers"}, rows)
}

// Manifest prints every artifact of a run with its short hash
func (r *Reporter) Manifest(m *core.Manifest) {
	r.heading("Run %s", m.RunID)
	rows := make([][]string, 0, len(m.Artifacts))
	for _, a := range m.Artifacts {
		rows = append(rows, []string{string(a.Kind), a.Path, a.Hash.Short()})
	}
	r.table([]string{"Kind", "Path", "SHA-256"}, rows)
	successColor.Fprintf(r.out, "%d artifacts written\n", len(m.Artifacts))
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func (r *Reporter) heading(format string, args ...interface{}) {
	headingColor.Fprintf(r.out, "\n%s\n", fmt.Sprintf(format, args...))
}

func (r *Reporter) table(header []string, rows [][]string) {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}
