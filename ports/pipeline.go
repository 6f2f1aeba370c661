package ports

import (
	"context"

	"github.com/go-gota/gota/dataframe"

	"telcochurn/domain/churn"
)

// TableLoader reads the raw customer table from a file
type TableLoader interface {
	Load(ctx context.Context, path string) (dataframe.DataFrame, error)
}

// TableWriter persists tables and pre-formatted records as CSV
type TableWriter interface {
	WriteTable(path string, df dataframe.DataFrame) error
	WriteRecords(path string, records [][]string) error
}

// ChartRenderer draws the figure set and returns the written paths in order
type ChartRenderer interface {
	RenderAll(ctx context.Context, df dataframe.DataFrame, corr *churn.CorrelationMatrix) ([]string, error)
}
