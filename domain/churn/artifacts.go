package churn

// Processed table file names.
const (
	FileCleanTable         = "telco_churn_clean.csv"
	FileKPIs               = "kpis.csv"
	FileSummaryNumeric     = "telco_churn_summary.csv"
	FileSummaryCategorical = "telco_churn_summary_str.csv"
)

// Pivot pairs a categorical column with the file its churn cross-tabulation is written to.
type Pivot struct {
	Column string
	File   string
}

// Pivots are the fixed cross-tabulations against Churn, in output order.
var Pivots = []Pivot{
	{Column: ColContract, File: "pivot_contract_churn.csv"},
	{Column: ColStreamingTV, File: "pivot_streaming_tv_churn.csv"},
	{Column: ColStreamingMovies, File: "pivot_streaming_movies_churn.csv"},
	{Column: ColInternetService, File: "pivot_internet_service_churn.csv"},
	{Column: ColPaymentMethod, File: "pivot_payment_method_churn.csv"},
}

// Figure file names.
const (
	FigChurnDistribution        = "churn_distribution.png"
	FigTenureDistribution       = "tenure_distribution.png"
	FigContractVsChurn          = "contract_vs_churn.png"
	FigPaymentMethodChurnYes    = "payment_method_churn_yes.png"
	FigInternetServiceVsChurn   = "internet_service_vs_churn.png"
	FigMonthlyChargesVsChurn    = "monthly_charges_vs_churn.png"
	FigStreamingMoviesVsChurn   = "streaming_movies_vs_churn.png"
	FigStreamingTVVsChurn       = "streaming_tv_vs_churn.png"
	FigSeniorCitizenVsChurn     = "senior_citizen_vs_churn.png"
	FigTotalChargesDistribution = "total_charges_distribution.png"
	FigCorrelationHeatmap       = "correlation_heatmap.png"
)

// Figures lists every figure a run renders.
var Figures = []string{
	FigChurnDistribution,
	FigTenureDistribution,
	FigContractVsChurn,
	FigPaymentMethodChurnYes,
	FigInternetServiceVsChurn,
	FigMonthlyChargesVsChurn,
	FigStreamingMoviesVsChurn,
	FigStreamingTVVsChurn,
	FigSeniorCitizenVsChurn,
	FigTotalChargesDistribution,
	FigCorrelationHeatmap,
}
