package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

// ChurnGeneratorConfig configures the synthetic Telco churn generator
type ChurnGeneratorConfig struct {
	CustomerCount int     `json:"customer_count"`
	ChurnRate     float64 `json:"churn_rate"`    // exact share of rows with Churn=Yes, rounded to whole rows
	BlankCharges  int     `json:"blank_charges"` // rows with tenure 0 and TotalCharges " "
	PadWhitespace bool    `json:"pad_whitespace"`
	Seed          int64   `json:"seed"`
}

// DefaultChurnConfig returns defaults resembling the public Telco dataset
func DefaultChurnConfig() ChurnGeneratorConfig {
	return ChurnGeneratorConfig{
		CustomerCount: 200,
		ChurnRate:     0.265,
		BlankCharges:  3,
		PadWhitespace: false,
		Seed:          42,
	}
}

// Header is the Telco column order
var Header = []string{
	"customerID", "gender", "SeniorCitizen", "Partner", "Dependents", "tenure",
	"PhoneService", "MultipleLines", "InternetService", "OnlineSecurity",
	"OnlineBackup", "DeviceProtection", "TechSupport", "StreamingTV",
	"StreamingMovies", "Contract", "PaperlessBilling", "PaymentMethod",
	"MonthlyCharges", "TotalCharges", "Churn",
}

var (
	contracts        = []string{"Month-to-month", "One year", "Two year"}
	internetServices = []string{"DSL", "Fiber optic", "No"}
	paymentMethods   = []string{"Electronic check", "Mailed check", "Bank transfer (automatic)", "Credit card (automatic)"}
)

// ChurnDataGenerator generates Telco-shaped customer rows
type ChurnDataGenerator struct {
	config ChurnGeneratorConfig
	rng    *rand.Rand
}

// NewChurnDataGenerator creates a new generator
func NewChurnDataGenerator(config ChurnGeneratorConfig) *ChurnDataGenerator {
	return &ChurnDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// ChurnedCount is the exact number of Churn=Yes rows Records will produce
func (g *ChurnDataGenerator) ChurnedCount() int {
	return int(math.Round(float64(g.config.CustomerCount) * g.config.ChurnRate))
}

// Records returns the header followed by one row per customer
func (g *ChurnDataGenerator) Records() [][]string {
	churned := g.ChurnedCount()
	rows := make([][]string, 0, g.config.CustomerCount)
	for i := 0; i < g.config.CustomerCount; i++ {
		rows = append(rows, g.customerRow(i, i < churned, i >= g.config.CustomerCount-g.config.BlankCharges))
	}
	g.rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

	return append([][]string{append([]string(nil), Header...)}, rows...)
}

// WriteCSV writes Records to path
func (g *ChurnDataGenerator) WriteCSV(path string) error {
	return WriteCSV(path, g.Records())
}

// WriteCSV writes arbitrary records, creating the parent directory
func WriteCSV(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// customerRow builds one row; blank rows mimic new customers without a first bill
func (g *ChurnDataGenerator) customerRow(i int, churn, blank bool) []string {
	contract := g.pick(contracts)
	internet := g.pick(internetServices)

	tenure := 1 + g.rng.Intn(72)
	if churn {
		tenure = 1 + g.rng.Intn(30)
	}
	if blank {
		tenure = 0
	}

	monthly := 18.25 + g.rng.Float64()*80
	if internet == "Fiber optic" {
		monthly += 20
	}
	monthly = math.Round(monthly*100) / 100

	total := " "
	if !blank {
		total = strconv.FormatFloat(math.Round(monthly*float64(tenure)*100)/100, 'f', 2, 64)
	}

	streamTV, streamMovies := "No internet service", "No internet service"
	if internet != "No" {
		streamTV = g.pick([]string{"Yes", "No"})
		streamMovies = g.pick([]string{"Yes", "No"})
	}

	senior := "0"
	if g.rng.Float64() < 0.16 {
		senior = "1"
	}

	churnLabel := "No"
	if churn {
		churnLabel = "Yes"
	}

	return []string{
		fmt.Sprintf("%04d-CUST", i+1),
		g.pad(g.pick([]string{"Male", "Female"})),
		senior,
		g.pad(g.pick([]string{"Yes", "No"})),
		g.pick([]string{"Yes", "No"}),
		strconv.Itoa(tenure),
		"Yes",
		g.pick([]string{"Yes", "No"}),
		g.pad(internet),
		g.pick([]string{"Yes", "No"}),
		g.pick([]string{"Yes", "No"}),
		g.pick([]string{"Yes", "No"}),
		g.pick([]string{"Yes", "No"}),
		streamTV,
		streamMovies,
		g.pad(contract),
		g.pick([]string{"Yes", "No"}),
		g.pad(g.pick(paymentMethods)),
		strconv.FormatFloat(monthly, 'f', 2, 64),
		total,
		churnLabel,
	}
}

func (g *ChurnDataGenerator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *ChurnDataGenerator) pad(s string) string {
	if !g.config.PadWhitespace {
		return s
	}
	return " " + s + "  "
}
