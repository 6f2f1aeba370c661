package coercer

import (
	"math"
	"strconv"
	"strings"
)

// TypeCoercer handles deterministic numeric coercion of text cells
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	TrimSpace        bool    `json:"trim_space"`        // strip surrounding whitespace before parsing
	AllowNonFinite   bool    `json:"allow_non_finite"`  // accept Inf values as valid numbers
	NumericThreshold float64 `json:"numeric_threshold"` // share of values that must parse for a column to count as numeric
}

// DefaultCoercionConfig returns the rules used for TotalCharges
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		TrimSpace:        true,
		AllowNonFinite:   false,
		NumericThreshold: 0.8,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// CoerceNumeric parses a single cell. ok is false when the value is missing
// after coercion (blank, unparsable or non-finite).
func (c *TypeCoercer) CoerceNumeric(raw string) (value float64, ok bool) {
	s := raw
	if c.config.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return math.NaN(), false
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) {
		return math.NaN(), false
	}
	if math.IsInf(val, 0) && !c.config.AllowNonFinite {
		return math.NaN(), false
	}
	return val, true
}

// CoerceColumn parses every cell; missing cells become NaN. It returns the
// number of cells that were missing after coercion.
func (c *TypeCoercer) CoerceColumn(raw []string) ([]float64, int) {
	out := make([]float64, len(raw))
	missing := 0
	for i, v := range raw {
		f, ok := c.CoerceNumeric(v)
		if !ok {
			missing++
		}
		out[i] = f
	}
	return out, missing
}

// AnalyzeTypeDistribution reports how much of a sample parses as numeric
func (c *TypeCoercer) AnalyzeTypeDistribution(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}

	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		analysis.ValidCount++
		if _, ok := c.CoerceNumeric(v); ok {
			analysis.NumericCount++
		}
	}

	if analysis.ValidCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.ValidCount)
	}
	analysis.IsNumeric = analysis.ValidCount > 0 && analysis.NumericRatio >= c.config.NumericThreshold

	return analysis
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount   int     `json:"total_count"`
	ValidCount   int     `json:"valid_count"` // non-blank values
	NumericCount int     `json:"numeric_count"`
	NumericRatio float64 `json:"numeric_ratio"`
	IsNumeric    bool    `json:"is_numeric"`
}
