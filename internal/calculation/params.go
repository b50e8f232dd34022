package calculation

import (
	"fmt"
	"math"
)

const (
	// TradingDaysPerYear converts annual market assumptions to daily ones.
	TradingDaysPerYear = 252
	// DaysPerMonth converts monthly cash-flow assumptions to daily ones.
	DaysPerMonth = 30
	// DaysPerYear converts a horizon in years to simulated days.
	DaysPerYear = 365
)

// Demo projection assumptions.
const (
	DemoSeed                 = 42
	DemoPathCount            = 5000
	DemoStartValue           = 50000.0
	DemoMonthlySurplusMean   = 85.0
	DemoMonthlySurplusStdDev = 70.0
	DemoAnnualReturnMean     = 0.072
	DemoAnnualVolatility     = 0.15
)

// SimulationParams fully determines a projection: identical params always
// produce an identical ensemble.
type SimulationParams struct {
	Seed              int64   `json:"seed"`
	PathCount         int     `json:"path_count"`
	HorizonDays       int     `json:"horizon_days"`
	StartValue        float64 `json:"start_value"`
	DailyDriftMean    float64 `json:"daily_drift_mean"`
	DailyDriftStdDev  float64 `json:"daily_drift_std_dev"`
	DailyReturnMean   float64 `json:"daily_return_mean"`
	DailyReturnStdDev float64 `json:"daily_return_std_dev"`
}

// Validate reports the first out-of-range field wrapped in ErrInvalidParameter.
func (p SimulationParams) Validate() error {
	if p.PathCount <= 0 {
		return fmt.Errorf("%w: path count must be positive, got %d", ErrInvalidParameter, p.PathCount)
	}
	if p.HorizonDays < 0 {
		return fmt.Errorf("%w: horizon days cannot be negative, got %d", ErrInvalidParameter, p.HorizonDays)
	}

	fields := []struct {
		name  string
		value float64
	}{
		{"start value", p.StartValue},
		{"daily drift mean", p.DailyDriftMean},
		{"daily drift std dev", p.DailyDriftStdDev},
		{"daily return mean", p.DailyReturnMean},
		{"daily return std dev", p.DailyReturnStdDev},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, f.name, f.value)
		}
	}

	if p.DailyDriftStdDev < 0 {
		return fmt.Errorf("%w: daily drift std dev cannot be negative, got %v", ErrInvalidParameter, p.DailyDriftStdDev)
	}
	if p.DailyReturnStdDev < 0 {
		return fmt.Errorf("%w: daily return std dev cannot be negative, got %v", ErrInvalidParameter, p.DailyReturnStdDev)
	}
	return nil
}

// DailyReturnMean converts an annual mean return to a per-trading-day mean.
func DailyReturnMean(annual float64) float64 { return annual / TradingDaysPerYear }

// DailyVolatility converts annual volatility to per-trading-day volatility.
func DailyVolatility(annual float64) float64 { return annual / math.Sqrt(TradingDaysPerYear) }

// DailySurplusMean converts a mean monthly surplus to a daily one.
func DailySurplusMean(monthly float64) float64 { return monthly / DaysPerMonth }

// DailySurplusStdDev converts a monthly surplus deviation to a daily one.
func DailySurplusStdDev(monthly float64) float64 { return monthly / math.Sqrt(DaysPerMonth) }

// DemoParams returns the fixed demo projection over horizonYears years.
func DemoParams(horizonYears int) SimulationParams {
	return SimulationParams{
		Seed:              DemoSeed,
		PathCount:         DemoPathCount,
		HorizonDays:       horizonYears * DaysPerYear,
		StartValue:        DemoStartValue,
		DailyDriftMean:    DailySurplusMean(DemoMonthlySurplusMean),
		DailyDriftStdDev:  DailySurplusStdDev(DemoMonthlySurplusStdDev),
		DailyReturnMean:   DailyReturnMean(DemoAnnualReturnMean),
		DailyReturnStdDev: DailyVolatility(DemoAnnualVolatility),
	}
}
