package output

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/rpgo/networth-projection/internal/calculation"
)

// DefaultAssumptions lists the modeling conventions rendered in detailed outputs.
var DefaultAssumptions = []string{
	fmt.Sprintf("Market returns compound daily over %d trading days per year", calculation.TradingDaysPerYear),
	fmt.Sprintf("Monthly cash-flow surplus is spread over %d days per month", calculation.DaysPerMonth),
	fmt.Sprintf("Horizons in years are simulated as %d days per year", calculation.DaysPerYear),
	"Net worth is floored at zero; a path that reaches zero counts as depleted",
}

// GenerateAssumptions recovers the annual and monthly inputs of a scenario
// from its daily simulation parameters.
func GenerateAssumptions(sc *calculation.ScenarioProjection) []string {
	p := sc.Result.Params
	annualReturn := p.DailyReturnMean * calculation.TradingDaysPerYear
	annualVol := p.DailyReturnStdDev * math.Sqrt(calculation.TradingDaysPerYear)
	monthlyMean := p.DailyDriftMean * calculation.DaysPerMonth
	monthlyStd := p.DailyDriftStdDev * math.Sqrt(calculation.DaysPerMonth)

	seeding := "every path replays the same draws"
	if sc.Result.SeedMode == calculation.SeedPerPath {
		seeding = "path i is seeded with seed+i"
	}

	return []string{
		fmt.Sprintf("Annual return: %s mean, %s volatility (%s)",
			FormatRate(decimal.NewFromFloat(annualReturn)), FormatRate(decimal.NewFromFloat(annualVol)), sc.ReturnSource),
		fmt.Sprintf("Monthly surplus: %s mean, %s standard deviation",
			FormatFloatCurrency(monthlyMean), FormatFloatCurrency(monthlyStd)),
		fmt.Sprintf("Seed %d in %s mode: %s", p.Seed, sc.Result.SeedMode, seeding),
	}
}
