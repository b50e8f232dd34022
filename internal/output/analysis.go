package output

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rpgo/networth-projection/internal/calculation"
	money "github.com/rpgo/networth-projection/pkg/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	MedianFinalValue decimal.Decimal
	DepletionRate    decimal.Decimal
	MedianGain       decimal.Decimal
	PercentageChange decimal.Decimal
}

// AnalyzeScenarios picks the scenario with the highest median final net worth,
// preferring the lower depletion rate on ties.
func AnalyzeScenarios(report *calculation.ProjectionReport) Recommendation {
	type ranked struct {
		name      string
		start     money.Money
		median    decimal.Decimal
		depletion decimal.Decimal
	}
	var ranks []ranked
	for _, sc := range report.Scenarios {
		if sc.Result == nil {
			continue
		}
		ranks = append(ranks, ranked{
			name:      sc.Name,
			start:     money.NewMoney(sc.Result.Params.StartValue).Round(),
			median:    sc.Result.Summary.MedianFinalValue,
			depletion: sc.Result.Summary.DepletionRate,
		})
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if !ranks[i].median.Equal(ranks[j].median) {
			return ranks[i].median.GreaterThan(ranks[j].median)
		}
		return ranks[i].depletion.LessThan(ranks[j].depletion)
	})
	best := ranks[0]
	delta := money.NewMoneyFromDecimal(best.median).Sub(best.start).Decimal
	pct := decimal.Zero
	if !best.start.IsZero() {
		pct = delta.Div(best.start.Decimal).Mul(decimal.NewFromInt(100))
	}
	return Recommendation{
		ScenarioName:     best.name,
		MedianFinalValue: best.median,
		DepletionRate:    best.depletion,
		MedianGain:       delta,
		PercentageChange: pct,
	}
}
