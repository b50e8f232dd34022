package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/networth-projection/internal/domain"
)

// CalculationEngine turns a projection configuration into scenario projections
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// NewSimulator builds a simulator for the given settings.
func (ce *CalculationEngine) NewSimulator(settings domain.SimulationSettings) (*NetWorthSimulator, error) {
	mode, err := ParseSeedMode(settings.SeedMode)
	if err != nil {
		return nil, err
	}
	return &NetWorthSimulator{
		Workers:  settings.Workers,
		SeedMode: mode,
		Logger:   ce.Logger,
	}, nil
}

// ScenarioParams converts a configured scenario into simulation parameters.
// The returned string names where the return assumptions came from.
func (ce *CalculationEngine) ScenarioParams(settings domain.SimulationSettings, seed int64, scenario *domain.Scenario) (SimulationParams, string, error) {
	returnMean := scenario.Market.AnnualReturnMean.InexactFloat64()
	volatility := scenario.Market.AnnualVolatility.InexactFloat64()
	source := "configured"

	if scenario.Market.HistoryFile != "" {
		history, err := LoadReturnHistory(scenario.Market.HistoryFile)
		if err != nil {
			return SimulationParams{}, "", fmt.Errorf("failed to load return history: %w", err)
		}
		returnMean = history.Statistics.Mean.InexactFloat64()
		volatility = history.Statistics.StdDev.InexactFloat64()
		source = fmt.Sprintf("historical %d-%d (%s)", history.MinYear, history.MaxYear, history.Source)
		WithPrefix(ce.Logger, fmt.Sprintf("scenario %q", scenario.Name)).Infof("calibrated returns from %s: mean=%s stddev=%s",
			history.Source, history.Statistics.Mean.StringFixed(4), history.Statistics.StdDev.StringFixed(4))
	}

	params := SimulationParams{
		Seed:              seed,
		PathCount:         settings.PathCount,
		HorizonDays:       scenario.ResolvedHorizonDays(DaysPerYear),
		StartValue:        scenario.StartValue.InexactFloat64(),
		DailyDriftMean:    DailySurplusMean(scenario.CashFlow.MonthlySurplusMean.InexactFloat64()),
		DailyDriftStdDev:  DailySurplusStdDev(scenario.CashFlow.MonthlySurplusStdDev.InexactFloat64()),
		DailyReturnMean:   DailyReturnMean(returnMean),
		DailyReturnStdDev: DailyVolatility(volatility),
	}
	return params, source, nil
}

// RunScenario projects a single scenario.
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario, seed int64) (*ScenarioProjection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := WithPrefix(ce.Logger, fmt.Sprintf("scenario %q", scenario.Name))
	sim, err := ce.NewSimulator(config.Simulation)
	if err != nil {
		return nil, err
	}
	sim.Logger = log

	params, source, err := ce.ScenarioParams(config.Simulation, seed, scenario)
	if err != nil {
		return nil, err
	}

	result, err := sim.Project(params)
	if err != nil {
		return nil, err
	}
	if !config.Simulation.IncludePaths {
		result = result.WithoutPaths()
	}

	log.Debugf("median final value %s, depletion rate %s",
		result.Summary.MedianFinalValue.StringFixed(2), result.Summary.DepletionRate.String())

	return &ScenarioProjection{
		Name:         scenario.Name,
		StartDate:    config.Simulation.StartDate,
		ReturnSource: source,
		Result:       result,
	}, nil
}

// RunScenarios projects every scenario in the configuration. All scenarios
// share one seed so they are driven by the same random draws.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*ProjectionReport, error) {
	seed := ResolveSeed(config.Simulation.Seed)
	ce.Logger.Infof("running %d scenario(s) with seed %d", len(config.Scenarios), seed)

	report := &ProjectionReport{GeneratedAt: nowFunc()}
	for i := range config.Scenarios {
		sp, err := ce.RunScenario(ctx, config, &config.Scenarios[i], seed)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", config.Scenarios[i].Name, err)
		}
		report.Scenarios = append(report.Scenarios, sp)
	}
	return report, nil
}
