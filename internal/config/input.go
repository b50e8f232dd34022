package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/internal/domain"
)

// maxHorizonYears bounds configured horizons.
const maxHorizonYears = 100

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file. Relative history file
// paths are resolved against the configuration file's directory.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(filename)
	for i := range config.Scenarios {
		hf := config.Scenarios[i].Market.HistoryFile
		if hf != "" && !filepath.IsAbs(hf) {
			config.Scenarios[i].Market.HistoryFile = filepath.Join(dir, hf)
		}
	}

	return config, nil
}

// Parse decodes and validates YAML configuration data
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation settings validation failed: %w", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	names := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if names[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate scenario name %q", i, scenario.Name)
		}
		names[scenario.Name] = true
	}

	return nil
}

// validateSimulation validates settings shared by all scenarios
func (ip *InputParser) validateSimulation(settings *domain.SimulationSettings) error {
	if settings.PathCount <= 0 {
		return fmt.Errorf("path count must be positive")
	}
	if settings.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if _, err := calculation.ParseSeedMode(settings.SeedMode); err != nil {
		return err
	}
	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}

	if scenario.HorizonDays != nil {
		if *scenario.HorizonDays < 0 {
			return fmt.Errorf("horizon days cannot be negative")
		}
		if scenario.HorizonYears != 0 {
			return fmt.Errorf("specify either horizon_years or horizon_days, not both")
		}
	}
	if scenario.HorizonYears < 0 || scenario.HorizonYears > maxHorizonYears {
		return fmt.Errorf("horizon years must be between 0 and %d", maxHorizonYears)
	}

	if scenario.CashFlow.MonthlySurplusStdDev.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly surplus standard deviation cannot be negative")
	}
	if scenario.Market.AnnualVolatility.LessThan(decimal.Zero) {
		return fmt.Errorf("annual volatility cannot be negative")
	}
	if scenario.Market.AnnualReturnMean.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("annual return mean cannot be less than -100%%")
	}

	return nil
}

// SaveConfiguration writes config to filename as YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	seed := int64(calculation.DemoSeed)
	startDate, _ := time.Parse("2006-01-02", "2026-01-01")

	return &domain.Configuration{
		Simulation: domain.SimulationSettings{
			Seed:      &seed,
			PathCount: calculation.DemoPathCount,
			SeedMode:  string(calculation.SeedShared),
			StartDate: startDate,
		},
		Scenarios: []domain.Scenario{
			{
				Name:         "Baseline",
				StartValue:   decimal.NewFromFloat(calculation.DemoStartValue),
				HorizonYears: 10,
				CashFlow: domain.CashFlowModel{
					MonthlySurplusMean:   decimal.NewFromFloat(calculation.DemoMonthlySurplusMean),
					MonthlySurplusStdDev: decimal.NewFromFloat(calculation.DemoMonthlySurplusStdDev),
				},
				Market: domain.MarketAssumption{
					AnnualReturnMean: decimal.NewFromFloat(calculation.DemoAnnualReturnMean),
					AnnualVolatility: decimal.NewFromFloat(calculation.DemoAnnualVolatility),
				},
			},
			{
				Name:         "Higher Savings",
				StartValue:   decimal.NewFromFloat(calculation.DemoStartValue),
				HorizonYears: 10,
				CashFlow: domain.CashFlowModel{
					MonthlySurplusMean:   decimal.NewFromInt(500),
					MonthlySurplusStdDev: decimal.NewFromInt(150),
				},
				Market: domain.MarketAssumption{
					AnnualReturnMean: decimal.NewFromFloat(calculation.DemoAnnualReturnMean),
					AnnualVolatility: decimal.NewFromFloat(calculation.DemoAnnualVolatility),
				},
			},
		},
	}
}
