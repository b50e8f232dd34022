package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpgo/networth-projection/pkg/dateutil"
)

// Configuration represents the complete projection input file
type Configuration struct {
	Simulation SimulationSettings `yaml:"simulation" json:"simulation"`
	Scenarios  []Scenario         `yaml:"scenarios" json:"scenarios"`
}

// SimulationSettings are shared by every scenario in a configuration
type SimulationSettings struct {
	// Seed is optional; when absent a time-based seed is drawn.
	Seed      *int64    `yaml:"seed,omitempty" json:"seed,omitempty"`
	PathCount int       `yaml:"path_count" json:"path_count"`
	SeedMode  string    `yaml:"seed_mode,omitempty" json:"seed_mode,omitempty"`
	Workers   int       `yaml:"workers,omitempty" json:"workers,omitempty"`
	StartDate time.Time `yaml:"start_date" json:"start_date"`
	// IncludePaths keeps the raw ensemble in the report output.
	IncludePaths bool `yaml:"include_paths,omitempty" json:"include_paths,omitempty"`
}

// Scenario describes one net-worth projection
type Scenario struct {
	Name         string           `yaml:"name" json:"name"`
	StartValue   decimal.Decimal  `yaml:"start_value" json:"start_value"`
	HorizonYears int              `yaml:"horizon_years,omitempty" json:"horizon_years,omitempty"`
	HorizonDays  *int             `yaml:"horizon_days,omitempty" json:"horizon_days,omitempty"`
	CashFlow     CashFlowModel    `yaml:"cash_flow" json:"cash_flow"`
	Market       MarketAssumption `yaml:"market" json:"market"`
}

// CashFlowModel describes the monthly surplus (income minus spending)
type CashFlowModel struct {
	MonthlySurplusMean   decimal.Decimal `yaml:"monthly_surplus_mean" json:"monthly_surplus_mean"`
	MonthlySurplusStdDev decimal.Decimal `yaml:"monthly_surplus_std_dev" json:"monthly_surplus_std_dev"`
}

// MarketAssumption describes annual portfolio returns. When HistoryFile is
// set its mean and standard deviation replace the configured values.
type MarketAssumption struct {
	AnnualReturnMean decimal.Decimal `yaml:"annual_return_mean" json:"annual_return_mean"`
	AnnualVolatility decimal.Decimal `yaml:"annual_volatility" json:"annual_volatility"`
	HistoryFile      string          `yaml:"history_file,omitempty" json:"history_file,omitempty"`
}

// ResolvedHorizonDays returns the horizon in days; an explicit day count wins
// over years.
func (s *Scenario) ResolvedHorizonDays(daysPerYear int) int {
	if s.HorizonDays != nil {
		return *s.HorizonDays
	}
	return dateutil.YearsToDays(s.HorizonYears, daysPerYear)
}
