package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	res, err := calc.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	// Find the shortest band across scenarios
	minLen := -1
	for _, s := range res.Scenarios {
		if minLen == -1 || s.Result.Days() < minLen {
			minLen = s.Result.Days()
		}
	}
	if minLen <= 0 {
		fmt.Println("no projection data")
		return
	}

	// Header
	header := "Day"
	for i := range res.Scenarios {
		header += fmt.Sprintf(",S%d_P10,S%d_P50,S%d_P90", i+1, i+1, i+1)
	}
	fmt.Println(header)

	// One row per 30 days plus the last day
	for day := 0; day < minLen; day++ {
		if day%30 != 0 && day != minLen-1 {
			continue
		}
		row := fmt.Sprintf("%d", day)
		for _, s := range res.Scenarios {
			b := s.Result.QuantileBand
			row += fmt.Sprintf(",%.0f,%.0f,%.0f", b.P10[day], b.P50[day], b.P90[day])
		}
		fmt.Println(row)
	}

	// If at least two scenarios, find the first day the second median overtakes the first
	if len(res.Scenarios) >= 2 {
		a := res.Scenarios[0].Result.P50
		b := res.Scenarios[1].Result.P50
		for day := 1; day < minLen; day++ {
			if (a[day-1] < b[day-1]) != (a[day] < b[day]) {
				fmt.Printf("\nBreakEven: day %d (%.2f years) S1=%.2f S2=%.2f\n",
					day, float64(day)/calc.DaysPerYear, a[day], b[day])
				return
			}
		}
		fmt.Printf("\nBreakEven: none within %d days\n", minLen-1)
	}
}
