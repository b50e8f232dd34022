package main

import (
	"flag"
	"fmt"

	"github.com/rpgo/networth-projection/internal/calculation"
)

func main() {
	seed := flag.Int64("seed", calculation.DemoSeed, "generator seed")
	draws := flag.Int("draws", 4, "uniform and normal draws to print")
	flag.Parse()

	fmt.Printf("Generator draws for seed %d:\n", *seed)
	g := calculation.NewLCG(*seed)
	for i := 0; i < *draws; i++ {
		fmt.Printf("  uniform[%d] = %.12f\n", i, g.NextUniform())
	}
	g = calculation.NewLCG(*seed)
	for i := 0; i < *draws; i++ {
		fmt.Printf("  normal[%d]  = %.12f\n", i, g.NextNormal())
	}

	// Demo projection, first days of path 0
	params := calculation.DemoParams(1)
	params.Seed = *seed
	params.PathCount = 1
	params.HorizonDays = 3
	ens, err := calculation.NewNetWorthSimulator().Simulate(params)
	if err != nil {
		panic(err)
	}
	fmt.Println("Demo path 0:")
	for day, v := range ens.Paths[0] {
		fmt.Printf("  day %d: %.6f\n", day, v)
	}
}
