package fuzzy_test

import (
	"context"
	"fmt"

	"github.com/alexshd/fuzzy"
)

func ExampleEngine() {
	cold, _ := fuzzy.NewReverseGrade(10, 18)
	warm, _ := fuzzy.NewTriangle(15, 21, 27)
	hot, _ := fuzzy.NewGrade(24, 32)

	engine := fuzzy.New().
		Seed("cold", cold).
		Or("warm", warm).
		Or("hot", hot)

	for _, x := range []float64{5, 22.5, 30} {
		res, err := engine.Evaluate(x)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%g: %s %.2f\n", x, res, res.Float64())
	}
	// Output:
	// 5: cold 1.00
	// 22.5: warm 0.75
	// 30: hot 0.75
}

func ExampleTrapezoid() {
	tr, _ := fuzzy.NewTrapezoid(0, 2, 4, 6)
	for _, x := range []float64{1, 3, 5, 7} {
		fmt.Printf("%g -> %.1f\n", x, tr.Fuzzify(x))
	}
	// Output:
	// 1 -> 0.5
	// 3 -> 1.0
	// 5 -> 0.5
	// 7 -> 0.0
}

func ExampleSummarize() {
	cold, _ := fuzzy.NewReverseGrade(10, 18)
	hot, _ := fuzzy.NewGrade(14, 30)
	engine := fuzzy.New().Seed("cold", cold).Or("hot", hot)

	xs, _ := fuzzy.Range(0, 40, 1)
	samples, err := fuzzy.Sweep(context.Background(), engine, xs, fuzzy.DefaultSweepConfig())
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, b := range fuzzy.Summarize(samples).Boundaries {
		fmt.Printf("%s -> %s between %g and %g\n", b.FromLabel, b.ToLabel, b.From, b.To)
	}
	// Output:
	// cold -> hot between 16 and 17
}
