package model_test

import (
	"fmt"

	"github.com/ebalan/strata/effect"
	"github.com/ebalan/strata/model"
	"github.com/ebalan/strata/trend"
)

// ExampleNewGraph shows how the evaluation order is fixed at
// construction: the trend always goes first, then declaration order.
func ExampleNewGraph() {
	tr := trend.NewFlat("trend")
	media := effect.NewLinearRegression("media", effect.Prefix("spend_"), nil)
	lift := effect.NewLinearRegression("lift", effect.Exact("promo"),
		&effect.LinearOptions{Mode: effect.Multiplicative, ScaleBy: "media"})

	g, err := model.NewGraph(tr, media, lift)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, name := range g.Names() {
		fmt.Println(name)
	}
	// Output:
	// trend
	// media
	// lift
}
