package effect_test

import (
	"fmt"

	"github.com/ebalan/strata/effect"
)

// ExampleMatchColumns shows selector resolution against a frame's
// column set; matches always preserve the frame's own order.
func ExampleMatchColumns() {
	available := []string{"spend_tv", "price", "spend_web", "promo"}

	fmt.Println(effect.MatchColumns(effect.Prefix("spend_"), available))
	fmt.Println(effect.MatchColumns(effect.Exact("promo", "price"), available))
	// Output:
	// [spend_tv spend_web]
	// [price promo]
}
