// Package format renders numbers the way the store screens display them.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var krPrinter = message.NewPrinter(language.Korean)

// Distance renders meters as "350m" below one kilometre and "1.5km" from
// there on.
func Distance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int64(math.Round(meters)))
	}
	// Half-way values round up: 1250 is "1.3km".
	return fmt.Sprintf("%.1fkm", math.Floor(meters/100+0.5)/10)
}

// Price renders an amount in won with thousands grouping, e.g. "12,300원".
func Price(won int64) string {
	return krPrinter.Sprintf("%d원", won)
}
