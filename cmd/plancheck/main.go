// Command plancheck validates the embedded board plans on the host and
// prints the clock tree and serial divisor each one derives. Useful when
// editing a plan: a mistake shows up here instead of on the bench.
package main

import (
	"fmt"
	"os"

	"kinetis-go/boardcfg"
)

func main() {
	boards := os.Args[1:]
	if len(boards) == 0 {
		boards = boardcfg.Boards()
	}

	bad := false
	for _, name := range boards {
		plan, err := boardcfg.Load(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			bad = true
			continue
		}
		div, fine := boardcfg.UARTDivisor(plan.CoreHz(), plan.Baud)
		fmt.Printf("%s:\n", name)
		fmt.Printf("  crystal %d Hz, range %s, frdiv %d\n", plan.CrystalHz, plan.OscRange, plan.FRDiv)
		fmt.Printf("  pll     %d Hz (x%d/%d)\n", plan.PLLHz(), plan.PLLNumerator, plan.PLLDenominator)
		fmt.Printf("  core    %d Hz  bus %d Hz  flash %d Hz\n", plan.CoreHz(), plan.BusHz(), plan.FlashHz())
		fmt.Printf("  uart    %d baud, divisor %d + %d/32\n", plan.Baud, div, fine)
	}
	if bad {
		os.Exit(1)
	}
}
