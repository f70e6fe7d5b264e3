//go:build teensy32

package main

import (
	"kinetis-go/boardcfg"
	"kinetis-go/kinetis"
)

// delay spins for roughly n iterations. Reading a hardware register each
// time keeps the loop from being folded away.
func delay(led *kinetis.GPIO, n int) {
	for i := 0; i < n; i++ {
		led.Get()
	}
}

func main() {
	kinetis.NewWatchdog().Disable()

	plan := boardcfg.MustLoad("teensy32")

	sim := kinetis.NewSIM()
	sim.SetDividers(plan.CoreDiv, plan.BusDiv, plan.FlashDiv)

	// LED is pin 5 of port C; claim it before the clocks come up so a
	// wiring mistake in the plan still leaves us able to signal.
	portC := sim.Port(kinetis.PortC)
	led := portC.Pin(5).AsGPIO()
	led.Output()

	token := kinetis.NewOsc().Enable(plan.OscCapacitancePF)

	mcg := kinetis.NewMCG()
	fei, ok := mcg.Clock().(*kinetis.FEI)
	if !ok {
		panic("mcg not in its reset clock mode")
	}
	fei.EnableExternalReference(plan.MCGRange(), token)
	fbe := fei.UseExternal(plan.FRDiv)
	pbe := fbe.EnablePLL(plan.PLLNumerator, plan.PLLDenominator)
	pbe.UseAsClockSource()

	portB := sim.Port(kinetis.PortB)
	rx := portB.Pin(16).AsSerialRx()
	tx := portB.Pin(17).AsSerialTx()
	divisor, fine := boardcfg.UARTDivisor(plan.CoreHz(), plan.Baud)
	serial := sim.UART(0, rx, tx, divisor, fine)

	serial.Write([]byte("Hello, World\r\n"))

	for {
		led.High()
		delay(led, 2_000_000)
		led.Low()
		delay(led, 2_000_000)
	}
}
