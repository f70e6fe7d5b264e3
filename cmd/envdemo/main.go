//go:build teensy32

// Command envdemo brings the chip up to 72 MHz and polls an SHTC3
// temperature/humidity sensor on I2C0 (SCL B2, SDA B3), reporting over
// the serial port at the plan's baud rate.
package main

import (
	"tinygo.org/x/drivers/shtc3"

	"kinetis-go/boardcfg"
	"kinetis-go/kinetis"
	"kinetis-go/x/fmtx"
	"kinetis-go/x/mathx"
)

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

	portC := sim.Port(kinetis.PortC)
	led := portC.Pin(5).AsGPIO()
	led.Output()

	token := kinetis.NewOsc().Enable(plan.OscCapacitancePF)

	mcg := kinetis.NewMCG()
	fei := mcg.Clock().(*kinetis.FEI)
	fei.EnableExternalReference(plan.MCGRange(), token)
	fei.UseExternal(plan.FRDiv).
		EnablePLL(plan.PLLNumerator, plan.PLLDenominator).
		UseAsClockSource()

	portB := sim.Port(kinetis.PortB)
	rx := portB.Pin(16).AsSerialRx()
	tx := portB.Pin(17).AsSerialTx()
	divisor, fine := boardcfg.UARTDivisor(plan.CoreHz(), plan.Baud)
	serial := sim.UART(0, rx, tx, divisor, fine)
	fmtx.DefaultOutput = serial

	scl := portB.Pin(2).AsI2CSCL()
	sda := portB.Pin(3).AsI2CSDA()
	bus := sim.I2C(0, scl, sda)

	sensor := shtc3.New(bus)

	for {
		led.High()

		_ = sensor.WakeUp()
		milliC, rhx100, err := sensor.ReadTemperatureHumidity()
		_ = sensor.Sleep()

		if err != nil {
			fmtx.Printf("shtc3: %s\r\n", err.Error())
		} else {
			fmtx.Printf("t=%d.%d C rh=%d%%\r\n",
				milliC/1000, (mathx.Abs(milliC)%1000)/100, rhx100/100)
		}

		led.Low()
		delay(led, 20_000_000)
	}
}
