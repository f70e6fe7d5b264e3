// Package kinetis is a bare-metal HAL for the MK20DX256 (Teensy 3.1/3.2):
// clock bring-up from the power-on internal reference to a PLL-locked core
// clock, clock gating, and exclusively-owned pin and peripheral handles,
// all by direct register access.
//
// There is no OS, allocator pressure, or scheduler underneath: exclusivity
// is enforced with atomic flags (one per singleton register block, one per
// pin), configuration errors panic at the point of detection, and every
// hardware wait is an unbounded polled loop. The usual shape of a bring-up:
//
//	kinetis.NewWatchdog().Disable()
//	sim := kinetis.NewSIM()
//	sim.SetDividers(1, 2, 3)
//	tok := kinetis.NewOsc().Enable(10)
//
//	fei := kinetis.NewMCG().Clock().(*kinetis.FEI)
//	fei.EnableExternalReference(kinetis.RangeVeryHigh, tok)
//	fei.UseExternal(512).EnablePLL(27, 6).UseAsClockSource()
//
//	led := sim.Port(kinetis.PortC).Pin(5).AsGPIO()
//	led.Output()
//	led.High()
//
// On hardware the register blocks are bound to their fixed addresses by the
// teensy32 build tag; host tests bind them to in-memory fakes instead.
package kinetis
