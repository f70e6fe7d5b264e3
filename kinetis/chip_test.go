package kinetis

import (
	"testing"

	"kinetis-go/errcode"
)

// resetChip rebinds every register block to a zeroed in-memory fake and
// returns the singleton guards, standing in for a power-on reset.
func resetChip() {
	mcgBlock = &mcgRegs{}
	simBlock = &simRegs{}
	gateBlock = &gateRegs{}
	wdogBlock = &wdogRegs{}
	oscBlock = &oscRegs{}
	uartBlock = &uartRegs{}
	i2cBlock = &i2cRegs{}
	portBlock[PortB] = &portRegs{}
	portBlock[PortC] = &portRegs{}
	gpioBlock[PortB] = &gpioRegs{}
	gpioBlock[PortC] = &gpioRegs{}

	simActive.Store(false)
	mcgActive.Store(false)
}

// panicCode runs fn and returns the errcode carried by its panic.
// Not panicking fails the test.
func panicCode(t *testing.T, fn func()) errcode.Code {
	t.Helper()
	var code errcode.Code
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatalf("expected a panic")
			}
			err, ok := r.(error)
			if !ok {
				t.Fatalf("panic value %v is not an error", r)
			}
			code = errcode.Of(err)
		}()
		fn()
	}()
	return code
}

// fakeFEI arranges the register image a power-on chip shows (FLL engaged,
// internal reference) and walks a fresh MCG to the FEI stage.
func fakeFEI(t *testing.T) *FEI {
	t.Helper()
	mcgBlock.c1.Set(mcgC1IREFS)
	fei, ok := NewMCG().Clock().(*FEI)
	if !ok {
		t.Fatalf("power-on image did not classify as FEI")
	}
	return fei
}

// fakeFBE arranges an externally-referenced image and classifies it.
func fakeFBE(t *testing.T) *FBE {
	t.Helper()
	mcgBlock.c1.Set(srcExternal << mcgC1ClksPos)
	fbe, ok := NewMCG().Clock().(*FBE)
	if !ok {
		t.Fatalf("external image did not classify as FBE")
	}
	return fbe
}
