package kinetis

import (
	"testing"

	"kinetis-go/errcode"
)

func TestNewMCG_SingletonGuard(t *testing.T) {
	resetChip()

	m := NewMCG()
	if got := panicCode(t, func() { NewMCG() }); got != errcode.AlreadyActive {
		t.Fatalf("second NewMCG = %v, want already_active", got)
	}

	m.Release()
	NewMCG().Release()
}

func TestClock_Classification(t *testing.T) {
	cases := []struct {
		name string
		c1   uint8
		c6   uint8
		want string
	}{
		{"fei", mcgC1IREFS, 0, "fei"},
		{"fbe", srcExternal << mcgC1ClksPos, 0, "fbe"},
		{"pbe", srcExternal << mcgC1ClksPos, mcgC6PLLS, "pbe"},
		{"pbe with stale irefs", srcExternal<<mcgC1ClksPos | mcgC1IREFS, mcgC6PLLS, "pbe"},
	}
	for _, tc := range cases {
		resetChip()
		mcgBlock.c1.Set(tc.c1)
		mcgBlock.c6.Set(tc.c6)

		var got string
		switch NewMCG().Clock().(type) {
		case *FEI:
			got = "fei"
		case *FBE:
			got = "fbe"
		case *PBE:
			got = "pbe"
		}
		if got != tc.want {
			t.Fatalf("%s: classified as %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestClock_UnrepresentableState(t *testing.T) {
	// PLL on but source internal: nothing this driver does produces it.
	resetChip()
	mcgBlock.c1.Set(mcgC1IREFS)
	mcgBlock.c6.Set(mcgC6PLLS)

	m := NewMCG()
	if got := panicCode(t, func() { m.Clock() }); got != errcode.BadClockState {
		t.Fatalf("unrepresentable state = %v, want bad_clock_state", got)
	}
}

func TestClock_ConsumesHandle(t *testing.T) {
	resetChip()
	mcgBlock.c1.Set(mcgC1IREFS)

	m := NewMCG()
	m.Clock()
	if got := panicCode(t, func() { m.Clock() }); got != errcode.BadClockState {
		t.Fatalf("second Clock = %v, want bad_clock_state", got)
	}
}

func TestEnableExternalReference(t *testing.T) {
	resetChip()
	fei := fakeFEI(t)

	mcgBlock.s.Set(mcgSOSCInit) // oscillator reports ready
	fei.EnableExternalReference(RangeVeryHigh, OscToken{})

	if got := mcgBlock.c2.Bits(mcgC2RangeMask, mcgC2RangePos); got != uint8(RangeVeryHigh) {
		t.Fatalf("RANGE0 = %d, want %d", got, RangeVeryHigh)
	}
	if !mcgBlock.c2.HasBits(mcgC2EREFS) {
		t.Fatalf("EREFS0 not set")
	}
}

func TestUseExternal_DividerTables(t *testing.T) {
	low := []struct {
		divide uint32
		code   uint8
	}{
		{1, 0}, {2, 1}, {4, 2}, {8, 3}, {16, 4}, {32, 5}, {64, 6}, {128, 7},
	}
	high := []struct {
		divide uint32
		code   uint8
	}{
		{32, 0}, {64, 1}, {128, 2}, {256, 3}, {512, 4}, {1024, 5}, {1280, 6}, {1536, 7},
	}

	run := func(rng OscRange, divide uint32, want uint8) {
		t.Helper()
		resetChip()
		fei := fakeFEI(t)
		mcgBlock.s.Set(mcgSOSCInit)
		fei.EnableExternalReference(rng, OscToken{})

		mcgBlock.s.Set(srcExternal << mcgSClkstPos) // source switch done
		fei.UseExternal(divide)

		if got := mcgBlock.c1.Bits(mcgC1FrdivMask, mcgC1FrdivPos); got != want {
			t.Fatalf("range %d divide %d: FRDIV = %d, want %d", rng, divide, got, want)
		}
		if got := mcgBlock.c1.Bits(mcgC1ClksMask, mcgC1ClksPos); got != srcExternal {
			t.Fatalf("CLKS not switched to external")
		}
		if mcgBlock.c1.HasBits(mcgC1IREFS) {
			t.Fatalf("IREFS still set")
		}
	}

	for _, tc := range low {
		run(RangeLow, tc.divide, tc.code)
	}
	for _, tc := range high {
		run(RangeHigh, tc.divide, tc.code)
	}
	for _, tc := range high {
		run(RangeVeryHigh, tc.divide, tc.code)
	}
}

func TestUseExternal_InvalidDivider(t *testing.T) {
	cases := []struct {
		rng    OscRange
		divide uint32
	}{
		{RangeLow, 3},
		{RangeLow, 256},    // legal only in the high table
		{RangeVeryHigh, 1}, // legal only in the low table
		{RangeVeryHigh, 48},
		{RangeHigh, 0},
	}
	for _, tc := range cases {
		resetChip()
		fei := fakeFEI(t)
		mcgBlock.s.Set(mcgSOSCInit)
		fei.EnableExternalReference(tc.rng, OscToken{})

		if got := panicCode(t, func() { fei.UseExternal(tc.divide) }); got != errcode.InvalidParam {
			t.Fatalf("range %d divide %d = %v, want invalid_param", tc.rng, tc.divide, got)
		}
	}
}

func TestEnablePLL_Bounds(t *testing.T) {
	valid := [][2]uint8{{24, 1}, {27, 6}, {55, 25}}
	for _, tc := range valid {
		resetChip()
		fbe := fakeFBE(t)
		mcgBlock.s.Set(mcgSPLLST | mcgSLOCK0)

		fbe.EnablePLL(tc[0], tc[1])

		if got := mcgBlock.c5.Bits(mcgC5PrdivMask, 0); got != tc[1]-1 {
			t.Fatalf("PRDIV = %d, want %d", got, tc[1]-1)
		}
		if got := mcgBlock.c6.Bits(mcgC6VdivMask, 0); got != tc[0]-24 {
			t.Fatalf("VDIV = %d, want %d", got, tc[0]-24)
		}
		if !mcgBlock.c6.HasBits(mcgC6PLLS) {
			t.Fatalf("PLLS not set")
		}
	}

	invalid := [][2]uint8{{23, 6}, {56, 6}, {27, 0}, {27, 26}}
	for _, tc := range invalid {
		resetChip()
		fbe := fakeFBE(t)
		if got := panicCode(t, func() { fbe.EnablePLL(tc[0], tc[1]) }); got != errcode.InvalidParam {
			t.Fatalf("EnablePLL(%d,%d) = %v, want invalid_param", tc[0], tc[1], got)
		}
	}
}

func TestUseAsClockSource(t *testing.T) {
	resetChip()
	mcgBlock.c1.Set(srcExternal << mcgC1ClksPos)
	mcgBlock.c6.Set(mcgC6PLLS)
	pbe := NewMCG().Clock().(*PBE)

	mcgBlock.s.Set(clkstPLL << mcgSClkstPos)
	pbe.UseAsClockSource()

	if got := mcgBlock.c1.Bits(mcgC1ClksMask, mcgC1ClksPos); got != srcLockedLoop {
		t.Fatalf("CLKS = %d, want locked-loop", got)
	}

	// Terminal transition gives the singleton back.
	NewMCG().Release()
}

func TestChain_EndToEnd(t *testing.T) {
	resetChip()

	tok := NewOsc().Enable(10)
	fei := fakeFEI(t)

	mcgBlock.s.Set(mcgSOSCInit)
	fei.EnableExternalReference(RangeVeryHigh, tok)

	mcgBlock.s.Set(srcExternal << mcgSClkstPos)
	fbe := fei.UseExternal(512)

	mcgBlock.s.SetBits(mcgSPLLST | mcgSLOCK0)
	pbe := fbe.EnablePLL(27, 6)

	mcgBlock.s.Set(clkstPLL<<mcgSClkstPos | mcgSPLLST | mcgSLOCK0)
	pbe.UseAsClockSource()

	// Final register image: PLL from the 16 MHz crystal via /512 FLL
	// reference, 27/6 multiply, system clock on the locked loop.
	if got := mcgBlock.c1.Bits(mcgC1ClksMask, mcgC1ClksPos); got != srcLockedLoop {
		t.Fatalf("CLKS = %d", got)
	}
	if got := mcgBlock.c1.Bits(mcgC1FrdivMask, mcgC1FrdivPos); got != 4 {
		t.Fatalf("FRDIV = %d, want 4 (divide 512)", got)
	}
	if got := mcgBlock.c5.Bits(mcgC5PrdivMask, 0); got != 5 {
		t.Fatalf("PRDIV = %d, want 5", got)
	}
	if got := mcgBlock.c6.Bits(mcgC6VdivMask, 0); got != 3 {
		t.Fatalf("VDIV = %d, want 3", got)
	}

	// A stale stage handle must not re-enter the chain.
	if got := panicCode(t, func() { fei.UseExternal(512) }); got != errcode.BadClockState {
		t.Fatalf("stale FEI reuse = %v, want bad_clock_state", got)
	}
}
