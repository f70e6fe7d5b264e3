package kinetis

import (
	"sync/atomic"

	"kinetis-go/errcode"
	"kinetis-go/x/mathx"
)

// The multipurpose clock generator walks a fixed chain of modes on the way
// from the power-on internal reference to a PLL-driven core clock:
//
//	FEI --UseExternal--> FBE --EnablePLL--> PBE --UseAsClockSource--> done
//
// Each mode is a distinct type exposing only its legal transitions. Every
// transition consumes its receiver; Go cannot enforce that statically, so a
// stage counter inside MCG turns reuse of a stale handle into a
// bad_clock_state panic. Each step busy-waits on the status register until
// the hardware confirms the switch - no timeout, because there is no
// software recovery from a clock that never settles.

// MCG C1 fields.
const (
	mcgC1ClksMask  uint8 = 0x3
	mcgC1ClksPos   uint8 = 6
	mcgC1FrdivMask uint8 = 0x7
	mcgC1FrdivPos  uint8 = 3
	mcgC1IREFS     uint8 = 1 << 2
)

// MCG C2 fields.
const (
	mcgC2RangeMask uint8 = 0x3
	mcgC2RangePos  uint8 = 4
	mcgC2EREFS     uint8 = 1 << 2
)

// MCG C5/C6 fields.
const (
	mcgC5PrdivMask uint8 = 0x1F
	mcgC6VdivMask  uint8 = 0x1F
	mcgC6PLLS      uint8 = 1 << 6
)

// MCG S fields.
const (
	mcgSOSCInit   uint8 = 1 << 1
	mcgSClkstMask uint8 = 0x3
	mcgSClkstPos  uint8 = 2
	mcgSIREFST    uint8 = 1 << 4
	mcgSPLLST     uint8 = 1 << 5
	mcgSLOCK0     uint8 = 1 << 6
)

// Clock source selector values (C1 CLKS / S CLKST).
const (
	srcLockedLoop uint8 = 0
	srcInternal   uint8 = 1
	srcExternal   uint8 = 2

	// In the status register the locked-loop code is split: 0 means FLL,
	// 3 means PLL. C1 has no such distinction.
	clkstPLL uint8 = 3
)

// OscRange classifies the external crystal frequency.
type OscRange uint8

const (
	RangeLow      OscRange = 0 // 32.768 kHz
	RangeHigh     OscRange = 1 // 3-8 MHz
	RangeVeryHigh OscRange = 2 // 8-32 MHz
)

// MCG lifecycle stages, used to guard against reuse of consumed handles.
const (
	stageHandle uint8 = iota
	stageFEI
	stageFBE
	stagePBE
	stageDone
)

var mcgActive atomic.Bool

// MCG owns the clock-generator register block. At most one live instance
// exists process-wide.
type MCG struct {
	regs  *mcgRegs
	stage uint8
}

// NewMCG claims the MCG singleton. A second call while an instance is live
// panics with already_active.
func NewMCG() *MCG {
	if mcgActive.Swap(true) {
		panic(&errcode.E{C: errcode.AlreadyActive, Op: "kinetis.NewMCG", Msg: "MCG is already active"})
	}
	return &MCG{regs: mcgBlock}
}

// Release gives the singleton back without touching the hardware, so a
// later NewMCG succeeds.
func (m *MCG) Release() {
	m.stage = stageDone
	mcgActive.Store(false)
}

func (m *MCG) mustBe(stage uint8, op string) {
	if m.stage != stage {
		panic(&errcode.E{C: errcode.BadClockState, Op: op, Msg: "clock handle already consumed"})
	}
}

// Clock is the current clock configuration, exactly one of *FEI, *FBE or
// *PBE.
type Clock interface {
	clockMode()
}

// FEI: FLL engaged, internal reference. The power-on configuration.
type FEI struct{ mcg *MCG }

// FBE: FLL engaged, external reference.
type FBE struct{ mcg *MCG }

// PBE: PLL engaged, external reference, lock confirmed.
type PBE struct{ mcg *MCG }

func (*FEI) clockMode() {}
func (*FBE) clockMode() {}
func (*PBE) clockMode() {}

// Clock consumes the MCG handle and classifies the live hardware state.
// This driver can only ever produce the three modeled configurations, so
// any other bit pattern means foreign initialization or corruption and
// panics with bad_clock_state.
func (m *MCG) Clock() Clock {
	m.mustBe(stageHandle, "mcg.Clock")

	source := m.regs.c1.Bits(mcgC1ClksMask, mcgC1ClksPos)
	fllInternal := m.regs.c1.HasBits(mcgC1IREFS)
	pllEnabled := m.regs.c6.HasBits(mcgC6PLLS)

	switch {
	case fllInternal && !pllEnabled && source == srcLockedLoop:
		m.stage = stageFEI
		return &FEI{mcg: m}
	case !fllInternal && !pllEnabled && source == srcExternal:
		m.stage = stageFBE
		return &FBE{mcg: m}
	case pllEnabled && source == srcExternal:
		m.stage = stagePBE
		return &PBE{mcg: m}
	default:
		panic(&errcode.E{C: errcode.BadClockState, Op: "mcg.Clock", Msg: "live clock mode matches no known configuration"})
	}
}

// Release drops the chain at this stage; see (*MCG).Release.
func (f *FEI) Release() { f.mcg.Release() }
func (f *FBE) Release() { f.mcg.Release() }
func (p *PBE) Release() { p.mcg.Release() }

// EnableExternalReference programs the oscillator range and switches the
// external reference on, then waits for the crystal to report ready. It
// refines the FEI configuration without changing mode. The OscToken proves
// the oscillator block was set up first.
func (f *FEI) EnableExternalReference(rng OscRange, _ OscToken) {
	f.mcg.mustBe(stageFEI, "fei.EnableExternalReference")

	f.mcg.regs.c2.ReplaceBits(uint8(rng), mcgC2RangeMask, mcgC2RangePos)
	f.mcg.regs.c2.SetBits(mcgC2EREFS)

	for !f.mcg.regs.s.HasBits(mcgSOSCInit) {
	}
}

// frdivCode maps an external-reference divide ratio to the 3-bit FRDIV
// code. The legal ratios depend on the programmed oscillator range.
func (f *FEI) frdivCode(divide uint32) uint8 {
	lowRange := f.mcg.regs.c2.Bits(mcgC2RangeMask, mcgC2RangePos) == uint8(RangeLow)
	if lowRange {
		switch divide {
		case 1:
			return 0
		case 2:
			return 1
		case 4:
			return 2
		case 8:
			return 3
		case 16:
			return 4
		case 32:
			return 5
		case 64:
			return 6
		case 128:
			return 7
		}
	} else {
		switch divide {
		case 32:
			return 0
		case 64:
			return 1
		case 128:
			return 2
		case 256:
			return 3
		case 512:
			return 4
		case 1024:
			return 5
		case 1280:
			return 6
		case 1536:
			return 7
		}
	}
	panic(&errcode.E{C: errcode.InvalidParam, Op: "fei.UseExternal", Msg: "invalid external clock divider"})
}

// UseExternal moves FEI -> FBE: the FLL reference divider is programmed and
// the clock source switched to the crystal. Returns only after the status
// register confirms both the reference switch and the source switch.
func (f *FEI) UseExternal(divide uint32) *FBE {
	f.mcg.mustBe(stageFEI, "fei.UseExternal")
	frdiv := f.frdivCode(divide)

	f.mcg.regs.c1.ReplaceBits(srcExternal, mcgC1ClksMask, mcgC1ClksPos)
	f.mcg.regs.c1.ReplaceBits(frdiv, mcgC1FrdivMask, mcgC1FrdivPos)
	f.mcg.regs.c1.ClearBits(mcgC1IREFS)

	// First wait for the FLL to be pointed at the crystal, then for the
	// system clock source to actually be the crystal.
	for f.mcg.regs.s.HasBits(mcgSIREFST) {
	}
	for f.mcg.regs.s.Bits(mcgSClkstMask, mcgSClkstPos) != srcExternal {
	}

	f.mcg.stage = stageFBE
	return &FBE{mcg: f.mcg}
}

// EnablePLL moves FBE -> PBE. numerator (VCO multiply, 24..55) and
// denominator (reference divide, 1..25) are the hardware-supported ranges;
// anything else panics with invalid_param. The PLL output frequency is
// crystal * numerator / denominator. Returns once the PLL reports engaged
// and locked.
func (f *FBE) EnablePLL(numerator, denominator uint8) *PBE {
	f.mcg.mustBe(stageFBE, "fbe.EnablePLL")

	if !mathx.Between(numerator, 24, 55) {
		panic(&errcode.E{C: errcode.InvalidParam, Op: "fbe.EnablePLL", Msg: "PLL VCO divide factor out of range"})
	}
	if !mathx.Between(denominator, 1, 25) {
		panic(&errcode.E{C: errcode.InvalidParam, Op: "fbe.EnablePLL", Msg: "PLL reference divide factor out of range"})
	}

	f.mcg.regs.c5.ReplaceBits(denominator-1, mcgC5PrdivMask, 0)
	f.mcg.regs.c6.ReplaceBits(numerator-24, mcgC6VdivMask, 0)
	f.mcg.regs.c6.SetBits(mcgC6PLLS)

	for !f.mcg.regs.s.HasBits(mcgSPLLST) {
	}
	for !f.mcg.regs.s.HasBits(mcgSLOCK0) {
	}

	f.mcg.stage = stagePBE
	return &PBE{mcg: f.mcg}
}

// UseAsClockSource moves PBE to the terminal PEE configuration: the system
// clock selector is pointed at the locked loop. The selector does not
// distinguish FLL from PLL, which is why this transition only exists on a
// PBE whose lock has been confirmed. The status field does distinguish
// them, so the wait is for the PLL-specific code. The chain ends here and
// the MCG singleton is released.
func (p *PBE) UseAsClockSource() {
	p.mcg.mustBe(stagePBE, "pbe.UseAsClockSource")

	p.mcg.regs.c1.ReplaceBits(srcLockedLoop, mcgC1ClksMask, mcgC1ClksPos)

	for p.mcg.regs.s.Bits(mcgSClkstMask, mcgSClkstPos) != clkstPLL {
	}

	p.mcg.Release()
}
