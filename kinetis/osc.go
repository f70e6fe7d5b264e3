package kinetis

import "kinetis-go/errcode"

// OSC CR bits. The load-capacitor bits are reversed relative to their
// weight: SC16P is bit 0, SC2P is bit 3.
const (
	oscCRSC16P  uint8 = 1 << 0
	oscCRSC8P   uint8 = 1 << 1
	oscCRSC4P   uint8 = 1 << 2
	oscCRSC2P   uint8 = 1 << 3
	oscCREnable uint8 = 1 << 7
)

// Osc controls the crystal-oscillator block. It must be enabled, with the
// board's load capacitance selected, before the MCG switches to the
// external reference.
type Osc struct {
	regs *oscRegs
}

func NewOsc() *Osc {
	return &Osc{regs: oscBlock}
}

// OscToken is proof the oscillator was enabled. It is consumed by
// (*FEI).EnableExternalReference so the clock chain cannot reference a
// crystal nobody switched on.
type OscToken struct{}

// Enable switches the oscillator on with the given load capacitance in pF.
// The hardware offers 2/4/8/16 pF capacitor banks, so only even values in
// 0..30 are representable; anything else panics with invalid_param.
func (o *Osc) Enable(capacitancePF uint8) OscToken {
	if capacitancePF%2 == 1 || capacitancePF > 30 {
		panic(&errcode.E{C: errcode.InvalidParam, Op: "osc.Enable", Msg: "unsupported oscillator load capacitance"})
	}

	var cr uint8
	if capacitancePF&2 != 0 {
		cr |= oscCRSC2P
	}
	if capacitancePF&4 != 0 {
		cr |= oscCRSC4P
	}
	if capacitancePF&8 != 0 {
		cr |= oscCRSC8P
	}
	if capacitancePF&16 != 0 {
		cr |= oscCRSC16P
	}
	o.regs.cr.Set(cr | oscCREnable)
	return OscToken{}
}
