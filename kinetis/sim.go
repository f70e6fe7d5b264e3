package kinetis

import (
	"sync/atomic"

	"kinetis-go/errcode"
	"kinetis-go/internal/mmio"
)

// CLKDIV1 divider fields, each storing (divisor - 1).
const (
	clkdivCorePos  = 28
	clkdivBusPos   = 24
	clkdivFlashPos = 16
)

// Peripheral names a clock-gated peripheral the SIM knows how to gate.
type Peripheral uint8

const (
	PeripheralPortB Peripheral = iota
	PeripheralPortC
	PeripheralUART0
	PeripheralI2C0
)

// gateSlot locates a peripheral's clock-gate bit: SCGC register number
// (1-based) and bit index. Fixed by the chip.
type gateSlot struct {
	reg uint8
	bit uint8
}

var gateSlots = [...]gateSlot{
	PeripheralPortB: {5, 10},
	PeripheralPortC: {5, 11},
	PeripheralUART0: {4, 10},
	PeripheralI2C0:  {4, 6},
}

// ClockGate is exclusive enablement of one peripheral clock. While the
// handle is live the gate bit is set; Release gates the clock back off.
type ClockGate struct {
	word     *mmio.Register32
	released bool
}

// Release disables the peripheral clock. It works exactly once per handle;
// a stale second release panics with gate_in_use rather than gating off a
// clock a new owner has since enabled.
func (g *ClockGate) Release() {
	if g.released {
		panic(&errcode.E{C: errcode.GateInUse, Op: "gate.Release", Msg: "clock gate handle already released"})
	}
	g.released = true
	g.word.Set(0)
}

var simActive atomic.Bool

// SIM owns the system-integration register block: clock dividers and the
// clock gates for every peripheral this HAL hands out. At most one live
// instance exists process-wide.
type SIM struct {
	regs *simRegs
}

// NewSIM claims the SIM singleton. A second call while an instance is live
// panics with already_active.
func NewSIM() *SIM {
	if simActive.Swap(true) {
		panic(&errcode.E{C: errcode.AlreadyActive, Op: "kinetis.NewSIM", Msg: "SIM is already active"})
	}
	return &SIM{regs: simBlock}
}

// Release gives the singleton back so a later NewSIM succeeds. Gates minted
// from this instance stay live; they are released individually.
func (s *SIM) Release() {
	simActive.Store(false)
}

// SetDividers programs the core, bus and flash clock divisors in one
// CLKDIV1 write. Each field stores (divisor - 1) in 4 bits.
//
// No bounds are checked: a divisor of 0 or above 16 wraps into the
// neighbouring field and corrupts it. Callers own the obligation to pass
// 1..16 (boardcfg.Plan.Validate is the checked path).
func (s *SIM) SetDividers(core, bus, flash uint32) {
	var clkdiv uint32
	clkdiv |= (core - 1) << clkdivCorePos
	clkdiv |= (bus - 1) << clkdivBusPos
	clkdiv |= (flash - 1) << clkdivFlashPos
	s.regs.clkdiv1.Set(clkdiv)
}

// Gate enables the clock gate for p and returns the owning handle. The gate
// bit already being set means another owner is live, which panics with
// gate_in_use: two drivers sharing one peripheral clock is never intended.
func (s *SIM) Gate(p Peripheral) *ClockGate {
	if int(p) >= len(gateSlots) {
		panic(&errcode.E{C: errcode.UnknownPeripheral, Op: "sim.Gate", Msg: "no clock gate for peripheral"})
	}
	slot := gateSlots[p]
	word := &gateBlock[slot.reg-1][slot.bit]
	if word.Get() != 0 {
		panic(&errcode.E{C: errcode.GateInUse, Op: "sim.Gate", Msg: "peripheral clock gate already enabled"})
	}
	word.Set(1)
	return &ClockGate{word: word}
}

// Port gates the clock for the named port and mints its handle. Port
// uniqueness is delegated to the gate: a second Port for the same name
// fails in Gate with gate_in_use.
func (s *SIM) Port(name PortName) *Port {
	var gate *ClockGate
	switch name {
	case PortB:
		gate = s.Gate(PeripheralPortB)
	case PortC:
		gate = s.Gate(PeripheralPortC)
	default:
		panic(&errcode.E{C: errcode.UnknownPeripheral, Op: "sim.Port", Msg: "no such port"})
	}
	return newPort(name, gate)
}

// UART gates UART n and mints the polled serial driver. Only UART0 exists
// in this HAL. rx and tx may each be nil; the matching direction is then
// left disabled. divisor and fineAdjust are the 13-bit baud divisor and the
// 1/32 fractional fine-adjust (see boardcfg.UARTDivisor).
func (s *SIM) UART(n uint8, rx *SerialRx, tx *SerialTx, divisor uint16, fineAdjust uint8) *UART {
	if n != 0 {
		panic(&errcode.E{C: errcode.UnknownPeripheral, Op: "sim.UART", Msg: "no clock gate for UART"})
	}
	gate := s.Gate(PeripheralUART0)
	return newUART(rx, tx, divisor, fineAdjust, gate)
}

// I2C gates I2C n and mints the polled master driver from its pin
// capabilities. Only I2C0 exists in this HAL.
func (s *SIM) I2C(n uint8, scl *I2CSCL, sda *I2CSDA) *I2C {
	if n != 0 {
		panic(&errcode.E{C: errcode.UnknownPeripheral, Op: "sim.I2C", Msg: "no clock gate for I2C"})
	}
	gate := s.Gate(PeripheralI2C0)
	return newI2C(scl, sda, gate)
}
