package kinetis

import (
	"sync/atomic"

	"kinetis-go/errcode"
)

// PortName identifies one of the port control blocks this HAL drives.
type PortName uint8

const (
	PortB PortName = iota
	PortC
)

// PCR pin-mux field: 3 bits at 8..10.
const (
	pcrMuxMask uint32 = 0x7
	pcrMuxPos  uint8  = 8

	muxGPIO uint32 = 1
	muxAlt2 uint32 = 2
	muxAlt3 uint32 = 3
)

// Port owns one port control block and the in-use flag for each of its 32
// pins. Ports are minted by SIM; uniqueness is delegated to the clock gate
// embedded here, which the SIM refuses to mint twice.
type Port struct {
	name  PortName
	regs  *portRegs
	gpio  *gpioRegs
	locks [32]atomic.Bool

	gate *ClockGate
}

func newPort(name PortName, gate *ClockGate) *Port {
	return &Port{
		name: name,
		regs: portBlock[name],
		gpio: gpioBlock[name],
		gate: gate,
	}
}

// Name reports which physical port this is.
func (p *Port) Name() PortName { return p.name }

// Release gates the port clock back off. Live pins minted from this port
// keep their flags; releasing a port with live pins is a caller bug.
func (p *Port) Release() {
	p.gate.Release()
}

// Pin claims pin n exclusively. A pin number outside 0..31 panics with
// unknown_pin; a pin that already has a live handle panics with pin_in_use.
// The claim is an atomic check-and-set, so even reentrant callers get at
// most one handle per pin.
func (p *Port) Pin(n int) *Pin {
	if n < 0 || n >= 32 {
		panic(&errcode.E{C: errcode.UnknownPin, Op: "port.Pin", Msg: "pin number out of range"})
	}
	if p.locks[n].Swap(true) {
		panic(&errcode.E{C: errcode.PinInUse, Op: "port.Pin", Msg: "pin is already in use"})
	}
	return &Pin{port: p, n: n}
}

// setPinFunction routes pin n to the given mux alternative.
func (p *Port) setPinFunction(n int, mux uint32) {
	p.regs.pcr[n].ReplaceBits(mux, pcrMuxMask, pcrMuxPos)
}

func (p *Port) releasePin(n int) {
	p.locks[n].Store(false)
}

// Pin is the exclusive handle for one (port, pin-number) pair. Converting
// it to a capability consumes it; the capability then holds the port's
// in-use flag until the capability itself is released.
type Pin struct {
	port     *Port
	n        int
	consumed bool
	released bool
}

// Number reports the pin index within its port.
func (p *Pin) Number() int { return p.n }

func (p *Pin) consume(op string) {
	if p.consumed {
		panic(&errcode.E{C: errcode.PinInUse, Op: op, Msg: "pin handle already converted"})
	}
	p.consumed = true
}

// putBack returns the pin to the port exactly once. Capability releases
// route through here: a stale handle released twice must not clear a flag
// a new owner has since claimed.
func (p *Pin) putBack(op string) {
	if p.released {
		panic(&errcode.E{C: errcode.PinInUse, Op: op, Msg: "pin already released"})
	}
	p.released = true
	p.port.releasePin(p.n)
}

// Release clears the port's in-use flag, making the pin claimable again.
// A pin that was converted into a capability is released through the
// capability instead.
func (p *Pin) Release() {
	p.consume("pin.Release")
	p.putBack("pin.Release")
}

// AsGPIO consumes the pin and routes it to the GPIO function. Legal for
// every pin.
func (p *Pin) AsGPIO() *GPIO {
	p.consume("pin.AsGPIO")
	p.port.setPinFunction(p.n, muxGPIO)
	return &GPIO{bits: p.port.gpio, pin: p}
}

// AsSerialRx consumes the pin and routes it to its UART receive function.
// Only (PortB, 16) carries UART0 RX; everything else panics with
// invalid_pin_function.
func (p *Pin) AsSerialRx() *SerialRx {
	p.consume("pin.AsSerialRx")
	if p.port.name != PortB || p.n != 16 {
		panic(&errcode.E{C: errcode.InvalidPinFunction, Op: "pin.AsSerialRx", Msg: "pin has no serial receive function"})
	}
	p.port.setPinFunction(p.n, muxAlt3)
	return &SerialRx{uart: 0, pin: p}
}

// AsSerialTx consumes the pin and routes it to its UART transmit function.
// Only (PortB, 17) carries UART0 TX.
func (p *Pin) AsSerialTx() *SerialTx {
	p.consume("pin.AsSerialTx")
	if p.port.name != PortB || p.n != 17 {
		panic(&errcode.E{C: errcode.InvalidPinFunction, Op: "pin.AsSerialTx", Msg: "pin has no serial transmit function"})
	}
	p.port.setPinFunction(p.n, muxAlt3)
	return &SerialTx{uart: 0, pin: p}
}

// AsI2CSCL consumes the pin and routes it to its I2C clock function.
// Only (PortB, 2) carries I2C0 SCL.
func (p *Pin) AsI2CSCL() *I2CSCL {
	p.consume("pin.AsI2CSCL")
	if p.port.name != PortB || p.n != 2 {
		panic(&errcode.E{C: errcode.InvalidPinFunction, Op: "pin.AsI2CSCL", Msg: "pin has no I2C clock function"})
	}
	p.port.setPinFunction(p.n, muxAlt2)
	return &I2CSCL{bus: 0, pin: p}
}

// AsI2CSDA consumes the pin and routes it to its I2C data function.
// Only (PortB, 3) carries I2C0 SDA.
func (p *Pin) AsI2CSDA() *I2CSDA {
	p.consume("pin.AsI2CSDA")
	if p.port.name != PortB || p.n != 3 {
		panic(&errcode.E{C: errcode.InvalidPinFunction, Op: "pin.AsI2CSDA", Msg: "pin has no I2C data function"})
	}
	p.port.setPinFunction(p.n, muxAlt2)
	return &I2CSDA{bus: 0, pin: p}
}

// GPIO is a pin routed to digital I/O. All operations are single whole-word
// writes into the pin's own bit-band words, so driving one pin never
// read-modify-writes a register shared with its neighbours.
type GPIO struct {
	bits *gpioRegs
	pin  *Pin
}

// Output configures the pin as an output.
func (g *GPIO) Output() { g.bits.pddr[g.pin.n].Set(1) }

// Input configures the pin as an input.
func (g *GPIO) Input() { g.bits.pddr[g.pin.n].Set(0) }

// High drives the output level high.
func (g *GPIO) High() { g.bits.psor[g.pin.n].Set(1) }

// Low drives the output level low.
func (g *GPIO) Low() { g.bits.pcor[g.pin.n].Set(1) }

// Toggle inverts the output level.
func (g *GPIO) Toggle() { g.bits.ptor[g.pin.n].Set(1) }

// Get reads the input level.
func (g *GPIO) Get() bool { return g.bits.pdir[g.pin.n].Get()&1 != 0 }

// Release returns the underlying pin to the port. A second release of the
// same handle panics with pin_in_use.
func (g *GPIO) Release() { g.pin.putBack("gpio.Release") }

// SerialRx is a pin routed to a UART receive unit.
type SerialRx struct {
	uart uint8
	pin  *Pin
}

// UARTNumber reports which UART this pin feeds.
func (r *SerialRx) UARTNumber() uint8 { return r.uart }

// Release returns the underlying pin to the port.
func (r *SerialRx) Release() { r.pin.putBack("serialrx.Release") }

// SerialTx is a pin routed to a UART transmit unit.
type SerialTx struct {
	uart uint8
	pin  *Pin
}

func (t *SerialTx) UARTNumber() uint8 { return t.uart }
func (t *SerialTx) Release()          { t.pin.putBack("serialtx.Release") }

// I2CSCL is a pin routed to an I2C clock line.
type I2CSCL struct {
	bus uint8
	pin *Pin
}

func (c *I2CSCL) BusNumber() uint8 { return c.bus }
func (c *I2CSCL) Release()         { c.pin.putBack("i2cscl.Release") }

// I2CSDA is a pin routed to an I2C data line.
type I2CSDA struct {
	bus uint8
	pin *Pin
}

func (d *I2CSDA) BusNumber() uint8 { return d.bus }
func (d *I2CSDA) Release()         { d.pin.putBack("i2csda.Release") }
