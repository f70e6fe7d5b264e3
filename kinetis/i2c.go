package kinetis

import (
	"kinetis-go/errcode"

	"tinygo.org/x/drivers"
)

// I2C0 register bits used by the polled master.
const (
	i2cC1IICEN uint8 = 1 << 7
	i2cC1MST   uint8 = 1 << 5
	i2cC1TX    uint8 = 1 << 4
	i2cC1TXAK  uint8 = 1 << 3
	i2cC1RSTA  uint8 = 1 << 2

	i2cSIICIF uint8 = 1 << 1
	i2cSRXAK  uint8 = 1 << 0

	// ICR 0x27 divides the 36 MHz bus clock down to roughly 100 kHz SCL.
	i2cFDefault uint8 = 0x27
)

// I2C is a polled I2C0 master. It is minted by SIM from the SCL/SDA pin
// capabilities, so a live instance implies the pins are routed and the
// clock is gated on. Bus errors (a target not acknowledging) are ordinary
// errors, not fatal: they happen after bring-up, when retrying is
// meaningful.
type I2C struct {
	regs *i2cRegs
	scl  *I2CSCL
	sda  *I2CSDA
	gate *ClockGate
}

// The driver is usable anywhere a tinygo.org/x/drivers bus is expected.
var _ drivers.I2C = (*I2C)(nil)

func newI2C(scl *I2CSCL, sda *I2CSDA, gate *ClockGate) *I2C {
	i := &I2C{regs: i2cBlock, scl: scl, sda: sda, gate: gate}
	i.regs.f.Set(i2cFDefault)
	i.regs.c1.Set(i2cC1IICEN)
	return i
}

// waitTransfer spins until the current byte transfer completes, samples the
// ack bit, then clears the interrupt flag (write-1-to-clear). RXAK must be
// read before the clear; the flag write replaces the status image.
func (i *I2C) waitTransfer() (nacked bool) {
	for !i.regs.s.HasBits(i2cSIICIF) {
	}
	nacked = i.regs.s.HasBits(i2cSRXAK)
	i.regs.s.Set(i2cSIICIF)
	return nacked
}

func (i *I2C) stop() {
	i.regs.c1.Set(i2cC1IICEN)
}

// Tx performs a write of w then, with a repeated start, a read into r, the
// standard combined transaction shape of drivers.I2C. Either slice may be
// empty. addr is the 7-bit target address.
func (i *I2C) Tx(addr uint16, w, r []byte) error {
	if len(w) > 0 || len(r) == 0 {
		// START + address, write direction.
		i.regs.c1.Set(i2cC1IICEN | i2cC1MST | i2cC1TX)
		i.regs.d.Set(uint8(addr<<1) | 0)
		if i.waitTransfer() {
			i.stop()
			return &errcode.E{C: errcode.Nack, Op: "i2c.Tx", Msg: "address not acknowledged"}
		}
		for _, b := range w {
			i.regs.d.Set(b)
			if i.waitTransfer() {
				i.stop()
				return &errcode.E{C: errcode.Nack, Op: "i2c.Tx", Msg: "data not acknowledged"}
			}
		}
	}

	if len(r) > 0 {
		if len(w) > 0 {
			// Repeated START, address again, read direction.
			i.regs.c1.SetBits(i2cC1RSTA)
		} else {
			i.regs.c1.Set(i2cC1IICEN | i2cC1MST | i2cC1TX)
		}
		i.regs.d.Set(uint8(addr<<1) | 1)
		if i.waitTransfer() {
			i.stop()
			return &errcode.E{C: errcode.Nack, Op: "i2c.Tx", Msg: "address not acknowledged"}
		}

		// Receive mode. TXAK must already be high while the final byte is
		// on the wire, so set it up front for single-byte reads.
		c1 := i2cC1IICEN | i2cC1MST
		if len(r) == 1 {
			c1 |= i2cC1TXAK
		}
		i.regs.c1.Set(c1)
		i.regs.d.Get() // dummy read starts reception

		for n := range r {
			i.waitTransfer()
			if n == len(r)-2 {
				i.regs.c1.SetBits(i2cC1TXAK)
			}
			if n == len(r)-1 {
				// STOP before pulling the last byte out, or reading D
				// would clock another byte in.
				i.stop()
			}
			r[n] = i.regs.d.Get()
		}
		return nil
	}

	i.stop()
	return nil
}

// Release disables the module, returns the pins and gates the clock off.
func (i *I2C) Release() {
	i.regs.c1.Set(0)
	i.scl.Release()
	i.sda.Release()
	i.gate.Release()
}
