package kinetis

import "io"

// UART0 register bits used by the polled driver.
const (
	uartBDHSbrMask uint8 = 0x1F // divisor bits 8..12
	uartC4BrfaMask uint8 = 0x1F // 1/32 fractional fine-adjust

	uartC2TE uint8 = 1 << 3
	uartC2RE uint8 = 1 << 2

	uartS1TDRE uint8 = 1 << 7
	uartS1RDRF uint8 = 1 << 5
)

// UART is the polled UART0 driver. It is minted by SIM from the pin
// capabilities that prove RX/TX are routed, plus the (divisor, fine-adjust)
// baud tuple; boardcfg.UARTDivisor derives the tuple from a clock and baud
// rate. There are no interrupts and no buffering: writes spin on TDRE,
// reads spin on RDRF.
type UART struct {
	regs *uartRegs
	rx   *SerialRx
	tx   *SerialTx
	gate *ClockGate
}

var _ io.Writer = (*UART)(nil)

func newUART(rx *SerialRx, tx *SerialTx, divisor uint16, fineAdjust uint8, gate *ClockGate) *UART {
	u := &UART{regs: uartBlock, rx: rx, tx: tx, gate: gate}

	u.regs.bdh.ReplaceBits(uint8(divisor>>8), uartBDHSbrMask, 0)
	u.regs.bdl.Set(uint8(divisor))
	u.regs.c4.ReplaceBits(fineAdjust, uartC4BrfaMask, 0)

	var c2 uint8
	if tx != nil {
		c2 |= uartC2TE
	}
	if rx != nil {
		c2 |= uartC2RE
	}
	u.regs.c2.SetBits(c2)
	return u
}

// WriteByte blocks until the transmit data register is empty, then sends b.
func (u *UART) WriteByte(b byte) error {
	for !u.regs.s1.HasBits(uartS1TDRE) {
	}
	u.regs.d.Set(b)
	return nil
}

func (u *UART) Write(p []byte) (int, error) {
	for _, b := range p {
		if err := u.WriteByte(b); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Buffered reports whether a received byte is waiting (0 or 1; this UART
// has a single-entry data register in polled mode).
func (u *UART) Buffered() int {
	if u.regs.s1.HasBits(uartS1RDRF) {
		return 1
	}
	return 0
}

// ReadByte blocks until a byte arrives.
func (u *UART) ReadByte() (byte, error) {
	for !u.regs.s1.HasBits(uartS1RDRF) {
	}
	return u.regs.d.Get(), nil
}

// Release disables both directions, returns the pins to their port and
// gates the UART clock back off.
func (u *UART) Release() {
	u.regs.c2.ClearBits(uartC2TE | uartC2RE)
	if u.rx != nil {
		u.rx.Release()
	}
	if u.tx != nil {
		u.tx.Release()
	}
	u.gate.Release()
}
