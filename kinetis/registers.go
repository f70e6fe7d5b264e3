package kinetis

import "kinetis-go/internal/mmio"

// Register block layouts for the MK20DX256. Field order and padding match
// the silicon byte-for-byte; a block is only ever reached through the
// package-level pointers below, which the teensy32 build binds to the fixed
// base addresses and host tests bind to in-memory fakes.

// Peripheral base addresses (K20 sub-family reference manual, ch. 3).
const (
	wdogBase = 0x40052000
	simBase  = 0x40047000
	mcgBase  = 0x40064000
	oscBase  = 0x40065000
	i2c0Base = 0x40066000
	uartBase = 0x4006A000

	portCBase = 0x4004B000
	portBBase = 0x4004A000

	// Bit-band alias of the SIM clock-gate registers: the word for
	// (SCGCr, bit b) sits at 128*(r-1) + 4*b from this base.
	gateBase = 0x42900500

	// GPIO port data bit-band blocks.
	gpioCBase = 0x43FE1000
	gpioBBase = 0x43FE0800
)

// mcgRegs is the multipurpose clock generator, base 0x40064000.
type mcgRegs struct {
	c1    mmio.Register8
	c2    mmio.Register8
	c3    mmio.Register8
	c4    mmio.Register8
	c5    mmio.Register8
	c6    mmio.Register8
	s     mmio.Register8
	_     uint8
	sc    mmio.Register8
	_     uint8
	atcvh mmio.Register8
	atcvl mmio.Register8
	c7    mmio.Register8
	c8    mmio.Register8
}

// simRegs is the system integration module, base 0x40047000.
// SOPT2 and everything after it live 4KB above SOPT1.
type simRegs struct {
	sopt1    mmio.Register32
	sopt1cfg mmio.Register32
	_        [1023]uint32
	sopt2    mmio.Register32
	_        uint32
	sopt4    mmio.Register32
	sopt5    mmio.Register32
	_        uint32
	sopt7    mmio.Register32
	_        [2]uint32
	sdid     mmio.Register32
	_        [3]uint32
	scgc4    mmio.Register32
	scgc5    mmio.Register32
	scgc6    mmio.Register32
	scgc7    mmio.Register32
	clkdiv1  mmio.Register32
	clkdiv2  mmio.Register32
	fcfg1    mmio.Register32
	fcfg2    mmio.Register32
	uidh     mmio.Register32
	uidmh    mmio.Register32
	uidml    mmio.Register32
	uidl     mmio.Register32
}

// gateRegs is the bit-band alias over SCGC1..SCGC7: one word per clock-gate
// bit, 32 words per register. Writing 1 enables the gate, 0 disables it.
type gateRegs [7][32]mmio.Register32

// portRegs is one port control block (PORTB/PORTC).
type portRegs struct {
	pcr   [32]mmio.Register32
	gpclr mmio.Register32
	gpchr mmio.Register32
	_     [24]uint8
	isfr  mmio.Register32
}

// gpioRegs is one GPIO data block in the bit-band alias region: six 32-word
// arrays, one word per pin, so single-pin operations never read-modify-write.
type gpioRegs struct {
	pdor [32]mmio.Register32
	psor [32]mmio.Register32
	pcor [32]mmio.Register32
	ptor [32]mmio.Register32
	pdir [32]mmio.Register32
	pddr [32]mmio.Register32
}

// wdogRegs is the watchdog timer, base 0x40052000.
type wdogRegs struct {
	stctrlh mmio.Register16
	stctrll mmio.Register16
	tovalh  mmio.Register16
	tovall  mmio.Register16
	winh    mmio.Register16
	winl    mmio.Register16
	refresh mmio.Register16
	unlock  mmio.Register16
	tmrouth mmio.Register16
	tmroutl mmio.Register16
	rstcnt  mmio.Register16
	presc   mmio.Register16
}

// oscRegs is the crystal oscillator, base 0x40065000.
type oscRegs struct {
	cr mmio.Register8
}

// uartRegs is UART0, base 0x4006A000 (the registers the polled driver uses).
type uartRegs struct {
	bdh mmio.Register8
	bdl mmio.Register8
	c1  mmio.Register8
	c2  mmio.Register8
	s1  mmio.Register8
	s2  mmio.Register8
	c3  mmio.Register8
	d   mmio.Register8
	ma1 mmio.Register8
	ma2 mmio.Register8
	c4  mmio.Register8
	c5  mmio.Register8
}

// i2cRegs is I2C0, base 0x40066000.
type i2cRegs struct {
	a1   mmio.Register8
	f    mmio.Register8
	c1   mmio.Register8
	s    mmio.Register8
	d    mmio.Register8
	c2   mmio.Register8
	flt  mmio.Register8
	ra   mmio.Register8
	smb  mmio.Register8
	a2   mmio.Register8
	slth mmio.Register8
	sltl mmio.Register8
}

// Live register blocks. regs_teensy32.go points these at the silicon; tests
// point them at fakes.
var (
	mcgBlock  *mcgRegs
	simBlock  *simRegs
	gateBlock *gateRegs
	wdogBlock *wdogRegs
	oscBlock  *oscRegs
	uartBlock *uartRegs
	i2cBlock  *i2cRegs

	portBlock [2]*portRegs
	gpioBlock [2]*gpioRegs
)
