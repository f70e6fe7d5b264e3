package kinetis

// Watchdog unlock key sequence and STCTRLH enable bit.
const (
	wdogUnlockKey1 uint16 = 0xC520
	wdogUnlockKey2 uint16 = 0xD928

	wdogStctrlhEnable uint16 = 1 << 0
)

// Watchdog controls the watchdog timer. The chip boots with it armed, so
// it must be disabled (or fed) before the clock chain runs: a watchdog
// reset mid-configuration leaves the clock tree half-programmed.
type Watchdog struct {
	regs *wdogRegs
}

func NewWatchdog() *Watchdog {
	return &Watchdog{regs: wdogBlock}
}

// Disable unlocks the watchdog and clears its enable bit. The two unlock
// words must arrive within 20 bus cycles of each other, and the registers
// only accept writes for a short window after unlocking, so this sequence
// stays branch-free.
func (w *Watchdog) Disable() {
	w.regs.unlock.Set(wdogUnlockKey1)
	w.regs.unlock.Set(wdogUnlockKey2)

	// One bus cycle must pass before the control registers unlock;
	// these reads are the delay.
	_ = w.regs.stctrlh.Get()
	_ = w.regs.stctrlh.Get()

	w.regs.stctrlh.ClearBits(wdogStctrlhEnable)
}
