//go:build teensy32

package kinetis

import "unsafe"

// Linker-provided symbols. Taking their addresses is the only legal use.
//
//go:extern _stack_top
var stackTop [0]byte

//go:extern Reset_Handler
var resetHandler [0]byte

// Minimal Cortex-M4 vector table: initial stack pointer and reset vector.
// The remaining exception slots fall through to the reset handler's fault
// behaviour; nothing here enables interrupts.
//
//go:section .vectors
var vectors = [2]unsafe.Pointer{
	unsafe.Pointer(&stackTop),
	unsafe.Pointer(&resetHandler),
}

// Flash configuration field at 0x400. Bytes 0..11 keep the backdoor key
// and protection words erased. FSEC = 0xDE leaves the chip unsecured with
// mass erase enabled; FOPT = 0xF9 disables EzPort and the low-power boot.
//
//go:section .flashconfig
var flashConfig = [16]byte{
	0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF,
	0xDE, 0xF9, 0xFF, 0xFF,
}

// Keep the linker from discarding the tables.
var _ = vectors
var _ = flashConfig
