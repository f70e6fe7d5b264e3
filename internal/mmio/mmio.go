// Package mmio gives typed access to memory-mapped hardware registers.
//
// Register blocks are plain structs of Register8/16/32 fields whose layout
// matches the silicon byte-for-byte; a block is reached by casting the
// peripheral base address to the struct type on hardware builds, or by
// pointing the same struct at an in-memory fake under test. Every access is
// a single load or store of the full register width, through the helper
// methods only, so callers reason about read-modify-write hazards locally.
package mmio

// The underlying cell types carry the TinyGo volatile pragma so register
// accesses are never reordered or elided on hardware builds. Under the
// standard toolchain (host tests) the pragma is inert and the cells behave
// as ordinary memory.

//go:volatile
type cell8 uint8

//go:volatile
type cell16 uint16

//go:volatile
type cell32 uint32

// Register8 is an 8-bit hardware register.
type Register8 struct {
	reg cell8
}

func (r *Register8) Get() uint8  { return uint8(r.reg) }
func (r *Register8) Set(v uint8) { r.reg = cell8(v) }

// SetBits performs a read-modify-write to set the bits in mask.
func (r *Register8) SetBits(mask uint8) { r.Set(r.Get() | mask) }

// ClearBits performs a read-modify-write to clear the bits in mask.
func (r *Register8) ClearBits(mask uint8) { r.Set(r.Get() &^ mask) }

// HasBits reports whether any bit in mask reads as set.
func (r *Register8) HasBits(mask uint8) bool { return r.Get()&mask != 0 }

// ReplaceBits writes value into the field of width mask at bit position pos,
// leaving the rest of the register untouched. mask is right-aligned
// (e.g. 0x7 for a 3-bit field).
func (r *Register8) ReplaceBits(value, mask, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | (value&mask)<<pos)
}

// Bits reads the right-aligned field of width mask at bit position pos.
func (r *Register8) Bits(mask, pos uint8) uint8 {
	return (r.Get() >> pos) & mask
}

// Register16 is a 16-bit hardware register.
type Register16 struct {
	reg cell16
}

func (r *Register16) Get() uint16              { return uint16(r.reg) }
func (r *Register16) Set(v uint16)             { r.reg = cell16(v) }
func (r *Register16) SetBits(mask uint16)      { r.Set(r.Get() | mask) }
func (r *Register16) ClearBits(mask uint16)    { r.Set(r.Get() &^ mask) }
func (r *Register16) HasBits(mask uint16) bool { return r.Get()&mask != 0 }

// Register32 is a 32-bit hardware register.
type Register32 struct {
	reg cell32
}

func (r *Register32) Get() uint32              { return uint32(r.reg) }
func (r *Register32) Set(v uint32)             { r.reg = cell32(v) }
func (r *Register32) SetBits(mask uint32)      { r.Set(r.Get() | mask) }
func (r *Register32) ClearBits(mask uint32)    { r.Set(r.Get() &^ mask) }
func (r *Register32) HasBits(mask uint32) bool { return r.Get()&mask != 0 }

func (r *Register32) ReplaceBits(value, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | (value&mask)<<pos)
}

func (r *Register32) Bits(mask uint32, pos uint8) uint32 {
	return (r.Get() >> pos) & mask
}
