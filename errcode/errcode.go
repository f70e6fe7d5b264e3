package errcode

// Code is a stable error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
//
// Every code here is fatal at the point of detection: the drivers panic
// rather than return, because a half-configured clock tree or a
// double-claimed register block is not safe to continue from. Tests observe
// the code with recover and Of.
const (
	OK Code = "ok"

	// Duplicate acquisition of a singleton register block.
	AlreadyActive Code = "already_active"

	// Numeric argument outside a hardware-supported table or range.
	InvalidParam Code = "invalid_param"

	// Pin cannot be routed to the requested peripheral function.
	InvalidPinFunction Code = "invalid_pin_function"

	// Live register bits match no configuration this driver can produce.
	BadClockState Code = "bad_clock_state"

	UnknownPin        Code = "unknown_pin"
	PinInUse          Code = "pin_in_use"
	UnknownPeripheral Code = "unknown_peripheral"
	GateInUse         Code = "gate_in_use"

	// The one non-fatal code: an I2C target did not acknowledge. Bus
	// traffic happens after bring-up, so this one is returned, not panicked.
	Nack Code = "nack"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
