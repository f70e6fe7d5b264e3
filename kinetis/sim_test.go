package kinetis

import (
	"testing"

	"kinetis-go/errcode"
)

func TestNewSIM_SingletonGuard(t *testing.T) {
	resetChip()

	s := NewSIM()
	if got := panicCode(t, func() { NewSIM() }); got != errcode.AlreadyActive {
		t.Fatalf("second NewSIM = %v, want already_active", got)
	}

	s.Release()
	NewSIM().Release()
}

func TestSetDividers_Packing(t *testing.T) {
	resetChip()
	s := NewSIM()

	// core /1, bus /2, flash /3: each field stores divisor-1.
	s.SetDividers(1, 2, 3)
	if got := simBlock.clkdiv1.Get(); got != 0x01020000 {
		t.Fatalf("CLKDIV1 = %#x, want 0x01020000", got)
	}

	s.SetDividers(16, 16, 16)
	if got := simBlock.clkdiv1.Get(); got != 0xFF0F0000 {
		t.Fatalf("CLKDIV1 = %#x, want 0xFF0F0000", got)
	}
}

func TestGate_Exclusive(t *testing.T) {
	resetChip()
	s := NewSIM()

	g := s.Gate(PeripheralPortB)
	if gateBlock[4][10].Get() != 1 {
		t.Fatalf("SCGC5 bit 10 gate word not set")
	}

	if got := panicCode(t, func() { s.Gate(PeripheralPortB) }); got != errcode.GateInUse {
		t.Fatalf("double gate = %v, want gate_in_use", got)
	}

	g.Release()
	if gateBlock[4][10].Get() != 0 {
		t.Fatalf("release did not clear the gate word")
	}
	s.Gate(PeripheralPortB) // claimable again
}

func TestGate_Slots(t *testing.T) {
	cases := []struct {
		p   Peripheral
		reg uint8
		bit uint8
	}{
		{PeripheralPortB, 5, 10},
		{PeripheralPortC, 5, 11},
		{PeripheralUART0, 4, 10},
		{PeripheralI2C0, 4, 6},
	}
	for _, tc := range cases {
		resetChip()
		s := NewSIM()
		s.Gate(tc.p)
		if gateBlock[tc.reg-1][tc.bit].Get() != 1 {
			t.Fatalf("peripheral %d: gate word (%d,%d) not set", tc.p, tc.reg, tc.bit)
		}
	}
}

func TestGate_StaleRelease(t *testing.T) {
	resetChip()
	s := NewSIM()

	g := s.Gate(PeripheralUART0)
	g.Release()
	s.Gate(PeripheralUART0) // new owner re-enables the clock

	if got := panicCode(t, func() { g.Release() }); got != errcode.GateInUse {
		t.Fatalf("stale gate release = %v, want gate_in_use", got)
	}
	if gateBlock[3][10].Get() != 1 {
		t.Fatalf("stale release disabled the new owner's clock")
	}
}

func TestGate_UnknownPeripheral(t *testing.T) {
	resetChip()
	s := NewSIM()
	if got := panicCode(t, func() { s.Gate(Peripheral(99)) }); got != errcode.UnknownPeripheral {
		t.Fatalf("unknown peripheral = %v", got)
	}
}

func TestPort_UniquenessViaGate(t *testing.T) {
	resetChip()
	s := NewSIM()

	p := s.Port(PortC)
	if p.Name() != PortC {
		t.Fatalf("port name = %v", p.Name())
	}
	if got := panicCode(t, func() { s.Port(PortC) }); got != errcode.GateInUse {
		t.Fatalf("second Port(C) = %v, want gate_in_use", got)
	}

	p.Release()
	s.Port(PortC)
}

func TestUART_UnknownUnit(t *testing.T) {
	resetChip()
	s := NewSIM()
	if got := panicCode(t, func() { s.UART(1, nil, nil, 468, 24) }); got != errcode.UnknownPeripheral {
		t.Fatalf("UART(1) = %v, want unknown_peripheral", got)
	}
}

func TestI2C_UnknownUnit(t *testing.T) {
	resetChip()
	s := NewSIM()
	if got := panicCode(t, func() { s.I2C(1, nil, nil) }); got != errcode.UnknownPeripheral {
		t.Fatalf("I2C(1) = %v, want unknown_peripheral", got)
	}
}
