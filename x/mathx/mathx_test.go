package mathx

import "testing"

func TestBetween(t *testing.T) {
	if !Between(24, 24, 55) || !Between(55, 24, 55) {
		t.Fatalf("Between should be inclusive")
	}
	if Between(23, 24, 55) || Between(56, 24, 55) {
		t.Fatalf("Between accepted out-of-range value")
	}
	if !Between(5, 10, 1) {
		t.Fatalf("Between should swap reversed bounds")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(7, 0, 5) != 5 || Clamp(-1, 0, 5) != 0 || Clamp(3, 0, 5) != 3 {
		t.Fatalf("Clamp wrong")
	}
}

func TestRoundDiv(t *testing.T) {
	// The UART fine-adjust computation relies on round-half-up.
	if RoundDiv(uint32(3), 2) != 2 {
		t.Fatalf("RoundDiv(3,2) != 2")
	}
	if RoundDiv(uint32(72_000_000), 16*9600) != 468 {
		t.Fatalf("RoundDiv baud divisor wrong")
	}
	if RoundDiv(uint32(1), 0) != 0 {
		t.Fatalf("RoundDiv by zero should yield 0")
	}
}

func TestCeilDiv(t *testing.T) {
	if CeilDiv(uint32(10), 3) != 4 || CeilDiv(uint32(9), 3) != 3 {
		t.Fatalf("CeilDiv wrong")
	}
}
