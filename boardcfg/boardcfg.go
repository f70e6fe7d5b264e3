// Package boardcfg describes a board bring-up plan: crystal, oscillator
// range, FLL reference divide, PLL ratio, system dividers and serial baud.
// A plan can be declared in code or decoded from embedded JSON; Validate
// checks it against the same hardware tables the kinetis drivers enforce
// fatally, giving callers a non-panicking path to reject a bad plan before
// any register is touched.
package boardcfg

import (
	"github.com/andreyvit/tinyjson"

	"kinetis-go/errcode"
	"kinetis-go/kinetis"
	"kinetis-go/x/mathx"
)

// Oscillator range names as they appear in plan JSON.
const (
	RangeLow      = "low"
	RangeHigh     = "high"
	RangeVeryHigh = "very_high"
)

// Plan is one board's clock and serial bring-up parameters.
type Plan struct {
	CrystalHz        uint32 `json:"crystal_hz"`
	OscRange         string `json:"osc_range"`
	OscCapacitancePF uint8  `json:"osc_capacitance_pf"`

	// FLL external reference divide ratio (legal values depend on OscRange).
	FRDiv uint32 `json:"frdiv"`

	// PLL output = CrystalHz * PLLNumerator / PLLDenominator.
	PLLNumerator   uint8 `json:"pll_numerator"`
	PLLDenominator uint8 `json:"pll_denominator"`

	// System clock divisors (1..16), applied to the PLL output.
	CoreDiv  uint32 `json:"core_div"`
	BusDiv   uint32 `json:"bus_div"`
	FlashDiv uint32 `json:"flash_div"`

	Baud uint32 `json:"baud"`
}

// Teensy32 is the stock Teensy 3.2 plan: 16 MHz crystal, 72 MHz core,
// 36 MHz bus, 24 MHz flash, 9600 baud serial.
func Teensy32() Plan {
	return Plan{
		CrystalHz:        16_000_000,
		OscRange:         RangeVeryHigh,
		OscCapacitancePF: 10,
		FRDiv:            512,
		PLLNumerator:     27,
		PLLDenominator:   6,
		CoreDiv:          1,
		BusDiv:           2,
		FlashDiv:         3,
		Baud:             9600,
	}
}

var lowFRDivs = [...]uint32{1, 2, 4, 8, 16, 32, 64, 128}
var highFRDivs = [...]uint32{32, 64, 128, 256, 512, 1024, 1280, 1536}

func frdivLegal(rng string, div uint32) bool {
	table := highFRDivs[:]
	if rng == RangeLow {
		table = lowFRDivs[:]
	}
	for _, d := range table {
		if d == div {
			return true
		}
	}
	return false
}

// Validate reports the first field that the hardware could not accept.
// The checks mirror what the kinetis drivers enforce fatally, plus the
// divider bounds the SIM deliberately does not check.
func (p Plan) Validate() error {
	if p.CrystalHz == 0 {
		return &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Validate", Msg: "crystal_hz is zero"}
	}
	switch p.OscRange {
	case RangeLow, RangeHigh, RangeVeryHigh:
	default:
		return &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Validate", Msg: "unknown osc_range"}
	}
	if p.OscCapacitancePF%2 == 1 || p.OscCapacitancePF > 30 {
		return &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Validate", Msg: "unsupported osc_capacitance_pf"}
	}
	if !frdivLegal(p.OscRange, p.FRDiv) {
		return &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Validate", Msg: "frdiv not in the hardware table for this range"}
	}
	if !mathx.Between(p.PLLNumerator, 24, 55) {
		return &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Validate", Msg: "pll_numerator out of range"}
	}
	if !mathx.Between(p.PLLDenominator, 1, 25) {
		return &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Validate", Msg: "pll_denominator out of range"}
	}
	for _, d := range [...]uint32{p.CoreDiv, p.BusDiv, p.FlashDiv} {
		if !mathx.Between(d, 1, 16) {
			return &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Validate", Msg: "divider outside 1..16"}
		}
	}
	if p.Baud == 0 {
		return &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Validate", Msg: "baud is zero"}
	}
	return nil
}

// MCGRange maps the plan's oscillator range name onto the MCG selector.
// Validate vets the name; an unvalidated unknown name falls back to the
// very-high range, the common crystal case.
func (p Plan) MCGRange() kinetis.OscRange {
	switch p.OscRange {
	case RangeLow:
		return kinetis.RangeLow
	case RangeHigh:
		return kinetis.RangeHigh
	default:
		return kinetis.RangeVeryHigh
	}
}

// PLLHz is the PLL output frequency.
func (p Plan) PLLHz() uint32 {
	return uint32(uint64(p.CrystalHz) * uint64(p.PLLNumerator) / uint64(p.PLLDenominator))
}

// CoreHz, BusHz and FlashHz are the divided system clocks.
func (p Plan) CoreHz() uint32  { return p.PLLHz() / p.CoreDiv }
func (p Plan) BusHz() uint32   { return p.PLLHz() / p.BusDiv }
func (p Plan) FlashHz() uint32 { return p.PLLHz() / p.FlashDiv }

// UARTDivisor derives the (divisor, fine-adjust) tuple the UART takes: the
// module clock divided by 16*baud, as a 13-bit integer with a 1/32
// fractional part, rounded to the nearest 1/32.
func UARTDivisor(clockHz, baud uint32) (divisor uint16, fineAdjust uint8) {
	if baud == 0 {
		return 0, 0
	}
	d32 := mathx.RoundDiv(2*clockHz, baud) // 32 * clock / (16 * baud)
	d32 = mathx.Clamp(d32, 32, 0x1FFF*32+31)
	return uint16(d32 / 32), uint8(d32 % 32)
}

// Parse decodes a plan from JSON. Unknown keys are ignored; missing keys
// leave their fields zero, for Validate to catch.
func Parse(raw []byte) (Plan, error) {
	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return Plan{}, &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Parse", Msg: "plan is not a JSON object"}
	}

	var p Plan
	p.CrystalHz = asUint32(m["crystal_hz"])
	p.OscRange = asString(m["osc_range"])
	p.OscCapacitancePF = uint8(asUint32(m["osc_capacitance_pf"]))
	p.FRDiv = asUint32(m["frdiv"])
	p.PLLNumerator = uint8(asUint32(m["pll_numerator"]))
	p.PLLDenominator = uint8(asUint32(m["pll_denominator"]))
	p.CoreDiv = asUint32(m["core_div"])
	p.BusDiv = asUint32(m["bus_div"])
	p.FlashDiv = asUint32(m["flash_div"])
	p.Baud = asUint32(m["baud"])
	return p, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asUint32(v any) uint32 {
	switch n := v.(type) {
	case float64:
		return uint32(n)
	case int:
		return uint32(n)
	case int64:
		return uint32(n)
	case uint64:
		return uint32(n)
	}
	return 0
}
