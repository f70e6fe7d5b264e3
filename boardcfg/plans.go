package boardcfg

import (
	"sort"

	"kinetis-go/errcode"
)

// -----------------------------------------------------------------------------
// Embedded plans
//
// Key: board name
// Val: raw JSON bytes for that board's bring-up plan
// -----------------------------------------------------------------------------

const planTeensy32 = `{
  "crystal_hz": 16000000,
  "osc_range": "very_high",
  "osc_capacitance_pf": 10,
  "frdiv": 512,
  "pll_numerator": 27,
  "pll_denominator": 6,
  "core_div": 1,
  "bus_div": 2,
  "flash_div": 3,
  "baud": 9600
}`

var embeddedPlans = map[string][]byte{
	"teensy32": []byte(planTeensy32),
}

// Boards lists the boards with an embedded plan, sorted by name.
func Boards() []string {
	names := make([]string, 0, len(embeddedPlans))
	for name := range embeddedPlans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Embedded returns the raw plan JSON for a board, if one is compiled in.
func Embedded(board string) ([]byte, bool) {
	b, ok := embeddedPlans[board]
	return b, ok
}

// Load parses and validates the embedded plan for a board.
func Load(board string) (Plan, error) {
	raw, ok := Embedded(board)
	if !ok {
		return Plan{}, &errcode.E{C: errcode.InvalidParam, Op: "boardcfg.Load", Msg: "no embedded plan for board"}
	}
	p, err := Parse(raw)
	if err != nil {
		return Plan{}, err
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// MustLoad is Load for bring-up paths, where a bad plan is fatal anyway.
func MustLoad(board string) Plan {
	p, err := Load(board)
	if err != nil {
		panic(err)
	}
	return p
}
