package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units.
//
// Upstream services serialize amounts inconsistently (bare JSON number,
// quoted number, occasionally with a fractional part), so decoding goes
// through decimal before truncating to minor units.
type Money int64

// UnmarshalJSON accepts both numeric and string encoded amounts.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*m = 0
		return nil
	}

	s = strings.Trim(s, `"`)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid money value %q", s)
	}

	*m = Money(d.IntPart())

	return nil
}
