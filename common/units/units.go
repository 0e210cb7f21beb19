package units

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders value in base units as a decimal string with decimals
// fractional digits. Trailing zeros are trimmed but at least one fractional
// digit is kept, so 5000000 with 6 decimals renders as "5.0".
func Format(value *big.Int, decimals uint8) string {
	if value == nil {
		value = new(big.Int)
	}
	s := decimal.NewFromBigInt(value, -int32(decimals)).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
