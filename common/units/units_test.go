package units

import (
	"math/big"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		value    *big.Int
		decimals uint8
		want     string
	}{
		{big.NewInt(5_000_000), 6, "5.0"},
		{big.NewInt(1_500_000), 6, "1.5"},
		{big.NewInt(100_000), 6, "0.1"},
		{big.NewInt(1), 6, "0.000001"},
		{big.NewInt(0), 6, "0.0"},
		{nil, 6, "0.0"},
		{big.NewInt(42), 0, "42.0"},
	}
	for _, tc := range cases {
		if got := Format(tc.value, tc.decimals); got != tc.want {
			t.Errorf("Format(%v, %d) = %q, want %q", tc.value, tc.decimals, got, tc.want)
		}
	}
}
