package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

const (
	// ZeroAddress represents the zero address.
	ZeroAddress = "0x0000000000000000000000000000000000000000"
)

// MustParseABI parses a JSON ABI definition and panics on malformed input.
// Only use it on compile-time constants.
func MustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(errors.Wrap(err, "failed to parse ABI"))
	}
	return parsed
}
