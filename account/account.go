// Package account derives counterfactual smart-account addresses.
package account

import (
	"math/big"
	"strings"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Params describes how the account factory deploys accounts.
//
// Fields:
// - Type: the account implementation label sent to the execution node.
// - Factory: the CREATE2 deployer.
// - InitCodeHash: keccak256 of the proxy creation code.
// - Salt: the account index as a hex string.
type Params struct {
	Type         string
	Factory      common.Address
	InitCodeHash common.Hash
	Salt         string
}

// Account is a smart account owned by an EOA. Its address is identical on every chain
// where the factory is deployed at the same address.
type Account struct {
	ref types.AccountRef
}

// Derive computes the account address for owner.
//
// Parameters:
// - owner: the EOA controlling the account.
// - params: the factory parameters.
//
// Returns:
// - *Account: the derived account.
// - error: an error if the owner is zero or the parameters are malformed.
func Derive(owner common.Address, params Params) (*Account, error) {
	if owner == (common.Address{}) {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "owner address is zero")
	}
	if params.Factory == (common.Address{}) {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "account factory is zero")
	}
	if params.InitCodeHash == (common.Hash{}) {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "init code hash is empty")
	}

	index, err := ParseSalt(params.Salt)
	if err != nil {
		return nil, err
	}

	salt := crypto.Keccak256Hash(owner.Bytes(), common.LeftPadBytes(index.Bytes(), 32))
	address := crypto.CreateAddress2(params.Factory, salt, params.InitCodeHash.Bytes())

	return &Account{
		ref: types.AccountRef{
			Type:    params.Type,
			Owner:   owner,
			Salt:    params.Salt,
			Address: address,
		},
	}, nil
}

// ParseSalt reads a hex account index such as "00000000000000000000000000000001".
func ParseSalt(salt string) (*big.Int, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(salt, "0x"), "0X")
	if s == "" {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "account salt is empty")
	}
	index, ok := new(big.Int).SetString(s, 16)
	if !ok || index.BitLen() > 256 {
		return nil, errors.Wrapf(commonerrors.ErrInvalidConfig, "account salt %q is not a 32 byte hex value", salt)
	}
	return index, nil
}

// Owner returns the EOA that owns the account.
func (a *Account) Owner() common.Address {
	return a.ref.Owner
}

// Address returns the account address on the given chain. The factory deploys
// to the same address on every chain.
func (a *Account) Address(_ uint64) common.Address {
	return a.ref.Address
}

// Ref returns the descriptor embedded into intents.
func (a *Account) Ref() types.AccountRef {
	return a.ref
}
