package evm

import (
	"math/big"

	"github.com/ClipFinance/xchain-mint/chains/evm/generated"
	"github.com/ClipFinance/xchain-mint/chains/evm/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	erc20ABI = utils.MustParseABI(generated.ERC20ABI)
	nftABI   = utils.MustParseABI(generated.NFTABI)
)

// EncodeBalanceOf packs an ERC-20 balanceOf(holder) call.
func EncodeBalanceOf(holder common.Address) ([]byte, error) {
	data, err := erc20ABI.Pack("balanceOf", holder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack balanceOf data")
	}
	return data, nil
}

// EncodeApprove packs an ERC-20 approve(spender, amount) call.
//
// Parameters:
// - spender: the address allowed to pull tokens.
// - amount: the exact allowance in base units.
//
// Returns:
// - []byte: the calldata.
// - error: an error if amount is nil or negative.
func EncodeApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, errors.New("approve amount must be non-negative")
	}
	data, err := erc20ABI.Pack("approve", spender, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack approve data")
	}
	return data, nil
}

// EncodeMint packs the zero-argument mint() call.
func EncodeMint() ([]byte, error) {
	data, err := nftABI.Pack("mint")
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack mint data")
	}
	return data, nil
}
