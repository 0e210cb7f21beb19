// Package evmtest inspects calldata built by the evm package in tests.
package evmtest

import (
	"math/big"

	"github.com/ClipFinance/xchain-mint/chains/evm/generated"
	"github.com/ClipFinance/xchain-mint/chains/evm/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var erc20ABI = utils.MustParseABI(generated.ERC20ABI)

// DecodeApprove unpacks approve calldata into spender and amount.
func DecodeApprove(data []byte) (common.Address, *big.Int, error) {
	method, err := erc20ABI.MethodById(data)
	if err != nil {
		return common.Address{}, nil, errors.Wrap(err, "unknown selector")
	}
	if method.Name != "approve" {
		return common.Address{}, nil, errors.Errorf("expected approve, got %s", method.Name)
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return common.Address{}, nil, errors.Wrap(err, "failed to unpack approve data")
	}

	spender, ok := args[0].(common.Address)
	if !ok {
		return common.Address{}, nil, errors.New("unexpected spender type")
	}
	amount, ok := args[1].(*big.Int)
	if !ok {
		return common.Address{}, nil, errors.New("unexpected amount type")
	}

	return spender, amount, nil
}
