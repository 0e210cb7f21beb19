package account

import (
	"context"

	"github.com/ClipFinance/xchain-mint/chains/evm/generated"
	"github.com/ClipFinance/xchain-mint/chains/evm/utils"
	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

var factoryABI = utils.MustParseABI(generated.AccountFactoryABI)

// ResolveInitCodeHash reads the proxy creation code and implementation from the
// factory and returns keccak256(creationCode ++ uint256(implementation)).
//
// Parameters:
// - ctx: the context for managing the calls.
// - caller: a client on any chain where the factory is deployed.
// - factory: the factory address.
//
// Returns:
// - common.Hash: the init code hash used for CREATE2.
// - error: an error if the factory cannot be read or returns empty values.
func ResolveInitCodeHash(ctx context.Context, caller ethereum.ContractCaller, factory common.Address) (common.Hash, error) {
	code, err := callFactory(ctx, caller, factory, "accountCreationCode")
	if err != nil {
		return common.Hash{}, err
	}
	creationCode, ok := code.([]byte)
	if !ok || len(creationCode) == 0 {
		return common.Hash{}, errors.Wrap(commonerrors.ErrInvalidConfig, "factory returned no creation code")
	}

	impl, err := callFactory(ctx, caller, factory, "basicImplementation")
	if err != nil {
		return common.Hash{}, err
	}
	implementation, ok := impl.(common.Address)
	if !ok || implementation == (common.Address{}) {
		return common.Hash{}, errors.Wrap(commonerrors.ErrInvalidConfig, "factory returned no implementation")
	}

	return crypto.Keccak256Hash(creationCode, common.LeftPadBytes(implementation.Bytes(), 32)), nil
}

func callFactory(ctx context.Context, caller ethereum.ContractCaller, factory common.Address, method string) (interface{}, error) {
	data, err := factoryABI.Pack(method)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to pack %s", method)
	}

	out, err := caller.CallContract(ctx, ethereum.CallMsg{To: &factory, Data: data}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call factory %s", method)
	}

	values, err := factoryABI.Unpack(method, out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unpack %s", method)
	}
	if len(values) != 1 {
		return nil, errors.Errorf("unexpected %s output", method)
	}
	return values[0], nil
}
