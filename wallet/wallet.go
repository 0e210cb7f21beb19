// Package wallet is the boundary to the owner's signing wallet.
package wallet

import (
	"context"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Wallet is a connected signing wallet.
type Wallet interface {
	// RequestAddresses asks the wallet for its accounts. The first one is the owner.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	//
	// Returns:
	// - []common.Address: the authorized accounts.
	// - error: an error if the user or the wallet refused.
	RequestAddresses(ctx context.Context) ([]common.Address, error)

	// SignMessage signs raw as an EIP-191 personal message with account.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - account: the signing account.
	// - raw: the message bytes, signed as-is.
	//
	// Returns:
	// - []byte: the 65 byte signature.
	// - error: an error if signing fails.
	SignMessage(ctx context.Context, account common.Address, raw []byte) ([]byte, error)
}

// Options selects a wallet implementation. PrivateKey wins over RPCURL.
type Options struct {
	PrivateKey string
	RPCURL     string
}

// FromOptions builds the configured wallet.
//
// Parameters:
// - ctx: the context for managing the dial.
// - opts: the wallet options.
// - logger: the logger for logging purposes.
//
// Returns:
// - Wallet: the wallet.
// - error: ErrWalletUnavailable when no wallet is configured, or a construction error.
func FromOptions(ctx context.Context, opts Options, logger *logrus.Logger) (Wallet, error) {
	switch {
	case opts.PrivateKey != "":
		w, err := NewKeyWallet(opts.PrivateKey)
		if err != nil {
			return nil, err
		}
		logger.WithField("owner", w.signer.Address().Hex()).Info("Using local key wallet")
		return w, nil
	case opts.RPCURL != "":
		w, err := NewRPCWallet(ctx, opts.RPCURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Using external RPC wallet")
		return w, nil
	default:
		return nil, errors.Wrap(commonerrors.ErrWalletUnavailable, "no wallet key or wallet rpc configured")
	}
}
