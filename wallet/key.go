package wallet

import (
	"context"

	"github.com/ClipFinance/xchain-mint/chains/evm/signer"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// KeyWallet signs with a local private key. It exposes exactly one account.
type KeyWallet struct {
	signer signer.Signer
}

// NewKeyWallet creates a wallet from a hex encoded private key.
func NewKeyWallet(privateKey string) (*KeyWallet, error) {
	s, err := signer.NewSignerFromHex(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load wallet key")
	}
	return &KeyWallet{signer: s}, nil
}

func (w *KeyWallet) RequestAddresses(ctx context.Context) ([]common.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []common.Address{w.signer.Address()}, nil
}

func (w *KeyWallet) SignMessage(ctx context.Context, account common.Address, raw []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if account != w.signer.Address() {
		return nil, errors.Errorf("unknown account %s", account.Hex())
	}
	return w.signer.Sign(raw)
}
