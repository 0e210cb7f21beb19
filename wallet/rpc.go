package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// RPCWallet talks to an external wallet over JSON-RPC, using the same
// eth_requestAccounts and personal_sign calls an injected browser provider serves.
type RPCWallet struct {
	client *rpc.Client
}

// NewRPCWallet dials the wallet endpoint.
func NewRPCWallet(ctx context.Context, url string) (*RPCWallet, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial wallet")
	}
	return &RPCWallet{client: client}, nil
}

func (w *RPCWallet) RequestAddresses(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := w.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, errors.Wrap(err, "eth_requestAccounts")
	}
	return accounts, nil
}

func (w *RPCWallet) SignMessage(ctx context.Context, account common.Address, raw []byte) ([]byte, error) {
	var signature hexutil.Bytes
	if err := w.client.CallContext(ctx, &signature, "personal_sign", hexutil.Bytes(raw), account); err != nil {
		return nil, errors.Wrap(err, "personal_sign")
	}
	if len(signature) != 65 {
		return nil, errors.Errorf("wallet returned a %d byte signature", len(signature))
	}
	return signature, nil
}

// Close releases the underlying connection.
func (w *RPCWallet) Close() {
	w.client.Close()
}
