// Package sessiontest provides in-memory wallets and chain readers for tests.
package sessiontest

import (
	"context"
	"math/big"
	"sync"

	"github.com/ClipFinance/xchain-mint/account"
	"github.com/ClipFinance/xchain-mint/chains/evm/signer"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Test networks and their USDC deployments.
const (
	SepoliaID         uint64 = 11155111
	ArbitrumSepoliaID uint64 = 421614
	BaseSepoliaID     uint64 = 84532
)

// Networks returns the three test networks with their USDC contracts.
func Networks() []*types.NetworkConfig {
	return []*types.NetworkConfig{
		{Name: "sepolia", ChainType: types.EVM, ChainID: SepoliaID, RpcUrl: "memory://sepolia", TokenAddress: "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238"},
		{Name: "arbitrum-sepolia", ChainType: types.EVM, ChainID: ArbitrumSepoliaID, RpcUrl: "memory://arbitrum-sepolia", TokenAddress: "0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d"},
		{Name: "base-sepolia", ChainType: types.EVM, ChainID: BaseSepoliaID, RpcUrl: "memory://base-sepolia", TokenAddress: "0x036CbD53842c5426634e7929541eC2318f3dCF7e"},
	}
}

// AccountParams is a factory configuration usable in tests.
func AccountParams() account.Params {
	return account.Params{
		Type:         "biconomy-v2",
		Factory:      common.HexToAddress("0x000000a56Aaca3e9a4C479ea6b6CD0DbcB6634F5"),
		InitCodeHash: crypto.Keccak256Hash([]byte("proxy")),
		Salt:         "00000000000000000000000000000001",
	}
}

// Chain is an in-memory token reader.
type Chain struct {
	config  *types.NetworkConfig
	balance *big.Int
	err     error

	mu     sync.Mutex
	reads  int
	closed bool
}

func (c *Chain) GetTokenBalance(ctx context.Context, _ string, _ string) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	if c.err != nil {
		return nil, c.err
	}
	return new(big.Int).Set(c.balance), nil
}

func (c *Chain) Config() *types.NetworkConfig { return c.config }

func (c *Chain) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Reads returns how many balance reads the chain served.
func (c *Chain) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Closed reports whether Close was called.
func (c *Chain) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Factory builds in-memory chains with fixed balances.
type Factory struct {
	mu       sync.Mutex
	balances map[uint64]*big.Int
	failures map[uint64]error
	chains   map[uint64]*Chain
	calls    int
}

// NewFactory creates a factory serving balances per chain ID. Unlisted chains read zero.
func NewFactory(balances map[uint64]int64) *Factory {
	f := &Factory{
		balances: make(map[uint64]*big.Int),
		failures: make(map[uint64]error),
		chains:   make(map[uint64]*Chain),
	}
	for id, v := range balances {
		f.balances[id] = big.NewInt(v)
	}
	return f
}

// FailCreate makes CreateChain fail for chainID.
func (f *Factory) FailCreate(chainID uint64, err error) {
	f.mu.Lock()
	f.failures[chainID] = err
	f.mu.Unlock()
}

func (f *Factory) CreateChain(_ context.Context, config *types.NetworkConfig, _ *logrus.Logger) (types.Chain, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.failures[config.ChainID]; err != nil {
		return nil, err
	}

	balance := f.balances[config.ChainID]
	if balance == nil {
		balance = new(big.Int)
	}
	chain := &Chain{config: config, balance: balance}
	f.chains[config.ChainID] = chain
	return chain, nil
}

// Calls returns how many chains were requested.
func (f *Factory) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Chain returns the chain built for chainID, nil if none.
func (f *Factory) Chain(chainID uint64) *Chain {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chains[chainID]
}

// Wallet is an in-memory wallet backed by a fixed key.
type Wallet struct {
	signer signer.Signer

	mu          sync.Mutex
	RequestErr  error
	SignErr     error
	NoAccounts  bool
	signedCount int
	lastSigned  []byte
}

// NewWallet creates a wallet from a hex private key.
func NewWallet(key string) (*Wallet, error) {
	s, err := signer.NewSignerFromHex(key)
	if err != nil {
		return nil, err
	}
	return &Wallet{signer: s}, nil
}

// Address returns the wallet's only account.
func (w *Wallet) Address() common.Address { return w.signer.Address() }

func (w *Wallet) RequestAddresses(context.Context) ([]common.Address, error) {
	if w.RequestErr != nil {
		return nil, w.RequestErr
	}
	if w.NoAccounts {
		return nil, nil
	}
	return []common.Address{w.signer.Address()}, nil
}

func (w *Wallet) SignMessage(_ context.Context, acc common.Address, raw []byte) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.SignErr != nil {
		return nil, w.SignErr
	}
	if acc != w.signer.Address() {
		return nil, errors.Errorf("unknown account %s", acc.Hex())
	}
	w.signedCount++
	w.lastSigned = append([]byte(nil), raw...)
	return w.signer.Sign(raw)
}

// Signed returns the number of signatures produced and the last signed message.
func (w *Wallet) Signed() (int, []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.signedCount, w.lastSigned
}
