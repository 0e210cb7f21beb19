// Package session connects the owner wallet and exposes the multichain view of its smart account.
package session

import (
	"context"

	"github.com/ClipFinance/xchain-mint/account"
	"github.com/ClipFinance/xchain-mint/chainmanager"
	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ClipFinance/xchain-mint/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Settings holds what Initialize needs besides the wallet.
//
// Fields:
// - Networks: the networks to read, each with its token deployment.
// - TokenSymbol: the unified asset symbol.
// - TokenDecimals: the decimal base shared by every deployment.
// - Account: the smart-account factory parameters.
// - ReferenceChainID: the chain whose account address is shown to the user.
type Settings struct {
	Networks         []*types.NetworkConfig
	TokenSymbol      string
	TokenDecimals    uint8
	Account          account.Params
	ReferenceChainID uint64
}

// Session is the connected state produced by Initialize. It is replaced, never mutated,
// on reconnect.
type Session struct {
	wallet           wallet.Wallet
	account          *account.Account
	client           *chainmanager.MultichainClient
	mapping          *types.TokenMapping
	referenceChainID uint64
}

// Initializer builds sessions.
type Initializer struct {
	factory  chainmanager.ChainCreator
	settings Settings
	logger   *logrus.Logger
}

// NewInitializer creates an initializer that builds readers through factory.
func NewInitializer(factory chainmanager.ChainCreator, settings Settings, logger *logrus.Logger) *Initializer {
	return &Initializer{
		factory:  factory,
		settings: settings,
		logger:   logger,
	}
}

// Initialize connects the wallet and prepares the multichain session.
//
// Parameters:
// - ctx: the context for managing the connection.
// - w: the wallet, nil when none is available.
//
// Returns:
// - *Session: the initialized session.
// - error: ErrWalletUnavailable when w is nil, ErrConnectionFailed for any other failure.
func (i *Initializer) Initialize(ctx context.Context, w wallet.Wallet) (*Session, error) {
	if w == nil {
		return nil, commonerrors.ErrWalletUnavailable
	}

	session, err := i.initialize(ctx, w)
	if err != nil {
		i.logger.WithError(err).Warn("Failed to initialize session")
		return nil, commonerrors.Mark(commonerrors.ErrConnectionFailed, err)
	}

	i.logger.WithFields(logrus.Fields{
		"owner":   session.Owner().Hex(),
		"account": session.AccountAddress().Hex(),
	}).Info("Session initialized")

	return session, nil
}

func (i *Initializer) initialize(ctx context.Context, w wallet.Wallet) (*Session, error) {
	addresses, err := w.RequestAddresses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "wallet refused to share accounts")
	}
	if len(addresses) == 0 {
		return nil, errors.New("wallet returned no accounts")
	}
	owner := addresses[0]

	acc, err := account.Derive(owner, i.settings.Account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive smart account")
	}

	mapping, err := BuildTokenMapping(i.settings.TokenSymbol, i.settings.TokenDecimals, i.settings.Networks)
	if err != nil {
		return nil, err
	}

	client, err := chainmanager.NewMultichainClient(ctx, i.factory, i.settings.Networks, i.logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build multichain client")
	}

	return &Session{
		wallet:           w,
		account:          acc,
		client:           client,
		mapping:          mapping,
		referenceChainID: i.settings.ReferenceChainID,
	}, nil
}

// BuildTokenMapping maps every network to its configured token contract.
func BuildTokenMapping(symbol string, decimals uint8, networks []*types.NetworkConfig) (*types.TokenMapping, error) {
	deployments := make([]types.Deployment, 0, len(networks))
	for _, network := range networks {
		if !common.IsHexAddress(network.TokenAddress) {
			return nil, errors.Wrapf(commonerrors.ErrInvalidConfig, "token address %q on %s", network.TokenAddress, network.Name)
		}
		deployments = append(deployments, types.Deployment{
			ChainID: network.ChainID,
			Address: common.HexToAddress(network.TokenAddress),
		})
	}

	mapping, err := types.NewTokenMapping(symbol, decimals, deployments...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build token mapping")
	}
	return mapping, nil
}

// Initialized reports whether s carries a smart account.
func (s *Session) Initialized() bool {
	return s != nil && s.account != nil && s.account.Address(s.referenceChainID) != (common.Address{})
}

// Wallet returns the connected wallet.
func (s *Session) Wallet() wallet.Wallet { return s.wallet }

// Owner returns the EOA that signs for the account.
func (s *Session) Owner() common.Address { return s.account.Owner() }

// Account returns the smart account.
func (s *Session) Account() *account.Account { return s.account }

// AccountAddress is the smart-account address on the reference chain.
func (s *Session) AccountAddress() common.Address {
	return s.account.Address(s.referenceChainID)
}

// Client returns the multichain read client.
func (s *Session) Client() *chainmanager.MultichainClient { return s.client }

// Mapping returns the token mapping.
func (s *Session) Mapping() *types.TokenMapping { return s.mapping }

// Close releases the session's readers.
func (s *Session) Close() {
	if s != nil && s.client != nil {
		s.client.Close()
	}
}

// GetUnifiedBalance sums the token balance of the smart account over every mapped network.
//
// Parameters:
// - ctx: the context for managing the reads.
// - s: the session.
//
// Returns:
// - *types.UnifiedBalance: the aggregated balance.
// - error: ErrSessionNotInitialized for a nil or empty session, or a read error.
func GetUnifiedBalance(ctx context.Context, s *Session) (*types.UnifiedBalance, error) {
	if !s.Initialized() {
		return nil, commonerrors.ErrSessionNotInitialized
	}
	return s.client.UnifiedErc20Balance(ctx, s.AccountAddress(), s.mapping)
}
