package evm

import (
	"context"
	"sync"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// evm represents a read-only EVM chain implementation.
type evm struct {
	config *types.NetworkConfig // Network configuration.
	logger *logrus.Logger       // Logger for logging events.

	clientMutex sync.RWMutex      // Mutex for client.
	client      *ethclient.Client // Ethereum client.
}

// NewEvmChain creates a new EVM chain implementation.
// The RPC endpoint must report the configured chain ID.
//
// Parameters:
// - ctx: the context for managing the request.
// - config: the network configuration.
// - logger: the logger for logging events.
//
// Returns:
// - types.Chain: a new EVM chain instance.
// - error: an error if dialing fails or the endpoint serves another network.
func NewEvmChain(ctx context.Context, config *types.NetworkConfig, logger *logrus.Logger) (types.Chain, error) {
	client, err := ethclient.DialContext(ctx, config.RpcUrl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}

	chain := &evm{
		config: config,
		logger: logger,
		client: client,
	}

	if err := chain.verifyChainID(ctx); err != nil {
		client.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"chain":   config.Name,
		"chainId": config.ChainID,
	}).Debug("Read client ready")

	return chain, nil
}

// verifyChainID checks that the endpoint serves the configured network.
func (e *evm) verifyChainID(ctx context.Context) error {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to get chain id of %s", e.config.Name)
	}

	if !chainID.IsUint64() || chainID.Uint64() != e.config.ChainID {
		return errors.Wrapf(commonerrors.ErrNetworkMismatch, "%s: endpoint reports %s, configured %d",
			e.config.Name, chainID, e.config.ChainID)
	}

	return nil
}

// Config returns the network configuration.
func (e *evm) Config() *types.NetworkConfig {
	return e.config
}

// Close closes the client. It is safe to call more than once.
func (e *evm) Close() {
	e.clientMutex.Lock()
	defer e.clientMutex.Unlock()

	if e.client != nil {
		e.client.Close()
		e.client = nil
	}
}
