package chainmanager

import (
	"context"
	"sync"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ChainCreator is the part of the chain factory the registry depends on.
type ChainCreator interface {
	CreateChain(ctx context.Context, config *types.NetworkConfig, logger *logrus.Logger) (types.Chain, error)
}

type blockchainRegistry struct {
	logger      *logrus.Logger
	chains      map[uint64]types.Chain
	chainsMutex sync.RWMutex
	factory     ChainCreator
}

// NewChainRegistry creates an empty registry that builds chains through factory.
func NewChainRegistry(factory ChainCreator, logger *logrus.Logger) types.ChainRegistry {
	return &blockchainRegistry{
		chains:  make(map[uint64]types.Chain),
		factory: factory,
		logger:  logger,
	}
}

func (r *blockchainRegistry) Add(ctx context.Context, config *types.NetworkConfig) error {
	r.chainsMutex.RLock()
	_, exists := r.chains[config.ChainID]
	r.chainsMutex.RUnlock()

	if exists {
		return errors.Wrapf(commonerrors.ErrChainExists, "chain %d", config.ChainID)
	}

	chain, err := r.factory.CreateChain(ctx, config, r.logger)
	if err != nil {
		return errors.Wrapf(err, "failed to create chain %s", config.Name)
	}

	r.chainsMutex.Lock()
	r.chains[config.ChainID] = chain
	r.chainsMutex.Unlock()

	return nil
}

func (r *blockchainRegistry) Get(chainID uint64) types.Chain {
	r.chainsMutex.RLock()
	chain := r.chains[chainID]
	r.chainsMutex.RUnlock()
	return chain
}

func (r *blockchainRegistry) Remove(chainID uint64) {
	r.chainsMutex.Lock()
	chain := r.chains[chainID]
	delete(r.chains, chainID)
	r.chainsMutex.Unlock()

	if chain != nil {
		chain.Close()
	}
}

func (r *blockchainRegistry) Close() {
	r.chainsMutex.Lock()
	chains := r.chains
	r.chains = make(map[uint64]types.Chain)
	r.chainsMutex.Unlock()

	for _, chain := range chains {
		chain.Close()
	}
}
