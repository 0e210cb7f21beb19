package chains

import (
	"context"
	"sync"

	"github.com/ClipFinance/xchain-mint/chains/evm"
	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ChainConstructor represents a function that constructs a new chain instance.
//
// Parameters:
// - ctx: the context for managing the construction.
// - config: the configuration for the network.
// - logger: the logger for logging purposes.
//
// Returns:
// - types.Chain: the constructed chain instance.
// - error: an error if the chain construction fails.
type ChainConstructor func(ctx context.Context, config *types.NetworkConfig, logger *logrus.Logger) (types.Chain, error)

// ChainFactory defines the interface for chain creation.
type ChainFactory interface {
	// RegisterConstructor registers a new chain constructor for a given chain type.
	//
	// Parameters:
	// - chainType: the type of the chain to register.
	// - constructor: the constructor function for the chain type.
	RegisterConstructor(chainType types.ChainType, constructor ChainConstructor)

	// CreateChain creates a new chain instance based on the configuration.
	//
	// Parameters:
	// - ctx: the context for managing the construction.
	// - config: the configuration for the network.
	// - logger: the logger for logging purposes.
	//
	// Returns:
	// - types.Chain: the created chain instance.
	// - error: an error if the chain creation fails.
	CreateChain(ctx context.Context, config *types.NetworkConfig, logger *logrus.Logger) (types.Chain, error)
}

type chainFactory struct {
	// constructors stores the mapping of chain types to their constructors.
	constructors map[types.ChainType]ChainConstructor
	// constructorsMutex protects access to the constructors map.
	constructorsMutex sync.RWMutex
}

// NewChainFactory creates a new instance of the chain factory with the EVM
// constructor registered.
//
// Returns:
// - ChainFactory: the new chain factory instance.
func NewChainFactory() ChainFactory {
	factory := NewEmptyChainFactory()
	factory.RegisterConstructor(types.EVM, evm.NewEvmChain)
	return factory
}

// NewEmptyChainFactory creates a factory without any registered constructor.
func NewEmptyChainFactory() ChainFactory {
	return &chainFactory{
		constructors: make(map[types.ChainType]ChainConstructor),
	}
}

// RegisterConstructor registers a new chain constructor, replacing any
// previous one for the same type.
func (f *chainFactory) RegisterConstructor(chainType types.ChainType, constructor ChainConstructor) {
	f.constructorsMutex.Lock()
	defer f.constructorsMutex.Unlock()

	f.constructors[chainType] = constructor
}

// CreateChain creates a new chain instance based on the configuration.
func (f *chainFactory) CreateChain(ctx context.Context, config *types.NetworkConfig, logger *logrus.Logger) (types.Chain, error) {
	if config == nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "nil network config")
	}

	f.constructorsMutex.RLock()
	constructor, exists := f.constructors[config.ChainType]
	f.constructorsMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(commonerrors.ErrInvalidChainType, "%q", config.ChainType)
	}

	return constructor(ctx, config, logger)
}
