// Package bridge plans the liquidity moves that put funds on the destination chain.
package bridge

import (
	"context"
	"math/big"
	"sort"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Params describes a single bridge transfer from one source chain.
type Params struct {
	Account            common.Address // Smart account that deposits and receives.
	SourceChainID      uint64
	DestinationChainID uint64
	InputToken         common.Address // Token contract on the source chain.
	OutputToken        common.Address // Token contract on the destination chain.
	Amount             *big.Int       // Amount taken on the source chain.
}

// Result is the encoded transfer.
type Result struct {
	Step         types.Step // Calls to run on the source chain.
	OutputAmount *big.Int   // Amount expected on the destination after fees.
}

// Plugin encodes a bridge transfer for one provider.
type Plugin interface {
	Encode(ctx context.Context, params Params) (*Result, error)
}

// Request is the input to EncodeBridgingOps.
type Request struct {
	Account            common.Address
	Balance            *types.UnifiedBalance
	Mapping            *types.TokenMapping
	DestinationChainID uint64
	Amount             *big.Int
}

// EncodeBridgingOps plans the bridge steps moving Amount to the destination chain.
// Sources are the non-destination chains, largest balance first; each contributes
// up to its balance until Amount is covered.
//
// Parameters:
// - ctx: the context for managing the request.
// - plugin: the bridge provider.
// - req: the bridging request.
//
// Returns:
// - []types.Step: one step per source chain used, in execution order.
// - error: ErrInsufficientBalance if the sources cannot cover Amount, or a plugin error.
func EncodeBridgingOps(ctx context.Context, plugin Plugin, req Request) ([]types.Step, error) {
	if plugin == nil {
		return nil, errors.New("bridge plugin is nil")
	}
	if req.Amount == nil || req.Amount.Sign() < 0 {
		return nil, errors.New("bridge amount must be non-negative")
	}
	if req.Amount.Sign() == 0 {
		return nil, nil
	}

	outputToken, ok := req.Mapping.AddressOn(req.DestinationChainID)
	if !ok {
		return nil, errors.Wrapf(commonerrors.ErrChainNotFound, "token not mapped on destination %d", req.DestinationChainID)
	}

	sources := make([]types.ChainBalance, 0, len(req.Balance.Breakdown))
	for _, b := range req.Balance.Breakdown {
		if b.ChainID == req.DestinationChainID || b.Amount == nil || b.Amount.Sign() <= 0 {
			continue
		}
		sources = append(sources, b)
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Amount.Cmp(sources[j].Amount) > 0
	})

	remaining := new(big.Int).Set(req.Amount)
	steps := make([]types.Step, 0, len(sources))
	for _, source := range sources {
		if remaining.Sign() == 0 {
			break
		}

		take := new(big.Int).Set(source.Amount)
		if take.Cmp(remaining) > 0 {
			take.Set(remaining)
		}

		result, err := plugin.Encode(ctx, Params{
			Account:            req.Account,
			SourceChainID:      source.ChainID,
			DestinationChainID: req.DestinationChainID,
			InputToken:         source.TokenAddress,
			OutputToken:        outputToken,
			Amount:             take,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode bridge from chain %d", source.ChainID)
		}
		if result == nil {
			return nil, errors.Errorf("plugin returned no result for chain %d", source.ChainID)
		}
		if result.Step.ChainID != source.ChainID {
			return nil, errors.Errorf("plugin returned step on chain %d, expected %d", result.Step.ChainID, source.ChainID)
		}

		steps = append(steps, result.Step)
		remaining.Sub(remaining, take)
	}

	if remaining.Sign() > 0 {
		return nil, errors.Wrapf(commonerrors.ErrInsufficientBalance, "short by %s base units", remaining)
	}

	return steps, nil
}
