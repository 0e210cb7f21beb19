// Package orchestrator runs the cross-chain bridge and mint sequence.
package orchestrator

import (
	"context"
	"math/big"

	"github.com/ClipFinance/xchain-mint/bridge"
	"github.com/ClipFinance/xchain-mint/chains/evm"
	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ClipFinance/xchain-mint/execution"
	"github.com/ClipFinance/xchain-mint/session"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Settings fixes the mint target and the amounts involved.
//
// Fields:
// - DestinationChainID: the chain the mint contract lives on.
// - FeeChainID: the chain fees are paid on.
// - FeeToken: the fee token symbol.
// - MintContract: the NFT contract.
// - MintPrice: the token amount approved to the mint contract.
// - BridgeAmount: the token amount moved to the destination chain.
// - GasLimit: the gas limit of every destination call.
type Settings struct {
	DestinationChainID uint64
	FeeChainID         uint64
	FeeToken           string
	MintContract       common.Address
	MintPrice          *big.Int
	BridgeAmount       *big.Int
	GasLimit           uint64
}

// Receipt identifies a submitted mint.
type Receipt struct {
	IntentHash    common.Hash // Hash of the quoted intent, signed by the owner.
	ExecutionHash common.Hash // Identifier returned by the execution node.
}

// Orchestrator builds, quotes, signs and submits mint intents.
type Orchestrator struct {
	plugin   bridge.Plugin
	service  execution.Service
	settings Settings
	logger   *logrus.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(plugin bridge.Plugin, service execution.Service, settings Settings, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		plugin:   plugin,
		service:  service,
		settings: settings,
		logger:   logger,
	}
}

// ExecuteCrossChainMint bridges funds to the destination chain and mints one NFT
// in a single intent.
//
// Parameters:
// - ctx: the context for managing the sequence.
// - s: the connected session.
//
// Returns:
// - *Receipt: the intent and execution hashes. Settlement is not awaited. When the
//   sequence fails after quoting, the receipt carries only the intent hash.
// - error: ErrSessionNotInitialized before connect, ErrMintFailed for any other failure.
func (o *Orchestrator) ExecuteCrossChainMint(ctx context.Context, s *session.Session) (*Receipt, error) {
	if !s.Initialized() {
		return nil, commonerrors.ErrSessionNotInitialized
	}

	receipt, err := o.execute(ctx, s)
	if err != nil {
		o.logger.WithField("account", s.AccountAddress().Hex()).WithError(err).Error("Cross-chain mint failed")
		return receipt, commonerrors.Mark(commonerrors.ErrMintFailed, err)
	}
	return receipt, nil
}

func (o *Orchestrator) execute(ctx context.Context, s *session.Session) (*Receipt, error) {
	logger := o.logger.WithFields(logrus.Fields{
		"owner":   s.Owner().Hex(),
		"account": s.AccountAddress().Hex(),
	})

	balance, err := session.GetUnifiedBalance(ctx, s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read unified balance")
	}

	bridgeSteps, err := bridge.EncodeBridgingOps(ctx, o.plugin, bridge.Request{
		Account:            s.AccountAddress(),
		Balance:            balance,
		Mapping:            s.Mapping(),
		DestinationChainID: o.settings.DestinationChainID,
		Amount:             o.settings.BridgeAmount,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode bridging operations")
	}

	mintStep, err := o.mintBatch(s.Mapping())
	if err != nil {
		return nil, err
	}

	intent := types.BuildIntent(s.Account().Ref(), append(bridgeSteps, mintStep), types.FeePayment{
		ChainID: o.settings.FeeChainID,
		Token:   o.settings.FeeToken,
	})

	quote, err := o.service.GetQuote(ctx, intent)
	if err != nil {
		return nil, err
	}
	logger = logger.WithField("intentHash", quote.IntentHash.Hex())
	logger.Info("Intent quoted")
	receipt := &Receipt{IntentHash: quote.IntentHash}

	signature, err := s.Wallet().SignMessage(ctx, s.Owner(), quote.IntentHash.Bytes())
	if err != nil {
		return receipt, errors.Wrap(err, "failed to sign intent hash")
	}

	resp, err := o.service.Execute(ctx, quote, signature)
	if err != nil {
		return receipt, err
	}
	receipt.ExecutionHash = resp.ExecutionHash

	logger.WithField("executionHash", resp.ExecutionHash.Hex()).Info("Intent submitted")
	return receipt, nil
}

// mintBatch is approve(mintContract, MintPrice) then mint() on the destination chain.
func (o *Orchestrator) mintBatch(mapping *types.TokenMapping) (types.Step, error) {
	token, ok := mapping.AddressOn(o.settings.DestinationChainID)
	if !ok {
		return types.Step{}, errors.Wrapf(commonerrors.ErrChainNotFound, "token not mapped on destination %d", o.settings.DestinationChainID)
	}

	approve, err := evm.EncodeApprove(o.settings.MintContract, o.settings.MintPrice)
	if err != nil {
		return types.Step{}, err
	}
	mint, err := evm.EncodeMint()
	if err != nil {
		return types.Step{}, err
	}

	return types.BatchTx(o.settings.DestinationChainID,
		types.RawTx{To: token, Data: approve, Value: new(big.Int), GasLimit: o.settings.GasLimit},
		types.RawTx{To: o.settings.MintContract, Data: mint, Value: new(big.Int), GasLimit: o.settings.GasLimit},
	), nil
}
