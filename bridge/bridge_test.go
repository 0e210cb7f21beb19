package bridge

import (
	"context"
	"math/big"
	"strings"
	"testing"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

type recordingPlugin struct {
	calls []Params
	err   error
}

func (p *recordingPlugin) Encode(_ context.Context, params Params) (*Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.calls = append(p.calls, params)
	return &Result{
		Step:         types.BatchTx(params.SourceChainID, types.RawTx{To: params.InputToken}),
		OutputAmount: new(big.Int).Set(params.Amount),
	}, nil
}

var (
	usdcSepolia = common.HexToAddress("0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238")
	usdcArb     = common.HexToAddress("0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d")
	usdcBase    = common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e")
)

func testRequest(t *testing.T, sepolia, arb, base int64, amount int64) Request {
	t.Helper()
	mapping, err := types.NewTokenMapping("USDC", 6,
		types.Deployment{ChainID: 11155111, Address: usdcSepolia},
		types.Deployment{ChainID: 421614, Address: usdcArb},
		types.Deployment{ChainID: 84532, Address: usdcBase},
	)
	if err != nil {
		t.Fatalf("mapping: %v", err)
	}
	return Request{
		Account: common.HexToAddress("0xaa"),
		Balance: &types.UnifiedBalance{
			Balance:  big.NewInt(sepolia + arb + base),
			Decimals: 6,
			Breakdown: []types.ChainBalance{
				{ChainID: 11155111, TokenAddress: usdcSepolia, Amount: big.NewInt(sepolia)},
				{ChainID: 421614, TokenAddress: usdcArb, Amount: big.NewInt(arb)},
				{ChainID: 84532, TokenAddress: usdcBase, Amount: big.NewInt(base)},
			},
		},
		Mapping:            mapping,
		DestinationChainID: 84532,
		Amount:             big.NewInt(amount),
	}
}

func TestEncodeBridgingOpsSingleSource(t *testing.T) {
	plugin := &recordingPlugin{}
	steps, err := EncodeBridgingOps(context.Background(), plugin, testRequest(t, 1_000_000, 4_000_000, 9_000_000, 2_000_000))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if len(steps) != 1 || steps[0].ChainID != 421614 {
		t.Fatalf("expected one step from arbitrum, got %+v", steps)
	}
	call := plugin.calls[0]
	if call.Amount.Int64() != 2_000_000 || call.OutputToken != usdcBase || call.InputToken != usdcArb {
		t.Fatalf("unexpected plugin params %+v", call)
	}
}

func TestEncodeBridgingOpsSplitsAcrossSources(t *testing.T) {
	plugin := &recordingPlugin{}
	steps, err := EncodeBridgingOps(context.Background(), plugin, testRequest(t, 1_500_000, 1_000_000, 0, 2_000_000))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if len(steps) != 2 || steps[0].ChainID != 11155111 || steps[1].ChainID != 421614 {
		t.Fatalf("unexpected steps %+v", steps)
	}
	if plugin.calls[0].Amount.Int64() != 1_500_000 || plugin.calls[1].Amount.Int64() != 500_000 {
		t.Fatalf("unexpected amounts %s %s", plugin.calls[0].Amount, plugin.calls[1].Amount)
	}
}

func TestEncodeBridgingOpsInsufficient(t *testing.T) {
	_, err := EncodeBridgingOps(context.Background(), &recordingPlugin{}, testRequest(t, 500_000, 500_000, 50_000_000, 2_000_000))
	if !errors.Is(err, commonerrors.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}

func TestEncodeBridgingOpsPluginError(t *testing.T) {
	boom := errors.New("quote unavailable")
	_, err := EncodeBridgingOps(context.Background(), &recordingPlugin{err: boom}, testRequest(t, 5_000_000, 0, 0, 2_000_000))
	if !errors.Is(err, boom) {
		t.Fatalf("expected plugin error, got %v", err)
	}
}

func TestEncodeBridgingOpsZeroAmount(t *testing.T) {
	plugin := &recordingPlugin{}
	steps, err := EncodeBridgingOps(context.Background(), plugin, testRequest(t, 0, 0, 0, 0))
	if err != nil || len(steps) != 0 || len(plugin.calls) != 0 {
		t.Fatalf("expected no steps, got %v %v", steps, err)
	}
}

type emptyPlugin struct{}

func (emptyPlugin) Encode(context.Context, Params) (*Result, error) { return nil, nil }

func TestEncodeBridgingOpsEmptyResult(t *testing.T) {
	_, err := EncodeBridgingOps(context.Background(), emptyPlugin{}, testRequest(t, 0, 4_000_000, 0, 2_000_000))
	if err == nil || !strings.Contains(err.Error(), "no result for chain 421614") {
		t.Fatalf("expected empty result error, got %v", err)
	}
}
