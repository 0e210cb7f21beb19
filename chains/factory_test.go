package chains

import (
	"context"
	"io"
	"math/big"
	"testing"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type stubChain struct {
	config *types.NetworkConfig
}

func (s *stubChain) GetTokenBalance(context.Context, string, string) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (s *stubChain) Config() *types.NetworkConfig { return s.config }

func (s *stubChain) Close() {}

func TestCreateChainUsesRegisteredConstructor(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	factory := NewEmptyChainFactory()
	factory.RegisterConstructor(types.EVM, func(_ context.Context, cfg *types.NetworkConfig, _ *logrus.Logger) (types.Chain, error) {
		return &stubChain{config: cfg}, nil
	})

	cfg := &types.NetworkConfig{Name: "sepolia", ChainType: types.EVM, ChainID: 11155111}
	chain, err := factory.CreateChain(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("create chain: %v", err)
	}
	if chain.Config() != cfg {
		t.Fatal("constructor did not receive config")
	}
}

func TestCreateChainUnknownType(t *testing.T) {
	factory := NewChainFactory()
	_, err := factory.CreateChain(context.Background(), &types.NetworkConfig{ChainType: types.UNKNOWN}, logrus.New())
	if !errors.Is(err, commonerrors.ErrInvalidChainType) {
		t.Fatalf("expected invalid chain type, got %v", err)
	}

	_, err = factory.CreateChain(context.Background(), nil, logrus.New())
	if !errors.Is(err, commonerrors.ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}
