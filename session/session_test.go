package session

import (
	"context"
	"io"
	"testing"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/session/sessiontest"
	"github.com/ClipFinance/xchain-mint/wallet"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testSettings() Settings {
	return Settings{
		Networks:         sessiontest.Networks(),
		TokenSymbol:      "USDC",
		TokenDecimals:    6,
		Account:          sessiontest.AccountParams(),
		ReferenceChainID: 1,
	}
}

func TestInitializeWithoutWallet(t *testing.T) {
	factory := sessiontest.NewFactory(nil)
	initializer := NewInitializer(factory, testSettings(), testLogger())

	s, err := initializer.Initialize(context.Background(), nil)
	if s != nil || !errors.Is(err, commonerrors.ErrWalletUnavailable) {
		t.Fatalf("expected wallet unavailable, got %v %v", s, err)
	}
	if factory.Calls() != 0 {
		t.Fatalf("factory called %d times", factory.Calls())
	}
}

func TestInitializeBuildsSession(t *testing.T) {
	w, err := sessiontest.NewWallet(testKey)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	factory := sessiontest.NewFactory(map[uint64]int64{
		sessiontest.SepoliaID:         2_000_000,
		sessiontest.ArbitrumSepoliaID: 1_000_000,
		sessiontest.BaseSepoliaID:     2_000_000,
	})

	s, err := NewInitializer(factory, testSettings(), testLogger()).Initialize(context.Background(), w)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	defer s.Close()

	if !s.Initialized() || s.Owner() != w.Address() {
		t.Fatalf("unexpected session owner %s", s.Owner().Hex())
	}
	if s.AccountAddress() == w.Address() {
		t.Fatal("account address must be the smart account, not the owner")
	}
	if ids := s.Mapping().ChainIDs(); len(ids) != 3 {
		t.Fatalf("unexpected mapping %v", ids)
	}

	balance, err := GetUnifiedBalance(context.Background(), s)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Balance.Int64() != 5_000_000 || balance.Decimals != 6 {
		t.Fatalf("unexpected balance %s", balance.Balance)
	}
}

func TestInitializeFailures(t *testing.T) {
	w, _ := sessiontest.NewWallet(testKey)
	w.RequestErr = errors.New("user rejected the request")

	_, err := NewInitializer(sessiontest.NewFactory(nil), testSettings(), testLogger()).Initialize(context.Background(), w)
	if !errors.Is(err, commonerrors.ErrConnectionFailed) || !errors.Is(err, w.RequestErr) {
		t.Fatalf("expected connection failed wrapping cause, got %v", err)
	}

	empty, _ := sessiontest.NewWallet(testKey)
	empty.NoAccounts = true
	if _, err := NewInitializer(sessiontest.NewFactory(nil), testSettings(), testLogger()).Initialize(context.Background(), empty); !errors.Is(err, commonerrors.ErrConnectionFailed) {
		t.Fatalf("expected connection failed, got %v", err)
	}
}

func TestInitializeClosesReadersOnFailure(t *testing.T) {
	w, _ := sessiontest.NewWallet(testKey)
	factory := sessiontest.NewFactory(nil)
	factory.FailCreate(sessiontest.BaseSepoliaID, commonerrors.ErrNetworkMismatch)

	s, err := NewInitializer(factory, testSettings(), testLogger()).Initialize(context.Background(), w)
	if s != nil || !errors.Is(err, commonerrors.ErrConnectionFailed) || !errors.Is(err, commonerrors.ErrNetworkMismatch) {
		t.Fatalf("expected connection failed, got %v %v", s, err)
	}
	if !factory.Chain(sessiontest.SepoliaID).Closed() || !factory.Chain(sessiontest.ArbitrumSepoliaID).Closed() {
		t.Fatal("readers leaked after failure")
	}
}

func TestGetUnifiedBalanceRequiresSession(t *testing.T) {
	if _, err := GetUnifiedBalance(context.Background(), nil); !errors.Is(err, commonerrors.ErrSessionNotInitialized) {
		t.Fatalf("expected not initialized, got %v", err)
	}
	if _, err := GetUnifiedBalance(context.Background(), &Session{}); !errors.Is(err, commonerrors.ErrSessionNotInitialized) {
		t.Fatalf("expected not initialized, got %v", err)
	}
}

var _ wallet.Wallet = (*sessiontest.Wallet)(nil)
