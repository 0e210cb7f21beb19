// Package app is the action boundary: connect and mint, their loading flags, and
// the messages shown to the user.
package app

import (
	"context"
	"sync"
	"time"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ClipFinance/xchain-mint/common/units"
	"github.com/ClipFinance/xchain-mint/journal/models"
	"github.com/ClipFinance/xchain-mint/orchestrator"
	"github.com/ClipFinance/xchain-mint/session"
	"github.com/ClipFinance/xchain-mint/wallet"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Messages shown to the user.
const (
	MsgWalletUnavailable = "Please install a wallet to use this feature"
	MsgConnectFailed     = "Failed to connect wallet"
	MsgMintFailed        = "Failed to mint an NFT"
)

const (
	journalTimeout = 5 * time.Second
	attemptsLimit  = 20
)

// State is what the user interface renders.
type State struct {
	Account       string `json:"account,omitempty"`
	Balance       string `json:"balance,omitempty"`
	Error         string `json:"error,omitempty"`
	Connecting    bool   `json:"connecting"`
	Minting       bool   `json:"minting"`
	LastExecution string `json:"lastExecution,omitempty"`
}

// Connector builds sessions.
type Connector interface {
	Initialize(ctx context.Context, w wallet.Wallet) (*session.Session, error)
}

// Minter runs the cross-chain mint.
type Minter interface {
	ExecuteCrossChainMint(ctx context.Context, s *session.Session) (*orchestrator.Receipt, error)
}

// Journal records and lists mint attempts.
type Journal interface {
	InsertAttempt(ctx context.Context, attempt *models.Attempt) (uuid.UUID, error)
	GetAttemptsByOwner(ctx context.Context, owner string, limit int) ([]models.Attempt, error)
}

// App owns the current session and the UI state.
type App struct {
	wallet    wallet.Wallet
	connector Connector
	minter    Minter
	journal   Journal
	timeout   time.Duration
	logger    *logrus.Logger

	mu      sync.RWMutex
	session *session.Session
	state   State

	connectGuard guard
	mintGuard    guard
}

// Option configures an App.
type Option func(*App)

// WithJournal records every mint attempt in j.
func WithJournal(j Journal) Option {
	return func(a *App) { a.journal = j }
}

// WithTimeout bounds each action by d.
func WithTimeout(d time.Duration) Option {
	return func(a *App) { a.timeout = d }
}

// New creates an App. w may be nil when no wallet is available.
//
// Parameters:
// - w: the wallet, may be nil.
// - connector: builds sessions on connect.
// - minter: runs the mint.
// - logger: the logger for logging purposes.
// - opts: optional settings.
//
// Returns:
// - *App: the app in its initial, disconnected state.
func New(w wallet.Wallet, connector Connector, minter Minter, logger *logrus.Logger, opts ...Option) *App {
	a := &App{
		wallet:    w,
		connector: connector,
		minter:    minter,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns a snapshot of the UI state.
func (a *App) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Session returns the current session, nil before connect.
func (a *App) Session() *session.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *App) update(fn func(*State)) State {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.state)
	return a.state
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return context.WithCancel(ctx)
}

// Connect initializes a session and loads the unified balance.
// It returns ErrBusy without side effects while a connect is running.
func (a *App) Connect(ctx context.Context) (State, error) {
	if !a.connectGuard.acquire() {
		return a.State(), commonerrors.ErrBusy
	}
	defer a.connectGuard.release()

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	a.update(func(s *State) { s.Connecting = true })
	logger := a.logger.WithField("action", "connect")

	sess, balance, err := a.connect(ctx)
	if err != nil {
		msg := MsgConnectFailed
		if errors.Is(err, commonerrors.ErrWalletUnavailable) {
			msg = MsgWalletUnavailable
		}
		logger.WithError(err).Error(msg)

		// A failed reconnect drops the previous session so mint cannot run against it.
		a.mu.Lock()
		previous := a.session
		a.session = nil
		a.state = State{Error: msg, Minting: a.state.Minting}
		state := a.state
		a.mu.Unlock()

		previous.Close()
		return state, err
	}

	a.mu.Lock()
	previous := a.session
	a.session = sess
	a.state.Account = sess.AccountAddress().Hex()
	a.state.Balance = units.Format(balance.Balance, balance.Decimals)
	a.state.Error = ""
	a.state.Connecting = false
	state := a.state
	a.mu.Unlock()

	previous.Close()

	logger.WithFields(logrus.Fields{
		"account": state.Account,
		"balance": state.Balance,
	}).Info("Wallet connected")

	return state, nil
}

func (a *App) connect(ctx context.Context) (*session.Session, *types.UnifiedBalance, error) {
	sess, err := a.connector.Initialize(ctx, a.wallet)
	if err != nil {
		return nil, nil, err
	}

	balance, err := session.GetUnifiedBalance(ctx, sess)
	if err != nil {
		sess.Close()
		return nil, nil, commonerrors.Mark(commonerrors.ErrConnectionFailed, err)
	}

	return sess, balance, nil
}

// Mint runs the cross-chain mint for the current session.
// It returns ErrBusy without side effects while a mint is running.
func (a *App) Mint(ctx context.Context) (State, error) {
	if !a.mintGuard.acquire() {
		return a.State(), commonerrors.ErrBusy
	}
	defer a.mintGuard.release()

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	a.update(func(s *State) { s.Minting = true })
	logger := a.logger.WithField("action", "mint")

	sess := a.Session()
	receipt, err := a.minter.ExecuteCrossChainMint(ctx, sess)
	a.record(ctx, sess, receipt, err)

	if err != nil {
		logger.WithError(err).Error(MsgMintFailed)
		return a.update(func(s *State) {
			s.Minting = false
			s.Error = MsgMintFailed
		}), err
	}

	logger.WithFields(logrus.Fields{
		"intentHash":    receipt.IntentHash.Hex(),
		"executionHash": receipt.ExecutionHash.Hex(),
	}).Info("Mint submitted")
	return a.update(func(s *State) {
		s.Minting = false
		s.Error = ""
		s.LastExecution = receipt.ExecutionHash.Hex()
	}), nil
}

// record journals the attempt. It runs detached from ctx so an attempt cut
// short by the action timeout is still recorded.
func (a *App) record(ctx context.Context, sess *session.Session, receipt *orchestrator.Receipt, mintErr error) {
	if a.journal == nil || !sess.Initialized() {
		return
	}

	attempt := &models.Attempt{
		Owner:   sess.Owner().Hex(),
		Account: sess.AccountAddress().Hex(),
		Status:  types.AttemptSubmitted,
	}
	if receipt != nil {
		attempt.IntentHash = receipt.IntentHash.Hex()
	}
	if mintErr != nil {
		attempt.Status = types.AttemptFailed
		attempt.Error = mintErr.Error()
	} else {
		attempt.ExecutionHash = receipt.ExecutionHash.Hex()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	if _, err := a.journal.InsertAttempt(ctx, attempt); err != nil {
		a.logger.WithError(err).Warn("Failed to journal mint attempt")
	}
}

// Attempts lists the journaled mint attempts of the connected owner, newest first.
// Without a journal it returns an empty list.
func (a *App) Attempts(ctx context.Context) ([]models.Attempt, error) {
	sess := a.Session()
	if !sess.Initialized() {
		return nil, commonerrors.ErrSessionNotInitialized
	}
	if a.journal == nil {
		return []models.Attempt{}, nil
	}

	attempts, err := a.journal.GetAttemptsByOwner(ctx, sess.Owner().Hex(), attemptsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list mint attempts")
	}
	return attempts, nil
}

// Close releases the current session.
func (a *App) Close() {
	a.mu.Lock()
	sess := a.session
	a.session = nil
	a.mu.Unlock()
	sess.Close()
}
