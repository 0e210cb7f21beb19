package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClipFinance/xchain-mint/account"
	"github.com/ClipFinance/xchain-mint/app"
	"github.com/ClipFinance/xchain-mint/bridge/across"
	"github.com/ClipFinance/xchain-mint/chains"
	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ClipFinance/xchain-mint/config"
	"github.com/ClipFinance/xchain-mint/execution"
	"github.com/ClipFinance/xchain-mint/journal"
	"github.com/ClipFinance/xchain-mint/orchestrator"
	"github.com/ClipFinance/xchain-mint/server"
	"github.com/ClipFinance/xchain-mint/session"
	"github.com/ClipFinance/xchain-mint/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Config error")
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Logger error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("Daemon stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	networks := cfg.NetworkConfigs()

	var opts []app.Option
	opts = append(opts, app.WithTimeout(cfg.ActionTimeout))

	if cfg.Journal.DSN != "" {
		store, err := journal.NewStore(cfg.Journal.DSN)
		if err != nil {
			return err
		}
		opts = append(opts, app.WithJournal(store))

		if cfg.Journal.NetworksFromDB {
			networks, err = store.GetNetworks(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to load networks")
			}
			if err := config.ValidateNetworks(networks, cfg.Mint.DestinationChainID, cfg.Mint.FeeChainID); err != nil {
				return err
			}
		}
		logger.Info("Mint journal enabled")
	}

	// A missing wallet is not fatal: connect reports it to the user.
	w, err := wallet.FromOptions(ctx, cfg.WalletOptions(), logger)
	if err != nil && !errors.Is(err, commonerrors.ErrWalletUnavailable) {
		return err
	}
	if err != nil {
		logger.Warn("No wallet configured")
	}
	if closer, ok := w.(interface{ Close() }); ok {
		defer closer.Close()
	}

	settings := cfg.SessionSettings(networks)
	if settings.Account.InitCodeHash == (common.Hash{}) {
		settings.Account.InitCodeHash, err = resolveInitCodeHash(ctx, networks, cfg.Mint.DestinationChainID, settings.Account.Factory)
		if err != nil {
			return err
		}
		logger.WithField("initCodeHash", settings.Account.InitCodeHash.Hex()).Info("Account init code hash read from factory")
	}

	initializer := session.NewInitializer(chains.NewChainFactory(), settings, logger)
	minter := orchestrator.NewOrchestrator(
		across.NewPlugin(cfg.AcrossAPIURL, cfg.Mint.GasLimit, nil, logger),
		execution.NewClient(cfg.ExecutionNodeURL, nil, logger),
		cfg.OrchestratorSettings(),
		logger,
	)

	a := app.New(w, initializer, minter, logger, opts...)
	defer a.Close()

	srv := server.NewServer(cfg.ListenAddr, a, logger)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// resolveInitCodeHash reads the proxy init code hash from the factory on chainID.
func resolveInitCodeHash(ctx context.Context, networks []*types.NetworkConfig, chainID uint64, factory common.Address) (common.Hash, error) {
	for _, n := range networks {
		if n.ChainID != chainID {
			continue
		}
		client, err := ethclient.DialContext(ctx, n.RpcUrl)
		if err != nil {
			return common.Hash{}, errors.Wrapf(err, "failed to dial %s", n.Name)
		}
		defer client.Close()
		return account.ResolveInitCodeHash(ctx, client, factory)
	}
	return common.Hash{}, errors.Wrapf(commonerrors.ErrChainNotFound, "chain %d", chainID)
}
