// Package config loads daemon settings from YAML and XMINT_* environment variables.
package config

import (
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ClipFinance/xchain-mint/account"
	"github.com/ClipFinance/xchain-mint/bridge/across"
	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ClipFinance/xchain-mint/orchestrator"
	"github.com/ClipFinance/xchain-mint/session"
	"github.com/ClipFinance/xchain-mint/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "XMINT"

type Network struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	ChainID      uint64 `yaml:"chain_id"`
	RPCURL       string `yaml:"rpc_url"`
	TokenAddress string `yaml:"token_address"`
}

type Token struct {
	Symbol   string `yaml:"symbol" envconfig:"SYMBOL"`
	Decimals uint8  `yaml:"decimals" envconfig:"DECIMALS"`
}

type Mint struct {
	DestinationChainID uint64 `yaml:"destination_chain_id" envconfig:"DESTINATION_CHAIN_ID"`
	Contract           string `yaml:"contract" envconfig:"CONTRACT"`
	Price              uint64 `yaml:"price" envconfig:"PRICE"`
	BridgeAmount       uint64 `yaml:"bridge_amount" envconfig:"BRIDGE_AMOUNT"`
	GasLimit           uint64 `yaml:"gas_limit" envconfig:"GAS_LIMIT"`
	FeeChainID         uint64 `yaml:"fee_chain_id" envconfig:"FEE_CHAIN_ID"`
	FeeToken           string `yaml:"fee_token" envconfig:"FEE_TOKEN"`
}

type Account struct {
	Type         string `yaml:"type" envconfig:"TYPE"`
	Factory      string `yaml:"factory" envconfig:"FACTORY"`
	InitCodeHash string `yaml:"init_code_hash" envconfig:"INIT_CODE_HASH"`
	Salt         string `yaml:"salt" envconfig:"SALT"`
}

type Wallet struct {
	PrivateKey string `yaml:"private_key" envconfig:"PRIVATE_KEY"`
	RPCURL     string `yaml:"rpc_url" envconfig:"RPC_URL"`
}

type Journal struct {
	DSN            string `yaml:"dsn" envconfig:"DSN"`
	NetworksFromDB bool   `yaml:"networks_from_db" envconfig:"NETWORKS_FROM_DB"`
}

type Log struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// Config is the complete daemon configuration.
type Config struct {
	Networks         []Network     `yaml:"networks" ignored:"true"`
	ReferenceChainID uint64        `yaml:"reference_chain_id" envconfig:"REFERENCE_CHAIN_ID"`
	Token            Token         `yaml:"token" envconfig:"TOKEN"`
	Mint             Mint          `yaml:"mint" envconfig:"MINT"`
	Account          Account       `yaml:"account" envconfig:"ACCOUNT"`
	Wallet           Wallet        `yaml:"wallet" envconfig:"WALLET"`
	Journal          Journal       `yaml:"journal" envconfig:"JOURNAL"`
	Log              Log           `yaml:"log" envconfig:"LOG"`
	ExecutionNodeURL string        `yaml:"execution_node_url" envconfig:"EXECUTION_NODE_URL"`
	AcrossAPIURL     string        `yaml:"across_api_url" envconfig:"ACROSS_API_URL"`
	ListenAddr       string        `yaml:"listen_addr" envconfig:"LISTEN_ADDR"`
	ActionTimeout    time.Duration `yaml:"action_timeout" envconfig:"ACTION_TIMEOUT"`
}

// Default returns the configuration of the public test deployment.
func Default() *Config {
	return &Config{
		Networks: []Network{
			{Name: "sepolia", Type: "evm", ChainID: 11155111, RPCURL: "https://rpc.sepolia.org", TokenAddress: "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238"},
			{Name: "arbitrum-sepolia", Type: "evm", ChainID: 421614, RPCURL: "https://sepolia-rollup.arbitrum.io/rpc", TokenAddress: "0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d"},
			{Name: "base-sepolia", Type: "evm", ChainID: 84532, RPCURL: "https://sepolia.base.org", TokenAddress: "0x036CbD53842c5426634e7929541eC2318f3dCF7e"},
		},
		ReferenceChainID: 1,
		Token:            Token{Symbol: "USDC", Decimals: 6},
		Mint: Mint{
			DestinationChainID: 84532,
			Contract:           "0x071Ff778e91cFF52e9b3A30A672b2daeD7972FAF",
			Price:              100000,
			BridgeAmount:       2000000,
			GasLimit:           100000,
			FeeChainID:         11155111,
			FeeToken:           "USDC",
		},
		Account: Account{
			Type:    "biconomy-v2",
			Factory: "0x000000a56Aaca3e9a4C479ea6b6CD0DbcB6634F5",
			Salt:    "00000000000000000000000000000001",
		},
		Log:              Log{Level: "info", Format: "text"},
		ExecutionNodeURL: "https://klaster-node.polycode.sh/v2",
		AcrossAPIURL:     across.DefaultAPIURL,
		ListenAddr:       ":8080",
		ActionTimeout:    2 * time.Minute,
	}
}

// Load reads path (optional) over the defaults, then applies XMINT_* overrides, then validates.
//
// Parameters:
// - path: the YAML file, empty to skip.
//
// Returns:
// - *Config: the validated configuration.
// - error: an error if the file cannot be read, parsed or the result is invalid.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Networks) == 0 && !c.Journal.NetworksFromDB {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "no networks configured")
	}
	if c.Journal.NetworksFromDB && c.Journal.DSN == "" {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "networks_from_db needs a journal dsn")
	}

	if err := ValidateNetworks(c.NetworkConfigs(), c.Mint.DestinationChainID, c.Mint.FeeChainID); err != nil && !c.Journal.NetworksFromDB {
		return err
	}

	for name, addr := range map[string]string{
		"mint contract":   c.Mint.Contract,
		"account factory": c.Account.Factory,
	} {
		if !common.IsHexAddress(addr) {
			return errors.Wrapf(commonerrors.ErrInvalidConfig, "%s %q is not an address", name, addr)
		}
	}
	// An empty init code hash is read from the factory at startup.
	if c.Account.InitCodeHash != "" && len(common.FromHex(c.Account.InitCodeHash)) != common.HashLength {
		return errors.Wrapf(commonerrors.ErrInvalidConfig, "account init code hash %q must be 32 bytes (XMINT_ACCOUNT_INIT_CODE_HASH)", c.Account.InitCodeHash)
	}
	if _, err := account.ParseSalt(c.Account.Salt); err != nil {
		return err
	}
	if c.Mint.Price == 0 || c.Mint.BridgeAmount == 0 || c.Mint.GasLimit == 0 {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "mint price, bridge amount and gas limit must be positive")
	}
	if c.Token.Symbol == "" || c.Mint.FeeToken == "" {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "token symbols must be set")
	}
	if c.ExecutionNodeURL == "" || c.AcrossAPIURL == "" {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "execution node and across api urls must be set")
	}
	return nil
}

// ValidateNetworks checks the network list and that the destination and fee chains are in it.
func ValidateNetworks(networks []*types.NetworkConfig, destinationChainID, feeChainID uint64) error {
	if len(networks) == 0 {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "no networks configured")
	}

	seen := make(map[uint64]struct{}, len(networks))
	for _, n := range networks {
		if n.ChainID == 0 || n.RpcUrl == "" {
			return errors.Wrapf(commonerrors.ErrInvalidConfig, "network %q needs chain id and rpc url", n.Name)
		}
		if n.ChainType != types.EVM {
			return errors.Wrapf(commonerrors.ErrInvalidChainType, "network %q", n.Name)
		}
		if !common.IsHexAddress(n.TokenAddress) {
			return errors.Wrapf(commonerrors.ErrInvalidConfig, "network %q token address %q", n.Name, n.TokenAddress)
		}
		if _, ok := seen[n.ChainID]; ok {
			return errors.Wrapf(commonerrors.ErrInvalidConfig, "duplicate network %d", n.ChainID)
		}
		seen[n.ChainID] = struct{}{}
	}

	for name, id := range map[string]uint64{"destination": destinationChainID, "fee": feeChainID} {
		if _, ok := seen[id]; !ok {
			return errors.Wrapf(commonerrors.ErrInvalidConfig, "%s chain %d is not a configured network", name, id)
		}
	}
	return nil
}

// NetworkConfigs converts the configured networks.
func (c *Config) NetworkConfigs() []*types.NetworkConfig {
	out := make([]*types.NetworkConfig, 0, len(c.Networks))
	for _, n := range c.Networks {
		out = append(out, &types.NetworkConfig{
			Name:         n.Name,
			ChainType:    types.ParseChainType(n.Type),
			ChainID:      n.ChainID,
			RpcUrl:       n.RPCURL,
			TokenAddress: n.TokenAddress,
		})
	}
	return out
}

// SessionSettings builds the session initializer settings for networks.
func (c *Config) SessionSettings(networks []*types.NetworkConfig) session.Settings {
	return session.Settings{
		Networks:         networks,
		TokenSymbol:      c.Token.Symbol,
		TokenDecimals:    c.Token.Decimals,
		Account:          c.AccountParams(),
		ReferenceChainID: c.ReferenceChainID,
	}
}

// AccountParams returns the smart-account factory parameters.
func (c *Config) AccountParams() account.Params {
	return account.Params{
		Type:         c.Account.Type,
		Factory:      common.HexToAddress(c.Account.Factory),
		InitCodeHash: common.HexToHash(c.Account.InitCodeHash),
		Salt:         c.Account.Salt,
	}
}

// OrchestratorSettings returns the mint settings.
func (c *Config) OrchestratorSettings() orchestrator.Settings {
	return orchestrator.Settings{
		DestinationChainID: c.Mint.DestinationChainID,
		FeeChainID:         c.Mint.FeeChainID,
		FeeToken:           c.Mint.FeeToken,
		MintContract:       common.HexToAddress(c.Mint.Contract),
		MintPrice:          new(big.Int).SetUint64(c.Mint.Price),
		BridgeAmount:       new(big.Int).SetUint64(c.Mint.BridgeAmount),
		GasLimit:           c.Mint.GasLimit,
	}
}

// WalletOptions returns the wallet selection.
func (c *Config) WalletOptions() wallet.Options {
	return wallet.Options{
		PrivateKey: c.Wallet.PrivateKey,
		RPCURL:     c.Wallet.RPCURL,
	}
}
