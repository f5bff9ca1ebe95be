package params

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/easyada/cardano-wallet/common"
	"github.com/easyada/cardano-wallet/log"
)

// wallet networks
const (
	MainnetNetwork = "mainnet"
	PreprodNetwork = "preprod"
	PreviewNetwork = "preview"
)

// DefaultConfirmInterval seconds between confirmation polls
const DefaultConfirmInterval = 10

var (
	walletConfig = &WalletConfig{}

	// ConfigFile the loaded config file path (used by the watcher)
	ConfigFile string
)

// WalletConfig top level config
type WalletConfig struct {
	Identifier string
	Network    string
	KeysDir    string
	PolicyDir  string

	Blockfrost *BlockfrostConfig
	Transact   *TransactConfig `toml:",omitempty" json:",omitempty"`
}

// BlockfrostConfig blockfrost project IDs, keyed by network
type BlockfrostConfig struct {
	ProjectID map[string]string
}

// TransactConfig transaction composing config
type TransactConfig struct {
	ConfirmInterval uint64 `toml:",omitempty" json:",omitempty"` // seconds
}

// GetConfig returns the loaded config
func GetConfig() *WalletConfig {
	return walletConfig
}

// GetIdentifier returns the config identifier
func GetIdentifier() string {
	return walletConfig.Identifier
}

// GetNetwork returns the configured network name
func GetNetwork() string {
	return walletConfig.Network
}

// GetBlockfrostProjectID returns the project ID for the given network
func GetBlockfrostProjectID(network string) string {
	if walletConfig.Blockfrost == nil {
		return ""
	}
	return walletConfig.Blockfrost.ProjectID[network]
}

// GetConfirmInterval poll interval (seconds) for confirmation waiting
func GetConfirmInterval() uint64 {
	if walletConfig.Transact == nil || walletConfig.Transact.ConfirmInterval == 0 {
		return DefaultConfirmInterval
	}
	return walletConfig.Transact.ConfirmInterval
}

// LoadConfig load config from the given file path
func LoadConfig(configFile string, isCheck bool) *WalletConfig {
	if configFile == "" {
		log.Fatal("must specify config file")
	}
	if !common.FileExist(configFile) {
		log.Fatalf("LoadConfig error: config file '%v' not exist", configFile)
	}

	config := &WalletConfig{}
	if _, err := toml.DecodeFile(configFile, config); err != nil {
		log.Fatalf("LoadConfig error (toml DecodeFile): %v", err)
	}

	walletConfig = config
	ConfigFile = configFile

	log.Info("LoadConfig finished", "configFile", configFile, "network", config.Network)

	if isCheck {
		if err := config.CheckConfig(); err != nil {
			log.Fatalf("LoadConfig check config failed. %v", err)
		}
	}

	return walletConfig
}

// ReloadConfig reload config from the original file
func ReloadConfig() {
	config := &WalletConfig{}
	if _, err := toml.DecodeFile(ConfigFile, config); err != nil {
		log.Error("ReloadConfig failed", "configFile", ConfigFile, "err", err)
		return
	}
	if err := config.CheckConfig(); err != nil {
		log.Error("ReloadConfig check config failed", "err", err)
		return
	}
	walletConfig = config
	log.Info("ReloadConfig success", "configFile", ConfigFile)
}

// CheckConfig check config
func (c *WalletConfig) CheckConfig() error {
	switch c.Network {
	case MainnetNetwork, PreprodNetwork, PreviewNetwork:
	case "":
		return errors.New("must config 'Network'")
	default:
		return fmt.Errorf("unknown network '%v'", c.Network)
	}
	if c.Blockfrost == nil || len(c.Blockfrost.ProjectID) == 0 {
		return errors.New("must config 'Blockfrost.ProjectID'")
	}
	if c.Blockfrost.ProjectID[c.Network] == "" {
		return fmt.Errorf("no blockfrost project ID for network '%v'", c.Network)
	}
	return nil
}
