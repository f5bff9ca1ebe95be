// Package chain provides read and submit access to the Cardano chain
// plus transaction assembly on top of the echovl/cardano-go SDK.
package chain

import (
	cardanosdk "github.com/echovl/cardano-go"
)

// blockfrost API servers
const (
	CardanoMainNet = "https://cardano-mainnet.blockfrost.io/api/v0"
	CardanoPreProd = "https://cardano-preprod.blockfrost.io/api/v0"
	CardanoPreview = "https://cardano-preview.blockfrost.io/api/v0"
)

// AdaAsset is the unit name blockfrost uses for plain lovelace amounts
const AdaAsset = "lovelace"

// TxInfo on-chain transaction summary
type TxInfo struct {
	Hash        string
	BlockHeight uint64
	Slot        uint64
	Index       uint64
}

// StakeInfo stake account state
type StakeInfo struct {
	StakeAddress       string
	Active             bool
	WithdrawableAmount uint64
	PoolID             string
}

// TxQuerier is implemented by nodes that can look up confirmed transactions.
type TxQuerier interface {
	TxInfo(txHash string) (*TxInfo, error)
}

// RewardQuerier is implemented by nodes that can query stake account state.
// Callers type-assert a cardanosdk.Node to this interface before relying on
// reward lookups ("withdraw all", delegation checks).
type RewardQuerier interface {
	StakeInfo(stakeAddr string) (*StakeInfo, error)
}

// NetworkFromName maps a config network name to the SDK network magic.
func NetworkFromName(name string) cardanosdk.Network {
	if name == "mainnet" {
		return cardanosdk.Mainnet
	}
	return cardanosdk.Testnet
}

// ServerFromName maps a config network name to the blockfrost server URL.
func ServerFromName(name string) string {
	switch name {
	case "mainnet":
		return CardanoMainNet
	case "preview":
		return CardanoPreview
	default:
		return CardanoPreProd
	}
}
