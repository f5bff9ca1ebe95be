package chain

import (
	"context"

	"github.com/blockfrost/blockfrost-go"
	"github.com/easyada/cardano-wallet/common"
	cardanosdk "github.com/echovl/cardano-go"
	"github.com/pkg/errors"
)

// BlockfrostNode implements cardanosdk.Node over the blockfrost API,
// plus TxQuerier and RewardQuerier.
type BlockfrostNode struct {
	network cardanosdk.Network
	server  string
	client  blockfrost.APIClient
}

var (
	_ cardanosdk.Node = (*BlockfrostNode)(nil)
	_ TxQuerier       = (*BlockfrostNode)(nil)
	_ RewardQuerier   = (*BlockfrostNode)(nil)
)

// NewNode new blockfrost node
func NewNode(network cardanosdk.Network, server, projectID string) *BlockfrostNode {
	client := blockfrost.NewAPIClient(blockfrost.APIClientOptions{
		ProjectID: projectID,
		Server:    server,
	})
	return &BlockfrostNode{
		network: network,
		server:  server,
		client:  client,
	}
}

// Network impl cardanosdk.Node
func (b *BlockfrostNode) Network() cardanosdk.Network {
	return b.network
}

// UTxOs impl cardanosdk.Node
func (b *BlockfrostNode) UTxOs(addr cardanosdk.Address) ([]cardanosdk.UTxO, error) {
	butxos, err := b.client.AddressUTXOs(context.Background(), addr.Bech32(), blockfrost.APIQueryParams{})
	if err != nil {
		// a fresh address has no utxos yet
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "blockfrost: address utxos")
	}

	utxos := make([]cardanosdk.UTxO, 0, len(butxos))
	for _, butxo := range butxos {
		txHash, err := cardanosdk.NewHash32(butxo.TxHash)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmounts(butxo.Amount)
		if err != nil {
			return nil, err
		}
		utxos = append(utxos, cardanosdk.UTxO{
			TxHash:  txHash,
			Spender: addr,
			Index:   uint64(butxo.OutputIndex),
			Amount:  amount,
		})
	}
	return utxos, nil
}

// Tip impl cardanosdk.Node
func (b *BlockfrostNode) Tip() (*cardanosdk.NodeTip, error) {
	block, err := b.client.BlockLatest(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "blockfrost: latest block")
	}
	return &cardanosdk.NodeTip{
		Block: uint64(block.Height),
		Epoch: uint64(block.Epoch),
		Slot:  uint64(block.Slot),
	}, nil
}

// ProtocolParams impl cardanosdk.Node
func (b *BlockfrostNode) ProtocolParams() (*cardanosdk.ProtocolParams, error) {
	eparams, err := b.client.LatestEpochParameters(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "blockfrost: epoch parameters")
	}
	keyDeposit, err := common.GetUint64FromStr(eparams.KeyDeposit)
	if err != nil {
		return nil, err
	}
	poolDeposit, err := common.GetUint64FromStr(eparams.PoolDeposit)
	if err != nil {
		return nil, err
	}
	minPoolCost, err := common.GetUint64FromStr(eparams.MinPoolCost)
	if err != nil {
		return nil, err
	}
	coinsPerUTXOWord, err := common.GetUint64FromStr(eparams.CoinsPerUtxOWord)
	if err != nil {
		return nil, err
	}
	return &cardanosdk.ProtocolParams{
		MinFeeA:            cardanosdk.Coin(eparams.MinFeeA),
		MinFeeB:            cardanosdk.Coin(eparams.MinFeeB),
		MaxBlockBodySize:   uint(eparams.MaxBlockSize),
		MaxTxSize:          uint(eparams.MaxTxSize),
		MaxBlockHeaderSize: uint(eparams.MaxBlockHeaderSize),
		KeyDeposit:         cardanosdk.Coin(keyDeposit),
		PoolDeposit:        cardanosdk.Coin(poolDeposit),
		NOpt:               uint(eparams.NOpt),
		MinPoolCost:        cardanosdk.Coin(minPoolCost),
		CoinsPerUTXOWord:   cardanosdk.Coin(coinsPerUTXOWord),
	}, nil
}

// SubmitTx impl cardanosdk.Node
func (b *BlockfrostNode) SubmitTx(tx *cardanosdk.Tx) (*cardanosdk.Hash32, error) {
	txBytes, err := tx.MarshalCBOR()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	if _, err := b.client.TransactionSubmit(context.Background(), txBytes); err != nil {
		return nil, errors.Wrap(err, "blockfrost: submit tx")
	}
	txHash, err := tx.Hash()
	if err != nil {
		return nil, err
	}
	return &txHash, nil
}

// TxInfo impl TxQuerier
func (b *BlockfrostNode) TxInfo(txHash string) (*TxInfo, error) {
	txc, err := b.client.Transaction(context.Background(), txHash)
	if err != nil {
		return nil, errors.Wrap(err, "blockfrost: transaction")
	}
	return &TxInfo{
		Hash:        txc.Hash,
		BlockHeight: uint64(txc.BlockHeight),
		Slot:        uint64(txc.Slot),
		Index:       uint64(txc.Index),
	}, nil
}

// StakeInfo impl RewardQuerier
func (b *BlockfrostNode) StakeInfo(stakeAddr string) (*StakeInfo, error) {
	account, err := b.client.Account(context.Background(), stakeAddr)
	if err != nil {
		// an account never seen on chain has nothing withdrawable
		if isNotFound(err) {
			return &StakeInfo{StakeAddress: stakeAddr}, nil
		}
		return nil, errors.Wrap(err, "blockfrost: account")
	}
	withdrawable, err := common.GetUint64FromStr(account.WithdrawableAmount)
	if err != nil {
		return nil, err
	}
	poolID := ""
	if account.PoolID != nil {
		poolID = *account.PoolID
	}
	return &StakeInfo{
		StakeAddress:       stakeAddr,
		Active:             account.Active,
		WithdrawableAmount: withdrawable,
		PoolID:             poolID,
	}, nil
}

// parseAmounts folds blockfrost unit/quantity pairs into a Value. Non-ada
// units are "<policy hex (56)><asset name hex>".
func parseAmounts(amounts []blockfrost.AddressAmount) (*cardanosdk.Value, error) {
	var coin cardanosdk.Coin
	multiAsset := cardanosdk.NewMultiAsset()
	hasAssets := false

	assetsByPolicy := make(map[string]*cardanosdk.Assets)
	policyByHex := make(map[string]cardanosdk.PolicyID)

	for _, amount := range amounts {
		quantity, err := common.GetUint64FromStr(amount.Quantity)
		if err != nil {
			return nil, err
		}
		if amount.Unit == AdaAsset {
			coin += cardanosdk.Coin(quantity)
			continue
		}
		if len(amount.Unit) < 56 {
			return nil, errors.Errorf("invalid asset unit %v", amount.Unit)
		}
		policyHex := amount.Unit[:56]
		assetHex := amount.Unit[56:]

		assets, exist := assetsByPolicy[policyHex]
		if !exist {
			policyHash, err := cardanosdk.NewHash28(policyHex)
			if err != nil {
				return nil, err
			}
			policyByHex[policyHex] = cardanosdk.NewPolicyIDFromHash(policyHash)
			assets = cardanosdk.NewAssets()
			assetsByPolicy[policyHex] = assets
		}
		assetName := cardanosdk.NewAssetName(string(common.Hex2Bytes(assetHex)))
		assets.Set(assetName, cardanosdk.BigNum(quantity))
		hasAssets = true
	}

	if !hasAssets {
		return cardanosdk.NewValue(coin), nil
	}
	for policyHex, assets := range assetsByPolicy {
		multiAsset.Set(policyByHex[policyHex], assets)
	}
	return cardanosdk.NewValueWithAssets(coin, multiAsset), nil
}

func isNotFound(err error) bool {
	var apiErr *blockfrost.APIError
	if errors.As(err, &apiErr) {
		if _, ok := apiErr.Response.(blockfrost.NotFound); ok {
			return true
		}
	}
	return false
}
