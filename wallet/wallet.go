// Package wallet composes high-level Cardano transaction intents (send,
// mint/burn, stake, withdraw, metadata) into normalized requests for the
// chain package's builder.
package wallet

import (
	"sort"

	"github.com/easyada/cardano-wallet/chain"
	"github.com/easyada/cardano-wallet/log"
	cardanosdk "github.com/echovl/cardano-go"
	"github.com/echovl/cardano-go/crypto"
	"github.com/pkg/errors"
)

// txAssembler is the builder collaborator surface the composer relies on.
// Satisfied by chain.TxBuilder.
type txAssembler interface {
	Build(req *chain.TxRequest) (*cardanosdk.Tx, error)
	BuildAndSign(req *chain.TxRequest, keys []crypto.PrvKey) (*cardanosdk.Tx, error)
	MinCoins(out *cardanosdk.TxOutput) (cardanosdk.Coin, error)
}

// Wallet holds key material, an address and a chain context, and exposes the
// transaction intents. A watch-only wallet has no keys and can only build.
type Wallet struct {
	Name string

	network cardanosdk.Network
	node    cardanosdk.Node
	builder txAssembler

	paymentKey crypto.PrvKey
	stakeKey   crypto.PrvKey
	address    cardanosdk.Address

	utxos    []cardanosdk.UTxO
	lovelace uint64
	tokens   map[string]map[string]uint64
}

// NewWallet loads (or creates) the named wallet's keys under keysDir and
// derives its base address on the node's network.
func NewWallet(name, keysDir string, node cardanosdk.Node) (*Wallet, error) {
	paymentKey, stakeKey, err := LoadOrCreateKeys(name, keysDir)
	if err != nil {
		return nil, err
	}
	paymentCred, err := cardanosdk.NewKeyCredential(paymentKey.PubKey())
	if err != nil {
		return nil, err
	}
	stakeCred, err := cardanosdk.NewKeyCredential(stakeKey.PubKey())
	if err != nil {
		return nil, err
	}
	addr, err := cardanosdk.NewBaseAddress(node.Network(), paymentCred, stakeCred)
	if err != nil {
		return nil, err
	}
	w := &Wallet{
		Name:       name,
		network:    node.Network(),
		node:       node,
		builder:    chain.NewTxBuilder(node),
		paymentKey: paymentKey,
		stakeKey:   stakeKey,
		address:    addr,
	}
	log.Info("wallet ready", "name", name, "address", addr.Bech32())
	return w, nil
}

// NewWatchOnlyWallet wraps a bare address with no key material.
func NewWatchOnlyWallet(name, address string, node cardanosdk.Node) (*Wallet, error) {
	addr, err := cardanosdk.NewAddress(address)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		Name:    name,
		network: node.Network(),
		node:    node,
		builder: chain.NewTxBuilder(node),
		address: addr,
	}, nil
}

// Address the wallet's bech32 address
func (w *Wallet) Address() string { return w.address.Bech32() }

// SigningKey the payment signing key, nil for watch-only wallets.
func (w *Wallet) SigningKey() crypto.PrvKey { return w.paymentKey }

// StakeKey the stake signing key, nil for watch-only wallets.
func (w *Wallet) StakeKey() crypto.PrvKey { return w.stakeKey }

// StakeAddress the wallet's bech32 reward address.
func (w *Wallet) StakeAddress() (string, error) {
	if w.stakeKey == nil {
		return "", ErrInvalidStakeTarget
	}
	credential, err := cardanosdk.NewKeyCredential(w.stakeKey.PubKey())
	if err != nil {
		return "", err
	}
	return stakeAddressFor(w.network, credential)
}

// Sync refreshes the wallet's UTxO snapshot and aggregated balances.
func (w *Wallet) Sync() error {
	utxos, err := w.node.UTxOs(w.address)
	if err != nil {
		return err
	}
	w.utxos = utxos
	w.lovelace = 0
	w.tokens = make(map[string]map[string]uint64)
	for _, utxo := range utxos {
		w.lovelace += uint64(utxo.Amount.Coin)
		if utxo.Amount.MultiAsset == nil {
			continue
		}
		for _, policyID := range utxo.Amount.MultiAsset.Keys() {
			assets := utxo.Amount.MultiAsset.Get(policyID)
			byName, exist := w.tokens[policyID.String()]
			if !exist {
				byName = make(map[string]uint64)
				w.tokens[policyID.String()] = byName
			}
			for _, assetName := range assets.Keys() {
				byName[assetName.String()] += uint64(assets.Get(assetName))
			}
		}
	}
	log.Debug("wallet synced", "name", w.Name, "utxos", len(utxos), "lovelace", w.lovelace)
	return nil
}

// UTxOs the snapshot from the last Sync.
func (w *Wallet) UTxOs() []cardanosdk.UTxO { return w.utxos }

// UTxOsByAge returns the last-synced utxos ordered oldest first by the slot
// of their creating transaction. Requires a chain context that can look up
// transactions.
func (w *Wallet) UTxOsByAge() ([]cardanosdk.UTxO, error) {
	querier, ok := w.node.(chain.TxQuerier)
	if !ok {
		return nil, errors.New("chain context cannot look up transactions")
	}
	slots := make(map[string]uint64, len(w.utxos))
	for _, utxo := range w.utxos {
		hash := utxo.TxHash.String()
		if _, exist := slots[hash]; exist {
			continue
		}
		info, err := querier.TxInfo(hash)
		if err != nil {
			return nil, err
		}
		slots[hash] = info.Slot
	}
	sorted := make([]cardanosdk.UTxO, len(w.utxos))
	copy(sorted, w.utxos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return slots[sorted[i].TxHash.String()] < slots[sorted[j].TxHash.String()]
	})
	return sorted, nil
}

// Balance the lovelace balance from the last Sync.
func (w *Wallet) Balance() Amount { return Lovelace(int64(w.lovelace)) }

// TokenBalance the balance of (policy, asset name) from the last Sync.
func (w *Wallet) TokenBalance(policyHex, name string) uint64 {
	return w.tokens[policyHex][name]
}

// TokenBalances all token balances from the last Sync, policy -> name -> qty.
func (w *Wallet) TokenBalances() map[string]map[string]uint64 { return w.tokens }

// RewardBalance the withdrawable reward balance. Requires a chain context
// that can resolve reward balances.
func (w *Wallet) RewardBalance() (Amount, error) {
	querier, ok := w.node.(chain.RewardQuerier)
	if !ok {
		return Lovelace(0), ErrUnsupportedWithdrawAll
	}
	stakeAddr, err := w.StakeAddress()
	if err != nil {
		return Lovelace(0), err
	}
	info, err := querier.StakeInfo(stakeAddr)
	if err != nil {
		return Lovelace(0), err
	}
	return Lovelace(int64(info.WithdrawableAmount)), nil
}

func (w *Wallet) isStakeActive(stakeAddr string) bool {
	if w.node == nil {
		return false
	}
	querier, ok := w.node.(chain.RewardQuerier)
	if !ok {
		return false
	}
	info, err := querier.StakeInfo(stakeAddr)
	if err != nil {
		return false
	}
	return info.Active
}

// SendAda sends the amount to the address.
func (w *Wallet) SendAda(to string, amount Amount) (*TransactResult, error) {
	return w.Transact(&TransactArgs{
		Outputs: []*Output{NewOutput(to, amount)},
	})
}

// SendUTxO sends specific utxos, change and all, to the address.
func (w *Wallet) SendUTxO(to string, utxos ...cardanosdk.UTxO) (*TransactResult, error) {
	return w.Transact(&TransactArgs{
		Inputs:        []Source{FromUTxOs(utxos...)},
		ChangeAddress: to,
	})
}

// EmptyWallet sends the wallet's entire balance to the address.
func (w *Wallet) EmptyWallet(to string) (*TransactResult, error) {
	return w.Transact(&TransactArgs{ChangeAddress: to})
}

// Delegate delegates the wallet's stake to the pool, registering the stake
// credential first unless already active.
func (w *Wallet) Delegate(poolID string, register bool) (*TransactResult, error) {
	args := &TransactArgs{Delegations: DelegateSelf(poolID)}
	if register {
		args.Registrations = RegisterSelf()
	}
	return w.Transact(args)
}

// WithdrawRewards withdraws the wallet's full reward balance.
func (w *Wallet) WithdrawRewards() (*TransactResult, error) {
	return w.Transact(&TransactArgs{Withdrawals: WithdrawAll()})
}

// MintTokens mints the tokens to the address, with the minimum viable
// lovelace attached.
func (w *Wallet) MintTokens(to string, tokens ...*Token) (*TransactResult, error) {
	return w.Transact(&TransactArgs{
		Mints:   tokens,
		Outputs: []*Output{NewOutput(to, Lovelace(0), tokens...)},
	})
}

// BurnTokens burns the tokens. Positive amounts are negated.
func (w *Wallet) BurnTokens(tokens ...*Token) (*TransactResult, error) {
	burns := make([]*Token, len(tokens))
	for i, token := range tokens {
		amount := token.Amount
		if amount > 0 {
			amount = -amount
		}
		burns[i] = &Token{
			Policy:   token.Policy,
			Amount:   amount,
			Name:     token.Name,
			HexName:  token.HexName,
			Metadata: token.Metadata,
		}
	}
	return w.Transact(&TransactArgs{Mints: burns})
}
