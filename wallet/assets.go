package wallet

import (
	"math/big"

	cardanosdk "github.com/echovl/cardano-go"
)

// Ledger aggregates mint/burn token quantities per (policy, asset name),
// recording each policy's backing script exactly once. The signed view keeps
// burns as negatives; the mint-only view keeps strictly positive quantities
// for minimum-ADA estimation.
type Ledger struct {
	policyOrder []string
	nameOrder   map[string][]string
	amounts     map[string]map[string]int64
	scripts     map[string]*cardanosdk.NativeScript
}

// NewLedger new empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		nameOrder: make(map[string][]string),
		amounts:   make(map[string]map[string]int64),
		scripts:   make(map[string]*cardanosdk.NativeScript),
	}
}

// Append folds the token into the ledger. Duplicate (policy, name) pairs
// sum. The token's policy must carry a script; re-registering a policy with
// a different script fails.
func (l *Ledger) Append(token *Token) error {
	script := token.Policy.Script()
	if script == nil {
		return ErrPolicyScriptMissing
	}
	policyHex := token.Policy.PolicyID

	if registered, exist := l.scripts[policyHex]; exist {
		if registered != script {
			return ErrConflictingPolicyScript
		}
	} else {
		l.scripts[policyHex] = script
		l.policyOrder = append(l.policyOrder, policyHex)
		l.amounts[policyHex] = make(map[string]int64)
	}

	names := l.amounts[policyHex]
	if _, exist := names[token.Name]; !exist {
		l.nameOrder[policyHex] = append(l.nameOrder[policyHex], token.Name)
	}
	names[token.Name] += token.Amount
	return nil
}

// IsEmpty reports whether the ledger holds no entries.
func (l *Ledger) IsEmpty() bool {
	return len(l.policyOrder) == 0
}

// Net the signed net quantity recorded for (policy, name).
func (l *Ledger) Net(policyHex, name string) int64 {
	return l.amounts[policyHex][name]
}

// NativeScripts the deduplicated policy scripts, in first-seen order.
func (l *Ledger) NativeScripts() []cardanosdk.NativeScript {
	if l.IsEmpty() {
		return nil
	}
	scripts := make([]cardanosdk.NativeScript, 0, len(l.policyOrder))
	for _, policyHex := range l.policyOrder {
		scripts = append(scripts, *l.scripts[policyHex])
	}
	return scripts
}

// Mint the signed ledger as an SDK mint value, nil when empty.
func (l *Ledger) Mint() (*cardanosdk.Mint, error) {
	if l.IsEmpty() {
		return nil, nil
	}
	mint := cardanosdk.NewMint()
	for _, policyHex := range l.policyOrder {
		policyHash, err := cardanosdk.NewHash28(policyHex)
		if err != nil {
			return nil, err
		}
		policyID := cardanosdk.NewPolicyIDFromHash(policyHash)
		mintAssets := cardanosdk.NewMintAssets()
		for _, name := range l.nameOrder[policyHex] {
			mintAssets.Set(cardanosdk.NewAssetName(name), big.NewInt(l.amounts[policyHex][name]))
		}
		mint.Set(policyID, mintAssets)
	}
	return mint, nil
}

// MintOnlyMultiAsset the strictly positive quantities as an SDK multi-asset
// bundle, nil when nothing is minted. Burns remove value rather than
// requiring it, so they are excluded here.
func (l *Ledger) MintOnlyMultiAsset() (*cardanosdk.MultiAsset, error) {
	multiAsset := cardanosdk.NewMultiAsset()
	hasAssets := false
	for _, policyHex := range l.policyOrder {
		assets := cardanosdk.NewAssets()
		hasPositive := false
		for _, name := range l.nameOrder[policyHex] {
			amount := l.amounts[policyHex][name]
			if amount <= 0 {
				continue
			}
			assets.Set(cardanosdk.NewAssetName(name), cardanosdk.BigNum(amount))
			hasPositive = true
		}
		if !hasPositive {
			continue
		}
		policyHash, err := cardanosdk.NewHash28(policyHex)
		if err != nil {
			return nil, err
		}
		multiAsset.Set(cardanosdk.NewPolicyIDFromHash(policyHash), assets)
		hasAssets = true
	}
	if !hasAssets {
		return nil, nil
	}
	return multiAsset, nil
}
