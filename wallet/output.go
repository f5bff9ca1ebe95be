package wallet

import (
	cardanosdk "github.com/echovl/cardano-go"
)

// Output is a user-declared transaction destination. A zero Amount is
// replaced with the protocol minimum for the output's own asset bundle at
// formatting time; nonzero amounts pass through untouched.
type Output struct {
	Address string
	Amount  Amount
	Tokens  []*Token
}

// NewOutput new output
func NewOutput(address string, amount Amount, tokens ...*Token) *Output {
	return &Output{Address: address, Amount: amount, Tokens: tokens}
}

// minCoinsFunc reports the minimum lovelace a builder accepts for the output.
type minCoinsFunc func(out *cardanosdk.TxOutput) (cardanosdk.Coin, error)

// formatOutputs converts logical outputs into builder-ready records. Token
// lists are merged by (policy, name) within each single output.
func formatOutputs(outputs []*Output, minCoins minCoinsFunc) ([]*cardanosdk.TxOutput, error) {
	formatted := make([]*cardanosdk.TxOutput, 0, len(outputs))
	for _, output := range outputs {
		addr, err := cardanosdk.NewAddress(output.Address)
		if err != nil {
			return nil, err
		}
		bundle, err := mergeOutputTokens(output.Tokens)
		if err != nil {
			return nil, err
		}

		coin := cardanosdk.Coin(output.Amount.Lovelace())
		var value *cardanosdk.Value
		if bundle != nil {
			value = cardanosdk.NewValueWithAssets(coin, bundle)
		} else {
			value = cardanosdk.NewValue(coin)
		}
		txOut := &cardanosdk.TxOutput{Address: addr, Amount: value}

		if output.Amount.IsZero() {
			min, err := minCoins(txOut)
			if err != nil {
				return nil, err
			}
			txOut.Amount.Coin = min
		}
		formatted = append(formatted, txOut)
	}
	return formatted, nil
}

// mergeOutputTokens sums duplicate (policy, name) pairs within one output and
// returns the resulting bundle, nil when no positive quantity remains.
func mergeOutputTokens(tokens []*Token) (*cardanosdk.MultiAsset, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	policyOrder := []string{}
	nameOrder := make(map[string][]string)
	amounts := make(map[string]map[string]int64)
	for _, token := range tokens {
		policyHex := token.Policy.PolicyID
		names, exist := amounts[policyHex]
		if !exist {
			names = make(map[string]int64)
			amounts[policyHex] = names
			policyOrder = append(policyOrder, policyHex)
		}
		if _, exist := names[token.Name]; !exist {
			nameOrder[policyHex] = append(nameOrder[policyHex], token.Name)
		}
		names[token.Name] += token.Amount
	}

	multiAsset := cardanosdk.NewMultiAsset()
	hasAssets := false
	for _, policyHex := range policyOrder {
		assets := cardanosdk.NewAssets()
		hasPositive := false
		for _, name := range nameOrder[policyHex] {
			amount := amounts[policyHex][name]
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
