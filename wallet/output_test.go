package wallet

import (
	"testing"

	cardanosdk "github.com/echovl/cardano-go"
)

func fixedMinCoins(min cardanosdk.Coin) minCoinsFunc {
	return func(out *cardanosdk.TxOutput) (cardanosdk.Coin, error) {
		return min, nil
	}
}

func TestFormatOutputsSubstitutesMinimum(t *testing.T) {
	policy := newTestPolicy(t, "fmt")
	token := mustToken(t, policy, 2, "abc")

	outputs, err := formatOutputs(
		[]*Output{NewOutput(testAddr, Lovelace(0), token)},
		fixedMinCoins(1_344_798),
	)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if len(outputs) != 1 {
		t.Fatalf("outputs expected %v, but got %v", 1, len(outputs))
	}
	if outputs[0].Amount.Coin != 1_344_798 {
		t.Fatalf("zero amount expected minimum %v, but got %v", 1_344_798, outputs[0].Amount.Coin)
	}
	if outputs[0].Amount.MultiAsset == nil {
		t.Fatalf("token bundle expected on output")
	}
}

func TestFormatOutputsPassesNonzeroThrough(t *testing.T) {
	// below protocol minimum on purpose: nonzero amounts are not adjusted
	outputs, err := formatOutputs(
		[]*Output{NewOutput(testAddr, Lovelace(7))},
		fixedMinCoins(1_000_000),
	)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if outputs[0].Amount.Coin != 7 {
		t.Fatalf("nonzero amount expected %v, but got %v", 7, outputs[0].Amount.Coin)
	}
}

func TestMergeOutputTokens(t *testing.T) {
	policy := newTestPolicy(t, "dup")
	bundle, err := mergeOutputTokens([]*Token{
		mustToken(t, policy, 2, "abc"),
		mustToken(t, policy, 3, "abc"),
	})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if bundle == nil {
		t.Fatalf("bundle expected non-nil")
	}
	policyID, err := policy.ID()
	if err != nil {
		t.Fatalf("policy id failed: %v", err)
	}
	assets := bundle.Get(policyID)
	if assets == nil {
		t.Fatalf("policy missing from bundle")
	}
	if got := assets.Get(cardanosdk.NewAssetName("abc")); got != 5 {
		t.Fatalf("merged amount expected %v, but got %v", 5, got)
	}
}

func TestMergeOutputTokensDropsNonPositive(t *testing.T) {
	policy := newTestPolicy(t, "neg")
	bundle, err := mergeOutputTokens([]*Token{
		mustToken(t, policy, 2, "abc"),
		mustToken(t, policy, -2, "abc"),
	})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if bundle != nil {
		t.Fatalf("bundle expected nil when nothing positive remains, but got %v", bundle)
	}
}
