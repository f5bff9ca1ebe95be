package wallet

import (
	"testing"

	"github.com/easyada/cardano-wallet/chain"
	cardanosdk "github.com/echovl/cardano-go"
)

const testPoolHex = "f0ff48bbb7bbe9d59a40f1ce90e9e9d0ff5002ec48f232b49ca0fb9a"

func newTestWallet(t *testing.T) *Wallet {
	t.Helper()
	return &Wallet{
		Name:       "test",
		network:    cardanosdk.Mainnet,
		paymentKey: newTestKey(t),
		stakeKey:   newTestKey(t),
	}
}

func TestResolveStakeDelegationWithRegistration(t *testing.T) {
	w := newTestWallet(t)
	plan, err := w.resolveStake(RegisterSelf(), DelegateSelf(testPoolHex), WithdrawNone())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(plan.certificates) != 2 {
		t.Fatalf("certificates expected %v, but got %v", 2, len(plan.certificates))
	}
	if plan.certificates[0].Type != chain.StakeRegistration {
		t.Fatalf("first certificate expected %v, but got %v", chain.StakeRegistration, plan.certificates[0].Type)
	}
	if plan.certificates[1].Type != chain.StakeDelegation {
		t.Fatalf("second certificate expected %v, but got %v", chain.StakeDelegation, plan.certificates[1].Type)
	}

	// the stake key is implied by both certificates but must end up in the
	// signer set exactly once
	signers := w.resolveSigners(nil, nil, plan)
	stakePub := w.stakeKey.PubKey().String()
	count := 0
	for _, key := range signers {
		if key.PubKey().String() == stakePub {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("stake signer expected once, but got %v times", count)
	}
}

func TestResolveStakeDelegationOnly(t *testing.T) {
	w := newTestWallet(t)
	plan, err := w.resolveStake(RegisterNone(), DelegateSelf(testPoolHex), WithdrawNone())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(plan.certificates) != 1 {
		t.Fatalf("certificates expected %v, but got %v", 1, len(plan.certificates))
	}
	if plan.certificates[0].Type != chain.StakeDelegation {
		t.Fatalf("certificate expected %v, but got %v", chain.StakeDelegation, plan.certificates[0].Type)
	}
}

func TestResolveStakeWithdrawAllUnsupported(t *testing.T) {
	w := newTestWallet(t)
	// no chain context capable of reward lookups
	_, err := w.resolveStake(RegisterNone(), DelegateNone(), WithdrawAll())
	if err != ErrUnsupportedWithdrawAll {
		t.Fatalf("expected %v, but got %v", ErrUnsupportedWithdrawAll, err)
	}
}

func TestResolveStakeExplicitWithdrawals(t *testing.T) {
	w := newTestWallet(t)
	target, err := TargetFromWallet(w)
	if err != nil {
		t.Fatalf("target failed: %v", err)
	}
	plan, err := w.resolveStake(RegisterNone(), DelegateNone(), WithdrawExact(
		WithdrawalEntry{Target: target, Amount: Lovelace(5_000_000)},
		WithdrawalEntry{Target: target, Amount: Lovelace(1_000_000)},
	))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(plan.withdrawals) != 1 {
		t.Fatalf("withdrawal entries expected %v, but got %v", 1, len(plan.withdrawals))
	}
	key := target.stakingKeyHash()
	if len(key) != 28 {
		t.Fatalf("withdrawal key length expected %v, but got %v", 28, len(key))
	}
	if got := plan.withdrawals[key]; got != 6_000_000 {
		t.Fatalf("withdrawal amount expected %v, but got %v", 6_000_000, got)
	}
}

func TestTargetFromAddressRequiresStakingPart(t *testing.T) {
	// enterprise address, payment part only
	_, err := TargetFromAddress("addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k")
	if err != ErrInvalidStakeTarget {
		t.Fatalf("expected %v, but got %v", ErrInvalidStakeTarget, err)
	}

	target, err := TargetFromAddress(testAddr)
	if err != nil {
		t.Fatalf("base address target failed: %v", err)
	}
	if target.StakeAddress() == "" {
		t.Fatalf("stake address expected for base address")
	}
}

func TestTargetFromRewardAddress(t *testing.T) {
	w := newTestWallet(t)
	fromWallet, err := TargetFromWallet(w)
	if err != nil {
		t.Fatalf("wallet target failed: %v", err)
	}

	target, err := TargetFromAddress(fromWallet.StakeAddress())
	if err != nil {
		t.Fatalf("reward address target failed: %v", err)
	}
	if target.StakeAddress() != fromWallet.StakeAddress() {
		t.Fatalf("stake address expected %v, but got %v", fromWallet.StakeAddress(), target.StakeAddress())
	}
	if target.stakingKeyHash() != fromWallet.stakingKeyHash() {
		t.Fatalf("staking key hash mismatch after reward address round trip")
	}

	// wrong prefix and truncated payloads are rejected
	if _, err := TargetFromAddress("stake1qqqqqq"); err == nil {
		t.Fatalf("expected error for malformed reward address")
	}
}

func TestPoolKeyHash(t *testing.T) {
	hash, err := poolKeyHash(testPoolHex)
	if err != nil {
		t.Fatalf("hex pool id failed: %v", err)
	}
	if len(hash) != 28 {
		t.Fatalf("pool key hash length expected %v, but got %v", 28, len(hash))
	}
}
