package wallet

import (
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/easyada/cardano-wallet/chain"
	cardanosdk "github.com/echovl/cardano-go"
	"github.com/echovl/cardano-go/crypto"
)

// StakeTarget is a resolved stake credential plus, when available, the key
// that can sign for it.
type StakeTarget struct {
	credential cardanosdk.StakeCredential
	stakeAddr  string
	signingKey crypto.PrvKey
}

// StakeAddress the bech32 reward address of the target.
func (t StakeTarget) StakeAddress() string { return t.stakeAddr }

// stakingKeyHash the raw credential hash bytes, used to key withdrawals.
func (t StakeTarget) stakingKeyHash() string { return string(t.credential.KeyHash) }

// TargetFromWallet resolves a wallet's own stake credential.
func TargetFromWallet(w *Wallet) (StakeTarget, error) {
	if w.stakeKey == nil {
		return StakeTarget{}, ErrInvalidStakeTarget
	}
	credential, err := cardanosdk.NewKeyCredential(w.stakeKey.PubKey())
	if err != nil {
		return StakeTarget{}, err
	}
	stakeAddr, err := stakeAddressFor(w.network, credential)
	if err != nil {
		return StakeTarget{}, err
	}
	return StakeTarget{
		credential: credential,
		stakeAddr:  stakeAddr,
		signingKey: w.stakeKey,
	}, nil
}

// TargetFromAddress resolves the staking component of a bech32 address.
// Base and reward (stake1...) addresses work; addresses without a staking
// part (enterprise, pointer) fail.
func TargetFromAddress(address string) (StakeTarget, error) {
	if strings.HasPrefix(address, "stake") {
		return targetFromRewardAddress(address)
	}
	addr, err := cardanosdk.NewAddress(address)
	if err != nil {
		return StakeTarget{}, err
	}
	if addr.Type != cardanosdk.Base {
		return StakeTarget{}, ErrInvalidStakeTarget
	}
	stakeAddr, err := stakeAddressFor(addr.Network, addr.Stake)
	if err != nil {
		return StakeTarget{}, err
	}
	return StakeTarget{credential: addr.Stake, stakeAddr: stakeAddr}, nil
}

// targetFromRewardAddress parses a bech32 reward address directly, since
// address parsing in the SDK only covers payment addresses. Script-keyed
// reward addresses (header 0xf0/0xf1) are not stake targets here.
func targetFromRewardAddress(address string) (StakeTarget, error) {
	hrp, data, err := bech32.DecodeToBase256(address)
	if err != nil {
		return StakeTarget{}, err
	}
	if hrp != "stake" && hrp != "stake_test" {
		return StakeTarget{}, ErrInvalidStakeTarget
	}
	if len(data) != 29 || (data[0] != 0xe0 && data[0] != 0xe1) {
		return StakeTarget{}, ErrInvalidStakeTarget
	}
	credential := cardanosdk.StakeCredential{
		Type:    cardanosdk.KeyCredential,
		KeyHash: cardanosdk.Hash28(data[1:]),
	}
	return StakeTarget{credential: credential, stakeAddr: address}, nil
}

// stakeAddressFor derives the bech32 reward address for a stake credential:
// one header byte then the 28-byte credential hash.
func stakeAddressFor(network cardanosdk.Network, credential cardanosdk.StakeCredential) (string, error) {
	header := byte(0xe0)
	hrp := "stake_test"
	if network == cardanosdk.Mainnet {
		header = 0xe1
		hrp = "stake"
	}
	data := append([]byte{header}, credential.KeyHash...)
	return bech32.EncodeFromBase256(hrp, data)
}

// poolKeyHash decodes a bech32 or hex pool ID to its key hash.
func poolKeyHash(poolID string) (cardanosdk.Hash28, error) {
	if strings.HasPrefix(poolID, "pool") {
		_, data, err := bech32.DecodeToBase256(poolID)
		if err != nil {
			return cardanosdk.Hash28{}, err
		}
		return cardanosdk.Hash28(data), nil
	}
	return cardanosdk.NewHash28(poolID)
}

// Registrations selects which stake credentials to register.
type Registrations struct {
	self    bool
	targets []StakeTarget
}

// RegisterNone no registrations
func RegisterNone() Registrations { return Registrations{} }

// RegisterSelf register the caller's own stake credential, skipped when the
// chain context reports it already active.
func RegisterSelf() Registrations { return Registrations{self: true} }

// RegisterTargets register explicit stake targets.
func RegisterTargets(targets ...StakeTarget) Registrations {
	return Registrations{targets: targets}
}

// DelegationEntry one stake target delegating to one pool.
type DelegationEntry struct {
	Target StakeTarget
	PoolID string
}

// Delegations maps stake credentials to pools.
type Delegations struct {
	selfPool string
	entries  []DelegationEntry
}

// DelegateNone no delegations
func DelegateNone() Delegations { return Delegations{} }

// DelegateSelf delegate the caller's own stake credential to the pool.
func DelegateSelf(poolID string) Delegations { return Delegations{selfPool: poolID} }

// DelegateBatch delegate explicit stake targets.
func DelegateBatch(entries ...DelegationEntry) Delegations {
	return Delegations{entries: entries}
}

type withdrawalKind int

const (
	withdrawNone withdrawalKind = iota
	withdrawFull
	withdrawExplicit
)

// WithdrawalEntry one stake target withdrawing a fixed amount.
type WithdrawalEntry struct {
	Target StakeTarget
	Amount Amount
}

// Withdrawals selects reward withdrawals.
type Withdrawals struct {
	kind    withdrawalKind
	entries []WithdrawalEntry
}

// WithdrawNone no withdrawals
func WithdrawNone() Withdrawals { return Withdrawals{} }

// WithdrawAll withdraw the caller's full reward balance. Requires a chain
// context that can report reward balances.
func WithdrawAll() Withdrawals { return Withdrawals{kind: withdrawFull} }

// WithdrawExact withdraw explicit amounts per stake target.
func WithdrawExact(entries ...WithdrawalEntry) Withdrawals {
	return Withdrawals{kind: withdrawExplicit, entries: entries}
}

// stakePlan is the resolver output: ordered certificates (registrations
// before delegations, each in input order), a withdrawal map keyed by the
// raw staking-key-hash bytes, and the stake keys the plan requires as
// signers.
type stakePlan struct {
	certificates []chain.Certificate
	withdrawals  map[string]uint64
	signers      []crypto.PrvKey
}

func (p *stakePlan) isEmpty() bool {
	return len(p.certificates) == 0 && len(p.withdrawals) == 0
}

// resolveStake normalizes the three stake intents into a plan.
func (w *Wallet) resolveStake(regs Registrations, delegs Delegations, wdrls Withdrawals) (*stakePlan, error) {
	plan := &stakePlan{withdrawals: map[string]uint64{}}

	regTargets := []StakeTarget{}
	if regs.self {
		target, err := TargetFromWallet(w)
		if err != nil {
			return nil, err
		}
		regTargets = append(regTargets, target)
	}
	regTargets = append(regTargets, regs.targets...)
	for _, target := range regTargets {
		if target.stakeAddr == "" {
			return nil, ErrInvalidStakeTarget
		}
		if w.isStakeActive(target.stakeAddr) {
			continue
		}
		plan.certificates = append(plan.certificates, chain.Certificate{
			Type:            chain.StakeRegistration,
			StakeCredential: target.credential,
		})
		plan.signers = appendSigner(plan.signers, target.signingKey)
	}

	delegEntries := []DelegationEntry{}
	if delegs.selfPool != "" {
		target, err := TargetFromWallet(w)
		if err != nil {
			return nil, err
		}
		delegEntries = append(delegEntries, DelegationEntry{Target: target, PoolID: delegs.selfPool})
	}
	delegEntries = append(delegEntries, delegs.entries...)
	for _, entry := range delegEntries {
		if entry.Target.stakeAddr == "" {
			return nil, ErrInvalidStakeTarget
		}
		poolHash, err := poolKeyHash(entry.PoolID)
		if err != nil {
			return nil, err
		}
		plan.certificates = append(plan.certificates, chain.Certificate{
			Type:            chain.StakeDelegation,
			StakeCredential: entry.Target.credential,
			PoolKeyHash:     poolHash,
		})
		plan.signers = appendSigner(plan.signers, entry.Target.signingKey)
	}

	switch wdrls.kind {
	case withdrawNone:
	case withdrawFull:
		querier, ok := w.node.(chain.RewardQuerier)
		if !ok {
			return nil, ErrUnsupportedWithdrawAll
		}
		target, err := TargetFromWallet(w)
		if err != nil {
			return nil, err
		}
		info, err := querier.StakeInfo(target.stakeAddr)
		if err != nil {
			return nil, err
		}
		if info.WithdrawableAmount > 0 {
			plan.withdrawals[target.stakingKeyHash()] += info.WithdrawableAmount
			plan.signers = appendSigner(plan.signers, target.signingKey)
		}
	case withdrawExplicit:
		for _, entry := range wdrls.entries {
			if entry.Target.stakeAddr == "" {
				return nil, ErrInvalidStakeTarget
			}
			plan.withdrawals[entry.Target.stakingKeyHash()] += uint64(entry.Amount.Lovelace())
			plan.signers = appendSigner(plan.signers, entry.Target.signingKey)
		}
	}

	return plan, nil
}

func appendSigner(signers []crypto.PrvKey, key crypto.PrvKey) []crypto.PrvKey {
	if key == nil {
		return signers
	}
	return append(signers, key)
}
