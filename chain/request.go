package chain

import (
	cardanosdk "github.com/echovl/cardano-go"
)

// CertificateType tags the stake certificate variants a request may carry.
type CertificateType int

const (
	StakeRegistration CertificateType = iota
	StakeDeregistration
	StakeDelegation
)

// Certificate is a normalized stake certificate. PoolKeyHash is only set
// for delegations.
type Certificate struct {
	Type            CertificateType
	StakeCredential cardanosdk.StakeCredential
	PoolKeyHash     cardanosdk.Hash28
}

func (c *Certificate) toSDK() (cardanosdk.Certificate, error) {
	switch c.Type {
	case StakeRegistration:
		return cardanosdk.Certificate{
			Type:            cardanosdk.StakeRegistration,
			StakeCredential: c.StakeCredential,
		}, nil
	case StakeDeregistration:
		return cardanosdk.Certificate{
			Type:            cardanosdk.StakeDeregistration,
			StakeCredential: c.StakeCredential,
		}, nil
	case StakeDelegation:
		return cardanosdk.Certificate{
			Type:            cardanosdk.StakeDelegation,
			StakeCredential: c.StakeCredential,
			PoolKeyHash:     c.PoolKeyHash,
		}, nil
	default:
		return cardanosdk.Certificate{}, ErrUnknownCertType
	}
}

// TxRequest holds the normalized pieces of a transaction, ready for assembly.
// All amounts are lovelace. Withdrawals is keyed by the raw 28-byte
// staking-key-hash bytes carried in the string; the builder derives the
// on-chain reward account from them.
type TxRequest struct {
	Inputs        []cardanosdk.UTxO
	Outputs       []*cardanosdk.TxOutput
	Mint          *cardanosdk.Mint
	NativeScripts []cardanosdk.NativeScript
	Certificates  []Certificate
	Withdrawals   map[string]uint64
	AuxiliaryData *cardanosdk.AuxiliaryData
	ChangeAddress cardanosdk.Address
	TTL           uint64

	// ExpectedSigners sizes the placeholder witness set when building
	// without keys, so the fee covers the final witnesses.
	ExpectedSigners int
}
