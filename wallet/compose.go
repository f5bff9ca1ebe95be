package wallet

import (
	mapset "github.com/deckarep/golang-set"
	"github.com/easyada/cardano-wallet/chain"
	"github.com/easyada/cardano-wallet/log"
	cardanosdk "github.com/echovl/cardano-go"
	"github.com/echovl/cardano-go/crypto"
	"github.com/pkg/errors"
)

// Source is a spending source for a transaction: a bare address (spend
// whatever the chain context reports for it), pre-selected utxos passed
// through directly, or a wallet, which can also sign. The shape is resolved
// here once; downstream logic never re-inspects it.
type Source struct {
	address string
	utxos   []cardanosdk.UTxO
	wallet  *Wallet
}

// FromAddress source spending a bare address's utxos
func FromAddress(address string) Source { return Source{address: address} }

// FromUTxOs source spending exactly the given utxos
func FromUTxOs(utxos ...cardanosdk.UTxO) Source { return Source{utxos: utxos} }

// FromWallet source spending (and signing for) a wallet
func FromWallet(w *Wallet) Source { return Source{wallet: w} }

func (s Source) resolveUTxOs(node cardanosdk.Node) ([]cardanosdk.UTxO, error) {
	switch {
	case len(s.utxos) > 0:
		return s.utxos, nil
	case s.wallet != nil:
		return node.UTxOs(s.wallet.address)
	case s.address != "":
		addr, err := cardanosdk.NewAddress(s.address)
		if err != nil {
			return nil, err
		}
		return node.UTxOs(addr)
	default:
		return nil, ErrEmptyInputSet
	}
}

func (s Source) signingKey() crypto.PrvKey {
	if s.wallet != nil {
		return s.wallet.paymentKey
	}
	return nil
}

// TransactArgs is one high-level transaction intent.
type TransactArgs struct {
	Inputs  []Source
	Outputs []*Output
	Mints   []*Token

	Registrations Registrations
	Delegations   Delegations
	Withdrawals   Withdrawals

	Message  string
	Metadata cardanosdk.Metadata

	Signers       []crypto.PrvKey
	ChangeAddress string
	TTL           uint64

	// BuildOnly returns the fee-complete transaction without real
	// signatures. NoSubmit signs but does not submit. Await blocks until
	// the submitted transaction is confirmed.
	BuildOnly bool
	NoSubmit  bool
	Await     bool
}

// TransactResult the outcome of a Transact call
type TransactResult struct {
	Tx        *cardanosdk.Tx
	TxHash    string
	Submitted bool
}

// Transact drives the whole composition pipeline: resolve inputs, aggregate
// mints, resolve stake intents, assemble metadata, format outputs, resolve
// the signer set, then build / sign / submit / await per the flags. Any
// failure aborts before the builder is invoked; nothing is submitted until
// the final explicit step.
func (w *Wallet) Transact(args *TransactArgs) (*TransactResult, error) {
	sources := args.Inputs
	if len(sources) == 0 {
		sources = []Source{FromWallet(w)}
	}
	inputs := []cardanosdk.UTxO{}
	for _, source := range sources {
		utxos, err := source.resolveUTxOs(w.node)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, utxos...)
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyInputSet
	}

	ledger := NewLedger()
	for _, token := range args.Mints {
		if err := ledger.Append(token); err != nil {
			return nil, err
		}
	}
	mint, err := ledger.Mint()
	if err != nil {
		return nil, err
	}

	plan, err := w.resolveStake(args.Registrations, args.Delegations, args.Withdrawals)
	if err != nil {
		return nil, err
	}

	auxiliaryData, err := assembleAuxiliaryData(args.Mints, args.Message, args.Metadata)
	if err != nil {
		return nil, err
	}

	outputs, err := formatOutputs(args.Outputs, w.builder.MinCoins)
	if err != nil {
		return nil, err
	}

	signers := w.resolveSigners(args.Signers, sources, plan)
	if !args.BuildOnly && len(signers) == 0 {
		return nil, ErrNoSigningKey
	}

	changeAddress := args.ChangeAddress
	if changeAddress == "" {
		changeAddress = w.address.Bech32()
	}
	changeAddr, err := cardanosdk.NewAddress(changeAddress)
	if err != nil {
		return nil, err
	}

	// a mint under a time-locked policy must land before the lock expires
	ttl := args.TTL
	for _, token := range args.Mints {
		if exp := token.Policy.ExpirationSlot(); exp > 0 && (ttl == 0 || exp < ttl) {
			ttl = exp
		}
	}

	expectedSigners := len(signers)
	if expectedSigners == 0 {
		expectedSigners = 1
	}
	req := &chain.TxRequest{
		Inputs:          inputs,
		Outputs:         outputs,
		Mint:            mint,
		NativeScripts:   ledger.NativeScripts(),
		Certificates:    plan.certificates,
		Withdrawals:     plan.withdrawals,
		AuxiliaryData:   auxiliaryData,
		ChangeAddress:   changeAddr,
		TTL:             ttl,
		ExpectedSigners: expectedSigners,
	}

	if args.BuildOnly {
		tx, err := w.builder.Build(req)
		if err != nil {
			return nil, err
		}
		txHash, err := tx.Hash()
		if err != nil {
			return nil, err
		}
		return &TransactResult{Tx: tx, TxHash: txHash.String()}, nil
	}

	tx, err := w.builder.BuildAndSign(req, signers)
	if err != nil {
		return nil, err
	}
	txHash, err := tx.Hash()
	if err != nil {
		return nil, err
	}
	result := &TransactResult{Tx: tx, TxHash: txHash.String()}

	if args.NoSubmit {
		return result, nil
	}
	if _, err := w.node.SubmitTx(tx); err != nil {
		return nil, errors.Wrap(err, "submit tx")
	}
	result.Submitted = true
	log.Info("transaction submitted", "wallet", w.Name, "txHash", result.TxHash)

	if args.Await {
		w.awaitConfirmation(result.TxHash)
		if err := w.Sync(); err != nil {
			log.Warn("wallet sync after confirmation failed", "wallet", w.Name, "err", err)
		}
	}
	return result, nil
}

// resolveSigners orders the signer set: the wallet's own key first, then
// explicit signers, source wallets and the stake plan's keys, deduplicated
// by public key.
func (w *Wallet) resolveSigners(explicit []crypto.PrvKey, sources []Source, plan *stakePlan) []crypto.PrvKey {
	seen := mapset.NewSet()
	signers := []crypto.PrvKey{}
	add := func(key crypto.PrvKey) {
		if key == nil {
			return
		}
		if seen.Add(key.PubKey().String()) {
			signers = append(signers, key)
		}
	}
	add(w.paymentKey)
	for _, key := range explicit {
		add(key)
	}
	for _, source := range sources {
		add(source.signingKey())
	}
	for _, key := range plan.signers {
		add(key)
	}
	return signers
}
