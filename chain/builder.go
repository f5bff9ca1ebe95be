package chain

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/btcsuite/btcutil/bech32"
	cardanosdk "github.com/echovl/cardano-go"
	"github.com/echovl/cardano-go/crypto"
	"github.com/pkg/errors"
)

// builder errors
var (
	ErrEmptyInputSet   = errors.New("no transaction inputs")
	ErrNoSigningKey    = errors.New("no signing key")
	ErrUnknownCertType = errors.New("unknown certificate type")
)

// ttl offset (slots) applied when the request carries none
const defaultTTLOffset = 7200

// TxBuilder assembles and signs transactions from a TxRequest against the
// protocol parameters of the given node.
//
// Build produces a fee-complete transaction carrying placeholder witnesses
// signed with a throwaway key, so an external signer can replace them via
// AppendSignature without changing the fee. BuildAndSign signs with the
// given keys directly.
type TxBuilder struct {
	node       cardanosdk.Node
	fakePrvKey crypto.PrvKey
}

// NewTxBuilder new tx builder
func NewTxBuilder(node cardanosdk.Node) *TxBuilder {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	priStr, _ := bech32.EncodeFromBase256("addr_sk", priv)
	fakePrvKey, err := crypto.NewPrvKey(priStr)
	if err != nil {
		panic(err)
	}
	return &TxBuilder{
		node:       node,
		fakePrvKey: fakePrvKey,
	}
}

// Build assembles the request into a transaction with placeholder witnesses.
func (tb *TxBuilder) Build(req *TxRequest) (*cardanosdk.Tx, error) {
	builder, err := tb.assemble(req)
	if err != nil {
		return nil, err
	}
	numSigners := req.ExpectedSigners
	if numSigners < 1 {
		numSigners = 1
	}
	fakeKeys := make([]crypto.PrvKey, numSigners)
	for i := range fakeKeys {
		fakeKeys[i] = tb.fakePrvKey
	}
	builder.Sign(fakeKeys...)
	tx, err := builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build tx")
	}
	return tb.applyWithdrawals(tx, req, fakeKeys)
}

// BuildAndSign assembles the request and signs it with the given keys.
func (tb *TxBuilder) BuildAndSign(req *TxRequest, keys []crypto.PrvKey) (*cardanosdk.Tx, error) {
	if len(keys) == 0 {
		return nil, ErrNoSigningKey
	}
	builder, err := tb.assemble(req)
	if err != nil {
		return nil, err
	}
	builder.Sign(keys...)
	tx, err := builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build tx")
	}
	return tb.applyWithdrawals(tx, req, keys)
}

// MinCoins returns the minimum lovelace the output must carry.
func (tb *TxBuilder) MinCoins(out *cardanosdk.TxOutput) (cardanosdk.Coin, error) {
	pparams, err := tb.node.ProtocolParams()
	if err != nil {
		return 0, errors.Wrap(err, "protocol params")
	}
	return cardanosdk.NewTxBuilder(pparams).MinCoinsForTxOut(out), nil
}

// AppendSignature replaces the placeholder witnesses with the given
// signature, leaving real witnesses untouched.
func (tb *TxBuilder) AppendSignature(tx *cardanosdk.Tx, pubKey crypto.PubKey, signature []byte) {
	newVKeyWitnessSet := []cardanosdk.VKeyWitness{}
	for _, vKeyWitness := range tx.WitnessSet.VKeyWitnessSet {
		if vKeyWitness.VKey.String() == tb.fakePrvKey.PubKey().String() {
			newVKeyWitnessSet = append(newVKeyWitnessSet, cardanosdk.VKeyWitness{
				VKey:      pubKey,
				Signature: signature,
			})
		} else {
			newVKeyWitnessSet = append(newVKeyWitnessSet, vKeyWitness)
		}
	}
	tx.WitnessSet.VKeyWitnessSet = newVKeyWitnessSet
}

func (tb *TxBuilder) assemble(req *TxRequest) (*cardanosdk.TxBuilder, error) {
	if len(req.Inputs) == 0 {
		return nil, ErrEmptyInputSet
	}
	pparams, err := tb.node.ProtocolParams()
	if err != nil {
		return nil, errors.Wrap(err, "protocol params")
	}
	builder := cardanosdk.NewTxBuilder(pparams)

	inputs := make([]*cardanosdk.TxInput, len(req.Inputs))
	for i := range req.Inputs {
		utxo := req.Inputs[i]
		inputs[i] = cardanosdk.NewTxInput(utxo.TxHash, uint(utxo.Index), utxo.Amount)
	}
	builder.AddInputs(inputs...)
	builder.AddOutputs(req.Outputs...)

	ttl := req.TTL
	if ttl == 0 {
		tip, err := tb.node.Tip()
		if err != nil {
			return nil, errors.Wrap(err, "query tip")
		}
		ttl = tip.Slot + defaultTTLOffset
	}
	builder.SetTTL(ttl)

	if req.Mint != nil {
		builder.Mint(req.Mint)
	}
	for i := range req.NativeScripts {
		builder.AddNativeScript(req.NativeScripts[i])
	}
	for i := range req.Certificates {
		cert, err := req.Certificates[i].toSDK()
		if err != nil {
			return nil, err
		}
		builder.AddCertificate(cert)
	}
	if req.AuxiliaryData != nil {
		builder.AddAuxiliaryData(req.AuxiliaryData)
	}
	builder.AddChangeIfNeeded(req.ChangeAddress)
	return builder, nil
}

// withdrawalFeePad extra bytes priced in for the fee and change fields
// growing when repriced
const withdrawalFeePad = 4

// applyWithdrawals records reward withdrawals on the built body, keyed by
// the 29-byte reward account (network header + staking key hash), credits
// the withdrawn lovelace minus the marginal fee for the added bytes to the
// change output, then re-signs since the body hash changed.
func (tb *TxBuilder) applyWithdrawals(tx *cardanosdk.Tx, req *TxRequest, keys []crypto.PrvKey) (*cardanosdk.Tx, error) {
	if len(req.Withdrawals) == 0 {
		return tx, nil
	}

	before, err := tx.MarshalCBOR()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}

	header := byte(0xe0)
	if tb.node.Network() == cardanosdk.Mainnet {
		header = 0xe1
	}
	wdrl := make(map[string]cardanosdk.Coin, len(req.Withdrawals))
	var total uint64
	for keyHash, amount := range req.Withdrawals {
		account := string(append([]byte{header}, keyHash...))
		wdrl[account] += cardanosdk.Coin(amount)
		total += amount
	}
	tx.Body.Withdrawals = wdrl

	changeIdx := -1
	changeAddr := req.ChangeAddress.Bech32()
	for i := range tx.Body.Outputs {
		if tx.Body.Outputs[i].Address.Bech32() == changeAddr {
			changeIdx = i
			break
		}
	}
	if changeIdx == -1 {
		tx.Body.Outputs = append(tx.Body.Outputs, &cardanosdk.TxOutput{
			Address: req.ChangeAddress,
			Amount:  cardanosdk.NewValue(0),
		})
		changeIdx = len(tx.Body.Outputs) - 1
	}
	tx.Body.Outputs[changeIdx].Amount.Coin += cardanosdk.Coin(total)

	after, err := tx.MarshalCBOR()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	pparams, err := tb.node.ProtocolParams()
	if err != nil {
		return nil, errors.Wrap(err, "protocol params")
	}
	extraBytes := len(after) - len(before) + withdrawalFeePad
	marginalFee := uint64(pparams.MinFeeA) * uint64(extraBytes)
	if total <= marginalFee {
		return nil, errors.Errorf("withdrawn amount %v does not cover the added fee %v", total, marginalFee)
	}
	tx.Body.Outputs[changeIdx].Amount.Coin -= cardanosdk.Coin(marginalFee)
	tx.Body.Fee += cardanosdk.Coin(marginalFee)

	txHash, err := tx.Hash()
	if err != nil {
		return nil, errors.Wrap(err, "hash tx")
	}
	newVKeyWitnessSet := make([]cardanosdk.VKeyWitness, 0, len(keys))
	for _, key := range keys {
		newVKeyWitnessSet = append(newVKeyWitnessSet, cardanosdk.VKeyWitness{
			VKey:      key.PubKey(),
			Signature: key.Sign(txHash),
		})
	}
	tx.WitnessSet.VKeyWitnessSet = newVKeyWitnessSet
	return tx, nil
}
