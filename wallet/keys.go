package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/easyada/cardano-wallet/common"
	"github.com/echovl/cardano-go/crypto"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// cardano-cli key envelope types
const (
	PaymentSKeyType = "PaymentSigningKeyShelley_ed25519"
	PaymentVKeyType = "PaymentVerificationKeyShelley_ed25519"
	StakeSKeyType   = "StakeSigningKeyShelley_ed25519"
	StakeVKeyType   = "StakeVerificationKeyShelley_ed25519"
)

// keyEnvelope is the cardano-cli JSON key file format. CborHex wraps the raw
// key bytes in a CBOR byte string.
type keyEnvelope struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	CborHex     string `json:"cborHex"`
}

func saveKeyFile(path, keyType, description string, raw []byte) error {
	wrapped, err := cbor.Marshal(raw)
	if err != nil {
		return err
	}
	envelope := keyEnvelope{
		Type:        keyType,
		Description: description,
		CborHex:     common.Bytes2Hex(wrapped),
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func loadKeyFile(path string) (*keyEnvelope, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var envelope keyEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, nil, errors.Wrapf(err, "invalid key file %v", path)
	}
	var raw []byte
	if err := cbor.Unmarshal(common.Hex2Bytes(envelope.CborHex), &raw); err != nil {
		return nil, nil, errors.Wrapf(err, "invalid cborHex in key file %v", path)
	}
	return &envelope, raw, nil
}

func prvKeyFromRaw(raw []byte) (crypto.PrvKey, error) {
	priStr, err := bech32.EncodeFromBase256("addr_sk", raw)
	if err != nil {
		return nil, err
	}
	return crypto.NewPrvKey(priStr)
}

func generatePrvKey() (crypto.PrvKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return prvKeyFromRaw(priv)
}

func skeyPath(dir, name, role string) string {
	return filepath.Join(dir, name+"."+role+".skey")
}

func vkeyPath(dir, name, role string) string {
	return filepath.Join(dir, name+"."+role+".vkey")
}

// LoadOrCreateKeys loads the named wallet's payment and stake signing keys
// from dir, generating and persisting fresh ones when absent.
func LoadOrCreateKeys(name, dir string) (payment, stake crypto.PrvKey, err error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, nil, err
	}
	payment, err = loadOrCreateKey(skeyPath(dir, name, "payment"),
		vkeyPath(dir, name, "payment"), PaymentSKeyType, PaymentVKeyType)
	if err != nil {
		return nil, nil, err
	}
	stake, err = loadOrCreateKey(skeyPath(dir, name, "stake"),
		vkeyPath(dir, name, "stake"), StakeSKeyType, StakeVKeyType)
	if err != nil {
		return nil, nil, err
	}
	return payment, stake, nil
}

func loadOrCreateKey(skey, vkey, skeyType, vkeyType string) (crypto.PrvKey, error) {
	if common.FileExist(skey) {
		_, raw, err := loadKeyFile(skey)
		if err != nil {
			return nil, err
		}
		return prvKeyFromRaw(raw)
	}
	key, err := generatePrvKey()
	if err != nil {
		return nil, err
	}
	if err := saveKeyFile(skey, skeyType, "", key); err != nil {
		return nil, err
	}
	if err := saveKeyFile(vkey, vkeyType, "", key.PubKey()); err != nil {
		return nil, err
	}
	return key, nil
}

// ListWallets the wallet names with a payment signing key under dir.
func ListWallets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		const suffix = ".payment.skey"
		if len(entry.Name()) > len(suffix) && filepath.Ext(entry.Name()) == ".skey" {
			if entry.Name()[len(entry.Name())-len(suffix):] == suffix {
				names = append(names, entry.Name()[:len(entry.Name())-len(suffix)])
			}
		}
	}
	return names, nil
}
