package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/easyada/cardano-wallet/common"
	cardanosdk "github.com/echovl/cardano-go"
	"github.com/echovl/cardano-go/crypto"
	"github.com/pkg/errors"
)

// TokenPolicy identifies a minting authority. A policy backed by a native
// script can mint and burn; a raw policy only references existing tokens.
type TokenPolicy struct {
	Name     string
	PolicyID string

	script    *cardanosdk.NativeScript
	scriptDir string
}

// NewTokenPolicy new policy from a backing script, ID derived from its hash.
func NewTokenPolicy(name string, script cardanosdk.NativeScript) (*TokenPolicy, error) {
	policyID, err := cardanosdk.NewPolicyID(script)
	if err != nil {
		return nil, err
	}
	return &TokenPolicy{
		Name:     name,
		PolicyID: policyID.String(),
		script:   &script,
	}, nil
}

// NewRawPolicy references a policy by ID only, for tokens the caller does
// not control.
func NewRawPolicy(name, policyID string) *TokenPolicy {
	return &TokenPolicy{Name: name, PolicyID: policyID}
}

// GeneratePolicy new single-signer minting policy for the given key. A
// nonzero expirationSlot wraps the key script so minting closes at that slot.
func GeneratePolicy(name string, pub crypto.PubKey, expirationSlot uint64) (*TokenPolicy, error) {
	keyScript, err := cardanosdk.NewScriptPubKey(pub)
	if err != nil {
		return nil, err
	}
	script := keyScript
	if expirationSlot > 0 {
		script = cardanosdk.NativeScript{
			Type: cardanosdk.ScriptAll,
			Scripts: []cardanosdk.NativeScript{
				keyScript,
				{
					Type:          cardanosdk.ScriptInvalidAfter,
					IntervalValue: expirationSlot,
				},
			},
		}
	}
	return NewTokenPolicy(name, script)
}

// Script the backing native script, nil for raw policies.
func (p *TokenPolicy) Script() *cardanosdk.NativeScript {
	return p.script
}

// ID the policy ID as an SDK value.
func (p *TokenPolicy) ID() (cardanosdk.PolicyID, error) {
	hash, err := cardanosdk.NewHash28(p.PolicyID)
	if err != nil {
		return cardanosdk.PolicyID{}, err
	}
	return cardanosdk.NewPolicyIDFromHash(hash), nil
}

// ExpirationSlot the slot after which the policy can no longer mint,
// 0 when the policy never expires.
func (p *TokenPolicy) ExpirationSlot() uint64 {
	if p.script == nil {
		return 0
	}
	return expirationSlot(*p.script)
}

// RequiredSigners the key hashes (hex) the script requires.
func (p *TokenPolicy) RequiredSigners() []string {
	if p.script == nil {
		return nil
	}
	return collectKeyHashes(*p.script, nil)
}

func expirationSlot(s cardanosdk.NativeScript) uint64 {
	if s.Type == cardanosdk.ScriptInvalidAfter {
		return s.IntervalValue
	}
	for _, sub := range s.Scripts {
		if slot := expirationSlot(sub); slot > 0 {
			return slot
		}
	}
	return 0
}

func collectKeyHashes(s cardanosdk.NativeScript, hashes []string) []string {
	if s.Type == cardanosdk.ScriptPubKey {
		hashes = append(hashes, common.Bytes2Hex(s.KeyHash))
	}
	for _, sub := range s.Scripts {
		hashes = collectKeyHashes(sub, hashes)
	}
	return hashes
}

// cardano-cli native script JSON
type scriptJSON struct {
	Type     string       `json:"type"`
	KeyHash  string       `json:"keyHash,omitempty"`
	Slot     uint64       `json:"slot,omitempty"`
	Required uint64       `json:"required,omitempty"`
	Scripts  []scriptJSON `json:"scripts,omitempty"`
}

func marshalScript(s cardanosdk.NativeScript) (scriptJSON, error) {
	out := scriptJSON{}
	switch s.Type {
	case cardanosdk.ScriptPubKey:
		out.Type = "sig"
		out.KeyHash = common.Bytes2Hex(s.KeyHash)
	case cardanosdk.ScriptAll:
		out.Type = "all"
	case cardanosdk.ScriptAny:
		out.Type = "any"
	case cardanosdk.ScriptNofK:
		out.Type = "atLeast"
		out.Required = s.N
	case cardanosdk.ScriptInvalidBefore:
		out.Type = "after"
		out.Slot = s.IntervalValue
	case cardanosdk.ScriptInvalidAfter:
		out.Type = "before"
		out.Slot = s.IntervalValue
	default:
		return out, errors.Errorf("unsupported native script type %v", s.Type)
	}
	for _, sub := range s.Scripts {
		subJSON, err := marshalScript(sub)
		if err != nil {
			return out, err
		}
		out.Scripts = append(out.Scripts, subJSON)
	}
	return out, nil
}

func unmarshalScript(j scriptJSON) (cardanosdk.NativeScript, error) {
	s := cardanosdk.NativeScript{}
	switch j.Type {
	case "sig":
		s.Type = cardanosdk.ScriptPubKey
		s.KeyHash = common.Hex2Bytes(j.KeyHash)
	case "all":
		s.Type = cardanosdk.ScriptAll
	case "any":
		s.Type = cardanosdk.ScriptAny
	case "atLeast":
		s.Type = cardanosdk.ScriptNofK
		s.N = j.Required
	case "after":
		s.Type = cardanosdk.ScriptInvalidBefore
		s.IntervalValue = j.Slot
	case "before":
		s.Type = cardanosdk.ScriptInvalidAfter
		s.IntervalValue = j.Slot
	default:
		return s, errors.Errorf("unsupported native script type %v", j.Type)
	}
	for _, sub := range j.Scripts {
		subScript, err := unmarshalScript(sub)
		if err != nil {
			return s, err
		}
		s.Scripts = append(s.Scripts, subScript)
	}
	return s, nil
}

// Save persists the policy script as cardano-cli JSON under dir.
func (p *TokenPolicy) Save(dir string) error {
	if p.script == nil {
		return ErrPolicyScriptMissing
	}
	j, err := marshalScript(*p.script)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	p.scriptDir = dir
	return os.WriteFile(filepath.Join(dir, p.Name+".script"), data, 0600)
}

// LoadPolicy loads a previously saved policy script from dir.
func LoadPolicy(name, dir string) (*TokenPolicy, error) {
	data, err := os.ReadFile(filepath.Join(dir, name+".script"))
	if err != nil {
		return nil, err
	}
	var j scriptJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	script, err := unmarshalScript(j)
	if err != nil {
		return nil, err
	}
	policy, err := NewTokenPolicy(name, script)
	if err != nil {
		return nil, err
	}
	policy.scriptDir = dir
	return policy, nil
}

// ListPolicies the policy names saved under dir.
func ListPolicies(dir string) ([]string, error) {
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
		if filepath.Ext(entry.Name()) == ".script" {
			names = append(names, entry.Name()[:len(entry.Name())-len(".script")])
		}
	}
	return names, nil
}

// Token is a named signed quantity under a policy: positive amounts mint,
// negative amounts burn. Name and HexName are mutually derivable.
type Token struct {
	Policy   *TokenPolicy
	Amount   int64
	Name     string
	HexName  string
	Metadata map[string]interface{}
}

// NewToken new token by UTF-8 name. Metadata is validated recursively.
func NewToken(policy *TokenPolicy, amount int64, name string, metadata map[string]interface{}) (*Token, error) {
	if err := validateTokenMetadata(metadata); err != nil {
		return nil, err
	}
	return &Token{
		Policy:   policy,
		Amount:   amount,
		Name:     name,
		HexName:  common.Bytes2Hex([]byte(name)),
		Metadata: metadata,
	}, nil
}

// NewTokenFromHexName new token by hex-encoded name.
func NewTokenFromHexName(policy *TokenPolicy, amount int64, hexName string, metadata map[string]interface{}) (*Token, error) {
	if !common.IsHex(hexName) {
		return nil, errors.Errorf("invalid hex asset name %v", hexName)
	}
	token, err := NewToken(policy, amount, string(common.Hex2Bytes(hexName)), metadata)
	if err != nil {
		return nil, err
	}
	token.HexName = hexName
	return token, nil
}

// AssetName the SDK asset name.
func (t *Token) AssetName() cardanosdk.AssetName {
	return cardanosdk.NewAssetName(t.Name)
}

func validateTokenMetadata(metadata map[string]interface{}) error {
	if len(metadata) == 0 {
		return nil
	}
	return checkMetadata(metadata)
}
