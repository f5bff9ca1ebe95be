package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/echovl/cardano-go/crypto"
)

const (
	testAddr  = "addr1q862w5ru0hpxl4r6vezgtegrfqve0dm2dp3yj2f7y4arrf223wd3fr6qcumc6873am478xnxmfp8lgpe6q6ju9ttjgns2xavze"
	testAddr2 = "addr1q8fv95d4g2599v3gzq7wnva34ykt4d2zerl0wyke36zml0neqj84x95mgp694rv8gfqy6u67ms38lx30texma843yd5qmvkqcz"
)

func newTestKey(t *testing.T) crypto.PrvKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	priStr, err := bech32.EncodeFromBase256("addr_sk", priv)
	if err != nil {
		t.Fatalf("encode key failed: %v", err)
	}
	key, err := crypto.NewPrvKey(priStr)
	if err != nil {
		t.Fatalf("new prv key failed: %v", err)
	}
	return key
}

func newTestPolicy(t *testing.T, name string) *TokenPolicy {
	t.Helper()
	policy, err := GeneratePolicy(name, newTestKey(t).PubKey(), 0)
	if err != nil {
		t.Fatalf("generate policy failed: %v", err)
	}
	return policy
}

func mustToken(t *testing.T, policy *TokenPolicy, amount int64, name string) *Token {
	t.Helper()
	token, err := NewToken(policy, amount, name, nil)
	if err != nil {
		t.Fatalf("new token failed: %v", err)
	}
	return token
}
