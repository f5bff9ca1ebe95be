package wallet

import (
	"testing"
)

func TestLoadOrCreateKeysRoundTrip(t *testing.T) {
	dir := t.TempDir()
	payment, stake, err := LoadOrCreateKeys("alice", dir)
	if err != nil {
		t.Fatalf("create keys failed: %v", err)
	}
	if payment.PubKey().String() == stake.PubKey().String() {
		t.Fatalf("payment and stake keys must differ")
	}

	payment2, stake2, err := LoadOrCreateKeys("alice", dir)
	if err != nil {
		t.Fatalf("load keys failed: %v", err)
	}
	if payment.PubKey().String() != payment2.PubKey().String() {
		t.Fatalf("payment key expected %v, but got %v", payment.PubKey(), payment2.PubKey())
	}
	if stake.PubKey().String() != stake2.PubKey().String() {
		t.Fatalf("stake key expected %v, but got %v", stake.PubKey(), stake2.PubKey())
	}

	wallets, err := ListWallets(dir)
	if err != nil {
		t.Fatalf("list wallets failed: %v", err)
	}
	if len(wallets) != 1 || wallets[0] != "alice" {
		t.Fatalf("wallets expected [alice], but got %v", wallets)
	}
}
