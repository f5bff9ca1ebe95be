package wallet

import (
	"strings"
	"testing"

	cardanosdk "github.com/echovl/cardano-go"
)

func TestChunkMessage(t *testing.T) {
	tests := []struct {
		length int
		chunks int
	}{
		{1, 1},
		{64, 1},
		{65, 2},
		{128, 2},
		{129, 3},
	}
	for _, test := range tests {
		message := strings.Repeat("a", test.length)
		chunks := chunkMessage(message)
		if len(chunks) != test.chunks {
			t.Fatalf("message length %v expected %v chunks, but got %v", test.length, test.chunks, len(chunks))
		}
		joined := ""
		for _, chunk := range chunks {
			segment := chunk.(string)
			if len(segment) > metadataFieldLimit {
				t.Fatalf("chunk length expected <= %v, but got %v", metadataFieldLimit, len(segment))
			}
			joined += segment
		}
		if joined != message {
			t.Fatalf("chunks do not preserve order or content")
		}
	}
}

func TestCheckMetadataNestedTooLong(t *testing.T) {
	long := strings.Repeat("x", 65)
	tests := []struct {
		name  string
		value interface{}
	}{
		{"leaf string", long},
		{"nested map", map[string]interface{}{"a": map[string]interface{}{"b": long}}},
		{"nested list", map[string]interface{}{"a": []interface{}{"ok", long}}},
		{"long key", map[string]interface{}{long: "ok"}},
	}
	for _, test := range tests {
		if err := checkMetadata(test.value); err != ErrMetadataFieldTooLong {
			t.Fatalf("%s expected %v, but got %v", test.name, ErrMetadataFieldTooLong, err)
		}
	}
}

func TestCheckMetadataNotSerializable(t *testing.T) {
	values := []interface{}{
		1.5,
		map[string]interface{}{"a": 2.5},
		map[string]interface{}{"a": struct{}{}},
	}
	for _, value := range values {
		if err := checkMetadata(value); err != ErrMetadataNotSerializable {
			t.Fatalf("expected %v, but got %v", ErrMetadataNotSerializable, err)
		}
	}
}

func TestAssembleAuxiliaryDataEmpty(t *testing.T) {
	aux, err := assembleAuxiliaryData(nil, "", nil)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if aux != nil {
		t.Fatalf("expected empty auxiliary data, but got %v", aux)
	}
}

func TestAssembleAuxiliaryDataMessage(t *testing.T) {
	aux, err := assembleAuxiliaryData(nil, strings.Repeat("m", 100), nil)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if aux == nil {
		t.Fatalf("expected auxiliary data")
	}
	entry, ok := aux.Metadata[messageLabel].(map[string]interface{})
	if !ok {
		t.Fatalf("message label missing: %v", aux.Metadata)
	}
	chunks := entry["msg"].([]interface{})
	if len(chunks) != 2 {
		t.Fatalf("chunks expected %v, but got %v", 2, len(chunks))
	}
}

func TestAssembleAuxiliaryDataMintMetadata(t *testing.T) {
	policy := newTestPolicy(t, "nft")
	minted, err := NewToken(policy, 1, "piece", map[string]interface{}{"name": "piece #1"})
	if err != nil {
		t.Fatalf("new token failed: %v", err)
	}
	burned, err := NewToken(policy, -1, "gone", map[string]interface{}{"name": "gone"})
	if err != nil {
		t.Fatalf("new token failed: %v", err)
	}

	aux, err := assembleAuxiliaryData([]*Token{minted, burned}, "", nil)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if aux == nil {
		t.Fatalf("expected auxiliary data")
	}
	nft, ok := aux.Metadata[nftMetadataLabel].(map[string]interface{})
	if !ok {
		t.Fatalf("nft label missing: %v", aux.Metadata)
	}
	byName := nft[policy.PolicyID].(map[string]interface{})
	if _, exist := byName["piece"]; !exist {
		t.Fatalf("positive mint metadata missing")
	}
	if _, exist := byName["gone"]; exist {
		t.Fatalf("burned token metadata must be excluded")
	}
}

func TestAssembleAuxiliaryDataCustom(t *testing.T) {
	custom := cardanosdk.Metadata{
		9000: map[string]interface{}{"k": "v"},
	}
	aux, err := assembleAuxiliaryData(nil, "", custom)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if _, exist := aux.Metadata[9000]; !exist {
		t.Fatalf("custom label missing: %v", aux.Metadata)
	}

	bad := cardanosdk.Metadata{
		9001: map[string]interface{}{"k": strings.Repeat("v", 65)},
	}
	if _, err := assembleAuxiliaryData(nil, "", bad); err != ErrMetadataFieldTooLong {
		t.Fatalf("expected %v, but got %v", ErrMetadataFieldTooLong, err)
	}
}
