package wallet

import (
	cardanosdk "github.com/echovl/cardano-go"
)

// metadata registry labels
const (
	nftMetadataLabel = 721 // CIP-25 token metadata
	messageLabel     = 674 // CIP-20 transaction message
)

// metadataFieldLimit max bytes for a metadata key or scalar string
const metadataFieldLimit = 64

// assembleAuxiliaryData merges per-token mint metadata (positive mints only),
// an optional free-text message and caller-supplied metadata into one
// auxiliary-data document. Returns nil when all three sources are empty.
func assembleAuxiliaryData(mints []*Token, message string, custom cardanosdk.Metadata) (*cardanosdk.AuxiliaryData, error) {
	metadata := cardanosdk.Metadata{}

	nft := map[string]interface{}{}
	for _, token := range mints {
		if token.Amount <= 0 || len(token.Metadata) == 0 {
			continue
		}
		byName, exist := nft[token.Policy.PolicyID].(map[string]interface{})
		if !exist {
			byName = map[string]interface{}{}
			nft[token.Policy.PolicyID] = byName
		}
		byName[token.Name] = token.Metadata
	}
	if len(nft) > 0 {
		if err := checkMetadata(nft); err != nil {
			return nil, err
		}
		metadata[nftMetadataLabel] = nft
	}

	if message != "" {
		formatted := formatMessage(message)
		if err := checkMetadata(formatted); err != nil {
			return nil, err
		}
		metadata[messageLabel] = formatted
	}

	for label, value := range custom {
		if err := checkMetadata(value); err != nil {
			return nil, err
		}
		metadata[label] = value
	}

	if len(metadata) == 0 {
		return nil, nil
	}
	return &cardanosdk.AuxiliaryData{Metadata: metadata}, nil
}

// formatMessage shapes a free-text message as CIP-20 metadata, chunking the
// string into <=64-byte segments in order.
func formatMessage(message string) map[string]interface{} {
	return map[string]interface{}{
		"msg": chunkMessage(message),
	}
}

func chunkMessage(message string) []interface{} {
	chunks := []interface{}{}
	for i := 0; i < len(message); i += metadataFieldLimit {
		end := i + metadataFieldLimit
		if end > len(message) {
			end = len(message)
		}
		chunks = append(chunks, message[i:end])
	}
	return chunks
}

// checkMetadata recursively enforces the 64-byte limit on every map key and
// string leaf, and rejects value kinds the on-chain metadata encoding cannot
// represent.
func checkMetadata(value interface{}) error {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, item := range v {
			if len(key) > metadataFieldLimit {
				return ErrMetadataFieldTooLong
			}
			if err := checkMetadata(item); err != nil {
				return err
			}
		}
	case cardanosdk.Metadata:
		for _, item := range v {
			if err := checkMetadata(item); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, item := range v {
			if err := checkMetadata(item); err != nil {
				return err
			}
		}
	case []string:
		for _, item := range v {
			if len(item) > metadataFieldLimit {
				return ErrMetadataFieldTooLong
			}
		}
	case string:
		if len(v) > metadataFieldLimit {
			return ErrMetadataFieldTooLong
		}
	case []byte:
		if len(v) > metadataFieldLimit {
			return ErrMetadataFieldTooLong
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		// numeric and boolean scalars always fit
	default:
		return ErrMetadataNotSerializable
	}
	return nil
}
