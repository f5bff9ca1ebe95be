package wallet

import (
	"errors"
)

// composition errors, all terminal
var (
	ErrTypeMismatch            = errors.New("amount type mismatch")
	ErrPolicyScriptMissing     = errors.New("token policy has no resolvable script")
	ErrConflictingPolicyScript = errors.New("policy registered with conflicting scripts")
	ErrInvalidStakeTarget      = errors.New("stake target has no staking component")
	ErrUnsupportedWithdrawAll  = errors.New("chain context cannot resolve reward balances")
	ErrMetadataFieldTooLong    = errors.New("metadata field exceeds 64 bytes")
	ErrMetadataNotSerializable = errors.New("metadata is not serializable")
	ErrNoSigningKey            = errors.New("no usable signing key")
	ErrEmptyInputSet           = errors.New("no usable inputs resolved")
)
