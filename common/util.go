package common

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

func has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

// Hex2Bytes returns the bytes represented by the hexadecimal string str.
func Hex2Bytes(str string) []byte {
	h, _ := hex.DecodeString(str)
	return h
}

// Bytes2Hex returns the hexadecimal encoding of d.
func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

// IsHex verifies whether a string can represent a valid hex-encoded value.
func IsHex(str string) bool {
	if has0xPrefix(str) {
		str = str[2:]
	}
	if len(str)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(str)
	return err == nil
}

// GetUint64FromStr get uint64 from string.
func GetUint64FromStr(str string) (uint64, error) {
	res, err := strconv.ParseUint(str, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned number string %v", str)
	}
	return res, nil
}
