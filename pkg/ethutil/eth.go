package ethutil

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var addressPattern = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// IsValidAddress reports whether s looks like a hex-encoded EVM address.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// NormalizeAddress lowercases a hex address so it can be used as a map or
// database key. Returns the empty string for invalid input.
func NormalizeAddress(s string) string {
	if !IsValidAddress(s) {
		return ""
	}

	return strings.ToLower(s)
}

func ChecksumAddress(s string) string {
	return common.HexToAddress(s).Hex()
}
