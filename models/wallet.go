package models

import (
	"regexp"
	"strings"
)

var walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// NormalizeWallet lower-cases a wallet address so it can be used as a
// case-insensitive key across tables.
func NormalizeWallet(wallet string) string {
	return strings.ToLower(strings.TrimSpace(wallet))
}

// IsValidWallet reports whether the string looks like a 20-byte hex address.
func IsValidWallet(wallet string) bool {
	return walletPattern.MatchString(strings.TrimSpace(wallet))
}
