package web3

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// IsAddress reports whether s is a well-formed EVM address: 40 hex digits with
// an optional 0x prefix. All-lower and all-upper case inputs are accepted as is;
// mixed case inputs must match their EIP-55 checksum.
func IsAddress(s string) bool {
	if !common.IsHexAddress(s) {
		return false
	}
	digits := s
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}
	if digits == strings.ToLower(digits) || digits == strings.ToUpper(digits) {
		return true
	}
	return common.HexToAddress(digits).Hex()[2:] == digits
}

// ParseAddress validates s with IsAddress and converts it to a common.Address.
func ParseAddress(s string) (common.Address, error) {
	if !IsAddress(s) {
		return common.Address{}, errors.Wrapf(ErrInvalidAddress, "provided address is not valid: %q", s)
	}
	return common.HexToAddress(s), nil
}
