package types

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address is a canonical, lower-cased hex account or token address. It is the
// only key type used for participation, boost and reward tables.
type Address string

func NewAddress(s string) Address {
	return Address(strings.ToLower(strings.TrimSpace(s)))
}

// ParseAddress validates s as a 20-byte hex address.
func ParseAddress(s string) (Address, error) {
	trimmed := strings.TrimSpace(s)
	if !common.IsHexAddress(trimmed) {
		return "", fmt.Errorf("invalid address %q", s)
	}
	return NewAddress(trimmed), nil
}

func AddressFromCommon(a common.Address) Address {
	return NewAddress(a.Hex())
}

func (a Address) Common() common.Address {
	return common.HexToAddress(string(a))
}

func (a Address) String() string {
	return string(a)
}
