package transaction

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Literal type suffixes.
const (
	suffixU8    = "u8"
	suffixU64   = "u64"
	suffixField = "field"
	suffixGroup = "group"
)

func parseUint(s string, suffix string, bits int) (uint64, error) {
	if !strings.HasSuffix(s, suffix) {
		return 0, fmt.Errorf("invalid %s literal: %q", suffix, s)
	}
	v, err := strconv.ParseUint(strings.TrimSuffix(s, suffix), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s literal: %w", suffix, err)
	}
	return v, nil
}

// ParseU64 parses u64 literal like "3000000u64".
func ParseU64(s string) (uint64, error) {
	return parseUint(s, suffixU64, 64)
}

// FormatU64 returns u64 literal for v.
func FormatU64(v uint64) string {
	return strconv.FormatUint(v, 10) + suffixU64
}

// ParseField parses field literal like "42field", the value must be a
// canonical element of the BLS12-377 scalar field.
func ParseField(s string) (fr.Element, error) {
	var e fr.Element
	if !strings.HasSuffix(s, suffixField) {
		return e, fmt.Errorf("invalid field literal: %q", s)
	}
	v, ok := new(big.Int).SetString(strings.TrimSuffix(s, suffixField), 10)
	if !ok || v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
		return e, fmt.Errorf("invalid field literal: %q", s)
	}
	e.SetBigInt(v)
	return e, nil
}

// FormatField returns field literal for e.
func FormatField(e fr.Element) string {
	return e.BigInt(new(big.Int)).String() + suffixField
}

// FormatGroup returns group literal for the x-coordinate of a curve point.
func FormatGroup(x fr.Element) string {
	return x.BigInt(new(big.Int)).String() + suffixGroup
}
