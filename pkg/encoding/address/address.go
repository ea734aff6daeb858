/*
Package address implements bech32m text encoding used for addresses,
signatures, identifiers and proofs. Every kind of object has its own
human-readable prefix, so an address can't be mistaken for a signature
and vice versa.
*/
package address

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Human-readable prefixes of encoded objects.
const (
	AddressPrefix     = "aleo"
	SignaturePrefix   = "sign"
	TransactionPrefix = "at"
	TransitionPrefix  = "au"
	StateRootPrefix   = "sr"
	ProofPrefix       = "proof"
)

// Encode returns bech32m representation of data with the given prefix.
func Encode(prefix string, data []byte) (string, error) {
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(prefix, conv)
}

// Decode parses bech32m string s checking that it has the expected prefix.
// There is no length limit for s.
func Decode(prefix string, s string) ([]byte, error) {
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return nil, fmt.Errorf("bad %s string: %w", prefix, err)
	}
	if hrp != prefix {
		return nil, fmt.Errorf("unexpected prefix %q (expected %q)", hrp, prefix)
	}
	conv, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("bad %s string: %w", prefix, err)
	}
	return conv, nil
}

// DecodeFixed is like Decode, but it also checks decoded data length.
func DecodeFixed(prefix string, s string, size int) ([]byte, error) {
	b, err := Decode(prefix, s)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("invalid %s length: expected %d bytes got %d", prefix, size, len(b))
	}
	return b, nil
}
