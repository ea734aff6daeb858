package keys

import (
	"encoding/json"

	"github.com/nspcc-dev/sign-deployment/pkg/encoding/address"
)

// AddressLen is the length of an address in bytes.
const AddressLen = 32

// Address is a public account identifier, the compressed public key of the
// account.
type Address [AddressLen]byte

// AddressFromString parses a bech32m address ("aleo1...").
func AddressFromString(s string) (Address, error) {
	var a Address
	b, err := address.DecodeFixed(address.AddressPrefix, s, AddressLen)
	if err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}

// String implements the stringer interface.
func (a Address) String() string {
	s, err := address.Encode(address.AddressPrefix, a[:])
	if err != nil { // Can't happen for a fixed-size array.
		panic(err)
	}
	return s
}

// PublicKey decompresses the public key behind the address.
func (a Address) PublicKey() (*PublicKey, error) {
	return NewPublicKeyFromBytes(a[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	addr, err := AddressFromString(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
