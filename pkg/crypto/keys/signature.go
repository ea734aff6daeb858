package keys

import (
	"encoding/json"

	"github.com/nspcc-dev/sign-deployment/pkg/encoding/address"
)

// Signature is a serialized signature. Its length depends on the scheme, so
// signatures made by other implementations are kept as is.
type Signature []byte

// SignatureFromString parses a bech32m signature ("sign1...").
func SignatureFromString(s string) (Signature, error) {
	b, err := address.Decode(address.SignaturePrefix, s)
	if err != nil {
		return nil, err
	}
	return Signature(b), nil
}

// String implements the stringer interface.
func (s Signature) String() string {
	str, err := address.Encode(address.SignaturePrefix, s)
	if err != nil {
		panic(err)
	}
	return str
}

// MarshalJSON implements the json.Marshaler interface.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	sig, err := SignatureFromString(str)
	if err != nil {
		return err
	}
	*s = sig
	return nil
}
