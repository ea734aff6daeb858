package transaction

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/sign-deployment/pkg/crypto/hash"
)

// Checksum is a SHA3-256 digest of the program source.
type Checksum [hash.Size]byte

// ProgramChecksum calculates the checksum of the given program source.
func ProgramChecksum(program string) Checksum {
	return Checksum(hash.Sha3([]byte(program)))
}

// MarshalJSON implements the json.Marshaler interface, the checksum is
// represented as an array of u8 literals.
func (c Checksum) MarshalJSON() ([]byte, error) {
	arr := make([]string, len(c))
	for i := range c {
		arr[i] = strconv.FormatUint(uint64(c[i]), 10) + suffixU8
	}
	return json.Marshal(arr)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *Checksum) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != len(c) {
		return fmt.Errorf("invalid checksum length: expected %d got %d", len(c), len(arr))
	}
	for i := range arr {
		v, err := parseUint(arr[i], suffixU8, 8)
		if err != nil {
			return fmt.Errorf("checksum byte %d: %w", i, err)
		}
		c[i] = byte(v)
	}
	return nil
}
