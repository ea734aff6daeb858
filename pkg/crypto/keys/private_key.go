package keys

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/mimc"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards/eddsa"
	"github.com/mr-tron/base58"
)

// SeedLen is the length of private key seed in bytes.
const SeedLen = 32

// privateKeyPrefix is prepended to the seed before base58 encoding, it makes
// string representation of any key start with "APrivateKey1".
var privateKeyPrefix = []byte{127, 134, 189, 116, 210, 221, 210, 137, 145, 18, 253}

// ErrKeyFormat is returned for private key strings that can't be parsed.
var ErrKeyFormat = errors.New("invalid private key format")

// PrivateKey is a signing key derived from a 32-byte seed. The seed is a
// little-endian canonical element of the BLS12-377 scalar field, the signing
// key is an EdDSA key on the twisted Edwards curve over the same field.
type PrivateKey struct {
	seed [SeedLen]byte
	key  *eddsa.PrivateKey
}

// NewPrivateKey creates a new random private key using the given source of
// randomness.
func NewPrivateKey(rng io.Reader) (*PrivateKey, error) {
	if rng == nil {
		rng = rand.Reader
	}
	v, err := rand.Int(rng, fr.Modulus())
	if err != nil {
		return nil, err
	}
	var seed [SeedLen]byte
	v.FillBytes(seed[:])
	reverse(seed[:])
	return newPrivateKeyFromSeed(seed)
}

// NewPrivateKeyFromString parses a private key from its base58 string form
// ("APrivateKey1...").
func NewPrivateKeyFromString(s string) (*PrivateKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	if len(b) != len(privateKeyPrefix)+SeedLen {
		return nil, fmt.Errorf("%w: invalid length: expected %d bytes got %d",
			ErrKeyFormat, len(privateKeyPrefix)+SeedLen, len(b))
	}
	if !bytes.Equal(b[:len(privateKeyPrefix)], privateKeyPrefix) {
		return nil, fmt.Errorf("%w: invalid prefix", ErrKeyFormat)
	}
	var seed [SeedLen]byte
	copy(seed[:], b[len(privateKeyPrefix):])
	return newPrivateKeyFromSeed(seed)
}

func newPrivateKeyFromSeed(seed [SeedLen]byte) (*PrivateKey, error) {
	be := make([]byte, SeedLen)
	copy(be, seed[:])
	reverse(be)
	if new(big.Int).SetBytes(be).Cmp(fr.Modulus()) >= 0 {
		return nil, fmt.Errorf("%w: seed is not a canonical field element", ErrKeyFormat)
	}
	key, err := eddsa.GenerateKey(bytes.NewReader(seed[:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	return &PrivateKey{seed: seed, key: key}, nil
}

// String returns base58 representation of the key. It's a secret, so be
// careful with it.
func (p *PrivateKey) String() string {
	b := make([]byte, 0, len(privateKeyPrefix)+SeedLen)
	b = append(b, privateKeyPrefix...)
	b = append(b, p.seed[:]...)
	return base58.Encode(b)
}

// PublicKey derives the public key from the private key.
func (p *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: p.key.PublicKey}
}

// Address returns the address controlled by the key.
func (p *PrivateKey) Address() Address {
	return p.PublicKey().Address()
}

// Sign signs msg with the key. msg must be a concatenation of 32-byte
// big-endian canonical field elements since it's hashed with MiMC.
func (p *PrivateKey) Sign(msg []byte) (Signature, error) {
	sig, err := p.key.Sign(msg, mimc.NewMiMC())
	if err != nil {
		return nil, err
	}
	return Signature(sig), nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
