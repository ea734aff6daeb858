package keys

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/mimc"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards/eddsa"
)

// PublicKey is an EdDSA public key.
type PublicKey struct {
	key eddsa.PublicKey
}

// NewPublicKeyFromBytes decodes a compressed public key.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != AddressLen {
		return nil, errors.New("invalid public key length")
	}
	p := new(PublicKey)
	if _, err := p.key.SetBytes(b); err != nil {
		return nil, err
	}
	return p, nil
}

// Bytes returns the compressed representation of the key.
func (p *PublicKey) Bytes() []byte {
	return p.key.Bytes()
}

// Point returns the curve point of the key.
func (p *PublicKey) Point() twistededwards.PointAffine {
	return p.key.A
}

// Address returns the address corresponding to the key.
func (p *PublicKey) Address() Address {
	var a Address
	copy(a[:], p.Bytes())
	return a
}

// Verify checks sig against msg, see PrivateKey.Sign for msg restrictions.
func (p *PublicKey) Verify(msg []byte, sig Signature) bool {
	ok, err := p.key.Verify(sig, msg, mimc.NewMiMC())
	return err == nil && ok
}
