package transaction

import (
	"fmt"

	"github.com/nspcc-dev/sign-deployment/pkg/crypto/keys"
)

// ProgramOwner is an attestation of the program owner, the signature of the
// deployment ID made with the owner's key.
type ProgramOwner struct {
	Address   keys.Address   `json:"address"`
	Signature keys.Signature `json:"signature"`
}

// NewProgramOwner signs the given deployment ID with the key.
func NewProgramOwner(priv *keys.PrivateKey, id DeploymentID) (*ProgramOwner, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: no key", ErrAttestation)
	}
	sig, err := priv.Sign(id.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAttestation, err)
	}
	return &ProgramOwner{
		Address:   priv.Address(),
		Signature: sig,
	}, nil
}

// Verify checks that the owner has signed the given deployment ID.
func (o *ProgramOwner) Verify(id DeploymentID) bool {
	pub, err := o.Address.PublicKey()
	if err != nil {
		return false
	}
	return pub.Verify(id.Bytes(), o.Signature)
}
