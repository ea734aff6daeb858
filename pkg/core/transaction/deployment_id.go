package transaction

import (
	"encoding/json"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// DeploymentID is a content-derived identifier of a deployment. It's an
// element of the BLS12-377 scalar field.
type DeploymentID struct {
	e fr.Element
}

// NewDeploymentIDFromBytes reduces big-endian number b into the field.
func NewDeploymentIDFromBytes(b []byte) DeploymentID {
	var d DeploymentID
	d.e.SetBytes(b)
	return d
}

// DeploymentIDFromString parses DeploymentID from a field literal.
func DeploymentIDFromString(s string) (DeploymentID, error) {
	e, err := ParseField(s)
	return DeploymentID{e: e}, err
}

// Element returns DeploymentID as a field element.
func (d DeploymentID) Element() fr.Element {
	return d.e
}

// Bytes returns the canonical big-endian 32-byte representation of d.
func (d DeploymentID) Bytes() []byte {
	b := d.e.Bytes()
	return b[:]
}

// Equals checks whether both identifiers are the same.
func (d DeploymentID) Equals(other DeploymentID) bool {
	return d.e.Equal(&other.e)
}

// String returns the field literal of d.
func (d DeploymentID) String() string {
	return FormatField(d.e)
}

// MarshalJSON implements the json.Marshaler interface.
func (d DeploymentID) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
