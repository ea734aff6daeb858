package transaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/sign-deployment/pkg/crypto/hash"
	"github.com/nspcc-dev/sign-deployment/pkg/encoding/address"
)

// Transaction is a tagged union of all transaction variants. Only deploy
// transactions are parsed completely, the body of any other variant is kept
// as is.
type Transaction struct {
	Type Type
	// ID is the bech32m transaction ID ("at1...").
	ID string

	// Owner, Deployment and Fee are only set for deploy transactions.
	Owner      *ProgramOwner
	Deployment *Deployment
	Fee        *Fee

	body json.RawMessage
}

// deployJSON is the wire form of a deploy transaction, fields are kept in
// their serialization order.
type deployJSON struct {
	Type       Type          `json:"type"`
	ID         string        `json:"id"`
	Owner      *ProgramOwner `json:"owner"`
	Deployment *Deployment   `json:"deployment"`
	Fee        *Fee          `json:"fee"`
}

// Decode parses the transaction from its JSON representation.
func Decode(data []byte) (*Transaction, error) {
	tx := new(Transaction)
	if err := tx.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return tx, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. All errors
// returned are ErrDecode.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var head struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(head.Type) == 0 {
		return fmt.Errorf("%w: no transaction type", ErrDecode)
	}
	if head.Type != DeployType {
		*t = Transaction{Type: head.Type, body: bytes.Clone(data)}
		return nil
	}

	var dj deployJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dj); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := dj.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	*t = Transaction{
		Type:       dj.Type,
		ID:         dj.ID,
		Owner:      dj.Owner,
		Deployment: dj.Deployment,
		Fee:        dj.Fee,
	}
	return nil
}

func (dj *deployJSON) validate() error {
	if len(dj.ID) == 0 {
		return errors.New("no transaction ID")
	}
	if dj.Owner == nil {
		return errors.New("no program owner")
	}
	if dj.Deployment == nil {
		return errors.New("no deployment")
	}
	if err := dj.Deployment.validate(); err != nil {
		return fmt.Errorf("deployment: %w", err)
	}
	if dj.Fee == nil {
		return errors.New("no fee")
	}
	if err := dj.Fee.validate(); err != nil {
		return fmt.Errorf("fee: %w", err)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	if t.Type != DeployType {
		if t.body == nil {
			return nil, fmt.Errorf("no body for %q transaction", t.Type)
		}
		return t.body, nil
	}
	return json.Marshal(deployJSON{
		Type:       t.Type,
		ID:         t.ID,
		Owner:      t.Owner,
		Deployment: t.Deployment,
		Fee:        t.Fee,
	})
}

// Bytes returns the pretty-printed JSON of the transaction.
func (t *Transaction) Bytes() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// Deploy returns the deployment and the fee of a deploy transaction or
// ErrWrongVariant for any other one.
func (t *Transaction) Deploy() (*Deployment, *Fee, error) {
	if t.Type != DeployType || t.Deployment == nil || t.Fee == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrWrongVariant, t.Type)
	}
	return t.Deployment, t.Fee, nil
}

// NewDeploy assembles a deploy transaction from its parts. The parts must
// be consistent with each other: the owner must have attested the current
// deployment ID and the fee must be paid for it.
func NewDeploy(owner *ProgramOwner, d *Deployment, fee *Fee) (*Transaction, error) {
	if owner == nil || d == nil || fee == nil {
		return nil, fmt.Errorf("%w: missing transaction part", ErrAssembly)
	}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("%w: deployment: %v", ErrAssembly, err)
	}
	if d.Owner == nil || *d.Owner != owner.Address {
		return nil, fmt.Errorf("%w: deployment owner is not %s", ErrAssembly, owner.Address)
	}
	if d.Checksum == nil || *d.Checksum != ProgramChecksum(d.Program) {
		return nil, fmt.Errorf("%w: checksum doesn't match the program", ErrAssembly)
	}
	id, err := d.ID()
	if err != nil {
		return nil, fmt.Errorf("%w: deployment ID: %v", ErrAssembly, err)
	}
	if !owner.Verify(id) {
		return nil, fmt.Errorf("%w: owner attestation is not for %s", ErrAssembly, id)
	}
	if err := fee.validate(); err != nil {
		return nil, fmt.Errorf("%w: fee: %v", ErrAssembly, err)
	}
	feeID, _ := fee.DeploymentID() // Checked by validate.
	if !feeID.Equals(id) {
		return nil, fmt.Errorf("%w: fee is paid for %s, not %s", ErrAssembly, feeID, id)
	}
	txID, err := address.Encode(address.TransactionPrefix,
		hashDeploy(id, fee))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}
	return &Transaction{
		Type:       DeployType,
		ID:         txID,
		Owner:      owner,
		Deployment: d,
		Fee:        fee,
	}, nil
}

func hashDeploy(id DeploymentID, fee *Fee) []byte {
	h := hash.Purpose("transaction.deploy", id.Bytes(), []byte(fee.Transition.ID))
	return h[:]
}
