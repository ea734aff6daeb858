package transaction

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/sign-deployment/pkg/crypto/hash"
	"github.com/nspcc-dev/sign-deployment/pkg/crypto/keys"
)

// VerifyingKey is a verifying key of a single program function along with
// its certificate. Both are kept in their string form.
type VerifyingKey struct {
	Function    string
	Key         string
	Certificate string
}

// MarshalJSON implements the json.Marshaler interface, the key is
// represented as ["function", ["verifier...", "certificate..."]].
func (v VerifyingKey) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{v.Function, [2]string{v.Key, v.Certificate}})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *VerifyingKey) UnmarshalJSON(data []byte) error {
	var (
		raw  []json.RawMessage
		pair []string
	)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return errors.New("verifying key entry must have two elements")
	}
	if err := json.Unmarshal(raw[0], &v.Function); err != nil {
		return fmt.Errorf("function name: %w", err)
	}
	if err := json.Unmarshal(raw[1], &pair); err != nil {
		return fmt.Errorf("verifying key of %s: %w", v.Function, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("verifying key of %s: expected key and certificate", v.Function)
	}
	v.Key, v.Certificate = pair[0], pair[1]
	return nil
}

// Deployment describes a program being published. Owner and Checksum are
// optional and may be changed until the deployment is attested by the owner.
type Deployment struct {
	Edition       uint16         `json:"edition"`
	Program       string         `json:"program"`
	VerifyingKeys []VerifyingKey `json:"verifying_keys"`
	Checksum      *Checksum      `json:"program_checksum,omitempty"`
	Owner         *keys.Address  `json:"program_owner,omitempty"`
}

// ProgramID returns the program identifier declared by the first statement
// of the program ("program hello.aleo;").
func (d *Deployment) ProgramID() (string, error) {
	src := strings.TrimSpace(d.Program)
	stmt, _, found := strings.Cut(src, ";")
	if !found {
		return "", errors.New("program declaration is missing")
	}
	fields := strings.Fields(stmt)
	if len(fields) != 2 || fields[0] != "program" {
		return "", fmt.Errorf("invalid program declaration: %q", stmt)
	}
	name, network, ok := strings.Cut(fields[1], ".")
	if !ok || len(name) == 0 || len(network) == 0 {
		return "", fmt.Errorf("invalid program id: %q", fields[1])
	}
	return fields[1], nil
}

// SetOwner overwrites the owner of the deployment.
func (d *Deployment) SetOwner(a keys.Address) {
	d.Owner = &a
}

// UpdateChecksum sets the checksum to the one of the current program.
func (d *Deployment) UpdateChecksum() {
	c := ProgramChecksum(d.Program)
	d.Checksum = &c
}

// ID computes DeploymentID of the current deployment state. Any change of
// the program, verifying keys, checksum or owner changes the result.
func (d *Deployment) ID() (DeploymentID, error) {
	if _, err := d.ProgramID(); err != nil {
		return DeploymentID{}, err
	}
	var edition [2]byte
	binary.LittleEndian.PutUint16(edition[:], d.Edition)

	leaves := make([][hash.Size]byte, 0, len(d.VerifyingKeys)+4)
	leaves = append(leaves,
		hash.Purpose("deployment.edition", edition[:]),
		hash.Purpose("deployment.program", []byte(d.Program)))
	for _, vk := range d.VerifyingKeys {
		leaves = append(leaves, hash.Purpose("deployment.verifying_key",
			[]byte(vk.Function), []byte(vk.Key), []byte(vk.Certificate)))
	}
	if d.Checksum != nil {
		leaves = append(leaves, hash.Purpose("deployment.checksum", d.Checksum[:]))
	}
	if d.Owner != nil {
		leaves = append(leaves, hash.Purpose("deployment.owner", d.Owner[:]))
	}
	root := hash.CalcMerkleRoot(leaves)
	return NewDeploymentIDFromBytes(root[:]), nil
}

func (d *Deployment) validate() error {
	if _, err := d.ProgramID(); err != nil {
		return err
	}
	if len(d.VerifyingKeys) == 0 {
		return errors.New("deployment has no verifying keys")
	}
	for i := range d.VerifyingKeys {
		if len(d.VerifyingKeys[i].Function) == 0 {
			return fmt.Errorf("verifying key %d has no function name", i)
		}
	}
	return nil
}
