package transaction

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/sign-deployment/pkg/crypto/keys"
)

// Fee program and functions.
const (
	FeeProgram         = "credits.aleo"
	FeePublicFunction  = "fee_public"
	FeePrivateFunction = "fee_private"
)

// Input and output types used by fee transitions.
const (
	PublicIOType = "public"
	RecordIOType = "record"
	FutureIOType = "future"
)

// Input is a transition input. Value is only present for plaintext inputs,
// Tag is only present for record inputs.
type Input struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Value string `json:"value,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// Output is a transition output. Checksum is only present for record
// outputs.
type Output struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Checksum string `json:"checksum,omitempty"`
	Value    string `json:"value,omitempty"`
}

// Transition is a single executed function call.
type Transition struct {
	ID       string   `json:"id"`
	Program  string   `json:"program"`
	Function string   `json:"function"`
	Inputs   []Input  `json:"inputs"`
	Outputs  []Output `json:"outputs"`
	// TPK is the transition public key.
	TPK string `json:"tpk"`
	// TCM is the transition commitment.
	TCM string `json:"tcm"`
	// SCM is the signer commitment.
	SCM string `json:"scm"`
}

// Fee is a fee transition along with its proof and the state root it was
// executed against.
type Fee struct {
	Transition      Transition `json:"transition"`
	GlobalStateRoot string     `json:"global_state_root"`
	Proof           string     `json:"proof,omitempty"`
}

// IsPublic returns true for fees paid from a public balance.
func (f *Fee) IsPublic() bool {
	return f.Transition.Program == FeeProgram && f.Transition.Function == FeePublicFunction
}

// IsPrivate returns true for fees paid from a private record.
func (f *Fee) IsPrivate() bool {
	return f.Transition.Program == FeeProgram && f.Transition.Function == FeePrivateFunction
}

// amountsOffset returns the index of the base amount input. Private fees
// have the record to spend before it.
func (f *Fee) amountsOffset() int {
	if f.IsPrivate() {
		return 1
	}
	return 0
}

func (f *Fee) publicInput(i int) (string, error) {
	if i >= len(f.Transition.Inputs) {
		return "", fmt.Errorf("fee has no input %d", i)
	}
	in := f.Transition.Inputs[i]
	if in.Type != PublicIOType {
		return "", fmt.Errorf("fee input %d is %q, not public", i, in.Type)
	}
	return in.Value, nil
}

// BaseAmount returns the base fee amount.
func (f *Fee) BaseAmount() (uint64, error) {
	v, err := f.publicInput(f.amountsOffset())
	if err != nil {
		return 0, err
	}
	return ParseU64(v)
}

// PriorityAmount returns the priority fee amount.
func (f *Fee) PriorityAmount() (uint64, error) {
	v, err := f.publicInput(f.amountsOffset() + 1)
	if err != nil {
		return 0, err
	}
	return ParseU64(v)
}

// DeploymentID returns the ID of the deployment the fee is paid for.
func (f *Fee) DeploymentID() (DeploymentID, error) {
	v, err := f.publicInput(f.amountsOffset() + 2)
	if err != nil {
		return DeploymentID{}, err
	}
	return DeploymentIDFromString(v)
}

// Payer returns the address paying a public fee, it's the first argument
// of the fee future.
func (f *Fee) Payer() (keys.Address, error) {
	if !f.IsPublic() {
		return keys.Address{}, errors.New("payer is only known for public fees")
	}
	if len(f.Transition.Outputs) == 0 || f.Transition.Outputs[0].Type != FutureIOType {
		return keys.Address{}, errors.New("fee has no future output")
	}
	fut, err := ParseFuture(f.Transition.Outputs[0].Value)
	if err != nil {
		return keys.Address{}, err
	}
	if len(fut.Arguments) == 0 {
		return keys.Address{}, errors.New("fee future has no arguments")
	}
	return keys.AddressFromString(fut.Arguments[0])
}

func (f *Fee) validate() error {
	if !f.IsPublic() && !f.IsPrivate() {
		return fmt.Errorf("%s/%s is not a fee transition", f.Transition.Program, f.Transition.Function)
	}
	if len(f.Transition.ID) == 0 {
		return errors.New("fee transition has no ID")
	}
	if _, err := f.BaseAmount(); err != nil {
		return fmt.Errorf("base amount: %w", err)
	}
	if _, err := f.PriorityAmount(); err != nil {
		return fmt.Errorf("priority amount: %w", err)
	}
	if _, err := f.DeploymentID(); err != nil {
		return fmt.Errorf("deployment ID: %w", err)
	}
	return nil
}

// RequirePublicFee returns the fee if it's paid from a public balance and
// ErrFeeNotPublic otherwise.
func RequirePublicFee(f *Fee) (*Fee, error) {
	if f == nil || !f.IsPublic() {
		return nil, ErrFeeNotPublic
	}
	return f, nil
}
