package transaction

// Type is the variant of a transaction.
type Type string

// Known transaction types.
const (
	// DeployType is a program deployment paired with a fee.
	DeployType Type = "deploy"
	// ExecuteType is a program execution with an optional fee.
	ExecuteType Type = "execute"
	// FeeType is a standalone fee of a rejected transaction.
	FeeType Type = "fee"
)

// IsKnown returns true for transaction types defined by the protocol.
func (t Type) IsKnown() bool {
	switch t {
	case DeployType, ExecuteType, FeeType:
		return true
	default:
		return false
	}
}
