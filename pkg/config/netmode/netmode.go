package netmode

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MainNet is the identifier of the main public network.
	MainNet ID = 0
	// TestNet is the identifier of the public test network.
	TestNet ID = 1
	// CanaryNet is the identifier of the canary network used to stage
	// protocol upgrades before they reach the main network.
	CanaryNet ID = 2
)

// ID describes the network parameter profile a transaction is built for.
type ID uint8

// String implements the stringer interface.
func (n ID) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	case CanaryNet:
		return "canary"
	default:
		return "net " + strconv.FormatUint(uint64(n), 10)
	}
}

// IsValid returns true if n is one of the known networks.
func (n ID) IsValid() bool {
	return n <= CanaryNet
}

// Parse converts either a numeric network identifier (0, 1, 2) or a network
// name (mainnet, testnet, canary) into ID.
func Parse(s string) (ID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "mainnet":
		return MainNet, nil
	case "testnet":
		return TestNet, nil
	case "canary", "canarynet":
		return CanaryNet, nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || !ID(v).IsValid() {
		return 0, fmt.Errorf("invalid network: %q", s)
	}
	return ID(v), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface allowing both
// numeric and symbolic network values in configuration files.
func (n *ID) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	id, err := Parse(s)
	if err != nil {
		return err
	}
	*n = id
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (n ID) MarshalYAML() (any, error) {
	return n.String(), nil
}
