/*
Package testtx contains transaction fixtures shared by tests.
*/
package testtx

import (
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// AdminKey is a valid private key used to sign fixtures.
const AdminKey = "APrivateKey1zkp8CZNn3yeCseEtxuVPbDCwSyhGW6yZKUYKfgXmcpoGPWH"

// Fixture file names.
const (
	// Deploy is a deploy transaction with a public fee of 3000000 base and
	// zero priority amounts.
	Deploy = "deploy.json"
	// DeployPrivateFee is a deploy transaction with a private fee.
	DeployPrivateFee = "deploy_private_fee.json"
	// Transfer is a well-formed transaction of an unknown type.
	Transfer = "transfer.json"
	// Invalid is a JSON object that is not a transaction.
	Invalid = "invalid.json"
)

// Fee amounts of the Deploy fixture.
const (
	DeployBaseAmount     uint64 = 3000000
	DeployPriorityAmount uint64 = 0
)

//go:embed testdata/*.json
var fixtures embed.FS

// Get returns the fixture contents.
func Get(t testing.TB, name string) []byte {
	data, err := fixtures.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

// WriteFile stores the fixture into dir and returns its path.
func WriteFile(t testing.TB, dir string, name string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, Get(t, name), 0644))
	return path
}
