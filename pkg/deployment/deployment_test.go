package deployment

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nspcc-dev/sign-deployment/internal/testtx"
	"github.com/nspcc-dev/sign-deployment/pkg/config/netmode"
	"github.com/nspcc-dev/sign-deployment/pkg/core/transaction"
	"github.com/nspcc-dev/sign-deployment/pkg/crypto/keys"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestSigner(t *testing.T) *Signer {
	s, err := NewSigner(netmode.TestNet, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func adminKey(t *testing.T) *keys.PrivateKey {
	priv, err := keys.NewPrivateKeyFromString(testtx.AdminKey)
	require.NoError(t, err)
	return priv
}

func TestNewSigner(t *testing.T) {
	_, err := NewSigner(netmode.ID(99), zaptest.NewLogger(t))
	require.Error(t, err)
	for _, n := range []netmode.ID{netmode.MainNet, netmode.TestNet, netmode.CanaryNet} {
		_, err := NewSigner(n, zaptest.NewLogger(t))
		require.NoError(t, err)
	}
}

func TestParseKeys(t *testing.T) {
	k, err := ParseKeys(testtx.AdminKey, "")
	require.NoError(t, err)
	require.Same(t, k.Admin, k.Fee)
	require.Equal(t, adminKey(t).Address(), k.Admin.Address())

	other, err := keys.NewPrivateKey(nil)
	require.NoError(t, err)
	k, err = ParseKeys(testtx.AdminKey, other.String())
	require.NoError(t, err)
	require.Equal(t, other.Address(), k.Fee.Address())

	_, err = ParseKeys("invalid_key", "")
	require.True(t, errors.Is(err, keys.ErrKeyFormat))
	_, err = ParseKeys(testtx.AdminKey, "invalid_fee_key")
	require.True(t, errors.Is(err, keys.ErrKeyFormat))
}

func TestSign(t *testing.T) {
	s := newTestSigner(t)
	raw := testtx.Get(t, testtx.Deploy)
	orig, err := transaction.Decode(raw)
	require.NoError(t, err)

	tx, err := s.SignRaw(raw, testtx.AdminKey, "")
	require.NoError(t, err)
	require.Equal(t, transaction.DeployType, tx.Type)
	require.NotEqual(t, orig.ID, tx.ID)

	admin := adminKey(t).Address()
	require.Equal(t, admin, tx.Owner.Address)
	require.NotNil(t, tx.Deployment.Owner)
	require.Equal(t, admin, *tx.Deployment.Owner)

	require.NotNil(t, tx.Deployment.Checksum)
	require.Equal(t, transaction.ProgramChecksum(tx.Deployment.Program), *tx.Deployment.Checksum)
	require.Equal(t, orig.Deployment.Program, tx.Deployment.Program)
	require.Equal(t, orig.Deployment.VerifyingKeys, tx.Deployment.VerifyingKeys)

	id, err := tx.Deployment.ID()
	require.NoError(t, err)
	require.True(t, tx.Owner.Verify(id))
	feeID, err := tx.Fee.DeploymentID()
	require.NoError(t, err)
	require.True(t, feeID.Equals(id))

	base, err := tx.Fee.BaseAmount()
	require.NoError(t, err)
	require.Equal(t, testtx.DeployBaseAmount, base)
	priority, err := tx.Fee.PriorityAmount()
	require.NoError(t, err)
	require.Equal(t, testtx.DeployPriorityAmount, priority)
	require.True(t, tx.Fee.IsPublic())
	require.NotEqual(t, orig.Fee.Proof, tx.Fee.Proof)
	require.NotEqual(t, orig.Fee.Transition.ID, tx.Fee.Transition.ID)

	payer, err := tx.Fee.Payer()
	require.NoError(t, err)
	require.Equal(t, admin, payer)

	data, err := tx.Bytes()
	require.NoError(t, err)
	decoded, err := transaction.Decode(data)
	require.NoError(t, err)
	require.Equal(t, tx, decoded)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Len(t, fields, 5)
}

func TestSignFeeKey(t *testing.T) {
	s := newTestSigner(t)
	raw := testtx.Get(t, testtx.Deploy)

	feeKey, err := keys.NewPrivateKey(nil)
	require.NoError(t, err)
	tx, err := s.SignRaw(raw, testtx.AdminKey, feeKey.String())
	require.NoError(t, err)
	require.Equal(t, adminKey(t).Address(), tx.Owner.Address)
	payer, err := tx.Fee.Payer()
	require.NoError(t, err)
	require.Equal(t, feeKey.Address(), payer)

	t.Run("no fee key is the admin key", func(t *testing.T) {
		implicit, err := s.SignRaw(raw, testtx.AdminKey, "")
		require.NoError(t, err)
		explicit, err := s.SignRaw(raw, testtx.AdminKey, testtx.AdminKey)
		require.NoError(t, err)

		p1, err := implicit.Fee.Payer()
		require.NoError(t, err)
		p2, err := explicit.Fee.Payer()
		require.NoError(t, err)
		require.Equal(t, p1, p2)
		require.Equal(t, implicit.Owner.Address, explicit.Owner.Address)
	})
}

func TestSignTwice(t *testing.T) {
	s := newTestSigner(t)
	raw := testtx.Get(t, testtx.Deploy)

	tx1, err := s.SignRaw(raw, testtx.AdminKey, "")
	require.NoError(t, err)
	tx2, err := s.SignRaw(raw, testtx.AdminKey, "")
	require.NoError(t, err)

	require.Equal(t, tx1.Owner.Address, tx2.Owner.Address)
	require.Equal(t, *tx1.Deployment.Checksum, *tx2.Deployment.Checksum)
	for _, tx := range []*transaction.Transaction{tx1, tx2} {
		base, err := tx.Fee.BaseAmount()
		require.NoError(t, err)
		require.Equal(t, testtx.DeployBaseAmount, base)
		priority, err := tx.Fee.PriorityAmount()
		require.NoError(t, err)
		require.Equal(t, testtx.DeployPriorityAmount, priority)
	}
	require.NotEqual(t, tx1.Fee.Proof, tx2.Fee.Proof)
	require.NotEqual(t, tx1.Fee.Transition.TPK, tx2.Fee.Transition.TPK)
}

func TestSignErrors(t *testing.T) {
	s := newTestSigner(t)
	deploy := testtx.Get(t, testtx.Deploy)

	t.Run("invalid key before parsing", func(t *testing.T) {
		_, err := s.SignRaw([]byte("not a transaction"), "invalid_key", "")
		require.True(t, errors.Is(err, keys.ErrKeyFormat))
		require.False(t, errors.Is(err, transaction.ErrDecode))
	})
	t.Run("invalid fee key", func(t *testing.T) {
		_, err := s.SignRaw(deploy, testtx.AdminKey, "invalid_fee_key")
		require.True(t, errors.Is(err, keys.ErrKeyFormat))
	})
	t.Run("not a deployment", func(t *testing.T) {
		_, err := s.SignRaw(testtx.Get(t, testtx.Transfer), testtx.AdminKey, "")
		require.True(t, errors.Is(err, transaction.ErrWrongVariant))
	})
	t.Run("invalid json", func(t *testing.T) {
		_, err := s.SignRaw(testtx.Get(t, testtx.Invalid), testtx.AdminKey, "")
		require.True(t, errors.Is(err, transaction.ErrDecode))
	})
	t.Run("private fee", func(t *testing.T) {
		_, err := s.SignRaw(testtx.Get(t, testtx.DeployPrivateFee), testtx.AdminKey, "")
		require.True(t, errors.Is(err, transaction.ErrFeeNotPublic))
	})
}
