package transaction

import (
	"errors"
	"testing"

	"github.com/nspcc-dev/sign-deployment/internal/testtx"
	"github.com/stretchr/testify/require"
)

func decodeFee(t *testing.T, name string) *Fee {
	tx, err := Decode(testtx.Get(t, name))
	require.NoError(t, err)
	_, fee, err := tx.Deploy()
	require.NoError(t, err)
	return fee
}

func TestFeePublic(t *testing.T) {
	fee := decodeFee(t, testtx.Deploy)
	require.True(t, fee.IsPublic())
	require.False(t, fee.IsPrivate())

	base, err := fee.BaseAmount()
	require.NoError(t, err)
	require.Equal(t, testtx.DeployBaseAmount, base)
	priority, err := fee.PriorityAmount()
	require.NoError(t, err)
	require.Equal(t, testtx.DeployPriorityAmount, priority)

	id, err := fee.DeploymentID()
	require.NoError(t, err)
	require.Equal(t, "4003401142391249165960808970017284849054518599525264574608932086535818575378field", id.String())

	payer, err := fee.Payer()
	require.NoError(t, err)
	require.Equal(t, "aleo1nkwycg5adkttcx7aezmlkdgxyd3t5pmpc8mqdu0038zgav8mzgxskqm6zy", payer.String())

	actual, err := RequirePublicFee(fee)
	require.NoError(t, err)
	require.Same(t, fee, actual)
}

func TestFeePrivate(t *testing.T) {
	fee := decodeFee(t, testtx.DeployPrivateFee)
	require.False(t, fee.IsPublic())
	require.True(t, fee.IsPrivate())

	base, err := fee.BaseAmount()
	require.NoError(t, err)
	require.Equal(t, testtx.DeployBaseAmount, base)

	_, err = fee.Payer()
	require.Error(t, err)

	_, err = RequirePublicFee(fee)
	require.True(t, errors.Is(err, ErrFeeNotPublic))
	_, err = RequirePublicFee(nil)
	require.True(t, errors.Is(err, ErrFeeNotPublic))
}

func TestFeeValidate(t *testing.T) {
	check := func(t *testing.T, mutate func(f *Fee)) {
		fee := decodeFee(t, testtx.Deploy)
		mutate(fee)
		require.Error(t, fee.validate())
	}
	t.Run("not a fee", func(t *testing.T) {
		check(t, func(f *Fee) { f.Transition.Function = "transfer_public" })
	})
	t.Run("wrong program", func(t *testing.T) {
		check(t, func(f *Fee) { f.Transition.Program = "token.aleo" })
	})
	t.Run("no ID", func(t *testing.T) {
		check(t, func(f *Fee) { f.Transition.ID = "" })
	})
	t.Run("missing inputs", func(t *testing.T) {
		check(t, func(f *Fee) { f.Transition.Inputs = f.Transition.Inputs[:2] })
	})
	t.Run("private amount", func(t *testing.T) {
		check(t, func(f *Fee) { f.Transition.Inputs[0].Type = "private" })
	})
	t.Run("bad amount", func(t *testing.T) {
		check(t, func(f *Fee) { f.Transition.Inputs[1].Value = "1field" })
	})
	t.Run("bad deployment ID", func(t *testing.T) {
		check(t, func(f *Fee) { f.Transition.Inputs[2].Value = "1u64" })
	})
}

func TestFeePayerErrors(t *testing.T) {
	fee := decodeFee(t, testtx.Deploy)
	fee.Transition.Outputs[0].Value = "{\n  program_id: credits.aleo,\n  function_name: fee_public,\n  arguments: []\n}"
	_, err := fee.Payer()
	require.Error(t, err)

	fee.Transition.Outputs[0].Type = "public"
	_, err = fee.Payer()
	require.Error(t, err)

	fee.Transition.Outputs = nil
	_, err = fee.Payer()
	require.Error(t, err)
}
