package deployment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/nspcc-dev/sign-deployment/internal/testtx"
	"github.com/nspcc-dev/sign-deployment/pkg/core/transaction"
	"github.com/stretchr/testify/require"
)

func testKeys(t *testing.T) *Keys {
	k, err := ParseKeys(testtx.AdminKey, "")
	require.NoError(t, err)
	return k
}

func TestSignFile(t *testing.T) {
	s := newTestSigner(t)
	dir := t.TempDir()
	in := testtx.WriteFile(t, dir, testtx.Deploy)
	out := filepath.Join(dir, "signed.json")

	tx, err := s.SignFile(in, out, testKeys(t))
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	expected, err := tx.Bytes()
	require.NoError(t, err)
	require.Equal(t, expected, data)

	decoded, err := transaction.Decode(data)
	require.NoError(t, err)
	require.Equal(t, tx.ID, decoded.ID)

	t.Run("overwrite", func(t *testing.T) {
		tx2, err := s.SignFile(in, out, testKeys(t))
		require.NoError(t, err)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		decoded, err := transaction.Decode(data)
		require.NoError(t, err)
		require.Equal(t, tx2.ID, decoded.ID)
		require.Equal(t, []string{testtx.Deploy, "signed.json"}, dirNames(t, dir))
	})
}

func TestSignFileErrors(t *testing.T) {
	s := newTestSigner(t)
	dir := t.TempDir()

	t.Run("missing input", func(t *testing.T) {
		out := filepath.Join(dir, "out.json")
		_, err := s.SignFile(filepath.Join(dir, "missing.json"), out, testKeys(t))
		require.True(t, errors.Is(err, ErrIO))
		require.NoFileExists(t, out)
	})
	t.Run("missing output directory", func(t *testing.T) {
		in := testtx.WriteFile(t, t.TempDir(), testtx.Deploy)
		_, err := s.SignFile(in, filepath.Join(dir, "nodir", "out.json"), testKeys(t))
		require.True(t, errors.Is(err, ErrIO))
	})
	for name, tc := range map[string]struct {
		fixture string
		err     error
	}{
		"transfer":    {testtx.Transfer, transaction.ErrWrongVariant},
		"invalid":     {testtx.Invalid, transaction.ErrDecode},
		"private fee": {testtx.DeployPrivateFee, transaction.ErrFeeNotPublic},
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			in := testtx.WriteFile(t, dir, tc.fixture)
			out := filepath.Join(dir, "out.json")
			_, err := s.SignFile(in, out, testKeys(t))
			require.True(t, errors.Is(err, tc.err), err)
			require.NoFileExists(t, out)
			require.Equal(t, []string{tc.fixture}, dirNames(t, dir))
		})
	}
}

func TestSignBatch(t *testing.T) {
	s := newTestSigner(t)
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "signed")
	for _, f := range []string{testtx.Deploy, testtx.DeployPrivateFee, testtx.Transfer} {
		testtx.WriteFile(t, inDir, f)
	}
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "README.txt"), []byte("skip me"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(inDir, "sub.json"), 0755))

	res, err := s.SignBatch(context.Background(), inDir, outDir, testKeys(t), 2)
	require.NoError(t, err)
	require.Len(t, res, 3)

	byName := make(map[string]BatchResult)
	for _, r := range res {
		byName[filepath.Base(r.Input)] = r
	}
	require.NoError(t, byName[testtx.Deploy].Err)
	require.NotEmpty(t, byName[testtx.Deploy].ID)
	require.True(t, errors.Is(byName[testtx.DeployPrivateFee].Err, transaction.ErrFeeNotPublic))
	require.True(t, errors.Is(byName[testtx.Transfer].Err, transaction.ErrWrongVariant))
	require.Equal(t, []string{testtx.Deploy}, dirNames(t, outDir))

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := s.SignBatch(ctx, inDir, t.TempDir(), testKeys(t), 1)
		require.NoError(t, err)
		require.Len(t, res, 3)
		for _, r := range res {
			require.True(t, errors.Is(r.Err, context.Canceled))
		}
	})
	t.Run("missing input directory", func(t *testing.T) {
		_, err := s.SignBatch(context.Background(), filepath.Join(inDir, "missing"), outDir, testKeys(t), 1)
		require.True(t, errors.Is(err, ErrIO))
	})
}

func dirNames(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
