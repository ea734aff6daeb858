package deployment

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/sign-deployment/pkg/core/transaction"
	"go.uber.org/zap"
)

// SignFile signs the transaction from the input file and writes the result
// to the output file. Nothing is written if signing fails.
func (s *Signer) SignFile(input, output string, k *Keys) (*transaction.Transaction, error) {
	raw, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	tx, err := s.Sign(raw, k, nil)
	if err != nil {
		return nil, err
	}
	data, err := tx.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: can't serialize transaction: %v", transaction.ErrAssembly, err)
	}
	if err = writeFile(output, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	s.log.Debug("transaction saved", zap.String("input", input), zap.String("output", output))
	return tx, nil
}

// writeFile writes data into a temporary file in the same directory and
// renames it to path, so path either has complete data or isn't touched.
func writeFile(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, 0644)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		_ = os.Remove(tmp)
	}
	return err
}
