/*
Package deployment re-signs deployment transactions. The admin key becomes
the owner of the deployed program and the fee is paid again (with the same
amounts) for the updated deployment by the fee key.
*/
package deployment

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/nspcc-dev/sign-deployment/pkg/config/netmode"
	"github.com/nspcc-dev/sign-deployment/pkg/core/storage"
	"github.com/nspcc-dev/sign-deployment/pkg/core/transaction"
	"github.com/nspcc-dev/sign-deployment/pkg/crypto/keys"
	"github.com/nspcc-dev/sign-deployment/pkg/vm"
	"go.uber.org/zap"
)

// ErrIO is returned when input can't be read or output can't be written.
var ErrIO = errors.New("i/o error")

// Keys is a pair of keys used for signing.
type Keys struct {
	// Admin is the new program owner.
	Admin *keys.PrivateKey
	// Fee pays for the deployment.
	Fee *keys.PrivateKey
}

// ParseKeys parses admin and fee keys, the fee key defaults to the admin
// one if it's empty.
func ParseKeys(adminKey, feeKey string) (*Keys, error) {
	admin, err := keys.NewPrivateKeyFromString(adminKey)
	if err != nil {
		return nil, fmt.Errorf("admin key: %w", err)
	}
	if feeKey == "" {
		return &Keys{Admin: admin, Fee: admin}, nil
	}
	fee, err := keys.NewPrivateKeyFromString(feeKey)
	if err != nil {
		return nil, fmt.Errorf("fee key: %w", err)
	}
	return &Keys{Admin: admin, Fee: fee}, nil
}

// Signer re-signs deployment transactions for the network. It can be used
// concurrently, every transaction gets its own execution context.
type Signer struct {
	network netmode.ID
	log     *zap.Logger
}

// NewSigner creates a Signer for the network.
func NewSigner(network netmode.ID, log *zap.Logger) (*Signer, error) {
	if !network.IsValid() {
		return nil, fmt.Errorf("invalid network: %s", network)
	}
	return &Signer{network: network, log: log}, nil
}

// SignRaw parses keys and signs raw transaction with them. Keys are checked
// before the transaction is decoded.
func (s *Signer) SignRaw(raw []byte, adminKey, feeKey string) (*transaction.Transaction, error) {
	k, err := ParseKeys(adminKey, feeKey)
	if err != nil {
		return nil, err
	}
	return s.Sign(raw, k, nil)
}

// Sign decodes deployment transaction from raw, makes the admin key its
// owner and pays the fee for it again. Fee amounts are taken from the
// original fee which must be public. rng is used for fee transition keys,
// crypto/rand is used if it's nil.
func (s *Signer) Sign(raw []byte, k *Keys, rng io.Reader) (*transaction.Transaction, error) {
	log := s.log.With(zap.String("run", uuid.NewString()))

	tx, err := transaction.Decode(raw)
	if err != nil {
		return nil, err
	}
	d, fee, err := tx.Deploy()
	if err != nil {
		return nil, err
	}
	fee, err = transaction.RequirePublicFee(fee)
	if err != nil {
		return nil, err
	}
	base, err := fee.BaseAmount()
	if err != nil {
		return nil, fmt.Errorf("%w: base amount: %v", transaction.ErrDecode, err)
	}
	priority, err := fee.PriorityAmount()
	if err != nil {
		return nil, fmt.Errorf("%w: priority amount: %v", transaction.ErrDecode, err)
	}
	programID, _ := d.ProgramID() // Checked by Decode.
	log.Debug("deployment decoded",
		zap.String("program", programID),
		zap.String("tx", tx.ID),
		zap.Uint64("base", base),
		zap.Uint64("priority", priority))

	d.SetOwner(k.Admin.Address())
	d.UpdateChecksum()
	id, err := d.ID()
	if err != nil {
		return nil, fmt.Errorf("%w: deployment ID: %v", transaction.ErrAssembly, err)
	}
	owner, err := transaction.NewProgramOwner(k.Admin, id)
	if err != nil {
		return nil, err
	}
	log.Debug("program owner attested",
		zap.Stringer("owner", owner.Address),
		zap.Stringer("deployment", id))

	v, err := vm.NewVM(s.network, storage.NewMemoryStore(), log)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := v.Close(); err != nil {
			log.Warn("failed to close execution context", zap.Error(err))
		}
	}()
	auth, err := v.AuthorizeFeePublic(k.Fee, base, priority, id, rng)
	if err != nil {
		return nil, err
	}
	newFee, err := v.ExecuteFeeAuthorization(auth)
	if err != nil {
		return nil, err
	}

	res, err := transaction.NewDeploy(owner, d, newFee)
	if err != nil {
		return nil, err
	}
	log.Info("deployment transaction signed",
		zap.String("program", programID),
		zap.String("tx", res.ID),
		zap.Stringer("owner", owner.Address),
		zap.Stringer("payer", auth.Payer))
	return res, nil
}
