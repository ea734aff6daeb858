package vm

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
	"github.com/nspcc-dev/sign-deployment/pkg/core/transaction"
	"github.com/nspcc-dev/sign-deployment/pkg/crypto/keys"
	"go.uber.org/zap"
)

// FeeAuthorization binds the payer and fee amounts to a deployment. It's
// signed by the payer, but not yet proved.
type FeeAuthorization struct {
	Payer          keys.Address
	BaseAmount     uint64
	PriorityAmount uint64
	DeploymentID   transaction.DeploymentID

	// TPK is the transition public key, TCM and SCM are transition and
	// signer commitments.
	TPK twistededwards.PointAffine
	TCM fr.Element
	SCM fr.Element

	// Signature is made by the payer over the deployment ID, amounts and
	// TCM.
	Signature keys.Signature

	tvk fr.Element
}

// AuthorizeFeePublic creates a public fee authorization paying base and
// priority amounts for deployment id from the account of priv. rng is used
// for transition keys, crypto/rand is used if it's nil.
func (v *VM) AuthorizeFeePublic(priv *keys.PrivateKey, base, priority uint64, id transaction.DeploymentID, rng io.Reader) (*FeeAuthorization, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: no payer key", ErrFeeAuthorization)
	}
	if base+priority < base {
		return nil, fmt.Errorf("%w: total fee overflows u64 (%d + %d)", ErrFeeAuthorization, base, priority)
	}
	if rng == nil {
		rng = rand.Reader
	}
	r, err := randomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeeAuthorization, err)
	}

	var (
		curve = twistededwards.GetEdwardsCurve()
		pub   = priv.PublicKey().Point()
		auth  = &FeeAuthorization{
			Payer:          priv.Address(),
			BaseAmount:     base,
			PriorityAmount: priority,
			DeploymentID:   id,
		}
		tvk twistededwards.PointAffine
	)
	auth.TPK.ScalarMultiplication(&curve.Base, r)
	tvk.ScalarMultiplication(&pub, r)
	auth.tvk = tvk.X
	auth.TCM = transitionCommitment(auth.tvk, id.Element())
	auth.SCM = signerCommitment(payerElement(auth.Payer), auth.tvk)

	auth.Signature, err = priv.Sign(auth.message())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeeAuthorization, err)
	}
	v.log.Debug("fee authorized",
		zap.Stringer("payer", auth.Payer),
		zap.Uint64("base", base),
		zap.Uint64("priority", priority))
	return auth, nil
}

// Total returns the sum of base and priority amounts.
func (a *FeeAuthorization) Total() uint64 {
	return a.BaseAmount + a.PriorityAmount
}

// Verify checks the payer signature.
func (a *FeeAuthorization) Verify() bool {
	pub, err := a.Payer.PublicKey()
	if err != nil {
		return false
	}
	return pub.Verify(a.message(), a.Signature)
}

// message returns signed data, a sequence of field elements.
func (a *FeeAuthorization) message() []byte {
	var base, priority fr.Element
	base.SetUint64(a.BaseAmount)
	priority.SetUint64(a.PriorityAmount)
	return concatElements(a.DeploymentID.Element(), base, priority, a.TCM)
}

func concatElements(elems ...fr.Element) []byte {
	res := make([]byte, 0, len(elems)*fr.Bytes)
	for i := range elems {
		b := elems[i].Bytes()
		res = append(res, b[:]...)
	}
	return res
}

func payerElement(a keys.Address) fr.Element {
	var e fr.Element
	e.SetBytes(a[:])
	return e
}

func randomScalar(rng io.Reader) (*big.Int, error) {
	curve := twistededwards.GetEdwardsCurve()
	for {
		r, err := rand.Int(rng, &curve.Order)
		if err != nil {
			return nil, err
		}
		if r.Sign() != 0 {
			return r, nil
		}
	}
}
