package vm

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/mimc"
	"github.com/consensys/gnark/frontend"
	stdmimc "github.com/consensys/gnark/std/hash/mimc"
)

// amountBits is the width of fee amounts.
const amountBits = 64

// FeeCircuit proves that the fee amounts fit into u64 (including their sum)
// and that transition commitments are derived from the transition view key
// known to the prover.
type FeeCircuit struct {
	BaseAmount     frontend.Variable `gnark:",public"`
	PriorityAmount frontend.Variable `gnark:",public"`
	DeploymentID   frontend.Variable `gnark:",public"`
	TCM            frontend.Variable `gnark:",public"`
	SCM            frontend.Variable `gnark:",public"`

	Payer frontend.Variable
	TVK   frontend.Variable
}

// Define implements frontend.Circuit interface.
func (c *FeeCircuit) Define(api frontend.API) error {
	api.ToBinary(c.BaseAmount, amountBits)
	api.ToBinary(c.PriorityAmount, amountBits)
	api.ToBinary(api.Add(c.BaseAmount, c.PriorityAmount), amountBits)

	h, err := stdmimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.TVK, c.DeploymentID)
	api.AssertIsEqual(c.TCM, h.Sum())

	h.Reset()
	h.Write(c.Payer, c.TVK)
	api.AssertIsEqual(c.SCM, h.Sum())
	return nil
}

// hashElements is the native counterpart of the in-circuit MiMC.
func hashElements(elems ...fr.Element) fr.Element {
	h := mimc.NewMiMC()
	for i := range elems {
		b := elems[i].Bytes()
		_, _ = h.Write(b[:])
	}
	var res fr.Element
	res.SetBytes(h.Sum(nil))
	return res
}

// transitionCommitment returns tcm for the given view key and deployment.
func transitionCommitment(tvk, id fr.Element) fr.Element {
	return hashElements(tvk, id)
}

// signerCommitment returns scm for the given payer and view key.
func signerCommitment(payer, tvk fr.Element) fr.Element {
	return hashElements(payer, tvk)
}
