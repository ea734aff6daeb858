/*
Package vm implements a disposable execution context for fee transitions.
Every context compiles the fee circuit and runs its own groth16 setup, the
verifying key and executed transitions are kept in the context store.
*/
package vm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
	"github.com/nspcc-dev/sign-deployment/pkg/config/netmode"
	"github.com/nspcc-dev/sign-deployment/pkg/core/storage"
	"github.com/nspcc-dev/sign-deployment/pkg/core/transaction"
	"github.com/nspcc-dev/sign-deployment/pkg/crypto/hash"
	"github.com/nspcc-dev/sign-deployment/pkg/encoding/address"
	"go.uber.org/zap"
)

var (
	// ErrFeeAuthorization is returned when fee can't be authorized.
	ErrFeeAuthorization = errors.New("fee authorization failed")
	// ErrFeeExecution is returned when fee authorization can't be executed
	// or proved.
	ErrFeeExecution = errors.New("fee execution failed")
)

// curveID is the curve used by fee proofs.
const curveID = ecc.BLS12_377

func init() {
	logger.Disable()
}

// VM is an execution context able to authorize, execute and verify public
// fees. It's not safe for concurrent use and it's not supposed to be reused
// for unrelated transactions.
type VM struct {
	network netmode.ID
	store   storage.Store
	log     *zap.Logger

	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
}

// NewVM creates an execution context for the network over the given store,
// the store is expected to be empty and it's owned by VM after this call.
func NewVM(network netmode.ID, store storage.Store, log *zap.Logger) (*VM, error) {
	if !network.IsValid() {
		return nil, fmt.Errorf("%w: unknown network %s", ErrFeeExecution, network)
	}
	ccs, err := frontend.Compile(curveID.ScalarField(), r1cs.NewBuilder, new(FeeCircuit))
	if err != nil {
		return nil, fmt.Errorf("%w: can't compile fee circuit: %v", ErrFeeExecution, err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("%w: setup: %v", ErrFeeExecution, err)
	}
	var buf bytes.Buffer
	if _, err = vk.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: can't serialize verifying key: %v", ErrFeeExecution, err)
	}
	err = store.PutChangeSet(map[string][]byte{
		string(feeVerifyingKey()):          buf.Bytes(),
		string(storage.SYSNetwork.Bytes()): {byte(network)},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeeExecution, err)
	}
	log.Debug("execution context is ready",
		zap.Stringer("network", network),
		zap.Int("constraints", ccs.GetNbConstraints()))
	return &VM{
		network: network,
		store:   store,
		log:     log,
		ccs:     ccs,
		pk:      pk,
	}, nil
}

func feeVerifyingKey() []byte {
	return storage.AppendPrefix(storage.DataVerifyingKey,
		[]byte(transaction.FeeProgram+"/"+transaction.FeePublicFunction))
}

// ExecuteFeeAuthorization proves the authorization and builds the resulting
// fee. The proof is randomized, so every call produces a different one.
func (v *VM) ExecuteFeeAuthorization(auth *FeeAuthorization) (*transaction.Fee, error) {
	if auth == nil {
		return nil, fmt.Errorf("%w: no authorization", ErrFeeExecution)
	}
	if !auth.Verify() {
		return nil, fmt.Errorf("%w: invalid payer signature", ErrFeeExecution)
	}
	w, err := frontend.NewWitness(&FeeCircuit{
		BaseAmount:     auth.BaseAmount,
		PriorityAmount: auth.PriorityAmount,
		DeploymentID:   bigOf(auth.DeploymentID.Element()),
		TCM:            bigOf(auth.TCM),
		SCM:            bigOf(auth.SCM),
		Payer:          bigOf(payerElement(auth.Payer)),
		TVK:            bigOf(auth.tvk),
	}, curveID.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("%w: witness: %v", ErrFeeExecution, err)
	}
	proof, err := groth16.Prove(v.ccs, v.pk, w)
	if err != nil {
		return nil, fmt.Errorf("%w: proof: %v", ErrFeeExecution, err)
	}
	var buf bytes.Buffer
	if _, err = proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: can't serialize proof: %v", ErrFeeExecution, err)
	}
	proofStr, err := address.Encode(address.ProofPrefix, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeeExecution, err)
	}

	tr, err := newFeeTransition(auth)
	if err != nil {
		return nil, fmt.Errorf("%w: transition: %v", ErrFeeExecution, err)
	}
	root, err := v.StateRoot()
	if err != nil {
		return nil, fmt.Errorf("%w: state root: %v", ErrFeeExecution, err)
	}
	data, err := json.Marshal(tr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeeExecution, err)
	}
	if err = storage.Put(v.store, storage.AppendPrefix(storage.DataTransition, []byte(tr.ID)), data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeeExecution, err)
	}
	v.log.Debug("fee executed", zap.String("transition", tr.ID))
	return &transaction.Fee{
		Transition:      *tr,
		GlobalStateRoot: root,
		Proof:           proofStr,
	}, nil
}

// VerifyFee checks the proof of a public fee produced by this context.
func (v *VM) VerifyFee(fee *transaction.Fee) error {
	if fee == nil || !fee.IsPublic() {
		return transaction.ErrFeeNotPublic
	}
	base, err := fee.BaseAmount()
	if err != nil {
		return err
	}
	priority, err := fee.PriorityAmount()
	if err != nil {
		return err
	}
	id, err := fee.DeploymentID()
	if err != nil {
		return err
	}
	tcm, err := transaction.ParseField(fee.Transition.TCM)
	if err != nil {
		return fmt.Errorf("tcm: %w", err)
	}
	scm, err := transaction.ParseField(fee.Transition.SCM)
	if err != nil {
		return fmt.Errorf("scm: %w", err)
	}
	proofBytes, err := address.Decode(address.ProofPrefix, fee.Proof)
	if err != nil {
		return err
	}
	proof := groth16.NewProof(curveID)
	if _, err = proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return fmt.Errorf("bad proof: %w", err)
	}
	vkData, err := v.store.Get(feeVerifyingKey())
	if err != nil {
		return fmt.Errorf("no verifying key: %w", err)
	}
	vk := groth16.NewVerifyingKey(curveID)
	if _, err = vk.ReadFrom(bytes.NewReader(vkData)); err != nil {
		return fmt.Errorf("bad verifying key: %w", err)
	}
	w, err := frontend.NewWitness(&FeeCircuit{
		BaseAmount:     base,
		PriorityAmount: priority,
		DeploymentID:   bigOf(id.Element()),
		TCM:            bigOf(tcm),
		SCM:            bigOf(scm),
	}, curveID.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}
	return groth16.Verify(proof, vk, w)
}

// Transition returns the transition executed by this context.
func (v *VM) Transition(id string) (*transaction.Transition, error) {
	data, err := v.store.Get(storage.AppendPrefix(storage.DataTransition, []byte(id)))
	if err != nil {
		return nil, err
	}
	tr := new(transaction.Transition)
	if err = json.Unmarshal(data, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

// StateRoot returns the global state root of the context: the Merkle root
// over the network and all ledger items.
func (v *VM) StateRoot() (string, error) {
	net, err := v.store.Get(storage.SYSNetwork.Bytes())
	if err != nil {
		return "", err
	}
	leaves := [][hash.Size]byte{hash.Purpose("state.network", net)}
	v.store.Seek(storage.SeekRange{Prefix: storage.DataLedger.Bytes()}, func(k, val []byte) bool {
		leaves = append(leaves, hash.Purpose("state.ledger", k, val))
		return true
	})
	root := hash.CalcMerkleRoot(leaves)
	return address.Encode(address.StateRootPrefix, root[:])
}

// Close releases the context store.
func (v *VM) Close() error {
	return v.store.Close()
}

// newFeeTransition builds fee_public transition for the authorization.
func newFeeTransition(auth *FeeAuthorization) (*transaction.Transition, error) {
	var base, priority, total fr.Element
	base.SetUint64(auth.BaseAmount)
	priority.SetUint64(auth.PriorityAmount)
	total.SetUint64(auth.Total())

	values := []struct {
		text string
		e    fr.Element
	}{
		{transaction.FormatU64(auth.BaseAmount), base},
		{transaction.FormatU64(auth.PriorityAmount), priority},
		{auth.DeploymentID.String(), auth.DeploymentID.Element()},
	}
	var (
		tpk    = auth.TPK.Bytes()
		tcm    = auth.TCM.Bytes()
		scm    = auth.SCM.Bytes()
		idData = [][]byte{
			[]byte(transaction.FeeProgram),
			[]byte(transaction.FeePublicFunction),
			tpk[:], tcm[:], scm[:],
		}
		tr = &transaction.Transition{
			Program:  transaction.FeeProgram,
			Function: transaction.FeePublicFunction,
			TPK:      transaction.FormatGroup(auth.TPK.X),
			TCM:      transaction.FormatField(auth.TCM),
			SCM:      transaction.FormatField(auth.SCM),
		}
	)
	for i, val := range values {
		id := ioID(auth.TCM, i, val.e)
		idBytes := id.Bytes()
		idData = append(idData, idBytes[:])
		tr.Inputs = append(tr.Inputs, transaction.Input{
			Type:  transaction.PublicIOType,
			ID:    transaction.FormatField(id),
			Value: val.text,
		})
	}

	future := transaction.Future{
		ProgramID:    transaction.FeeProgram,
		FunctionName: transaction.FeePublicFunction,
		Arguments:    []string{auth.Payer.String(), transaction.FormatU64(auth.Total())},
	}
	outID := ioID(auth.TCM, len(values), hashElements(payerElement(auth.Payer), total))
	outBytes := outID.Bytes()
	idData = append(idData, outBytes[:])
	tr.Outputs = []transaction.Output{{
		Type:  transaction.FutureIOType,
		ID:    transaction.FormatField(outID),
		Value: future.String(),
	}}

	h := hash.Purpose("transition", idData...)
	id, err := address.Encode(address.TransitionPrefix, h[:])
	if err != nil {
		return nil, err
	}
	tr.ID = id
	return tr, nil
}

// ioID returns the ID of transition input or output at index.
func ioID(tcm fr.Element, index int, value fr.Element) fr.Element {
	var idx fr.Element
	idx.SetUint64(uint64(index))
	return hashElements(tcm, idx, value)
}

func bigOf(e fr.Element) *big.Int {
	return e.BigInt(new(big.Int))
}
