package dpf

import (
	"fmt"
	"sync/atomic"
)

// wildcard slot states form a monotone state machine. The completion
// protocols below move a slot unset -> computing -> ready, or to poisoned,
// a permanent terminal state, when an attempt fails after it has begun; the
// waiting and blinded states are defined but never entered. A duplicate
// completion attempt is rejected by begin and leaves the slot's state as it
// was.
const (
	wildcardUnset = iota
	wildcardComputing
	wildcardWaiting
	wildcardBlinded
	wildcardReady
	wildcardPoisoned
)

// PeerChannel is the minimal message-exchange surface wildcard completion
// needs with the other party. The network is treated as an external
// collaborator here ("awaiting a peer message") rather than modeled
// directly, since no generic two-party point-to-point transport fits every
// caller's wire protocol; this is a small interface a caller backs with
// whatever transport it already has, the same dependency-inversion pattern
// used elsewhere for channel/OT abstractions.
type PeerChannel interface {
	SendValue(v Value) error
	ReceiveValue(zero Value) (Value, error)
	SendLeaf(l Leaf) error
	ReceiveLeaf(zero Value) (Leaf, error)
}

// wildcardState tracks the CAS-guarded per-slot machine for one Key. Slots
// 0..numOutputs-1 are output completions; slot numOutputs is the (single)
// input/alpha completion.
type wildcardState struct {
	slots []int32
}

func newWildcardState(numOutputs int) *wildcardState {
	return &wildcardState{slots: make([]int32, numOutputs+1)}
}

func (w *wildcardState) begin(slot int) error {
	if !atomic.CompareAndSwapInt32(&w.slots[slot], wildcardUnset, wildcardComputing) {
		return fmt.Errorf("%w: wildcard slot %d already completing or completed", ErrProtocolState, slot)
	}
	return nil
}

func (w *wildcardState) poison(slot int) {
	atomic.StoreInt32(&w.slots[slot], wildcardPoisoned)
}

func (w *wildcardState) finish(slot int) {
	atomic.StoreInt32(&w.slots[slot], wildcardReady)
}

// CompleteOutput runs the online output-completion protocol for output slot
// i, given this party's share of beta_i and a channel to the peer. On
// success, the key's wildcard bit for slot i is cleared and output i
// becomes evaluable. On any failure the slot is permanently poisoned; the
// beaver material is consumed (zeroed) regardless of outcome — duplicate
// completion attempts are fatal, and the beaver is consumed exactly once
// whether or not the attempt succeeds.
//
// Both the packed (outputs_per_leaf > 1) and unpacked case reduce to the
// same exchange here — see the Beaver doc comment in key.go for why no
// separate packed/unpacked branch is needed.
func (k *Key) CompleteOutput(i int, myBetaShare Value, peer PeerChannel) (err error) {
	if k.wildcards == nil {
		k.wildcards = newWildcardState(len(k.zeros))
	}
	if err := k.wildcards.begin(i); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			k.wildcards.poison(i)
		}
	}()

	beaver := k.beavers[i]
	zero := k.zeros[i]
	k.beavers[i] = Beaver{} // consume exactly once, regardless of outcome

	naked := makeNakedLeaf(uint64(k.leafOffset[i]), myBetaShare)
	var localTerm Leaf
	if k.leafSign {
		localTerm = subtractLeaf(naked, beaver.MaskShare, zero)
	} else {
		localTerm = subtractLeaf(beaver.MaskShare, naked, zero)
	}

	if err := peer.SendLeaf(localTerm); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	peerTerm, err := peer.ReceiveLeaf(zero)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	k.leaves[i] = addLeaf(localTerm, peerTerm, zero)

	k.wildcardMask.Clear(uint(i))
	k.wildcards.finish(i)
	return nil
}

// SetAlphaShare records this party's additive share of the real alpha ahead
// of CompleteInput, for a key generated with WildcardAlpha (Gen itself has
// no way to pick a share for a value it was never told). The two parties'
// shares must sum to the intended alpha modulo the domain size.
func (k *Key) SetAlphaShare(share uint64) { k.alphaShare = share }

// CompleteInput runs the online input-completion protocol: this party holds
// alphaShare, the additive share of the real alpha. The two parties exchange
// shares to agree on a common offset, after which every evaluator
// transparently subtracts that offset from its inputs via applyOffset
// (Gen built the tree around physical position 0, so a query for logical x
// must be translated to physical x-offset before the tree is walked), and
// full/interval results over the whole domain must be read through a
// RotationIterable (rotation.go).
func (k *Key) CompleteInput(peer PeerChannel) (err error) {
	slot := len(k.zeros)
	if k.wildcards == nil {
		k.wildcards = newWildcardState(len(k.zeros))
	}
	if err := k.wildcards.begin(slot); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			k.wildcards.poison(slot)
		}
	}()

	mask := uint64(1)<<uint(k.n) - 1
	myShare := Uint64(k.alphaShare & mask)
	if err := peer.SendValue(myShare); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	peerShareV, err := peer.ReceiveValue(Uint64(0))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	peerShare := uint64(peerShareV.(Uint64))

	k.offsetShare = (k.alphaShare + peerShare) & mask
	k.hasOffset = true
	k.wildcardMask.Clear(uint(slot))
	k.wildcards.finish(slot)
	return nil
}
