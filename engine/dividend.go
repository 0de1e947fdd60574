package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Magnitude is the fixed-point scale of the dividend accumulator. With share
// counts in the low thousands a 2^128 scale guarantees that a nonzero
// distribution never rounds down to a zero per-share increment.
var Magnitude = new(uint256.Int).Lsh(uint256.NewInt(1), 128)

// DividendTracker implements the O(1) dividend-per-share accounting for one
// reward token. A global magnified accumulator grows on every distribution
// and a per-account correction term is adjusted whenever that account's
// share count changes, so that claimable rewards are computable in constant
// time regardless of holder count or history length.
//
// Corrections are kept in wrap-around uint256 arithmetic (two's complement):
// the magnified sum A*shares + C is provably non-negative for every
// reachable state, so the wrapped representation always decodes to the true
// value.
type DividendTracker struct {
	magnifiedPerShare *uint256.Int
	corrections       map[common.Address]*uint256.Int
	withdrawn         map[common.Address]*uint256.Int
	totalDistributed  *uint256.Int
	undistributed     *uint256.Int
}

// NewDividendTracker constructor
func NewDividendTracker() *DividendTracker {
	return &DividendTracker{
		magnifiedPerShare: uint256.NewInt(0),
		corrections:       make(map[common.Address]*uint256.Int),
		withdrawn:         make(map[common.Address]*uint256.Int),
		totalDistributed:  uint256.NewInt(0),
		undistributed:     uint256.NewInt(0),
	}
}

// Distribute records `amount` of reward funding against the current share
// total. When nobody holds shares yet the amount is held back and folded
// into the next distribution instead of being silently lost.
func (tracker *DividendTracker) Distribute(amount *uint256.Int, totalShares uint64) {
	if amount.IsZero() && tracker.undistributed.IsZero() {
		return
	}
	pending := new(uint256.Int).Add(tracker.undistributed, amount)
	if totalShares == 0 {
		tracker.undistributed = pending
		return
	}
	increment := new(uint256.Int).Mul(pending, Magnitude)
	increment.Div(increment, uint256.NewInt(totalShares))
	tracker.magnifiedPerShare.Add(tracker.magnifiedPerShare, increment)
	tracker.totalDistributed.Add(tracker.totalDistributed, pending)
	tracker.undistributed = uint256.NewInt(0)
}

// SharesChanged preserves the account's accrued reward exactly across a
// share-count change. The correction moves in the opposite direction of the
// share delta so no past accumulator growth is attributed to shares the
// account did not hold at the time.
func (tracker *DividendTracker) SharesChanged(account common.Address, oldShares, newShares uint64) {
	if oldShares == newShares {
		return
	}
	correction := tracker.correctionOf(account)
	if newShares > oldShares {
		delta := new(uint256.Int).Mul(tracker.magnifiedPerShare, uint256.NewInt(newShares-oldShares))
		correction.Sub(correction, delta) // wraps below zero
	} else {
		delta := new(uint256.Int).Mul(tracker.magnifiedPerShare, uint256.NewInt(oldShares-newShares))
		correction.Add(correction, delta)
	}
	tracker.corrections[account] = correction
}

// WithdrawableOf returns the amount the account can withdraw right now:
// floor((A*shares + C) / magnitude) - withdrawn.
func (tracker *DividendTracker) WithdrawableOf(account common.Address, shares uint64) *uint256.Int {
	accumulated := new(uint256.Int).Mul(tracker.magnifiedPerShare, uint256.NewInt(shares))
	accumulated.Add(accumulated, tracker.correctionOf(account)) // wrap cancels out
	accumulated.Div(accumulated, Magnitude)
	return accumulated.Sub(accumulated, tracker.withdrawnOf(account))
}

// RecordWithdrawal marks `amount` as paid out to the account
func (tracker *DividendTracker) RecordWithdrawal(account common.Address, amount *uint256.Int) {
	withdrawn := tracker.withdrawnOf(account)
	tracker.withdrawn[account] = withdrawn.Add(withdrawn, amount)
}

// TotalDistributed returns the cumulative distributed amount, excluding any
// held-back funding that arrived while no shares existed
func (tracker *DividendTracker) TotalDistributed() *uint256.Int {
	return tracker.totalDistributed.Clone()
}

func (tracker *DividendTracker) correctionOf(account common.Address) *uint256.Int {
	if correction, ok := tracker.corrections[account]; ok {
		return correction.Clone()
	}
	return uint256.NewInt(0)
}

func (tracker *DividendTracker) withdrawnOf(account common.Address) *uint256.Int {
	if withdrawn, ok := tracker.withdrawn[account]; ok {
		return withdrawn.Clone()
	}
	return uint256.NewInt(0)
}

// Clone returns a deep copy used by the snapshot/rollback discipline
func (tracker *DividendTracker) Clone() *DividendTracker {
	clone := NewDividendTracker()
	clone.magnifiedPerShare = tracker.magnifiedPerShare.Clone()
	clone.totalDistributed = tracker.totalDistributed.Clone()
	clone.undistributed = tracker.undistributed.Clone()
	for account, correction := range tracker.corrections {
		clone.corrections[account] = correction.Clone()
	}
	for account, withdrawn := range tracker.withdrawn {
		clone.withdrawn[account] = withdrawn.Clone()
	}
	return clone
}
