package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Ledger is the authoritative store for one fungible asset: account balances,
// delegated-spend allowances and the total supply. Every other component
// reads and mutates balances exclusively through its methods, so the
// zero-sum invariant (sum of balances == total supply) only has to be
// maintained here.
type Ledger struct {
	balances    map[common.Address]*uint256.Int
	allowances  map[common.Address]map[common.Address]*uint256.Int
	totalSupply *uint256.Int
}

// NewLedger creates an empty ledger with zero supply
func NewLedger() *Ledger {
	return &Ledger{
		balances:    make(map[common.Address]*uint256.Int),
		allowances:  make(map[common.Address]map[common.Address]*uint256.Int),
		totalSupply: uint256.NewInt(0),
	}
}

// BalanceOf returns the current balance of the given account
func (ledger *Ledger) BalanceOf(account common.Address) *uint256.Int {
	if balance, ok := ledger.balances[account]; ok {
		return balance.Clone()
	}
	return uint256.NewInt(0)
}

// TotalSupply returns the current total supply
func (ledger *Ledger) TotalSupply() *uint256.Int {
	return ledger.totalSupply.Clone()
}

// Mint credits an account and grows the total supply by the same amount
func (ledger *Ledger) Mint(account common.Address, amount *uint256.Int) {
	ledger.credit(account, amount)
	ledger.totalSupply.Add(ledger.totalSupply, amount)
}

// Burn debits an account and shrinks the total supply atomically
func (ledger *Ledger) Burn(account common.Address, amount *uint256.Int) error {
	if err := ledger.debit(account, amount); err != nil {
		return err
	}
	ledger.totalSupply.Sub(ledger.totalSupply, amount)
	return nil
}

// Move debits `from` and credits `to` with the exact same amount
func (ledger *Ledger) Move(from, to common.Address, amount *uint256.Int) error {
	if err := ledger.debit(from, amount); err != nil {
		return err
	}
	ledger.credit(to, amount)
	return nil
}

// Approve sets the allowance of `spender` over `owner` funds
func (ledger *Ledger) Approve(owner, spender common.Address, amount *uint256.Int) {
	spenders, ok := ledger.allowances[owner]
	if !ok {
		spenders = make(map[common.Address]*uint256.Int)
		ledger.allowances[owner] = spenders
	}
	spenders[spender] = amount.Clone()
}

// Allowance returns the remaining allowance of `spender` over `owner` funds
func (ledger *Ledger) Allowance(owner, spender common.Address) *uint256.Int {
	if spenders, ok := ledger.allowances[owner]; ok {
		if allowance, ok := spenders[spender]; ok {
			return allowance.Clone()
		}
	}
	return uint256.NewInt(0)
}

// SpendAllowance consumes part of an allowance, failing when it is too small.
// A zero amount succeeds without touching the allowance table, so it is safe
// for owners that never approved anyone.
func (ledger *Ledger) SpendAllowance(owner, spender common.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	allowance := ledger.Allowance(owner, spender)
	if allowance.Lt(amount) {
		return ErrInsufficientAllowance
	}
	ledger.allowances[owner][spender] = allowance.Sub(allowance, amount)
	return nil
}

func (ledger *Ledger) credit(account common.Address, amount *uint256.Int) {
	if balance, ok := ledger.balances[account]; ok {
		balance.Add(balance, amount)
		return
	}
	ledger.balances[account] = amount.Clone()
}

func (ledger *Ledger) debit(account common.Address, amount *uint256.Int) error {
	balance, ok := ledger.balances[account]
	if !ok || balance.Lt(amount) {
		return ErrInsufficientBalance
	}
	balance.Sub(balance, amount)
	return nil
}

// Clone returns a deep copy used by the snapshot/rollback discipline
func (ledger *Ledger) Clone() *Ledger {
	clone := NewLedger()
	clone.totalSupply = ledger.totalSupply.Clone()
	for account, balance := range ledger.balances {
		clone.balances[account] = balance.Clone()
	}
	for owner, spenders := range ledger.allowances {
		cloned := make(map[common.Address]*uint256.Int, len(spenders))
		for spender, allowance := range spenders {
			cloned[spender] = allowance.Clone()
		}
		clone.allowances[owner] = cloned
	}
	return clone
}
