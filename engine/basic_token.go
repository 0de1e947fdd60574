package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gitlab.com/przworld-exchange/economy_core/model"
)

// BasicToken is a plain fungible asset without transfer tax, used for the
// stable coin leg of voucher payments.
type BasicToken struct {
	addr   common.Address
	ledger *Ledger
}

// NewBasicToken deploys a plain token with the initial supply minted to the
// given holder
func NewBasicToken(addr, holder common.Address, initialSupply *uint256.Int) *BasicToken {
	token := &BasicToken{
		addr:   addr,
		ledger: NewLedger(),
	}
	token.ledger.Mint(holder, initialSupply)
	return token
}

// Address of the token contract analogue
func (token *BasicToken) Address() common.Address {
	return token.addr
}

// BalanceOf returns the balance of the given account
func (token *BasicToken) BalanceOf(account common.Address) *uint256.Int {
	return token.ledger.BalanceOf(account)
}

// TotalSupply returns the total supply
func (token *BasicToken) TotalSupply() *uint256.Int {
	return token.ledger.TotalSupply()
}

// Transfer moves the full amount with no fee
func (token *BasicToken) Transfer(from, to common.Address, amount *uint256.Int, events *[]model.Event) error {
	if err := token.ledger.Move(from, to, amount); err != nil {
		return err
	}
	*events = append(*events, model.NewEvent(model.EventType_Transfer, token.addr, from, to, amount))
	return nil
}

// Approve sets the allowance of `spender` over `owner` funds
func (token *BasicToken) Approve(owner, spender common.Address, amount *uint256.Int, events *[]model.Event) {
	token.ledger.Approve(owner, spender, amount)
	*events = append(*events, model.NewEvent(model.EventType_Approval, token.addr, owner, spender, amount))
}

// Allowance returns the remaining allowance of `spender` over `owner` funds
func (token *BasicToken) Allowance(owner, spender common.Address) *uint256.Int {
	return token.ledger.Allowance(owner, spender)
}

// TransferFrom moves tokens on behalf of `from`, consuming the spender's
// allowance first
func (token *BasicToken) TransferFrom(spender, from, to common.Address, amount *uint256.Int, events *[]model.Event) error {
	if err := token.ledger.SpendAllowance(from, spender, amount); err != nil {
		return err
	}
	return token.Transfer(from, to, amount, events)
}

// Clone returns a deep copy used by the snapshot/rollback discipline
func (token *BasicToken) Clone() *BasicToken {
	return &BasicToken{
		addr:   token.addr,
		ledger: token.ledger.Clone(),
	}
}
