// Package pool provides the constant-product exchange pair consumed by the
// token's swap controller. The pair holds no balances of its own: its token
// reserve is its account in the token ledger and its base reserve is its
// account in the base currency ledger, so the snapshot/rollback discipline
// of the engine covers pool state for free.
package pool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gitlab.com/przworld-exchange/economy_core/engine"
	"gitlab.com/przworld-exchange/economy_core/model"
)

// TokenMover is the slice of the token the pair needs
type TokenMover interface {
	Address() common.Address
	BalanceOf(account common.Address) *uint256.Int
	Transfer(from, to common.Address, amount *uint256.Int, events *[]model.Event) error
}

// Pair is an x*y=k pool between the token and the base currency
type Pair struct {
	addr  common.Address
	token TokenMover
	base  *engine.Ledger
}

// NewPair constructor
func NewPair(addr common.Address, token TokenMover, base *engine.Ledger) *Pair {
	return &Pair{addr: addr, token: token, base: base}
}

// Address of the pair account
func (pair *Pair) Address() common.Address {
	return pair.addr
}

// Reserves returns the current (token, base) reserves
func (pair *Pair) Reserves() (*uint256.Int, *uint256.Int) {
	return pair.token.BalanceOf(pair.addr), pair.base.BalanceOf(pair.addr)
}

// SwapTokensForBase converts `amount` tokens held by `from` into base
// currency at the constant-product price, crediting the proceeds to `from`
func (pair *Pair) SwapTokensForBase(from common.Address, amount *uint256.Int, events *[]model.Event) (*uint256.Int, error) {
	tokenReserve, baseReserve := pair.Reserves()
	if baseReserve.IsZero() {
		return nil, engine.ErrInsufficientLiquidity
	}
	if err := pair.token.Transfer(from, pair.addr, amount, events); err != nil {
		return nil, err
	}
	received := new(uint256.Int).Sub(pair.token.BalanceOf(pair.addr), tokenReserve)
	baseOut := quoteOut(received, tokenReserve, baseReserve)
	if baseOut.IsZero() {
		return nil, engine.ErrInsufficientLiquidity
	}
	if err := pair.base.Move(pair.addr, from, baseOut); err != nil {
		return nil, err
	}
	return baseOut, nil
}

// AddLiquidity supplies a token/base pair from `from` into the reserves
func (pair *Pair) AddLiquidity(from common.Address, tokenAmount, baseAmount *uint256.Int, events *[]model.Event) error {
	if err := pair.token.Transfer(from, pair.addr, tokenAmount, events); err != nil {
		return err
	}
	return pair.base.Move(from, pair.addr, baseAmount)
}

// Buy swaps `baseIn` of the buyer's base currency for tokens. The outgoing
// token transfer runs through the regular transfer path, so a non-exempt
// buyer receives the taxed net amount.
func (pair *Pair) Buy(buyer common.Address, baseIn *uint256.Int, events *[]model.Event) (*uint256.Int, error) {
	tokenReserve, baseReserve := pair.Reserves()
	if tokenReserve.IsZero() {
		return nil, engine.ErrInsufficientLiquidity
	}
	tokenOut := quoteOut(baseIn, baseReserve, tokenReserve)
	if tokenOut.IsZero() {
		return nil, engine.ErrInsufficientLiquidity
	}
	if err := pair.base.Move(buyer, pair.addr, baseIn); err != nil {
		return nil, err
	}
	if err := pair.token.Transfer(pair.addr, buyer, tokenOut, events); err != nil {
		return nil, err
	}
	return tokenOut, nil
}

// Sell swaps `tokenIn` of the seller's tokens for base currency. The pair
// prices the sale on the amount it actually received, which for a taxed
// seller is the net of fees.
func (pair *Pair) Sell(seller common.Address, tokenIn *uint256.Int, events *[]model.Event) (*uint256.Int, error) {
	tokenReserve, baseReserve := pair.Reserves()
	if baseReserve.IsZero() {
		return nil, engine.ErrInsufficientLiquidity
	}
	if err := pair.token.Transfer(seller, pair.addr, tokenIn, events); err != nil {
		return nil, err
	}
	received := new(uint256.Int).Sub(pair.token.BalanceOf(pair.addr), tokenReserve)
	baseOut := quoteOut(received, tokenReserve, baseReserve)
	if baseOut.IsZero() {
		return nil, engine.ErrInsufficientLiquidity
	}
	if err := pair.base.Move(pair.addr, seller, baseOut); err != nil {
		return nil, err
	}
	return baseOut, nil
}

// quoteOut prices an exact-in swap on x*y=k reserves: out = outReserve*in/(inReserve+in)
func quoteOut(amountIn, inReserve, outReserve *uint256.Int) *uint256.Int {
	numerator := new(uint256.Int).Mul(outReserve, amountIn)
	denominator := new(uint256.Int).Add(inReserve, amountIn)
	return numerator.Div(numerator, denominator)
}
