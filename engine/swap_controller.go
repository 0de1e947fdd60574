package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gitlab.com/przworld-exchange/economy_core/model"
)

// Pool is the external constant-product exchange capability consumed by the
// swap controller. Calls are synchronous; a failure aborts the enclosing
// transfer, which the service layer rolls back as a whole.
type Pool interface {
	Address() common.Address
	// SwapTokensForBase converts `amount` tokens held by `from` into base
	// currency credited back to `from`, returning the proceeds.
	SwapTokensForBase(from common.Address, amount *uint256.Int, events *[]model.Event) (*uint256.Int, error)
	// AddLiquidity supplies a token/base pair from `from` into the pool.
	AddLiquidity(from common.Address, tokenAmount, baseAmount *uint256.Int, events *[]model.Event) error
}

// maybeSwapAndLiquify converts the accumulated liquidity-fee balance once it
// crosses the configured threshold: half is swapped for base currency and
// the other half is paired with the proceeds and supplied as liquidity.
//
// The inSwap flag guards against re-entrancy: transfers performed by the
// pool while the swap is in progress are exempted and can never trigger a
// nested swap. Buys (transfers originating from the pair) never trigger
// either, so the pool's own outgoing transfers stay cheap.
func (token *Token) maybeSwapAndLiquify(from common.Address, events *[]model.Event) error {
	if token.pool == nil || token.inSwap || from == token.pool.Address() {
		return nil
	}
	accumulated := token.ledger.BalanceOf(token.addr)
	if accumulated.Lt(token.swapThreshold) {
		return nil
	}

	token.inSwap = true
	defer func() { token.inSwap = false }()

	half := new(uint256.Int).Div(accumulated, uint256.NewInt(2))
	otherHalf := new(uint256.Int).Sub(accumulated, half)

	baseOut, err := token.pool.SwapTokensForBase(token.addr, half, events)
	if err != nil {
		return err
	}
	if err := token.pool.AddLiquidity(token.addr, otherHalf, baseOut, events); err != nil {
		return err
	}
	*events = append(*events, model.Event{
		Type:   model.EventType_SwapAndLiquify,
		Asset:  token.addr,
		From:   token.addr,
		To:     token.pool.Address(),
		Amount: accumulated,
	})
	return nil
}
