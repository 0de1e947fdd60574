package pool

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	. "github.com/smartystreets/goconvey/convey"
	"gitlab.com/przworld-exchange/economy_core/engine"
	"gitlab.com/przworld-exchange/economy_core/model"
)

var (
	pairAddr   = common.HexToAddress("0x0000000000000000000000000000000000000077")
	traderAddr = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	supplyAddr = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

// plainToken adapts a bare ledger to the TokenMover interface, so pricing
// can be tested without transfer tax in the way
type plainToken struct {
	addr   common.Address
	ledger *engine.Ledger
}

func (token *plainToken) Address() common.Address {
	return token.addr
}

func (token *plainToken) BalanceOf(account common.Address) *uint256.Int {
	return token.ledger.BalanceOf(account)
}

func (token *plainToken) Transfer(from, to common.Address, amount *uint256.Int, events *[]model.Event) error {
	return token.ledger.Move(from, to, amount)
}

func newTestPair(tokenReserve, baseReserve uint64) (*Pair, *plainToken, *engine.Ledger) {
	token := &plainToken{
		addr:   common.HexToAddress("0x0000000000000000000000000000000000000011"),
		ledger: engine.NewLedger(),
	}
	base := engine.NewLedger()
	pair := NewPair(pairAddr, token, base)

	token.ledger.Mint(supplyAddr, uint256.NewInt(tokenReserve))
	base.Mint(supplyAddr, uint256.NewInt(baseReserve))
	events := make([]model.Event, 0, 2)
	if err := pair.AddLiquidity(supplyAddr, uint256.NewInt(tokenReserve), uint256.NewInt(baseReserve), &events); err != nil {
		panic(err)
	}
	return pair, token, base
}

func TestPairPricing(t *testing.T) {
	Convey("Given a pair with 9000 token / 1000 base reserves", t, func() {
		pair, token, base := newTestPair(9000, 1000)
		events := make([]model.Event, 0, 8)

		tokenReserve, baseReserve := pair.Reserves()
		So(tokenReserve.Uint64(), ShouldEqual, 9000)
		So(baseReserve.Uint64(), ShouldEqual, 1000)

		Convey("Selling tokens should pay out at the constant-product price", func() {
			token.ledger.Mint(traderAddr, uint256.NewInt(1000))
			baseOut, err := pair.SwapTokensForBase(traderAddr, uint256.NewInt(1000), &events)
			So(err, ShouldBeNil)
			// 1000*1000/(9000+1000)
			So(baseOut.Uint64(), ShouldEqual, 100)
			So(base.BalanceOf(traderAddr).Uint64(), ShouldEqual, 100)

			Convey("And the reserves should move to the new point on the curve", func() {
				tokenReserve, baseReserve := pair.Reserves()
				So(tokenReserve.Uint64(), ShouldEqual, 10000)
				So(baseReserve.Uint64(), ShouldEqual, 900)
			})
		})

		Convey("Buying tokens should price the base leg the same way", func() {
			base.Mint(traderAddr, uint256.NewInt(1000))
			tokenOut, err := pair.Buy(traderAddr, uint256.NewInt(1000), &events)
			So(err, ShouldBeNil)
			// 9000*1000/(1000+1000)
			So(tokenOut.Uint64(), ShouldEqual, 4500)
			So(token.BalanceOf(traderAddr).Uint64(), ShouldEqual, 4500)
		})

		Convey("Sell should mirror SwapTokensForBase for a plain token", func() {
			token.ledger.Mint(traderAddr, uint256.NewInt(500))
			baseOut, err := pair.Sell(traderAddr, uint256.NewInt(500), &events)
			So(err, ShouldBeNil)
			// 1000*500/(9000+500)
			So(baseOut.Uint64(), ShouldEqual, 52)
		})

		Convey("A swap too small to buy one base unit should be rejected", func() {
			token.ledger.Mint(traderAddr, uint256.NewInt(1))
			_, err := pair.SwapTokensForBase(traderAddr, uint256.NewInt(1), &events)
			So(err, ShouldEqual, engine.ErrInsufficientLiquidity)
		})
	})
}

func TestPairWithoutLiquidity(t *testing.T) {
	Convey("Given a pair with empty reserves", t, func() {
		token := &plainToken{
			addr:   common.HexToAddress("0x0000000000000000000000000000000000000011"),
			ledger: engine.NewLedger(),
		}
		pair := NewPair(pairAddr, token, engine.NewLedger())
		events := make([]model.Event, 0, 2)

		token.ledger.Mint(traderAddr, uint256.NewInt(100))

		_, err := pair.SwapTokensForBase(traderAddr, uint256.NewInt(100), &events)
		So(err, ShouldEqual, engine.ErrInsufficientLiquidity)

		_, err = pair.Buy(traderAddr, uint256.NewInt(100), &events)
		So(err, ShouldEqual, engine.ErrInsufficientLiquidity)

		_, err = pair.Sell(traderAddr, uint256.NewInt(100), &events)
		So(err, ShouldEqual, engine.ErrInsufficientLiquidity)
	})
}
