package engine

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	accountA = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	accountB = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	accountC = common.HexToAddress("0x00000000000000000000000000000000000000c3")
)

func TestLedgerMintAndMove(t *testing.T) {
	Convey("Given an empty ledger", t, func() {
		ledger := NewLedger()
		So(ledger.TotalSupply().Uint64(), ShouldEqual, 0)

		Convey("Minting should grow the balance and the supply together", func() {
			ledger.Mint(accountA, uint256.NewInt(1000))
			So(ledger.BalanceOf(accountA).Uint64(), ShouldEqual, 1000)
			So(ledger.TotalSupply().Uint64(), ShouldEqual, 1000)
		})

		Convey("Moving should conserve the supply", func() {
			ledger.Mint(accountA, uint256.NewInt(1000))
			err := ledger.Move(accountA, accountB, uint256.NewInt(400))
			So(err, ShouldBeNil)
			So(ledger.BalanceOf(accountA).Uint64(), ShouldEqual, 600)
			So(ledger.BalanceOf(accountB).Uint64(), ShouldEqual, 400)
			So(ledger.TotalSupply().Uint64(), ShouldEqual, 1000)
		})

		Convey("Moving more than the balance should fail without side effects", func() {
			ledger.Mint(accountA, uint256.NewInt(100))
			err := ledger.Move(accountA, accountB, uint256.NewInt(101))
			So(err, ShouldEqual, ErrInsufficientBalance)
			So(ledger.BalanceOf(accountA).Uint64(), ShouldEqual, 100)
			So(ledger.BalanceOf(accountB).Uint64(), ShouldEqual, 0)
		})

		Convey("Burning should shrink the balance and the supply together", func() {
			ledger.Mint(accountA, uint256.NewInt(1000))
			err := ledger.Burn(accountA, uint256.NewInt(300))
			So(err, ShouldBeNil)
			So(ledger.BalanceOf(accountA).Uint64(), ShouldEqual, 700)
			So(ledger.TotalSupply().Uint64(), ShouldEqual, 700)
		})
	})
}

func TestLedgerAllowances(t *testing.T) {
	Convey("Given a funded ledger", t, func() {
		ledger := NewLedger()
		ledger.Mint(accountA, uint256.NewInt(1000))

		Convey("An unset allowance should be zero", func() {
			So(ledger.Allowance(accountA, accountB).Uint64(), ShouldEqual, 0)
		})

		Convey("Approve should replace the allowance, not add to it", func() {
			ledger.Approve(accountA, accountB, uint256.NewInt(500))
			ledger.Approve(accountA, accountB, uint256.NewInt(200))
			So(ledger.Allowance(accountA, accountB).Uint64(), ShouldEqual, 200)
		})

		Convey("Spending should consume the allowance", func() {
			ledger.Approve(accountA, accountB, uint256.NewInt(500))
			err := ledger.SpendAllowance(accountA, accountB, uint256.NewInt(300))
			So(err, ShouldBeNil)
			So(ledger.Allowance(accountA, accountB).Uint64(), ShouldEqual, 200)
		})

		Convey("Spending above the allowance should fail", func() {
			ledger.Approve(accountA, accountB, uint256.NewInt(100))
			err := ledger.SpendAllowance(accountA, accountB, uint256.NewInt(101))
			So(err, ShouldEqual, ErrInsufficientAllowance)
			So(ledger.Allowance(accountA, accountB).Uint64(), ShouldEqual, 100)
		})

		Convey("Spending zero should succeed even when the owner never approved anyone", func() {
			So(func() {
				So(ledger.SpendAllowance(accountA, accountB, uint256.NewInt(0)), ShouldBeNil)
			}, ShouldNotPanic)
			So(ledger.Allowance(accountA, accountB).Uint64(), ShouldEqual, 0)
		})
	})
}

func TestLedgerClone(t *testing.T) {
	Convey("Given a populated ledger", t, func() {
		ledger := NewLedger()
		ledger.Mint(accountA, uint256.NewInt(1000))
		ledger.Approve(accountA, accountB, uint256.NewInt(50))

		Convey("A clone should not observe later mutations of the original", func() {
			clone := ledger.Clone()
			So(ledger.Move(accountA, accountC, uint256.NewInt(999)), ShouldBeNil)
			So(ledger.Burn(accountC, uint256.NewInt(999)), ShouldBeNil)

			So(clone.BalanceOf(accountA).Uint64(), ShouldEqual, 1000)
			So(clone.TotalSupply().Uint64(), ShouldEqual, 1000)
			So(clone.Allowance(accountA, accountB).Uint64(), ShouldEqual, 50)
		})
	})
}
