package service

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	. "github.com/smartystreets/goconvey/convey"
	"gitlab.com/przworld-exchange/economy_core/config"
	"gitlab.com/przworld-exchange/economy_core/conv"
	"gitlab.com/przworld-exchange/economy_core/engine"
	"gitlab.com/przworld-exchange/economy_core/model"
	"gitlab.com/przworld-exchange/economy_core/sign"
)

const (
	testTokenAddr  = "0x0000000000000000000000000000000000000011"
	testStableAddr = "0x0000000000000000000000000000000000000012"
	testNftAddr    = "0x0000000000000000000000000000000000000088"
	testPairAddr   = "0x0000000000000000000000000000000000000077"
	testMarketing  = "0x0000000000000000000000000000000000000033"
	testSalary     = "0x0000000000000000000000000000000000000044"
	testRewards    = "0x0000000000000000000000000000000000000055"
	testRevenues   = "0x00000000000000000000000000000000000000ee"
	testDead       = "0x000000000000000000000000000000000000dEaD"
	testAlice      = "0x00000000000000000000000000000000000000aa"
	testBob        = "0x00000000000000000000000000000000000000bb"
)

func testConfig(owner common.Address) config.Config {
	var cfg config.Config
	cfg.Chain.ID = 56
	cfg.Token = config.TokenConfig{
		Address:          testTokenAddr,
		Owner:            owner.Hex(),
		MarketingWallet:  testMarketing,
		TeamSalaryWallet: testSalary,
		ReceiveRewards:   testRewards,
		DeadWallet:       testDead,
		InitialSupply:    "100000000",
		SwapTokensAt:     "200000",
		Fees:             model.DefaultFeeRates(),
	}
	cfg.Stable = config.StableConfig{
		Address:       testStableAddr,
		InitialSupply: "1000000",
	}
	cfg.Nft = config.NftConfig{
		Address:        testNftAddr,
		RevenuesWallet: testRevenues,
	}
	cfg.Pool = config.PoolConfig{
		Address:       testPairAddr,
		InitialTokens: "9000000",
		InitialBase:   "1000",
	}
	return cfg
}

func newTestService() (*Service, *ecdsa.PrivateKey, common.Address) {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	owner := crypto.PubkeyToAddress(key.PublicKey)
	service, err := NewService(testConfig(owner))
	if err != nil {
		panic(err)
	}
	return service, key, owner
}

func TestServiceDeployment(t *testing.T) {
	Convey("Given a freshly deployed economy", t, func() {
		service, _, owner := newTestService()

		Convey("The owner should hold the supply minus the seeded liquidity", func() {
			balance, err := service.BalanceOf(owner.Hex())
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "91000000")
			So(service.TotalSupply(), ShouldEqual, "100000000")
		})

		Convey("The pair should hold the seeded reserves", func() {
			balance, err := service.BalanceOf(testPairAddr)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "9000000")
		})

		Convey("Trading should start disabled", func() {
			So(service.IsTradingEnabled(), ShouldBeFalse)
		})

		Convey("An invalid address in the config should fail the deployment", func() {
			cfg := testConfig(owner)
			cfg.Token.Address = "not an address"
			_, err := NewService(cfg)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestServiceTransfers(t *testing.T) {
	Convey("Given a running economy with trading enabled", t, func() {
		service, _, owner := newTestService()
		So(service.EnableTrading(owner.Hex()), ShouldBeNil)

		_, err := service.Transfer(owner.Hex(), testAlice, "100000")
		So(err, ShouldBeNil)

		Convey("A taxed transfer should deliver the net amount", func() {
			_, err := service.Transfer(testAlice, testBob, "10000")
			So(err, ShouldBeNil)

			balance, err := service.BalanceOf(testBob)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "8700")
		})

		Convey("A failed transfer should leave every balance untouched", func() {
			_, err := service.Transfer(testAlice, testBob, "100001")
			So(err, ShouldNotBeNil)

			balance, err := service.BalanceOf(testAlice)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "100000")
			balance, err = service.BalanceOf(testBob)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "0")
		})

		Convey("An operation that panics mid-flight should roll back like an error", func() {
			units, err := conv.ToUnits("5000", conv.TokenPrecision)
			So(err, ShouldBeNil)

			var events []model.Event
			var panickedErr error
			So(func() {
				events, panickedErr = service.execute(func(state *engine.State, events *[]model.Event) error {
					So(state.Token.Transfer(common.HexToAddress(testAlice), common.HexToAddress(testBob), units, events), ShouldBeNil)
					panic("mid-operation failure")
				})
			}, ShouldNotPanic)
			So(events, ShouldBeNil)
			So(panickedErr, ShouldNotBeNil)

			balance, err := service.BalanceOf(testAlice)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "100000")
			balance, err = service.BalanceOf(testBob)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "0")
		})
	})
}

func TestServiceMarket(t *testing.T) {
	Convey("Given a seller with tokens and trading enabled", t, func() {
		service, _, owner := newTestService()
		So(service.EnableTrading(owner.Hex()), ShouldBeNil)
		_, err := service.Transfer(owner.Hex(), testAlice, "1000000")
		So(err, ShouldBeNil)

		Convey("Selling tokens should pay out base currency", func() {
			_, err := service.Sell(testAlice, "100000")
			So(err, ShouldBeNil)

			Convey("And the proceeds should buy tokens back", func() {
				_, err := service.Buy(testAlice, "1")
				So(err, ShouldBeNil)
			})
		})

		Convey("Selling without a balance should fail", func() {
			_, err := service.Sell(testBob, "100000")
			So(err, ShouldNotBeNil)
		})

		Convey("Buying without base currency should fail", func() {
			_, err := service.Buy(testBob, "1")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestServiceRedemption(t *testing.T) {
	Convey("Given a redeemer holding a signed voucher and both approvals", t, func() {
		service, key, owner := newTestService()
		So(service.EnableTrading(owner.Hex()), ShouldBeNil)

		_, err := service.Transfer(owner.Hex(), testAlice, "50000")
		So(err, ShouldBeNil)
		_, err = service.TransferStable(owner.Hex(), testAlice, "500")
		So(err, ShouldBeNil)
		_, err = service.Approve(testAlice, testNftAddr, "10000")
		So(err, ShouldBeNil)
		_, err = service.ApproveStable(testAlice, testNftAddr, "100")
		So(err, ShouldBeNil)

		minter := sign.NewMinter(key, sign.NewDomain(56, common.HexToAddress(testNftAddr)))
		stablePrice, _ := conv.ToUnits("100", conv.TokenPrecision)
		tokenPrice, _ := conv.ToUnits("10000", conv.TokenPrecision)
		voucher, err := minter.CreateVoucher(1, "ipfs://1.json",
			common.HexToAddress(testStableAddr), stablePrice,
			common.HexToAddress(testTokenAddr), tokenPrice)
		So(err, ShouldBeNil)

		Convey("Redemption should mint the nft and settle the payments", func() {
			_, err := service.Redeem(testAlice, voucher)
			So(err, ShouldBeNil)

			So(service.NftTotalSupply(), ShouldEqual, 1)
			nftOwner, err := service.NftOwnerOf(1)
			So(err, ShouldBeNil)
			So(nftOwner, ShouldEqual, common.HexToAddress(testAlice).Hex())

			balance, err := service.StableBalanceOf(testRevenues)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "100")
		})

		Convey("A replayed voucher should be rejected with no state change", func() {
			_, err := service.Redeem(testAlice, voucher)
			So(err, ShouldBeNil)
			supply := service.TotalSupply()

			_, err = service.Redeem(testAlice, voucher)
			So(err, ShouldNotBeNil)
			So(service.NftTotalSupply(), ShouldEqual, 1)
			So(service.TotalSupply(), ShouldEqual, supply)
		})

		Convey("A redemption failing on the payment leg should roll back the mint", func() {
			// drop the stable coin approval so the payment fails after
			// the nft ownership changes
			_, err := service.ApproveStable(testAlice, testNftAddr, "0")
			So(err, ShouldBeNil)

			_, err = service.Redeem(testAlice, voucher)
			So(err, ShouldNotBeNil)
			So(service.NftTotalSupply(), ShouldEqual, 0)

			balance, err := service.BalanceOf(testAlice)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "50000")
		})
	})
}

func TestServiceRewardLifecycle(t *testing.T) {
	Convey("Given a holder with a redeemed nft and the collection as distributor", t, func() {
		service, key, owner := newTestService()
		So(service.EnableTrading(owner.Hex()), ShouldBeNil)

		_, err := service.Transfer(owner.Hex(), testAlice, "50000")
		So(err, ShouldBeNil)
		_, err = service.TransferStable(owner.Hex(), testAlice, "500")
		So(err, ShouldBeNil)
		_, err = service.Approve(testAlice, testNftAddr, "10000")
		So(err, ShouldBeNil)
		_, err = service.ApproveStable(testAlice, testNftAddr, "100")
		So(err, ShouldBeNil)

		minter := sign.NewMinter(key, sign.NewDomain(56, common.HexToAddress(testNftAddr)))
		stablePrice, _ := conv.ToUnits("100", conv.TokenPrecision)
		tokenPrice, _ := conv.ToUnits("10000", conv.TokenPrecision)
		voucher, err := minter.CreateVoucher(1, "ipfs://1.json",
			common.HexToAddress(testStableAddr), stablePrice,
			common.HexToAddress(testTokenAddr), tokenPrice)
		So(err, ShouldBeNil)
		_, err = service.Redeem(testAlice, voucher)
		So(err, ShouldBeNil)

		So(service.ChangeRewardDistributor(owner.Hex(), testNftAddr), ShouldBeNil)

		Convey("Reward fees should accrue to the sole nft holder", func() {
			_, err := service.Transfer(testAlice, testBob, "10000")
			So(err, ShouldBeNil)

			withdrawable, err := service.RewardBalanceOf(testAlice)
			So(err, ShouldBeNil)
			So(withdrawable, ShouldEqual, "300")

			Convey("Withdrawing should move the amount and zero the claim", func() {
				before, err := service.BalanceOf(testAlice)
				So(err, ShouldBeNil)
				So(before, ShouldEqual, "30000")

				_, err = service.WithdrawRewards(testAlice)
				So(err, ShouldBeNil)

				after, err := service.BalanceOf(testAlice)
				So(err, ShouldBeNil)
				So(after, ShouldEqual, "30300")

				withdrawable, err := service.RewardBalanceOf(testAlice)
				So(err, ShouldBeNil)
				So(withdrawable, ShouldEqual, "0")

				_, err = service.WithdrawRewards(testAlice)
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestServiceAdmin(t *testing.T) {
	Convey("Given a running economy", t, func() {
		service, _, owner := newTestService()

		Convey("Privileged operations should reject non-owners", func() {
			So(service.EnableTrading(testAlice), ShouldNotBeNil)
			So(service.SetFeeRates(testAlice, model.FeeRates{}), ShouldNotBeNil)
			So(service.SetExempt(testAlice, testBob, true), ShouldNotBeNil)
		})

		Convey("A fee update above the cap should be rejected", func() {
			err := service.SetFeeRates(owner.Hex(), model.FeeRates{Liquidity: 2000, Burn: 501})
			So(err, ShouldNotBeNil)
			So(service.GetFeeRates(), ShouldResemble, model.DefaultFeeRates())
		})

		Convey("Ownership transfer should move the remaining balance", func() {
			_, err := service.TransferOwnership(owner.Hex(), testBob)
			So(err, ShouldBeNil)

			balance, err := service.BalanceOf(testBob)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "91000000")
			balance, err = service.BalanceOf(owner.Hex())
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, "0")
		})
	})
}
