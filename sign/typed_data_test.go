package sign_test

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	. "github.com/smartystreets/goconvey/convey"
	"gitlab.com/przworld-exchange/economy_core/sign"
)

var verifyingContract = common.HexToAddress("0x0000000000000000000000000000000000000088")

func TestVoucherSigningRoundTrip(t *testing.T) {
	Convey("Given a minter with a fresh issuer key", t, func() {
		key, err := crypto.GenerateKey()
		So(err, ShouldBeNil)
		domain := sign.NewDomain(56, verifyingContract)
		minter := sign.NewMinter(key, domain)

		stableCoin := common.HexToAddress("0x0000000000000000000000000000000000000011")
		tokenAddr := common.HexToAddress("0x0000000000000000000000000000000000000022")

		voucher, err := minter.CreateVoucher(1, "ipfs://1.json", stableCoin, uint256.NewInt(100), tokenAddr, uint256.NewInt(1000))
		So(err, ShouldBeNil)

		Convey("The recovered signer should be the minter", func() {
			signer, err := sign.RecoverVoucherSigner(domain, voucher)
			So(err, ShouldBeNil)
			So(signer, ShouldEqual, minter.Address())
		})

		Convey("Tampering with any field should shift the recovered signer", func() {
			tampered := voucher
			tampered.TokenID = 2
			signer, err := sign.RecoverVoucherSigner(domain, tampered)
			So(err, ShouldBeNil)
			So(signer, ShouldNotEqual, minter.Address())

			tampered = voucher
			tampered.URI = "ipfs://2.json"
			signer, _ = sign.RecoverVoucherSigner(domain, tampered)
			So(signer, ShouldNotEqual, minter.Address())

			tampered = voucher
			tampered.MinStableCoinPrice = uint256.NewInt(1)
			signer, _ = sign.RecoverVoucherSigner(domain, tampered)
			So(signer, ShouldNotEqual, minter.Address())

			tampered = voucher
			tampered.MinTokenPrice = uint256.NewInt(1)
			signer, _ = sign.RecoverVoucherSigner(domain, tampered)
			So(signer, ShouldNotEqual, minter.Address())

			tampered = voucher
			tampered.StableCoinAddress = tokenAddr
			signer, _ = sign.RecoverVoucherSigner(domain, tampered)
			So(signer, ShouldNotEqual, minter.Address())

			tampered = voucher
			tampered.TokenAddress = stableCoin
			signer, _ = sign.RecoverVoucherSigner(domain, tampered)
			So(signer, ShouldNotEqual, minter.Address())
		})

		Convey("A voucher signed for one domain should not verify on another", func() {
			otherChain := sign.NewDomain(1, verifyingContract)
			signer, err := sign.RecoverVoucherSigner(otherChain, voucher)
			So(err, ShouldBeNil)
			So(signer, ShouldNotEqual, minter.Address())

			otherContract := sign.NewDomain(56, common.HexToAddress("0x00000000000000000000000000000000000000ff"))
			signer, _ = sign.RecoverVoucherSigner(otherContract, voucher)
			So(signer, ShouldNotEqual, minter.Address())
		})

		Convey("A truncated signature should be rejected outright", func() {
			truncated := voucher
			truncated.Signature = voucher.Signature[:10]
			_, err := sign.RecoverVoucherSigner(domain, truncated)
			So(err, ShouldNotBeNil)
		})

		Convey("Two issuer keys should never recover to the same account", func() {
			otherKey, err := crypto.GenerateKey()
			So(err, ShouldBeNil)
			otherMinter := sign.NewMinter(otherKey, domain)
			otherVoucher, err := otherMinter.CreateVoucher(1, "ipfs://1.json", stableCoin, uint256.NewInt(100), tokenAddr, uint256.NewInt(1000))
			So(err, ShouldBeNil)

			signer, err := sign.RecoverVoucherSigner(domain, otherVoucher)
			So(err, ShouldBeNil)
			So(signer, ShouldEqual, otherMinter.Address())
			So(signer, ShouldNotEqual, minter.Address())
		})
	})
}

func TestVoucherStructHashDeterminism(t *testing.T) {
	Convey("Hashing the same voucher twice should be stable", t, func() {
		voucher, _ := sign.NewMinter(mustKey(), sign.NewDomain(56, verifyingContract)).
			CreateVoucher(9, "ipfs://9.json", verifyingContract, uint256.NewInt(5), verifyingContract, uint256.NewInt(7))
		So(sign.VoucherStructHash(voucher), ShouldEqual, sign.VoucherStructHash(voucher))
	})
}

func mustKey() *ecdsa.PrivateKey {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return key
}
