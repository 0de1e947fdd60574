// Package sign implements the typed-data hashing and signature scheme used
// by the lazy-minting vouchers. Hashing is a pure function over a canonical
// encoding of the voucher fields plus a domain separator, kept free of any
// state so it is trivially unit-testable.
package sign

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gitlab.com/przworld-exchange/economy_core/model"
)

// These constants must match the ones used by the voucher issuer tooling.
const (
	SigningDomainName    = "Nft-Voucher"
	SigningDomainVersion = "1"
)

var (
	domainTypeHash = crypto.Keccak256Hash(
		[]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"),
	)
	voucherTypeHash = crypto.Keccak256Hash(
		[]byte("NFTVoucher(uint256 tokenId,address stableCoinAddress,uint256 minStableCoinPrice,address tokenAddress,uint256 minTokenPrice,string uri)"),
	)
)

// Domain separates voucher signatures between deployments: the same voucher
// signed for one chain or verifying contract is invalid on any other.
type Domain struct {
	Name              string
	Version           string
	ChainID           uint64
	VerifyingContract common.Address
}

// NewDomain builds the standard voucher signing domain for a deployment
func NewDomain(chainID uint64, verifyingContract common.Address) Domain {
	return Domain{
		Name:              SigningDomainName,
		Version:           SigningDomainVersion,
		ChainID:           chainID,
		VerifyingContract: verifyingContract,
	}
}

// Separator returns the domain separator hash
func (domain Domain) Separator() common.Hash {
	chainID := uint256.NewInt(domain.ChainID).Bytes32()
	return crypto.Keccak256Hash(
		domainTypeHash.Bytes(),
		crypto.Keccak256([]byte(domain.Name)),
		crypto.Keccak256([]byte(domain.Version)),
		chainID[:],
		common.LeftPadBytes(domain.VerifyingContract.Bytes(), 32),
	)
}

// VoucherStructHash hashes every voucher field except the signature itself
func VoucherStructHash(voucher model.Voucher) common.Hash {
	tokenID := uint256.NewInt(voucher.TokenID).Bytes32()
	minStable := voucher.MinStableCoinPrice.Bytes32()
	minToken := voucher.MinTokenPrice.Bytes32()
	return crypto.Keccak256Hash(
		voucherTypeHash.Bytes(),
		tokenID[:],
		common.LeftPadBytes(voucher.StableCoinAddress.Bytes(), 32),
		minStable[:],
		common.LeftPadBytes(voucher.TokenAddress.Bytes(), 32),
		minToken[:],
		crypto.Keccak256([]byte(voucher.URI)),
	)
}

// VoucherDigest returns the final signable digest for a voucher under the
// given domain
func VoucherDigest(domain Domain, voucher model.Voucher) common.Hash {
	return crypto.Keccak256Hash(
		[]byte{0x19, 0x01},
		domain.Separator().Bytes(),
		VoucherStructHash(voucher).Bytes(),
	)
}

// RecoverVoucherSigner recovers the account that signed the voucher. Any
// field mutated after signing shifts the digest and recovers a different
// (effectively random) account, which the caller then rejects as
// unauthorized.
func RecoverVoucherSigner(domain Domain, voucher model.Voucher) (common.Address, error) {
	if len(voucher.Signature) != crypto.SignatureLength {
		return common.Address{}, errors.Errorf("invalid signature length %d", len(voucher.Signature))
	}
	signature := make([]byte, crypto.SignatureLength)
	copy(signature, voucher.Signature)
	if signature[crypto.RecoveryIDOffset] >= 27 {
		signature[crypto.RecoveryIDOffset] -= 27
	}
	digest := VoucherDigest(domain, voucher)
	pubkey, err := crypto.SigToPub(digest.Bytes(), signature)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pubkey), nil
}
