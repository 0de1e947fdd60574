package sign

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"gitlab.com/przworld-exchange/economy_core/model"
)

// Minter creates voucher objects and signs them with the authorized issuer
// key, to be redeemed later against the NFT collection.
type Minter struct {
	key    *ecdsa.PrivateKey
	domain Domain
}

// NewMinter constructor
func NewMinter(key *ecdsa.PrivateKey, domain Domain) *Minter {
	return &Minter{key: key, domain: domain}
}

// Address returns the signer account of this minter
func (minter *Minter) Address() common.Address {
	return crypto.PubkeyToAddress(minter.key.PublicKey)
}

// CreateVoucher builds and signs a purchase authorization for one token id
func (minter *Minter) CreateVoucher(tokenID uint64, uri string, stableCoin common.Address, minStableCoinPrice *uint256.Int, tokenAddress common.Address, minTokenPrice *uint256.Int) (model.Voucher, error) {
	voucher := model.Voucher{
		TokenID:            tokenID,
		URI:                uri,
		StableCoinAddress:  stableCoin,
		MinStableCoinPrice: minStableCoinPrice.Clone(),
		TokenAddress:       tokenAddress,
		MinTokenPrice:      minTokenPrice.Clone(),
	}
	digest := VoucherDigest(minter.domain, voucher)
	signature, err := crypto.Sign(digest.Bytes(), minter.key)
	if err != nil {
		return model.Voucher{}, err
	}
	signature[crypto.RecoveryIDOffset] += 27
	voucher.Signature = signature
	return voucher, nil
}
