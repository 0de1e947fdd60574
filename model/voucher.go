package model

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Voucher is a signed authorization for the lazy mint of a single NFT.
// The issuer signs every field except Signature off-band; the buyer later
// submits the voucher to redeem the token on-chain. A voucher is consumed
// the moment its token id is minted and can never be replayed.
type Voucher struct {
	TokenID            uint64         `json:"tokenId"`
	URI                string         `json:"uri"`
	StableCoinAddress  common.Address `json:"stableCoinAddress"`
	MinStableCoinPrice *uint256.Int   `json:"minStableCoinPrice"`
	TokenAddress       common.Address `json:"tokenAddress"`
	MinTokenPrice      *uint256.Int   `json:"minTokenPrice"`
	Signature          []byte         `json:"signature"`
}

// MarshalJSON convert the voucher into a json string
func (v Voucher) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"tokenId":            v.TokenID,
		"uri":                v.URI,
		"stableCoinAddress":  v.StableCoinAddress.Hex(),
		"minStableCoinPrice": v.MinStableCoinPrice.Dec(),
		"tokenAddress":       v.TokenAddress.Hex(),
		"minTokenPrice":      v.MinTokenPrice.Dec(),
		"signature":          hexutil.Encode(v.Signature),
	})
}

// UnmarshalJSON parse a voucher from its json form
func (v *Voucher) UnmarshalJSON(data []byte) error {
	var raw struct {
		TokenID            uint64 `json:"tokenId"`
		URI                string `json:"uri"`
		StableCoinAddress  string `json:"stableCoinAddress"`
		MinStableCoinPrice string `json:"minStableCoinPrice"`
		TokenAddress       string `json:"tokenAddress"`
		MinTokenPrice      string `json:"minTokenPrice"`
		Signature          string `json:"signature"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	minStable, err := uint256.FromDecimal(raw.MinStableCoinPrice)
	if err != nil {
		return err
	}
	minToken, err := uint256.FromDecimal(raw.MinTokenPrice)
	if err != nil {
		return err
	}
	signature, err := hexutil.Decode(raw.Signature)
	if err != nil {
		return err
	}
	v.TokenID = raw.TokenID
	v.URI = raw.URI
	v.StableCoinAddress = common.HexToAddress(raw.StableCoinAddress)
	v.MinStableCoinPrice = minStable
	v.TokenAddress = common.HexToAddress(raw.TokenAddress)
	v.MinTokenPrice = minToken
	v.Signature = signature
	return nil
}
