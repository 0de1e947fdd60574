package model

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestFeeRates(t *testing.T) {
	t.Run("default launch rates total 13 percent", func(t *testing.T) {
		rates := DefaultFeeRates()
		require.Equal(t, uint64(1300), rates.Total())
		require.True(t, rates.Valid())
	})

	t.Run("rates at the cap are valid", func(t *testing.T) {
		rates := FeeRates{Liquidity: 2500}
		require.True(t, rates.Valid())
	})

	t.Run("rates above the cap are rejected", func(t *testing.T) {
		rates := FeeRates{Liquidity: 2000, Burn: 501}
		require.Equal(t, uint64(2501), rates.Total())
		require.False(t, rates.Valid())
	})
}

func TestVoucherJSON(t *testing.T) {
	voucher := Voucher{
		TokenID:            42,
		URI:                "ipfs://collection/42.json",
		StableCoinAddress:  common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		MinStableCoinPrice: uint256.NewInt(100),
		TokenAddress:       common.HexToAddress("0x00000000000000000000000000000000000000bb"),
		MinTokenPrice:      uint256.NewInt(10000),
		Signature:          []byte{0x01, 0x02, 0x03},
	}

	t.Run("survives a json round trip", func(t *testing.T) {
		data, err := json.Marshal(voucher)
		require.NoError(t, err)

		var decoded Voucher
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, voucher.TokenID, decoded.TokenID)
		require.Equal(t, voucher.URI, decoded.URI)
		require.Equal(t, voucher.StableCoinAddress, decoded.StableCoinAddress)
		require.Equal(t, voucher.MinStableCoinPrice.Dec(), decoded.MinStableCoinPrice.Dec())
		require.Equal(t, voucher.TokenAddress, decoded.TokenAddress)
		require.Equal(t, voucher.MinTokenPrice.Dec(), decoded.MinTokenPrice.Dec())
		require.Equal(t, voucher.Signature, decoded.Signature)
	})

	t.Run("prices are encoded as decimal strings", func(t *testing.T) {
		data, err := json.Marshal(voucher)
		require.NoError(t, err)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Equal(t, "100", raw["minStableCoinPrice"])
		require.Equal(t, "10000", raw["minTokenPrice"])
		require.Equal(t, "0x010203", raw["signature"])
	})

	t.Run("rejects a malformed signature", func(t *testing.T) {
		var decoded Voucher
		err := decoded.UnmarshalJSON([]byte(`{
			"tokenId": 1,
			"uri": "ipfs://x",
			"stableCoinAddress": "0x00000000000000000000000000000000000000aa",
			"minStableCoinPrice": "100",
			"tokenAddress": "0x00000000000000000000000000000000000000bb",
			"minTokenPrice": "10000",
			"signature": "not-hex"
		}`))
		require.Error(t, err)
	})

	t.Run("rejects a non numeric price", func(t *testing.T) {
		var decoded Voucher
		err := decoded.UnmarshalJSON([]byte(`{
			"tokenId": 1,
			"uri": "ipfs://x",
			"stableCoinAddress": "0x00000000000000000000000000000000000000aa",
			"minStableCoinPrice": "a lot",
			"tokenAddress": "0x00000000000000000000000000000000000000bb",
			"minTokenPrice": "10000",
			"signature": "0x0102"
		}`))
		require.Error(t, err)
	})
}

func TestEventJSON(t *testing.T) {
	asset := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	from := common.HexToAddress("0x0000000000000000000000000000000000000001")
	to := common.HexToAddress("0x0000000000000000000000000000000000000002")

	t.Run("fee events carry their category", func(t *testing.T) {
		event := NewFeeEvent(asset, from, to, uint256.NewInt(400), "liquidity")
		data, err := json.Marshal(event)
		require.NoError(t, err)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Equal(t, "fee", raw["type"])
		require.Equal(t, "liquidity", raw["category"])
		require.Equal(t, "400", raw["amount"])
	})

	t.Run("nft events carry the token id and no amount", func(t *testing.T) {
		event := NewNftEvent(asset, from, to, 7)
		data, err := json.Marshal(event)
		require.NoError(t, err)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Equal(t, "nft_transfer", raw["type"])
		require.Equal(t, float64(7), raw["token_id"])
		require.NotContains(t, raw, "amount")
	})

	t.Run("constructor clones the amount", func(t *testing.T) {
		amount := uint256.NewInt(500)
		event := NewEvent(EventType_Transfer, asset, from, to, amount)
		amount.Clear()
		require.Equal(t, "500", event.Amount.Dec())
	})
}
