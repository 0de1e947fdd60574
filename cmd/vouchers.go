package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/przworld-exchange/economy_core/config"
	"gitlab.com/przworld-exchange/economy_core/conv"
	"gitlab.com/przworld-exchange/economy_core/model"
	"gitlab.com/przworld-exchange/economy_core/sign"
)

var (
	voucherKey         string
	voucherCount       uint64
	voucherStartID     uint64
	voucherURI         string
	voucherStablePrice string
	voucherTokenPrice  string
	voucherOut         string
)

func init() {
	vouchersCmd.Flags().StringVar(&voucherKey, "key", "", "hex encoded issuer private key")
	vouchersCmd.Flags().Uint64Var(&voucherCount, "count", 5000, "number of vouchers to generate")
	vouchersCmd.Flags().Uint64Var(&voucherStartID, "start-id", 1, "first token id")
	vouchersCmd.Flags().StringVar(&voucherURI, "uri", "ipfs://collection/%d.json", "metadata uri pattern, %d is replaced with the token id")
	vouchersCmd.Flags().StringVar(&voucherStablePrice, "stable-price", "100", "minimum stable coin price per voucher")
	vouchersCmd.Flags().StringVar(&voucherTokenPrice, "token-price", "1000", "minimum token price per voucher")
	vouchersCmd.Flags().StringVar(&voucherOut, "out", "vouchers.json", "output file")
	rootCmd.AddCommand(vouchersCmd)
}

var vouchersCmd = &cobra.Command{
	Use:   "vouchers",
	Short: "Generate a batch of signed nft vouchers",
	Long:  `Sign a sequence of purchase authorizations with the issuer key and write them to a json file for off-band distribution`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig(viper.GetViper())

		key, err := crypto.HexToECDSA(voucherKey)
		if err != nil {
			log.Fatal().Err(err).Str("section", "vouchers").Msg("Invalid issuer private key")
		}
		if !common.IsHexAddress(cfg.Nft.Address) {
			log.Fatal().Str("section", "vouchers").Str("address", cfg.Nft.Address).Msg("Invalid nft address")
		}
		nftAddr := common.HexToAddress(cfg.Nft.Address)
		stableAddr := common.HexToAddress(cfg.Stable.Address)
		tokenAddr := common.HexToAddress(cfg.Token.Address)

		stablePrice, err := conv.ToUnits(voucherStablePrice, conv.TokenPrecision)
		if err != nil {
			log.Fatal().Err(err).Str("section", "vouchers").Msg("Invalid stable coin price")
		}
		tokenPrice, err := conv.ToUnits(voucherTokenPrice, conv.TokenPrecision)
		if err != nil {
			log.Fatal().Err(err).Str("section", "vouchers").Msg("Invalid token price")
		}

		minter := sign.NewMinter(key, sign.NewDomain(cfg.Chain.ID, nftAddr))
		vouchers := make([]model.Voucher, 0, voucherCount)
		for tokenID := voucherStartID; tokenID < voucherStartID+voucherCount; tokenID++ {
			voucher, err := minter.CreateVoucher(tokenID, fmt.Sprintf(voucherURI, tokenID), stableAddr, stablePrice, tokenAddr, tokenPrice)
			if err != nil {
				log.Fatal().Err(err).Str("section", "vouchers").Uint64("token_id", tokenID).Msg("Unable to sign voucher")
			}
			vouchers = append(vouchers, voucher)
		}

		data, err := json.MarshalIndent(vouchers, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Str("section", "vouchers").Msg("Unable to encode vouchers")
		}
		if err := os.WriteFile(voucherOut, data, 0644); err != nil {
			log.Fatal().Err(err).Str("section", "vouchers").Msg("Unable to write output file")
		}
		log.Info().
			Str("section", "vouchers").
			Str("signer", minter.Address().Hex()).
			Uint64("count", voucherCount).
			Str("out", voucherOut).
			Msg("Voucher batch generated")
	},
}
