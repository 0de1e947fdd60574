package cmd

import (
	"github.com/rs/zerolog/log"

	"gitlab.com/przworld-exchange/economy_core/config"
	"gitlab.com/przworld-exchange/economy_core/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the economy service and listen for api requests",
	Long:  `Deploy a fresh economy state from the configuration and expose the token, market, nft and admin operations over a REST api`,
	Run: func(cmd *cobra.Command, args []string) {
		// load server configuration from server
		log.Debug().Msg("Loading server configuration")
		if viper.ConfigFileUsed() != "" {
			log.Debug().Str("section", "init").Str("path", viper.ConfigFileUsed()).Msg("Configuration file loaded")
		}
		cfg := config.LoadConfig(viper.GetViper())

		// start a new server
		log.Debug().Str("section", "init").Msg("Starting new server instance")
		srv := server.NewServer(cfg)
		// listen for new messages
		log.Info().Str("section", "init").Msg("Listening for incoming requests")
		srv.Listen()
	},
}
