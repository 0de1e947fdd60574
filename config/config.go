package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gitlab.com/przworld-exchange/economy_core/model"
	"gitlab.com/przworld-exchange/economy_core/monitor"
)

// Config structure
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Chain   ChainConfig    `mapstructure:"chain"`
	Token   TokenConfig    `mapstructure:"token"`
	Stable  StableConfig   `mapstructure:"stable_coin"`
	Nft     NftConfig      `mapstructure:"nft"`
	Pool    PoolConfig     `mapstructure:"pool"`
	Monitor monitor.Config `mapstructure:"monitoring"`
}

// ServerConfig structure
type ServerConfig struct {
	API APIConfig `mapstructure:"api"`
}

// APIConfig structure
type APIConfig struct {
	Port      int    `mapstructure:"port"`
	KeepAlive bool   `mapstructure:"keep_alive"`
	Domain    string `mapstructure:"domain"`
	AdminKey  string `mapstructure:"admin_key"`
}

// ChainConfig identifies the deployment for voucher signing purposes
type ChainConfig struct {
	ID uint64 `mapstructure:"id"`
}

// TokenConfig holds the deployment parameters of the taxed token
type TokenConfig struct {
	Address          string         `mapstructure:"address"`
	Owner            string         `mapstructure:"owner"`
	MarketingWallet  string         `mapstructure:"marketing_wallet"`
	TeamSalaryWallet string         `mapstructure:"team_salary_wallet"`
	ReceiveRewards   string         `mapstructure:"receive_rewards"`
	DeadWallet       string         `mapstructure:"dead_wallet"`
	InitialSupply    string         `mapstructure:"initial_supply"`
	SwapTokensAt     string         `mapstructure:"swap_tokens_at_amount"`
	Fees             model.FeeRates `mapstructure:"fees"`
}

// StableConfig holds the deployment parameters of the stable coin leg
type StableConfig struct {
	Address       string `mapstructure:"address"`
	InitialSupply string `mapstructure:"initial_supply"`
}

// NftConfig holds the deployment parameters of the NFT collection
type NftConfig struct {
	Address        string `mapstructure:"address"`
	RevenuesWallet string `mapstructure:"revenues_wallet"`
}

// PoolConfig holds the pair account of the external exchange pool and the
// initial reserves supplied from the owner at startup
type PoolConfig struct {
	Address       string `mapstructure:"address"`
	InitialTokens string `mapstructure:"initial_tokens"`
	InitialBase   string `mapstructure:"initial_base"`
}

// LoadConfig Load server configuration from the yaml file
func LoadConfig(viperConf *viper.Viper) Config {
	var config Config
	if err := viperConf.Unmarshal(&config); err != nil {
		log.Fatal().Err(err).Msg("Unable to decode config into struct")
	}
	return config
}

// OpenConfig godoc
func OpenConfig(file string) {
	if file != "" {
		// Use config file from the flag.
		viper.SetConfigFile(file)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigName(".config")
	viper.AddConfigPath(".")                    // First try to load the config from the current directory
	viper.AddConfigPath("$HOME")                // Then try to load it from the HOME directory
	viper.AddConfigPath("/etc/economy_core/")   // As a last resort try to load it from /etc/
	viper.SetEnvPrefix("CFG")
	viper.AutomaticEnv()
	setDefaultVariables()

	err := viper.ReadInConfig() // Find and read the config file
	if err != nil {             // Handle errors reading the config file
		log.Fatal().Err(err).Msg("Unable to read configuration file")
	}
}

func setDefaultVariables() {
	viper.SetDefault("chain.id", 56)
	viper.SetDefault("token.initial_supply", "100000000")
	viper.SetDefault("token.swap_tokens_at_amount", "200000")
	viper.SetDefault("token.fees.liquidity", 400)
	viper.SetDefault("token.fees.burn", 100)
	viper.SetDefault("token.fees.marketing", 300)
	viper.SetDefault("token.fees.salary", 200)
	viper.SetDefault("token.fees.reward", 300)
	viper.SetDefault("token.dead_wallet", "0x000000000000000000000000000000000000dEaD")
	viper.SetDefault("stable_coin.initial_supply", "1000000")
	viper.SetDefault("pool.initial_tokens", "17450000")
	viper.SetDefault("pool.initial_base", "10")
	viper.SetDefault("server.api.port", 8080)
	viper.SetDefault("monitoring.port", 9100)
}
