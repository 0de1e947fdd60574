package model

// MaxTotalFeeBps is the hard cap on the sum of all fee rates. A fee update
// that would push the total above this value is rejected.
const MaxTotalFeeBps uint64 = 2500

// FeeRates holds the per-category transfer tax rates in basis points.
type FeeRates struct {
	Liquidity uint64 `mapstructure:"liquidity" json:"liquidity"`
	Burn      uint64 `mapstructure:"burn" json:"burn"`
	Marketing uint64 `mapstructure:"marketing" json:"marketing"`
	Salary    uint64 `mapstructure:"salary" json:"salary"`
	Reward    uint64 `mapstructure:"reward" json:"reward"`
}

// DefaultFeeRates returns the launch configuration: 13% total split across
// liquidity, burn, marketing, team salary and premium reflections.
func DefaultFeeRates() FeeRates {
	return FeeRates{
		Liquidity: 400,
		Burn:      100,
		Marketing: 300,
		Salary:    200,
		Reward:    300,
	}
}

// Total returns the combined rate in basis points
func (rates FeeRates) Total() uint64 {
	return rates.Liquidity + rates.Burn + rates.Marketing + rates.Salary + rates.Reward
}

// Valid checks the hard cap invariant
func (rates FeeRates) Valid() bool {
	return rates.Total() <= MaxTotalFeeBps
}
