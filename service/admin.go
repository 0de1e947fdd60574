package service

import (
	"github.com/rs/zerolog/log"
	"gitlab.com/przworld-exchange/economy_core/engine"
	"gitlab.com/przworld-exchange/economy_core/model"
)

// EnableTrading flips the one-way trading switch
func (service *Service) EnableTrading(caller string) error {
	callerAddr, err := parseAddress(caller)
	if err != nil {
		return err
	}
	_, err = service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.Token.EnableTrading(callerAddr)
	})
	if err == nil {
		log.Info().Str("section", "service").Msg("Trading enabled")
	}
	return err
}

// TransferOwnership moves the token contract ownership and the full owner
// balance to the new owner
func (service *Service) TransferOwnership(caller, newOwner string) ([]model.Event, error) {
	callerAddr, err := parseAddress(caller)
	if err != nil {
		return nil, err
	}
	newOwnerAddr, err := parseAddress(newOwner)
	if err != nil {
		return nil, err
	}
	return service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.Token.TransferOwnership(callerAddr, newOwnerAddr, events)
	})
}

// SetFeeRates replaces the transfer tax table, subject to the hard cap
func (service *Service) SetFeeRates(caller string, fees model.FeeRates) error {
	callerAddr, err := parseAddress(caller)
	if err != nil {
		return err
	}
	_, err = service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.Token.SetFeeRates(callerAddr, fees)
	})
	return err
}

// GetFeeRates returns the current transfer tax table
func (service *Service) GetFeeRates() model.FeeRates {
	var fees model.FeeRates
	service.read(func(state *engine.State) {
		fees = state.Token.Fees()
	})
	return fees
}

// SetExempt adds or removes an account from the tax exemption set
func (service *Service) SetExempt(caller, account string, exempt bool) error {
	callerAddr, err := parseAddress(caller)
	if err != nil {
		return err
	}
	accountAddr, err := parseAddress(account)
	if err != nil {
		return err
	}
	_, err = service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.Token.SetExempt(callerAddr, accountAddr, exempt)
	})
	return err
}

// ChangeRewardDistributor repoints the reward fee funding target. Pointing
// it at the NFT collection starts feeding the reflections accumulator.
func (service *Service) ChangeRewardDistributor(caller, distributor string) error {
	callerAddr, err := parseAddress(caller)
	if err != nil {
		return err
	}
	distributorAddr, err := parseAddress(distributor)
	if err != nil {
		return err
	}
	_, err = service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.ChangePremiumReflectionsDistributor(callerAddr, distributorAddr)
	})
	return err
}

// RescueStrayTokens moves fungible tokens stuck on the collection back to
// the issuer
func (service *Service) RescueStrayTokens(caller, asset, amount string) ([]model.Event, error) {
	callerAddr, err := parseAddress(caller)
	if err != nil {
		return nil, err
	}
	assetAddr, err := parseAddress(asset)
	if err != nil {
		return nil, err
	}
	units, err := parseUnits(amount)
	if err != nil {
		return nil, err
	}
	return service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.RescueStrayTokens(callerAddr, assetAddr, units, events)
	})
}

// RescueBase moves native base currency stuck on the collection back to
// the issuer
func (service *Service) RescueBase(caller, amount string) ([]model.Event, error) {
	callerAddr, err := parseAddress(caller)
	if err != nil {
		return nil, err
	}
	units, err := parseUnits(amount)
	if err != nil {
		return nil, err
	}
	return service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.RescueBase(callerAddr, units, events)
	})
}
