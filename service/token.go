package service

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gitlab.com/przworld-exchange/economy_core/conv"
	"gitlab.com/przworld-exchange/economy_core/engine"
	"gitlab.com/przworld-exchange/economy_core/model"
	"gitlab.com/przworld-exchange/economy_core/monitor"
)

// swapper is the buy/sell surface of the exchange pair, used by the market
// simulation endpoints
type swapper interface {
	Buy(buyer common.Address, baseIn *uint256.Int, events *[]model.Event) (*uint256.Int, error)
	Sell(seller common.Address, tokenIn *uint256.Int, events *[]model.Event) (*uint256.Int, error)
}

// Transfer moves tokens between two accounts, applying the transfer tax
func (service *Service) Transfer(from, to, amount string) ([]model.Event, error) {
	fromAddr, err := parseAddress(from)
	if err != nil {
		return nil, err
	}
	toAddr, err := parseAddress(to)
	if err != nil {
		return nil, err
	}
	units, err := parseUnits(amount)
	if err != nil {
		return nil, err
	}
	events, err := service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.Token.Transfer(fromAddr, toAddr, units, events)
	})
	if err != nil {
		return nil, err
	}
	monitor.TransfersProcessed.Inc()
	countFees(events)
	return events, nil
}

// Approve sets the allowance of a spender over the owner's token funds
func (service *Service) Approve(owner, spender, amount string) ([]model.Event, error) {
	ownerAddr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}
	spenderAddr, err := parseAddress(spender)
	if err != nil {
		return nil, err
	}
	units, err := parseUnits(amount)
	if err != nil {
		return nil, err
	}
	return service.execute(func(state *engine.State, events *[]model.Event) error {
		state.Token.Approve(ownerAddr, spenderAddr, units, events)
		return nil
	})
}

// TransferStable moves stable coins between two accounts, fee free
func (service *Service) TransferStable(from, to, amount string) ([]model.Event, error) {
	fromAddr, err := parseAddress(from)
	if err != nil {
		return nil, err
	}
	toAddr, err := parseAddress(to)
	if err != nil {
		return nil, err
	}
	units, err := parseUnits(amount)
	if err != nil {
		return nil, err
	}
	return service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.Stable.Transfer(fromAddr, toAddr, units, events)
	})
}

// ApproveStable sets the allowance of a spender over the owner's stable
// coin funds
func (service *Service) ApproveStable(owner, spender, amount string) ([]model.Event, error) {
	ownerAddr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}
	spenderAddr, err := parseAddress(spender)
	if err != nil {
		return nil, err
	}
	units, err := parseUnits(amount)
	if err != nil {
		return nil, err
	}
	return service.execute(func(state *engine.State, events *[]model.Event) error {
		state.Stable.Approve(ownerAddr, spenderAddr, units, events)
		return nil
	})
}

// BalanceOf returns the token balance of an account as a decimal string
func (service *Service) BalanceOf(account string) (string, error) {
	addr, err := parseAddress(account)
	if err != nil {
		return "", err
	}
	var balance string
	service.read(func(state *engine.State) {
		balance = conv.FromUnits(state.Token.BalanceOf(addr), conv.TokenPrecision)
	})
	return balance, nil
}

// StableBalanceOf returns the stable coin balance of an account
func (service *Service) StableBalanceOf(account string) (string, error) {
	addr, err := parseAddress(account)
	if err != nil {
		return "", err
	}
	var balance string
	service.read(func(state *engine.State) {
		balance = conv.FromUnits(state.Stable.BalanceOf(addr), conv.TokenPrecision)
	})
	return balance, nil
}

// Allowance returns the token allowance of a spender over an owner
func (service *Service) Allowance(owner, spender string) (string, error) {
	ownerAddr, err := parseAddress(owner)
	if err != nil {
		return "", err
	}
	spenderAddr, err := parseAddress(spender)
	if err != nil {
		return "", err
	}
	var allowance string
	service.read(func(state *engine.State) {
		allowance = conv.FromUnits(state.Token.Allowance(ownerAddr, spenderAddr), conv.TokenPrecision)
	})
	return allowance, nil
}

// TotalSupply returns the token total supply as a decimal string
func (service *Service) TotalSupply() string {
	var supply string
	service.read(func(state *engine.State) {
		supply = conv.FromUnits(state.Token.TotalSupply(), conv.TokenPrecision)
	})
	return supply
}

// IsTradingEnabled reports the state of the one-way trading switch
func (service *Service) IsTradingEnabled() bool {
	var enabled bool
	service.read(func(state *engine.State) {
		enabled = state.Token.IsTradingEnabled()
	})
	return enabled
}

// Buy swaps base currency for tokens through the exchange pair
func (service *Service) Buy(buyer, baseAmount string) ([]model.Event, error) {
	buyerAddr, err := parseAddress(buyer)
	if err != nil {
		return nil, err
	}
	units, err := parseUnits(baseAmount)
	if err != nil {
		return nil, err
	}
	events, err := service.execute(func(state *engine.State, events *[]model.Event) error {
		_, swapErr := state.Pool().(swapper).Buy(buyerAddr, units, events)
		return swapErr
	})
	if err != nil {
		return nil, err
	}
	monitor.TransfersProcessed.Inc()
	countFees(events)
	return events, nil
}

// Sell swaps tokens for base currency through the exchange pair
func (service *Service) Sell(seller, tokenAmount string) ([]model.Event, error) {
	sellerAddr, err := parseAddress(seller)
	if err != nil {
		return nil, err
	}
	units, err := parseUnits(tokenAmount)
	if err != nil {
		return nil, err
	}
	events, err := service.execute(func(state *engine.State, events *[]model.Event) error {
		_, swapErr := state.Pool().(swapper).Sell(sellerAddr, units, events)
		return swapErr
	})
	if err != nil {
		return nil, err
	}
	monitor.TransfersProcessed.Inc()
	countFees(events)
	return events, nil
}

func countFees(events []model.Event) {
	for _, event := range events {
		switch event.Type {
		case model.EventType_Fee:
			monitor.FeesCollected.WithLabelValues(event.Category).Add(event.Amount.Float64())
		case model.EventType_SwapAndLiquify:
			monitor.SwapAndLiquifyRuns.Inc()
		}
	}
}
