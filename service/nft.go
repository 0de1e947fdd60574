package service

import (
	"gitlab.com/przworld-exchange/economy_core/conv"
	"gitlab.com/przworld-exchange/economy_core/engine"
	"gitlab.com/przworld-exchange/economy_core/model"
	"gitlab.com/przworld-exchange/economy_core/monitor"
)

// Redeem consumes a signed voucher: verifies the signature, collects the
// dual-currency payment and mints the NFT to the redeemer
func (service *Service) Redeem(redeemer string, voucher model.Voucher) ([]model.Event, error) {
	redeemerAddr, err := parseAddress(redeemer)
	if err != nil {
		return nil, err
	}
	events, err := service.execute(func(state *engine.State, events *[]model.Event) error {
		_, redeemErr := state.RedeemVoucher(redeemerAddr, voucher, events)
		return redeemErr
	})
	if err != nil {
		return nil, err
	}
	monitor.VouchersRedeemed.Inc()
	countFees(events)
	return events, nil
}

// RewardBalanceOf returns the holder's withdrawable premium reflections
// amount as a decimal string
func (service *Service) RewardBalanceOf(holder string) (string, error) {
	holderAddr, err := parseAddress(holder)
	if err != nil {
		return "", err
	}
	var balance string
	service.read(func(state *engine.State) {
		amount := state.Nft.CheckHolderPremiumReflectionsBalance(state.Token.Address(), holderAddr)
		balance = conv.FromUnits(amount, conv.TokenPrecision)
	})
	return balance, nil
}

// WithdrawRewards pays out the holder's accrued premium reflections
func (service *Service) WithdrawRewards(holder string) ([]model.Event, error) {
	holderAddr, err := parseAddress(holder)
	if err != nil {
		return nil, err
	}
	events, err := service.execute(func(state *engine.State, events *[]model.Event) error {
		_, withdrawErr := state.WithdrawPremiumReflections(holderAddr, state.Token.Address(), events)
		return withdrawErr
	})
	if err != nil {
		return nil, err
	}
	monitor.RewardsWithdrawn.Inc()
	return events, nil
}

// NftTotalSupply returns the number of minted NFTs
func (service *Service) NftTotalSupply() uint64 {
	var supply uint64
	service.read(func(state *engine.State) {
		supply = state.Nft.TotalSupply()
	})
	return supply
}

// NftOwnerOf returns the owner of a minted token id
func (service *Service) NftOwnerOf(tokenID uint64) (string, error) {
	var owner string
	var err error
	service.read(func(state *engine.State) {
		addr, ownerErr := state.Nft.OwnerOf(tokenID)
		if ownerErr != nil {
			err = ownerErr
			return
		}
		owner = addr.Hex()
	})
	return owner, err
}

// NftTokenURI returns the metadata URI of a minted token id
func (service *Service) NftTokenURI(tokenID uint64) (string, error) {
	var uri string
	var err error
	service.read(func(state *engine.State) {
		uri, err = state.Nft.TokenURI(tokenID)
	})
	return uri, err
}

// NftBalanceOf returns the number of NFTs held by an account
func (service *Service) NftBalanceOf(account string) (uint64, error) {
	addr, err := parseAddress(account)
	if err != nil {
		return 0, err
	}
	var shares uint64
	service.read(func(state *engine.State) {
		shares = state.Nft.SharesOf(addr)
	})
	return shares, nil
}

// NftTransfer moves one NFT between accounts, keeping the reflections share
// table in sync
func (service *Service) NftTransfer(from, to string, tokenID uint64) ([]model.Event, error) {
	fromAddr, err := parseAddress(from)
	if err != nil {
		return nil, err
	}
	toAddr, err := parseAddress(to)
	if err != nil {
		return nil, err
	}
	return service.execute(func(state *engine.State, events *[]model.Event) error {
		return state.Nft.TransferToken(fromAddr, toAddr, tokenID, events)
	})
}
