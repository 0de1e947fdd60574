package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gitlab.com/przworld-exchange/economy_core/model"
	"gitlab.com/przworld-exchange/economy_core/sign"
)

// PoolFactory builds the pool capability against a concrete token and base
// currency ledger. The state uses it to rewire the pool when cloning.
type PoolFactory func(token *Token, base *Ledger) Pool

// State is the aggregate of one deployed economy: the taxed token, the
// stable coin, the base currency ledger, the NFT collection and the pool
// capability. Cross-asset flows (voucher redemption, reward withdrawal,
// rescue operations) live here; single-asset behavior stays on the assets.
//
// All mutations within one operation commit or revert together: the caller
// snapshots the state with Clone before the call and swaps the snapshot
// back in on any error.
type State struct {
	Token  *Token
	Stable *BasicToken
	Base   *Ledger
	Nft    *Collection

	pool        Pool
	poolFactory PoolFactory
}

// NewState wires a fresh deployment together
func NewState(token *Token, stable *BasicToken, base *Ledger, nft *Collection, factory PoolFactory) *State {
	state := &State{
		Token:       token,
		Stable:      stable,
		Base:        base,
		Nft:         nft,
		poolFactory: factory,
	}
	if factory != nil {
		state.pool = factory(token, base)
		token.AttachPool(state.pool)
	}
	return state
}

// Pool returns the attached pool capability
func (state *State) Pool() Pool {
	return state.pool
}

// RedeemVoucher verifies an off-band signed purchase authorization, collects
// the dual-currency payment and lazily mints the NFT.
//
// The token is minted to the issuer first and then transferred to the
// redeemer, modeling a mint-then-immediate-sale so the audit trail has a
// uniform shape. The stable coin leg goes to the revenues wallet; the token
// leg is split half to the dead wallet and half into the collection's
// reward pool. Both payments run through the regular transfer path, so a
// non-exempt redeemer pays the transfer tax on the token leg.
func (state *State) RedeemVoucher(redeemer common.Address, voucher model.Voucher, events *[]model.Event) (uint64, error) {
	signer, err := sign.RecoverVoucherSigner(state.Nft.Domain(), voucher)
	if err != nil || signer != state.Nft.Owner() {
		return 0, ErrSignatureInvalid
	}
	if voucher.StableCoinAddress != state.Stable.Address() || voucher.TokenAddress != state.Token.Address() {
		return 0, ErrSignatureInvalid
	}
	if state.Stable.BalanceOf(redeemer).Lt(voucher.MinStableCoinPrice) {
		return 0, ErrInsufficientStableCoin
	}
	if state.Token.BalanceOf(redeemer).Lt(voucher.MinTokenPrice) {
		return 0, ErrInsufficientTokenBalance
	}

	issuer := state.Nft.Owner()
	if err := state.Nft.Mint(issuer, voucher.TokenID, voucher.URI, events); err != nil {
		return 0, err
	}
	if err := state.Nft.TransferToken(issuer, redeemer, voucher.TokenID, events); err != nil {
		return 0, err
	}

	contract := state.Nft.Address()
	if err := state.Stable.TransferFrom(contract, redeemer, state.Nft.RevenuesWallet(), voucher.MinStableCoinPrice, events); err != nil {
		return 0, err
	}
	burnHalf := new(uint256.Int).Div(voucher.MinTokenPrice, uint256.NewInt(2))
	poolHalf := new(uint256.Int).Sub(voucher.MinTokenPrice, burnHalf)
	if err := state.Token.TransferFrom(contract, redeemer, state.Nft.DeadWallet(), burnHalf, events); err != nil {
		return 0, err
	}
	if err := state.Token.TransferFrom(contract, redeemer, contract, poolHalf, events); err != nil {
		return 0, err
	}
	return voucher.TokenID, nil
}

// WithdrawPremiumReflections pays out the holder's accrued rewards from the
// collection's reward pool. Fails when nothing is withdrawable, which makes
// a repeated call in the same accumulator state a clean rejection.
func (state *State) WithdrawPremiumReflections(holder, rewardToken common.Address, events *[]model.Event) (*uint256.Int, error) {
	if rewardToken != state.Token.Address() {
		return nil, ErrNoRewardTracker
	}
	amount, err := state.Nft.PrepareWithdrawal(rewardToken, holder)
	if err != nil {
		return nil, err
	}
	if err := state.Token.Transfer(state.Nft.Address(), holder, amount, events); err != nil {
		return nil, err
	}
	*events = append(*events, model.Event{
		Type:   model.EventType_RewardsWithdrawn,
		Asset:  rewardToken,
		From:   state.Nft.Address(),
		To:     holder,
		Amount: amount.Clone(),
	})
	return amount, nil
}

// ChangePremiumReflectionsDistributor repoints the reward funding target.
// When the target is the collection itself, reward fees start feeding the
// dividend accumulator directly.
func (state *State) ChangePremiumReflectionsDistributor(caller, distributor common.Address) error {
	return state.Token.ChangePremiumReflectionsDistributor(caller, distributor, state.Nft)
}

// RescueStrayTokens moves fungible tokens accidentally sent to the
// collection back to the issuer. Privileged.
func (state *State) RescueStrayTokens(caller, asset common.Address, amount *uint256.Int, events *[]model.Event) error {
	if caller != state.Nft.Owner() {
		return ErrNotOwner
	}
	contract := state.Nft.Address()
	switch asset {
	case state.Token.Address():
		return state.Token.Transfer(contract, caller, amount, events)
	case state.Stable.Address():
		return state.Stable.Transfer(contract, caller, amount, events)
	}
	return ErrUnknownAsset
}

// RescueBase moves native base currency accidentally sent to the collection
// back to the issuer. Privileged. The base currency has no contract of its
// own, so the event carries the zero asset address.
func (state *State) RescueBase(caller common.Address, amount *uint256.Int, events *[]model.Event) error {
	if caller != state.Nft.Owner() {
		return ErrNotOwner
	}
	if err := state.Base.Move(state.Nft.Address(), caller, amount); err != nil {
		return err
	}
	*events = append(*events, model.NewEvent(model.EventType_Transfer, zeroAddress, state.Nft.Address(), caller, amount))
	return nil
}

// Clone deep-copies the whole state and rewires the pool capability and the
// reward sink against the copies
func (state *State) Clone() *State {
	clone := &State{
		Token:       state.Token.Clone(),
		Stable:      state.Stable.Clone(),
		Base:        state.Base.Clone(),
		Nft:         state.Nft.Clone(),
		poolFactory: state.poolFactory,
	}
	if state.poolFactory != nil {
		clone.pool = state.poolFactory(clone.Token, clone.Base)
		clone.Token.AttachPool(clone.pool)
	}
	if state.Token.rewards != nil {
		clone.Token.rewards = clone.Nft
	}
	return clone
}
