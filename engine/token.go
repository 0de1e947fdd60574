package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gitlab.com/przworld-exchange/economy_core/model"
)

// RewardSink receives the reward-category fee slice of taxed transfers and
// makes it claimable by premium holders. The NFT collection implements it.
type RewardSink interface {
	Address() common.Address
	DepositRewards(rewardToken common.Address, amount *uint256.Int, events *[]model.Event)
}

// Token is the fee-on-transfer fungible token. Transfers between non-exempt
// accounts are taxed per the configured basis-point rates and the fee slices
// are redirected to their sink accounts; the liquidity slice accumulates in
// the token's own balance until the swap controller converts it.
type Token struct {
	addr   common.Address
	ledger *Ledger
	owner  common.Address

	fees   model.FeeRates
	exempt map[common.Address]bool

	marketingWallet  common.Address
	teamSalaryWallet common.Address
	deadWallet       common.Address

	// distributor is the account whose balance funds premium reflections.
	// When it points at a registered RewardSink the reward fee becomes
	// claimable immediately, without a separate distribution step.
	distributor common.Address
	rewards     RewardSink

	tradingEnabled bool
	swapThreshold  *uint256.Int
	inSwap         bool
	pool           Pool
}

// TokenParams collects the deployment parameters of the token
type TokenParams struct {
	Address          common.Address
	Owner            common.Address
	MarketingWallet  common.Address
	TeamSalaryWallet common.Address
	ReceiveRewards   common.Address
	DeadWallet       common.Address
	InitialSupply    *uint256.Int
	SwapThreshold    *uint256.Int
	Fees             model.FeeRates
}

// NewToken deploys the token: the full initial supply is minted to the
// owner and the owner plus every sink account is fee exempt.
func NewToken(params TokenParams) (*Token, error) {
	if !params.Fees.Valid() {
		return nil, ErrFeesTooHigh
	}
	token := &Token{
		addr:             params.Address,
		ledger:           NewLedger(),
		owner:            params.Owner,
		fees:             params.Fees,
		exempt:           make(map[common.Address]bool),
		marketingWallet:  params.MarketingWallet,
		teamSalaryWallet: params.TeamSalaryWallet,
		deadWallet:       params.DeadWallet,
		distributor:      params.ReceiveRewards,
		swapThreshold:    params.SwapThreshold.Clone(),
	}
	for _, account := range []common.Address{
		params.Owner, params.Address, params.MarketingWallet,
		params.TeamSalaryWallet, params.ReceiveRewards, params.DeadWallet,
	} {
		token.exempt[account] = true
	}
	token.ledger.Mint(params.Owner, params.InitialSupply)
	return token, nil
}

// Address of the token contract analogue
func (token *Token) Address() common.Address {
	return token.addr
}

// Owner returns the current privileged account
func (token *Token) Owner() common.Address {
	return token.owner
}

// BalanceOf returns the balance of the given account
func (token *Token) BalanceOf(account common.Address) *uint256.Int {
	return token.ledger.BalanceOf(account)
}

// TotalSupply returns the current total supply
func (token *Token) TotalSupply() *uint256.Int {
	return token.ledger.TotalSupply()
}

// Fees returns the active fee configuration
func (token *Token) Fees() model.FeeRates {
	return token.fees
}

// IsTradingEnabled reports whether the one-way trading switch was flipped
func (token *Token) IsTradingEnabled() bool {
	return token.tradingEnabled
}

// EnableTrading flips the one-way trading switch. Privileged.
func (token *Token) EnableTrading(caller common.Address) error {
	if caller != token.owner {
		return ErrNotOwner
	}
	token.tradingEnabled = true
	return nil
}

// SetFeeRates replaces the fee configuration. Privileged, never retroactive,
// rejected when the combined rate crosses the hard cap.
func (token *Token) SetFeeRates(caller common.Address, fees model.FeeRates) error {
	if caller != token.owner {
		return ErrNotOwner
	}
	if !fees.Valid() {
		return ErrFeesTooHigh
	}
	token.fees = fees
	return nil
}

// SetExempt adds or removes an account from the tax exemption set. Privileged.
func (token *Token) SetExempt(caller, account common.Address, exempt bool) error {
	if caller != token.owner {
		return ErrNotOwner
	}
	token.exempt[account] = exempt
	return nil
}

// IsExempt reports whether the account is in the exemption set
func (token *Token) IsExempt(account common.Address) bool {
	return token.exempt[account]
}

// TransferOwnership moves the owner role together with the owner's entire
// token balance, fee free.
func (token *Token) TransferOwnership(caller, newOwner common.Address, events *[]model.Event) error {
	if caller != token.owner {
		return ErrNotOwner
	}
	balance := token.ledger.BalanceOf(token.owner)
	if !balance.IsZero() {
		if err := token.ledger.Move(token.owner, newOwner, balance); err != nil {
			return err
		}
		*events = append(*events, model.NewEvent(model.EventType_Transfer, token.addr, token.owner, newOwner, balance))
	}
	delete(token.exempt, token.owner)
	token.owner = newOwner
	token.exempt[newOwner] = true
	return nil
}

// ChangePremiumReflectionsDistributor repoints the account that funds the
// premium reflections program. When the new distributor is a registered
// reward sink, reward fees start feeding its dividend accumulator directly.
func (token *Token) ChangePremiumReflectionsDistributor(caller, distributor common.Address, sink RewardSink) error {
	if caller != token.owner {
		return ErrNotOwner
	}
	token.distributor = distributor
	token.exempt[distributor] = true
	if sink != nil && sink.Address() == distributor {
		token.rewards = sink
	} else {
		token.rewards = nil
	}
	return nil
}

// Distributor returns the account currently funding premium reflections
func (token *Token) Distributor() common.Address {
	return token.distributor
}

// AttachPool wires the external pool capability used by the swap controller
func (token *Token) AttachPool(pool Pool) {
	token.pool = pool
}

// Approve sets the allowance of `spender` over `owner` funds
func (token *Token) Approve(owner, spender common.Address, amount *uint256.Int, events *[]model.Event) {
	token.ledger.Approve(owner, spender, amount)
	*events = append(*events, model.NewEvent(model.EventType_Approval, token.addr, owner, spender, amount))
}

// Allowance returns the remaining allowance of `spender` over `owner` funds
func (token *Token) Allowance(owner, spender common.Address) *uint256.Int {
	return token.ledger.Allowance(owner, spender)
}

// TransferFrom moves tokens on behalf of `from`, consuming the spender's
// allowance first. The transfer itself follows the exact tax rules of
// Transfer.
func (token *Token) TransferFrom(spender, from, to common.Address, amount *uint256.Int, events *[]model.Event) error {
	if err := token.ledger.SpendAllowance(from, spender, amount); err != nil {
		return err
	}
	return token.Transfer(from, to, amount, events)
}

// Transfer moves `amount` from `from` to `to`, routing the transfer tax to
// the configured sinks. Exempt senders or recipients move the full amount.
// A zero amount is a no-op that still succeeds.
func (token *Token) Transfer(from, to common.Address, amount *uint256.Int, events *[]model.Event) error {
	if amount.IsZero() {
		return nil
	}
	if !token.tradingEnabled && from != token.owner {
		return ErrTradingDisabled
	}
	// the whole transfer aborts on insufficient balance, before any fee
	// side effects are applied
	if token.ledger.BalanceOf(from).Lt(amount) {
		return ErrInsufficientBalance
	}

	if err := token.maybeSwapAndLiquify(from, events); err != nil {
		return err
	}

	if token.inSwap || token.exempt[from] || token.exempt[to] {
		if err := token.ledger.Move(from, to, amount); err != nil {
			return err
		}
		*events = append(*events, model.NewEvent(model.EventType_Transfer, token.addr, from, to, amount))
		return nil
	}
	return token.applyTaxedTransfer(from, to, amount, events)
}

// applyTaxedTransfer splits the amount into per-category fees, each computed
// as floor(amount * rate / 10000), and credits the remainder to the
// recipient. The fee cap guarantees the net amount is never negative.
func (token *Token) applyTaxedTransfer(from, to common.Address, amount *uint256.Int, events *[]model.Event) error {
	liquidityFee := feeOf(amount, token.fees.Liquidity)
	burnFee := feeOf(amount, token.fees.Burn)
	marketingFee := feeOf(amount, token.fees.Marketing)
	salaryFee := feeOf(amount, token.fees.Salary)
	rewardFee := feeOf(amount, token.fees.Reward)

	net := amount.Clone()
	for _, fee := range []*uint256.Int{liquidityFee, burnFee, marketingFee, salaryFee, rewardFee} {
		net.Sub(net, fee)
	}

	if err := token.ledger.Move(from, to, net); err != nil {
		return err
	}
	*events = append(*events, model.NewEvent(model.EventType_Transfer, token.addr, from, to, net))

	if err := token.routeFee(from, token.addr, liquidityFee, "liquidity", events); err != nil {
		return err
	}
	if err := token.routeFee(from, token.marketingWallet, marketingFee, "marketing", events); err != nil {
		return err
	}
	if err := token.routeFee(from, token.teamSalaryWallet, salaryFee, "salary", events); err != nil {
		return err
	}
	if !burnFee.IsZero() {
		if err := token.ledger.Burn(from, burnFee); err != nil {
			return err
		}
		*events = append(*events, model.NewFeeEvent(token.addr, from, token.deadWallet, burnFee, "burn"))
	}
	if !rewardFee.IsZero() {
		if err := token.routeFee(from, token.distributor, rewardFee, "reward", events); err != nil {
			return err
		}
		if token.rewards != nil {
			token.rewards.DepositRewards(token.addr, rewardFee, events)
		}
	}
	return nil
}

func (token *Token) routeFee(from, sink common.Address, fee *uint256.Int, category string, events *[]model.Event) error {
	if fee.IsZero() {
		return nil
	}
	if err := token.ledger.Move(from, sink, fee); err != nil {
		return err
	}
	*events = append(*events, model.NewFeeEvent(token.addr, from, sink, fee, category))
	return nil
}

func feeOf(amount *uint256.Int, bps uint64) *uint256.Int {
	fee := new(uint256.Int).Mul(amount, uint256.NewInt(bps))
	return fee.Div(fee, uint256.NewInt(10000))
}

// Clone returns a deep copy of the token, without a pool attached. The
// caller rewires the pool capability against the cloned state.
func (token *Token) Clone() *Token {
	clone := *token
	clone.ledger = token.ledger.Clone()
	clone.swapThreshold = token.swapThreshold.Clone()
	clone.exempt = make(map[common.Address]bool, len(token.exempt))
	for account, exempt := range token.exempt {
		clone.exempt[account] = exempt
	}
	clone.pool = nil
	clone.rewards = nil
	return &clone
}
