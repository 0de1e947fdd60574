package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gitlab.com/przworld-exchange/economy_core/model"
	"gitlab.com/przworld-exchange/economy_core/sign"
)

// zeroAddress marks mints in the ownership-transfer audit trail
var zeroAddress = common.Address{}

// Collection is the NFT contract analogue: token ownership, the premium
// reflections share table and one dividend tracker per reward token. Every
// NFT carries exactly one share regardless of token id, so an account's
// reward weight is simply the number of NFTs it holds.
type Collection struct {
	addr           common.Address
	owner          common.Address
	revenuesWallet common.Address
	deadWallet     common.Address
	domain         sign.Domain

	owners      map[uint64]common.Address
	uris        map[uint64]string
	shares      map[common.Address]uint64
	totalShares uint64

	trackers map[common.Address]*DividendTracker
}

// CollectionParams collects the deployment parameters of the collection
type CollectionParams struct {
	Address        common.Address
	Owner          common.Address
	RevenuesWallet common.Address
	DeadWallet     common.Address
	Domain         sign.Domain
}

// NewCollection deploys an empty collection. The owner account doubles as
// the authorized voucher signer and the issuer every lazy mint goes through.
func NewCollection(params CollectionParams) *Collection {
	return &Collection{
		addr:           params.Address,
		owner:          params.Owner,
		revenuesWallet: params.RevenuesWallet,
		deadWallet:     params.DeadWallet,
		domain:         params.Domain,
		owners:         make(map[uint64]common.Address),
		uris:           make(map[uint64]string),
		shares:         make(map[common.Address]uint64),
		trackers:       make(map[common.Address]*DividendTracker),
	}
}

// Address of the collection contract analogue
func (c *Collection) Address() common.Address {
	return c.addr
}

// Owner returns the issuer / authorized signer account
func (c *Collection) Owner() common.Address {
	return c.owner
}

// RevenuesWallet returns the sink for the stable coin leg of redemptions
func (c *Collection) RevenuesWallet() common.Address {
	return c.revenuesWallet
}

// DeadWallet returns the burn sink for the token leg of redemptions
func (c *Collection) DeadWallet() common.Address {
	return c.deadWallet
}

// Domain returns the voucher signing domain of this deployment
func (c *Collection) Domain() sign.Domain {
	return c.domain
}

// TotalSupply returns the number of minted NFTs, which is also the total
// share count of the reflections program
func (c *Collection) TotalSupply() uint64 {
	return c.totalShares
}

// OwnerOf returns the current owner of a token id
func (c *Collection) OwnerOf(tokenID uint64) (common.Address, error) {
	owner, ok := c.owners[tokenID]
	if !ok {
		return common.Address{}, ErrTokenNotMinted
	}
	return owner, nil
}

// TokenURI returns the metadata URI of a minted token
func (c *Collection) TokenURI(tokenID uint64) (string, error) {
	uri, ok := c.uris[tokenID]
	if !ok {
		return "", ErrTokenNotMinted
	}
	return uri, nil
}

// SharesOf returns the number of NFTs (shares) held by the account
func (c *Collection) SharesOf(account common.Address) uint64 {
	return c.shares[account]
}

// Exists reports whether the token id was ever minted
func (c *Collection) Exists(tokenID uint64) bool {
	_, ok := c.owners[tokenID]
	return ok
}

// Mint creates a token for `to`. Fails when the id was already consumed,
// which is also the whole replay protection of vouchers: a minted id can
// never be minted again.
func (c *Collection) Mint(to common.Address, tokenID uint64, uri string, events *[]model.Event) error {
	if c.Exists(tokenID) {
		return ErrTokenAlreadyMinted
	}
	c.owners[tokenID] = to
	c.uris[tokenID] = uri
	c.totalShares++
	c.updateShares(to, c.shares[to]+1)
	*events = append(*events, model.NewNftEvent(c.addr, zeroAddress, to, tokenID))
	return nil
}

// TransferToken moves one token between accounts, updating the share table
// of both parties so no accumulator growth is ever misattributed
func (c *Collection) TransferToken(from, to common.Address, tokenID uint64, events *[]model.Event) error {
	owner, ok := c.owners[tokenID]
	if !ok {
		return ErrTokenNotMinted
	}
	if owner != from {
		return ErrNotNftOwner
	}
	if to == zeroAddress {
		return ErrTransferToZero
	}
	c.owners[tokenID] = to
	c.updateShares(from, c.shares[from]-1)
	c.updateShares(to, c.shares[to]+1)
	*events = append(*events, model.NewNftEvent(c.addr, from, to, tokenID))
	return nil
}

// updateShares moves the account to its new share count across every
// reward tracker before recording it
func (c *Collection) updateShares(account common.Address, newShares uint64) {
	oldShares := c.shares[account]
	for _, tracker := range c.trackers {
		tracker.SharesChanged(account, oldShares, newShares)
	}
	if newShares == 0 {
		delete(c.shares, account)
		return
	}
	c.shares[account] = newShares
}

// DepositRewards funds the reflections program for the given reward token;
// the deposit becomes claimable immediately. Implements RewardSink.
func (c *Collection) DepositRewards(rewardToken common.Address, amount *uint256.Int, events *[]model.Event) {
	tracker := c.tracker(rewardToken)
	tracker.Distribute(amount, c.totalShares)
	*events = append(*events, model.Event{
		Type:   model.EventType_RewardsDistributed,
		Asset:  rewardToken,
		To:     c.addr,
		Amount: amount.Clone(),
	})
}

// CheckHolderPremiumReflectionsBalance returns the holder's withdrawable
// reward amount for the given reward token, in constant time
func (c *Collection) CheckHolderPremiumReflectionsBalance(rewardToken, holder common.Address) *uint256.Int {
	tracker, ok := c.trackers[rewardToken]
	if !ok {
		return uint256.NewInt(0)
	}
	return tracker.WithdrawableOf(holder, c.shares[holder])
}

// PrepareWithdrawal computes and records the holder's payout. The caller is
// responsible for moving the funds out of the reward pool; on failure the
// enclosing transaction rolls the recording back.
func (c *Collection) PrepareWithdrawal(rewardToken, holder common.Address) (*uint256.Int, error) {
	tracker, ok := c.trackers[rewardToken]
	if !ok {
		return nil, ErrNoWithdrawableAmount
	}
	amount := tracker.WithdrawableOf(holder, c.shares[holder])
	if amount.IsZero() {
		return nil, ErrNoWithdrawableAmount
	}
	tracker.RecordWithdrawal(holder, amount)
	return amount, nil
}

func (c *Collection) tracker(rewardToken common.Address) *DividendTracker {
	if tracker, ok := c.trackers[rewardToken]; ok {
		return tracker
	}
	tracker := NewDividendTracker()
	c.trackers[rewardToken] = tracker
	return tracker
}

// Clone returns a deep copy used by the snapshot/rollback discipline
func (c *Collection) Clone() *Collection {
	clone := &Collection{
		addr:           c.addr,
		owner:          c.owner,
		revenuesWallet: c.revenuesWallet,
		deadWallet:     c.deadWallet,
		domain:         c.domain,
		owners:         make(map[uint64]common.Address, len(c.owners)),
		uris:           make(map[uint64]string, len(c.uris)),
		shares:         make(map[common.Address]uint64, len(c.shares)),
		totalShares:    c.totalShares,
		trackers:       make(map[common.Address]*DividendTracker, len(c.trackers)),
	}
	for tokenID, owner := range c.owners {
		clone.owners[tokenID] = owner
	}
	for tokenID, uri := range c.uris {
		clone.uris[tokenID] = uri
	}
	for account, shares := range c.shares {
		clone.shares[account] = shares
	}
	for rewardToken, tracker := range c.trackers {
		clone.trackers[rewardToken] = tracker.Clone()
	}
	return clone
}
