package model

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type EventType string

const (
	EventType_Transfer           EventType = "transfer"
	EventType_Fee                EventType = "fee"
	EventType_Approval           EventType = "approval"
	EventType_NftTransfer        EventType = "nft_transfer"
	EventType_SwapAndLiquify     EventType = "swap_and_liquify"
	EventType_RewardsDistributed EventType = "rewards_distributed"
	EventType_RewardsWithdrawn   EventType = "rewards_withdrawn"
)

// Event is a single balance or ownership change produced while processing
// one operation. Every credited or debited account gets its own entry so a
// consumer can rebuild the full audit trail of a taxed transfer.
type Event struct {
	Type     EventType
	Asset    common.Address
	From     common.Address
	To       common.Address
	Amount   *uint256.Int
	Category string
	TokenID  uint64
}

// NewEvent constructor
func NewEvent(eventType EventType, asset, from, to common.Address, amount *uint256.Int) Event {
	return Event{
		Type:   eventType,
		Asset:  asset,
		From:   from,
		To:     to,
		Amount: amount.Clone(),
	}
}

// NewFeeEvent creates a fee redirection event tagged with the fee category
func NewFeeEvent(asset, from, to common.Address, amount *uint256.Int, category string) Event {
	event := NewEvent(EventType_Fee, asset, from, to, amount)
	event.Category = category
	return event
}

// NewNftEvent creates an ownership transfer event for a single token id
func NewNftEvent(asset, from, to common.Address, tokenID uint64) Event {
	return Event{
		Type:    EventType_NftTransfer,
		Asset:   asset,
		From:    from,
		To:      to,
		TokenID: tokenID,
	}
}

// MarshalJSON convert the event into a json string
func (event Event) MarshalJSON() ([]byte, error) {
	data := map[string]interface{}{
		"type":  event.Type,
		"asset": event.Asset.Hex(),
		"from":  event.From.Hex(),
		"to":    event.To.Hex(),
	}
	if event.Amount != nil {
		data["amount"] = event.Amount.Dec()
	}
	if event.Category != "" {
		data["category"] = event.Category
	}
	if event.Type == EventType_NftTransfer {
		data["token_id"] = event.TokenID
	}
	return json.Marshal(data)
}
