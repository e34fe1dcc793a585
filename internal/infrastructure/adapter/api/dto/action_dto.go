package dto

import (
	"sort"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// ActionPrice is one entry of the price list
type ActionPrice struct {
	ActionKind string `json:"actionKind"`
	Cost       int64  `json:"cost"`
}

// PriceListResponse lists the paid actions and what they cost
type PriceListResponse struct {
	Actions []ActionPrice `json:"actions"`
}

// NewPriceListResponse sorts prices by action kind
func NewPriceListResponse(prices map[entity.ActionKind]int64) PriceListResponse {
	resp := PriceListResponse{Actions: make([]ActionPrice, 0, len(prices))}
	for kind, cost := range prices {
		resp.Actions = append(resp.Actions, ActionPrice{ActionKind: string(kind), Cost: cost})
	}
	sort.Slice(resp.Actions, func(i, j int) bool {
		return resp.Actions[i].ActionKind < resp.Actions[j].ActionKind
	})
	return resp
}

// QuoteResponse tells the client whether to show the confirm dialog or the buy-credits prompt
type QuoteResponse struct {
	ActionKind  string `json:"actionKind"`
	Cost        int64  `json:"cost"`
	CashCredits int64  `json:"cashCredits"`
	FreeCredits int64  `json:"freeCredits"`
	CanAfford   bool   `json:"canAfford"`
}

// NewQuoteResponse converts a quote
func NewQuoteResponse(q *entity.PaidActionQuote) QuoteResponse {
	return QuoteResponse{
		ActionKind:  string(q.ActionKind),
		Cost:        q.Cost,
		CashCredits: q.Balance.CashCredits,
		FreeCredits: q.Balance.FreeCredits,
		CanAfford:   q.CanAfford,
	}
}

// ReceiptResponse confirms a paid action
type ReceiptResponse struct {
	ActionKind  string `json:"actionKind"`
	Cost        int64  `json:"cost"`
	EntryID     string `json:"entryId"`
	Reference   string `json:"reference,omitempty"`
	Replayed    bool   `json:"replayed"`
	CashCredits int64  `json:"cashCredits"`
	FreeCredits int64  `json:"freeCredits"`
}

// NewReceiptResponse converts a receipt
func NewReceiptResponse(r *entity.PaidActionReceipt) ReceiptResponse {
	return ReceiptResponse{
		ActionKind:  string(r.ActionKind),
		Cost:        r.Cost,
		EntryID:     r.EntryID.String(),
		Reference:   r.Reference,
		Replayed:    r.Replayed,
		CashCredits: r.Balance.CashCredits,
		FreeCredits: r.Balance.FreeCredits,
	}
}
