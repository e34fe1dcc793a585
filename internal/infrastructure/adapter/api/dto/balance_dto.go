package dto

import (
	"time"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID      string `json:"userId"`
	CashCredits int64  `json:"cashCredits"`
	FreeCredits int64  `json:"freeCredits"`
	Total       int64  `json:"total"`
}

// NewBalanceResponse converts a domain balance
func NewBalanceResponse(userID string, balance entity.Balance) BalanceResponse {
	return BalanceResponse{
		UserID:      userID,
		CashCredits: balance.CashCredits,
		FreeCredits: balance.FreeCredits,
		Total:       balance.Total(),
	}
}

// LedgerEntryResponse is one row of the ledger history
type LedgerEntryResponse struct {
	ID        string    `json:"id"`
	Delta     int64     `json:"delta"`
	CashDelta int64     `json:"cashDelta"`
	FreeDelta int64     `json:"freeDelta"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	Note      string    `json:"note,omitempty"`
	CashAfter int64     `json:"cashAfter"`
	FreeAfter int64     `json:"freeAfter"`
	CreatedAt time.Time `json:"createdAt"`
}

// LedgerResponse lists a user's ledger entries, newest first
type LedgerResponse struct {
	UserID  string                `json:"userId"`
	Entries []LedgerEntryResponse `json:"entries"`
}

// NewLedgerResponse converts ledger entries
func NewLedgerResponse(userID string, entries []*entity.LedgerEntry) LedgerResponse {
	resp := LedgerResponse{UserID: userID, Entries: make([]LedgerEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, LedgerEntryResponse{
			ID:        e.ID.String(),
			Delta:     e.Delta,
			CashDelta: e.CashDelta,
			FreeDelta: e.FreeDelta,
			Reason:    string(e.Reason),
			Reference: e.Reference,
			Note:      e.Note,
			CashAfter: e.CashAfter,
			FreeAfter: e.FreeAfter,
			CreatedAt: e.CreatedAt,
		})
	}
	return resp
}
