package dto

// AdjustRequest is an operator grant or correction
type AdjustRequest struct {
	UserID         string `json:"userId" binding:"required,max=128"`
	Delta          int64  `json:"delta" binding:"required,ne=0"`
	Reason         string `json:"reason" binding:"required,oneof=admin_adjustment referral_reward signup_bonus"`
	Pool           string `json:"pool" binding:"omitempty,oneof=cash free"`
	IdempotencyKey string `json:"idempotencyKey" binding:"required,max=200"`
	Note           string `json:"note" binding:"max=500"`
}

// AdjustResponse reports the applied adjustment
type AdjustResponse struct {
	UserID      string `json:"userId"`
	EntryID     string `json:"entryId,omitempty"`
	CashCredits int64  `json:"cashCredits"`
	FreeCredits int64  `json:"freeCredits"`
	Duplicate   bool   `json:"duplicate"`
}
