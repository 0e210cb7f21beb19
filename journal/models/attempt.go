package models

import (
	"time"

	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/google/uuid"
)

// Attempt is one call of the mint action.
type Attempt struct {
	ID            uuid.UUID           `json:"id"`
	Owner         string              `json:"owner"`
	Account       string              `json:"account"`
	IntentHash    string              `json:"intentHash,omitempty"`
	ExecutionHash string              `json:"executionHash,omitempty"`
	Status        types.AttemptStatus `json:"status"`
	Error         string              `json:"error,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}
