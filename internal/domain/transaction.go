package domain

import "time"

// Transaction is a materialized financial movement. Its balance effect is
// applied by the ledger when it is created and reverted when it is updated
// or deleted, so account balances always reflect the latest version only.
type Transaction struct {
	ID string
	MovementFields
	Timestamp time.Time
	CreatedAt time.Time
}
