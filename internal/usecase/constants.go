package usecase

import "time"

const (
	// DefaultEditWindow is how long an entry stays editable after creation.
	DefaultEditWindow = 12 * time.Hour

	// DefaultLockTimeout bounds how long an operation waits for account
	// locks before failing with domain.ErrConflict.
	DefaultLockTimeout = 2 * time.Second

	// maxBalanceRetries bounds the version-conflict retry loop inside
	// AdjustBalance. Exhaustion surfaces as domain.ErrConflict.
	maxBalanceRetries = 3
)
