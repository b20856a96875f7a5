package ports

import (
	"context"
	"time"
)

// External collaborators the browsing core depends on but does not own.

// Account is a minimal identity profile.
type Account struct {
	Address   string
	Display   string
	Avatar    string
	UpdatedAt time.Time
}

// Identity resolves profile data for an address.
type Identity interface {
	FetchAccount(ctx context.Context, address string) (*Account, error)
}
