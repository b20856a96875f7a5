package identity

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/namebay/namebay/internal/ports"
	"github.com/namebay/namebay/pkg/cache"
	sdkhttp "github.com/namebay/namebay/pkg/sdk/http"
)

const accountEndpoint = "/api/v1/accounts/"

// Service resolves marketplace profiles for wallet addresses. Lookups are
// memoized; profile data moves slowly and the portfolio header re-renders a
// lot.
type Service struct {
	http  *sdkhttp.Client
	cache *cache.InMemoryCache[string, *ports.Account]
}

var _ ports.Identity = (*Service)(nil)

func NewService(baseURL string, timeout time.Duration) *Service {
	return &Service{
		http: sdkhttp.NewClient(baseURL, sdkhttp.Options{
			Timeout:    timeout,
			RetryCount: 1,
		}),
		cache: cache.NewInMemoryCache[string, *ports.Account](5 * time.Minute),
	}
}

// FetchAccount returns the profile for one address.
func (s *Service) FetchAccount(ctx context.Context, address string) (*ports.Account, error) {
	addr := strings.ToLower(strings.TrimSpace(address))
	if addr == "" {
		return nil, errors.New("identity: address is required")
	}

	if acct, ok := s.cache.Get(addr); ok {
		return acct, nil
	}

	var out struct {
		Data struct {
			Address string `json:"address"`
			Display string `json:"display"`
			Avatar  string `json:"avatar"`
		} `json:"data"`
		Success bool `json:"success"`
	}
	if _, err := s.http.Get(ctx, accountEndpoint+addr, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, errors.Errorf("identity: lookup failed for %s", addr)
	}

	acct := &ports.Account{
		Address:   out.Data.Address,
		Display:   out.Data.Display,
		Avatar:    out.Data.Avatar,
		UpdatedAt: time.Now(),
	}
	s.cache.Set(addr, acct, 0)
	return acct, nil
}
