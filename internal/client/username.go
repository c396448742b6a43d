package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/puzpuzpuz/xsync"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// NameFetcher resolves one wallet address to a display name.
type NameFetcher interface {
	FetchName(ctx context.Context, address string) (string, error)
}

type inflightCall struct {
	done chan struct{}
	name string
	err  error
}

// UsernameResolver is a process-wide memoization table in front of a
// NameFetcher. Keys are lowercased addresses. Concurrent lookups for the
// same key share a single underlying fetch, and resolved names are kept for
// the lifetime of the process.
type UsernameResolver struct {
	fetcher NameFetcher
	cache   *xsync.MapOf[string, string]
	pending *xsync.MapOf[string, *inflightCall]
}

func NewUsernameResolver(fetcher NameFetcher) *UsernameResolver {
	return &UsernameResolver{
		fetcher: fetcher,
		cache:   xsync.NewMapOf[string](),
		pending: xsync.NewMapOf[*inflightCall](),
	}
}

func (r *UsernameResolver) Resolve(ctx context.Context, address string) (string, error) {
	key := strings.ToLower(address)
	if name, ok := r.cache.Load(key); ok {
		return name, nil
	}

	call := &inflightCall{done: make(chan struct{})}
	actual, loaded := r.pending.LoadOrStore(key, call)
	if loaded {
		// Another goroutine is already fetching this key, wait for it.
		select {
		case <-actual.done:
			return actual.name, actual.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	// The key may have resolved between the cache miss above and the store,
	// check once more before issuing a fetch.
	if name, ok := r.cache.Load(key); ok {
		call.name = name
		r.pending.Delete(key)
		close(call.done)
		return name, nil
	}

	call.name, call.err = r.fetcher.FetchName(ctx, key)
	if call.err == nil {
		r.cache.Store(key, call.name)
	}

	r.pending.Delete(key)
	close(call.done)

	return call.name, call.err
}

// Reset drops all cached and in-flight state.
func (r *UsernameResolver) Reset() {
	r.cache = xsync.NewMapOf[string]()
	r.pending = xsync.NewMapOf[*inflightCall]()
}

// repositoryNameFetcher reads display names from the users table. Unknown
// addresses resolve to a shortened form of the address itself.
type repositoryNameFetcher struct {
	userRepo repository.UserRepository
}

func NewRepositoryNameFetcher(userRepo repository.UserRepository) *repositoryNameFetcher {
	return &repositoryNameFetcher{userRepo: userRepo}
}

func (f *repositoryNameFetcher) FetchName(ctx context.Context, address string) (string, error) {
	user, err := f.userRepo.GetByWalletAddress(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shortenAddress(address), nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by wallet address: %v", err)
		return "", err
	}

	if user.Name == "" {
		return shortenAddress(address), nil
	}

	return user.Name, nil
}

func shortenAddress(address string) string {
	if len(address) <= 10 {
		return address
	}

	return fmt.Sprintf("%s...%s", address[:6], address[len(address)-4:])
}
