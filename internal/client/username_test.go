package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls atomic.Int64
	delay time.Duration
}

func (f *countingFetcher) FetchName(ctx context.Context, address string) (string, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	return "name-of-" + address, nil
}

func Test_UsernameResolver_SingleFlight(t *testing.T) {
	fetcher := &countingFetcher{delay: 50 * time.Millisecond}
	resolver := NewUsernameResolver(fetcher)

	const concurrency = 16
	names := make([]string, concurrency)
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := resolver.Resolve(context.Background(), "0xABCD")
			require.NoError(t, err)
			names[i] = name
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), fetcher.calls.Load())
	for _, name := range names {
		require.Equal(t, "name-of-0xabcd", name)
	}

	// Served from cache afterwards.
	name, err := resolver.Resolve(context.Background(), "0xabcd")
	require.NoError(t, err)
	require.Equal(t, "name-of-0xabcd", name)
	require.Equal(t, int64(1), fetcher.calls.Load())
}

func Test_UsernameResolver_FetchOnceUnderChurn(t *testing.T) {
	fetcher := &countingFetcher{delay: time.Millisecond}
	resolver := NewUsernameResolver(fetcher)

	// Repeated lookups racing with the first resolution must never re-fetch
	// an already resolved key.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				name, err := resolver.Resolve(context.Background(), "0xABCD")
				if err != nil || name != "name-of-0xabcd" {
					t.Errorf("unexpected result %q, %v", name, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), fetcher.calls.Load())
}

func Test_UsernameResolver_Reset(t *testing.T) {
	fetcher := &countingFetcher{}
	resolver := NewUsernameResolver(fetcher)

	_, err := resolver.Resolve(context.Background(), "0xabcd")
	require.NoError(t, err)

	resolver.Reset()

	_, err = resolver.Resolve(context.Background(), "0xabcd")
	require.NoError(t, err)
	require.Equal(t, int64(2), fetcher.calls.Load())
}

func Test_repositoryNameFetcher_FetchName(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()
	fetcher := NewRepositoryNameFetcher(userRepo)

	err := userRepo.Create(ctx, &entity.User{
		Base:          entity.Base{ID: "user1"},
		WalletAddress: "0xaaaa567890aaaa567890aaaa567890aaaa567890",
		Name:          "alice",
	})
	require.NoError(t, err)

	name, err := fetcher.FetchName(ctx, "0xaaaa567890aaaa567890aaaa567890aaaa567890")
	require.NoError(t, err)
	require.Equal(t, "alice", name)

	// Unknown addresses fall back to the shortened address form.
	name, err = fetcher.FetchName(ctx, "0xbbbb567890bbbb567890bbbb567890bbbb567890")
	require.NoError(t, err)
	require.Equal(t, "0xbbbb...7890", name)
}
