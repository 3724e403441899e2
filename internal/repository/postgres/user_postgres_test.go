package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/user-stream-service/internal/cache"
	"github.com/maxviazov/user-stream-service/internal/model"
	"github.com/maxviazov/user-stream-service/internal/repository"
)

func TestFetchPageCached_MissFetchesAndStores(t *testing.T) {
	pages, err := cache.New(16, time.Minute)
	require.NoError(t, err)
	defer pages.Close()

	key := cache.Fingerprint(selectUserPage, 2, 0)
	want := []model.User{{ID: "a", Age: 30}, {ID: "b", Age: 41}}

	fetches := 0
	fetch := func() ([]model.User, error) {
		fetches++
		return want, nil
	}

	got, err := fetchPageCached(pages, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, fetches)
	pages.Wait()

	// Second call with the same fingerprint is served from the cache.
	got, err = fetchPageCached(pages, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, fetches)

	// A different offset fingerprints differently and fetches again.
	_, err = fetchPageCached(pages, cache.Fingerprint(selectUserPage, 2, 2), fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestFetchPageCached_ErrorIsNotCached(t *testing.T) {
	pages, err := cache.New(16, time.Minute)
	require.NoError(t, err)
	defer pages.Close()

	key := cache.Fingerprint(selectUserPage, 5, 10)
	fetches := 0
	fetch := func() ([]model.User, error) {
		fetches++
		if fetches == 1 {
			return nil, repository.ErrQuery
		}
		return []model.User{{ID: "c"}}, nil
	}

	_, err = fetchPageCached(pages, key, fetch)
	require.ErrorIs(t, err, repository.ErrQuery)
	pages.Wait()

	// The failure must not have been admitted; the retry fetches again.
	got, err := fetchPageCached(pages, key, fetch)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, fetches)
}

func TestFetchPageCached_NilCacheAlwaysFetches(t *testing.T) {
	fetches := 0
	fetch := func() ([]model.User, error) {
		fetches++
		return []model.User{}, nil
	}

	for i := 0; i < 3; i++ {
		_, err := fetchPageCached(nil, "key", fetch)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, fetches)
}
