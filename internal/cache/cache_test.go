package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lala-site-api/models"
)

func samplePosts() []models.FeedItem {
	return []models.FeedItem{
		{ID: "1", Image: "https://cdn/1.jpg", Permalink: "https://instagram.com/p/1"},
		{ID: "2", Image: "https://cdn/2.jpg", Permalink: "https://instagram.com/p/2"},
	}
}

func TestMemoryStoreMissWhenEmpty(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get(context.Background())
	assert.False(t, ok)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	store.Set(context.Background(), samplePosts(), time.Minute)

	posts, ok := store.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, samplePosts(), posts)
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore()
	store.Set(context.Background(), samplePosts(), 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)

	_, ok := store.Get(context.Background())
	assert.False(t, ok)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	store.Set(context.Background(), samplePosts(), time.Minute)

	posts, ok := store.Get(context.Background())
	require.True(t, ok)
	posts[0].ID = "mutated"

	again, ok := store.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, "1", again[0].ID)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Set(context.Background(), samplePosts(), time.Minute)
		}()
		go func() {
			defer wg.Done()
			store.Get(context.Background())
		}()
	}
	wg.Wait()

	posts, ok := store.Get(context.Background())
	require.True(t, ok)
	assert.Len(t, posts, 2)
}
