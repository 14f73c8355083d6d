package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestStore returns a store backed by an in-memory Redis that is torn down
// with the test. The raw client and server are returned for seeding and
// inspecting keys.
func newTestStore(t *testing.T) (*IdempotencyStore, *redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewIdempotencyStore(client), client, mr
}
