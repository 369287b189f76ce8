package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisConnOnce sync.Once
	redisServer   *miniredis.Miniredis
	redisConn     *redis.Client
)

// NewRedis starts one miniredis server for the whole suite and returns a client to it.
// Notifications published by the API can be received by subscribing on the same client.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisConn
}

// ClearRedis drops every key between scenarios. Pub/sub subscriptions are not keys
// and are closed by the scenario that opened them.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}

// CloseRedis shuts the shared server down.
func CloseRedis() {
	if redisConn != nil {
		_ = redisConn.Close()
	}
	if redisServer != nil {
		redisServer.Close()
	}
}
