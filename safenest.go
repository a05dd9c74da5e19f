/*
Copyright 2026 SafeNest Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package safenest

import (
	"fmt"
	"time"

	"github.com/safenest-labs/safenest/config"
	"github.com/safenest-labs/safenest/gateway"
	"github.com/safenest-labs/safenest/internal/cache"
	"github.com/safenest-labs/safenest/internal/notification"
	redis_db "github.com/safenest-labs/safenest/internal/redis-db"
	"github.com/safenest-labs/safenest/store"
)

// SafeNest is the ledger replay engine: it records confirmed vault actions in
// a per-account append-only ledger and derives balance snapshots by replaying
// that ledger, without ever reading aggregate state from the chain.
type SafeNest struct {
	store   store.LedgerStore
	gateway gateway.VaultGateway
	cache   cache.Cache
}

// New wires a SafeNest from its collaborators. Any of store, gateway and
// cache may be a test double; the cache may be nil to disable snapshot
// caching.
func New(ledgerStore store.LedgerStore, vaultGateway gateway.VaultGateway, snapshotCache cache.Cache) *SafeNest {
	return &SafeNest{store: ledgerStore, gateway: vaultGateway, cache: snapshotCache}
}

// NewFromConfig builds a fully wired SafeNest from the loaded configuration:
// Redis-backed ledger (or Postgres when a data source DNS is configured)
// behind a failover wrapper, the HTTP vault gateway, and the snapshot cache.
func NewFromConfig(configuration *config.Configuration) (*SafeNest, error) {
	redisClient, err := redis_db.NewRedisClient([]string{fmt.Sprintf("redis://%s", configuration.Redis.Dns)})
	if err != nil {
		return nil, err
	}

	var primary store.LedgerStore
	if configuration.DataSource.Dns != "" {
		pg, err := store.NewPostgresStore(configuration.DataSource.Dns)
		if err != nil {
			return nil, err
		}
		primary = pg
	} else {
		primary = store.NewRedisStore(redisClient.Client())
	}
	ledgerStore := store.NewFailoverStore(primary, notification.NotifyError)

	vaultGateway := gateway.NewHTTPGateway(
		configuration.Gateway.Url,
		time.Duration(configuration.Gateway.TimeoutSec)*time.Second,
		configuration.Gateway.MaxRetries,
	)

	snapshotCache := cache.NewRedisCache(redisClient.Client())

	return New(ledgerStore, vaultGateway, snapshotCache), nil
}
