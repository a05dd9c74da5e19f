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

package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/safenest-labs/safenest/model"
)

// RedisStore keeps each account's ledger as a Redis list, one JSON envelope
// per element. Appends are RPUSH, so concurrent sessions for the same account
// interleave records instead of overwriting each other's sequences.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func ledgerKey(accountID string) string {
	return fmt.Sprintf("safenest:ledger:%s", accountID)
}

func (s *RedisStore) Load(ctx context.Context, accountID string) ([]*model.Transaction, error) {
	entries, err := s.client.LRange(ctx, ledgerKey(accountID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}

	transactions := make([]*model.Transaction, 0, len(entries))
	for _, entry := range entries {
		transaction, err := decodeRecord([]byte(entry))
		if err != nil {
			quarantine(accountID, err)
			continue
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

func (s *RedisStore) Append(ctx context.Context, accountID string, transaction *model.Transaction) error {
	payload, err := encodeRecord(transaction)
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, ledgerKey(accountID), payload).Err(); err != nil {
		return errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, accountID string) error {
	if err := s.client.Del(ctx, ledgerKey(accountID)).Err(); err != nil {
		return errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	return nil
}
