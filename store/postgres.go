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
	"database/sql"
	"embed"
	"fmt"
	"math/big"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/safenest-labs/safenest/model"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// PostgresStore is the server-side durable ledger variant. Each record is one
// row; the seq column numbers appends monotonically, so replays keep
// insertion order even when sessions interleave.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dns string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreWithDB wraps an existing connection. Used by tests.
func NewPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the embedded schema migrations.
func (s *PostgresStore) Migrate() (int, error) {
	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
	applied, err := migrate.Exec(s.db, "postgres", source, migrate.Up)
	if err != nil {
		return 0, errors.Wrap(err, "applying ledger migrations")
	}
	return applied, nil
}

func (s *PostgresStore) Load(ctx context.Context, accountID string) ([]*model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT transaction_id, vault_type, kind, amount, timestamp_ms, external_ref
		FROM safenest.transactions
		WHERE account_id = $1
		ORDER BY seq ASC`, accountID)
	if err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	defer func() {
		_ = rows.Close()
	}()

	var transactions []*model.Transaction
	for rows.Next() {
		var (
			transaction model.Transaction
			vaultType   int
			amount      string
		)
		err := rows.Scan(&transaction.TransactionID, &vaultType, &transaction.Kind, &amount, &transaction.Timestamp, &transaction.ExternalRef)
		if err != nil {
			return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
		}
		transaction.VaultType = model.VaultType(vaultType)
		value, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			quarantine(accountID, fmt.Errorf("unparseable amount %q on %s", amount, transaction.TransactionID))
			continue
		}
		transaction.Amount = value
		if err := transaction.Validate(); err != nil {
			quarantine(accountID, err)
			continue
		}
		transactions = append(transactions, &transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	if transactions == nil {
		transactions = []*model.Transaction{}
	}
	return transactions, nil
}

func (s *PostgresStore) Append(ctx context.Context, accountID string, transaction *model.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO safenest.transactions
			(account_id, transaction_id, vault_type, kind, amount, timestamp_ms, external_ref, schema_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		accountID, transaction.TransactionID, int(transaction.VaultType), string(transaction.Kind),
		transaction.Amount.String(), transaction.Timestamp, transaction.ExternalRef, SchemaVersion)
	if err != nil {
		return errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM safenest.transactions WHERE account_id = $1`, accountID)
	if err != nil {
		return errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	return nil
}
