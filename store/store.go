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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/safenest-labs/safenest/model"
)

// ErrStorageUnavailable signals that the storage medium itself is down. A
// missing ledger is not an error; it is a valid empty state.
var ErrStorageUnavailable = errors.New("ledger storage unavailable")

// LedgerStore is the durable, per-account, append-only home of transaction
// records. Implementations persist every append before returning
// (write-through), preserve insertion order, and never mutate or remove
// records except through Clear.
type LedgerStore interface {
	// Load returns the account's full record sequence in insertion order, or
	// an empty sequence when the account has no ledger yet.
	Load(ctx context.Context, accountID string) ([]*model.Transaction, error)
	// Append adds one record to the end of the account's sequence.
	Append(ctx context.Context, accountID string, transaction *model.Transaction) error
	// Clear irreversibly empties the account's sequence.
	Clear(ctx context.Context, accountID string) error
}

// SchemaVersion is the serialization envelope version. Bump when the record
// shape changes so older entries stay readable.
const SchemaVersion = 1

type envelope struct {
	Version int                `json:"v"`
	Record  *model.Transaction `json:"record"`
}

func encodeRecord(transaction *model.Transaction) ([]byte, error) {
	return json.Marshal(envelope{Version: SchemaVersion, Record: transaction})
}

// decodeRecord parses a stored envelope back into a record, validating its
// shape. Bare records written before the envelope existed are accepted too.
func decodeRecord(data []byte) (*model.Transaction, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Record == nil {
		var legacy model.Transaction
		if legacyErr := json.Unmarshal(data, &legacy); legacyErr != nil {
			return nil, fmt.Errorf("malformed ledger entry: %s", data)
		}
		env.Record = &legacy
	}
	if err := env.Record.Validate(); err != nil {
		return nil, err
	}
	return env.Record, nil
}

// quarantine logs a ledger entry that failed to parse or validate. The entry
// is skipped rather than allowed to poison a replay.
func quarantine(accountID string, err error) {
	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"error":      err,
	}).Warn("quarantined malformed ledger entry")
}
