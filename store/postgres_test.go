package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safenest-labs/safenest/model"
)

func newTestPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStoreWithDB(db), mock
}

func TestPostgresStore_Append(t *testing.T) {
	s, mock := newTestPostgresStore(t)
	txn := newTestTransaction(t, model.VaultPensionNest, model.TransactionDeposit, 2000)

	mock.ExpectExec("INSERT INTO safenest.transactions").
		WithArgs("0xalice", txn.TransactionID, int(txn.VaultType), string(txn.Kind),
			txn.Amount.String(), txn.Timestamp, txn.ExternalRef, SchemaVersion).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.Append(context.Background(), "0xalice", txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadOrdersBySequence(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	rows := sqlmock.NewRows([]string{"transaction_id", "vault_type", "kind", "amount", "timestamp_ms", "external_ref"}).
		AddRow("txn_1", 0, "deposit", "1000000000000000000", int64(1700000000000), "0xaaa").
		AddRow("txn_2", 0, "withdraw", "300000000000000000", int64(1700000000500), "0xbbb")

	mock.ExpectQuery("SELECT transaction_id, vault_type, kind, amount, timestamp_ms, external_ref").
		WithArgs("0xalice").
		WillReturnRows(rows)

	transactions, err := s.Load(context.Background(), "0xalice")
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "txn_1", transactions[0].TransactionID)
	assert.Equal(t, model.TransactionDeposit, transactions[0].Kind)
	assert.Equal(t, "1000000000000000000", transactions[0].Amount.String())
	assert.Equal(t, "txn_2", transactions[1].TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadMissingAccountIsEmpty(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectQuery("SELECT transaction_id, vault_type, kind, amount, timestamp_ms, external_ref").
		WithArgs("0xnobody").
		WillReturnRows(sqlmock.NewRows([]string{"transaction_id", "vault_type", "kind", "amount", "timestamp_ms", "external_ref"}))

	transactions, err := s.Load(context.Background(), "0xnobody")
	require.NoError(t, err)
	assert.NotNil(t, transactions)
	assert.Empty(t, transactions)
}

func TestPostgresStore_LoadQuarantinesBadRows(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	rows := sqlmock.NewRows([]string{"transaction_id", "vault_type", "kind", "amount", "timestamp_ms", "external_ref"}).
		AddRow("txn_good", 1, "deposit", "500", int64(1700000000000), "0xaaa").
		AddRow("txn_badamount", 1, "deposit", "not-a-number", int64(1700000000001), "0xbbb").
		AddRow("txn_badvault", 9, "deposit", "500", int64(1700000000002), "0xccc")

	mock.ExpectQuery("SELECT transaction_id, vault_type, kind, amount, timestamp_ms, external_ref").
		WithArgs("0xalice").
		WillReturnRows(rows)

	transactions, err := s.Load(context.Background(), "0xalice")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "txn_good", transactions[0].TransactionID)
}

func TestPostgresStore_Clear(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectExec("DELETE FROM safenest.transactions WHERE account_id").
		WithArgs("0xalice").
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := s.Clear(context.Background(), "0xalice")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UnavailableMedium(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectQuery("SELECT transaction_id").WillReturnError(assert.AnError)
	_, err := s.Load(context.Background(), "0xalice")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	mock.ExpectExec("INSERT INTO safenest.transactions").WillReturnError(assert.AnError)
	err = s.Append(context.Background(), "0xalice", newTestTransaction(t, model.VaultMicroSavings, model.TransactionDeposit, 1))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
