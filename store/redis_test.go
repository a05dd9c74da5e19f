package store

import (
	"context"
	"math/big"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safenest-labs/safenest/model"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client), mr
}

func newTestTransaction(t *testing.T, vault model.VaultType, kind model.TransactionKind, amount int64) *model.Transaction {
	t.Helper()
	txn, err := model.NewTransaction(vault, kind, big.NewInt(amount), "0xhash")
	require.NoError(t, err)
	return txn
}

func TestRedisStore_LoadMissingAccountIsEmpty(t *testing.T) {
	s, _ := newTestRedisStore(t)

	transactions, err := s.Load(context.Background(), "0xnobody")
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestRedisStore_AppendPreservesInsertionOrder(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()
	account := "0xalice"

	first := newTestTransaction(t, model.VaultMicroSavings, model.TransactionDeposit, 1000)
	second := newTestTransaction(t, model.VaultMicroSavings, model.TransactionWithdraw, 400)
	third := newTestTransaction(t, model.VaultPensionNest, model.TransactionDeposit, 2000)

	require.NoError(t, s.Append(ctx, account, first))
	require.NoError(t, s.Append(ctx, account, second))
	require.NoError(t, s.Append(ctx, account, third))

	transactions, err := s.Load(ctx, account)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, first.TransactionID, transactions[0].TransactionID)
	assert.Equal(t, second.TransactionID, transactions[1].TransactionID)
	assert.Equal(t, third.TransactionID, transactions[2].TransactionID)
}

func TestRedisStore_AppendOnlyAddsOneRecordAtEnd(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()
	account := "0xalice"

	existing := newTestTransaction(t, model.VaultEmergency, model.TransactionDeposit, 100)
	require.NoError(t, s.Append(ctx, account, existing))
	before, err := s.Load(ctx, account)
	require.NoError(t, err)

	appended := newTestTransaction(t, model.VaultEmergency, model.TransactionWithdraw, 50)
	require.NoError(t, s.Append(ctx, account, appended))

	after, err := s.Load(ctx, account)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	for i := range before {
		assert.Equal(t, before[i], after[i])
	}
	assert.Equal(t, appended.TransactionID, after[len(after)-1].TransactionID)
}

func TestRedisStore_LoadIsIdempotent(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()
	account := "0xalice"

	require.NoError(t, s.Append(ctx, account, newTestTransaction(t, model.VaultMicroSavings, model.TransactionDeposit, 77)))

	first, err := s.Load(ctx, account)
	require.NoError(t, err)
	second, err := s.Load(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRedisStore_ClearResetsFully(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()
	account := "0xalice"

	require.NoError(t, s.Append(ctx, account, newTestTransaction(t, model.VaultMicroSavings, model.TransactionDeposit, 500)))
	require.NoError(t, s.Clear(ctx, account))

	transactions, err := s.Load(ctx, account)
	require.NoError(t, err)
	assert.Empty(t, transactions)

	snapshots, warnings := model.ComputeSnapshots(transactions)
	assert.Empty(t, warnings)
	for _, snapshot := range snapshots {
		assert.False(t, snapshot.IsActive)
		assert.Equal(t, 0, snapshot.CurrentBalance.Sign())
	}
}

func TestRedisStore_LedgersAreScopedPerAccount(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "0xalice", newTestTransaction(t, model.VaultMicroSavings, model.TransactionDeposit, 10)))
	require.NoError(t, s.Append(ctx, "0xbob", newTestTransaction(t, model.VaultMicroSavings, model.TransactionDeposit, 20)))

	alice, err := s.Load(ctx, "0xalice")
	require.NoError(t, err)
	bob, err := s.Load(ctx, "0xbob")
	require.NoError(t, err)

	require.Len(t, alice, 1)
	require.Len(t, bob, 1)
	assert.Equal(t, "10", alice[0].Amount.String())
	assert.Equal(t, "20", bob[0].Amount.String())

	require.NoError(t, s.Clear(ctx, "0xalice"))
	bob, err = s.Load(ctx, "0xbob")
	require.NoError(t, err)
	assert.Len(t, bob, 1)
}

func TestRedisStore_QuarantinesMalformedEntries(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()
	account := "0xalice"

	good := newTestTransaction(t, model.VaultMicroSavings, model.TransactionDeposit, 42)
	require.NoError(t, s.Append(ctx, account, good))
	_, err := mr.RPush(ledgerKey(account), "{not json")
	require.NoError(t, err)
	_, err = mr.RPush(ledgerKey(account), `{"v":1,"record":{"id":"txn_bad","vault_type":0,"kind":"deposit","amount":-5,"timestamp":1}}`)
	require.NoError(t, err)

	transactions, err := s.Load(ctx, account)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, good.TransactionID, transactions[0].TransactionID)
}

func TestRedisStore_UnavailableMedium(t *testing.T) {
	s, mr := newTestRedisStore(t)
	mr.Close()

	_, err := s.Load(context.Background(), "0xalice")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	err = s.Append(context.Background(), "0xalice", newTestTransaction(t, model.VaultMicroSavings, model.TransactionDeposit, 1))
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	err = s.Clear(context.Background(), "0xalice")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
