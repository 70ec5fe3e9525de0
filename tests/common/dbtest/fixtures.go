//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal query surface fixtures need; both a pool and a
// transaction satisfy it.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, role, is_active) VALUES ($1, $2, $3, true) ON CONFLICT (email) WHERE is_active = true DO NOTHING",
		userID, email, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

func CreateTestStore(t *testing.T, db DBLike, merchantID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	storeID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO stores (id, merchant_id, name) VALUES ($1, $2, $3)",
		storeID, merchantID, name)
	require.NoError(t, err)

	return storeID
}

func CreateTestWallet(t *testing.T, db DBLike, userID uuid.UUID) uuid.UUID {
	t.Helper()

	walletID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO wallets (id, user_id, status, metadata) VALUES ($1, $2, 'available', '{}')",
		walletID, userID)
	require.NoError(t, err)

	return walletID
}

// CreateApprovedCoupon inserts a coupon that is immediately claimable.
func CreateApprovedCoupon(t *testing.T, db DBLike, storeID uuid.UUID, code string, maxRedemptions *int32) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO coupons (id, store_id, code, discount_type, discount_value, max_redemptions, is_active, metadata)
		VALUES ($1, $2, $3, 'fixed', 500, $4, true,
		        '{"approval": {"status": "approved", "history": [{"status": "approved"}]}}')`,
		couponID, storeID, code, maxRedemptions)
	require.NoError(t, err)

	return couponID
}

// CreateActiveSubscription gives the store an entitlement valid for a month.
func CreateActiveSubscription(t *testing.T, db DBLike, storeID uuid.UUID) uuid.UUID {
	t.Helper()

	subID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO store_subscriptions (id, store_id, status, current_period_start, current_period_end, grace_until)
		VALUES ($1, $2, 'active', now(), now() + interval '1 month', now() + interval '1 month')`,
		subID, storeID)
	require.NoError(t, err)

	return subID
}

func CreateBillingProfile(t *testing.T, db DBLike, storeID uuid.UUID, billingKey, customerKey string) uuid.UUID {
	t.Helper()

	profileID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO billing_profiles (id, store_id, billing_key, customer_key, status) VALUES ($1, $2, $3, $4, 'active')",
		profileID, storeID, billingKey, customerKey)
	require.NoError(t, err)

	return profileID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
