package scheduler

import (
	"context"
	"testing"
	"time"

	authHelper "audition_backend/internals/helpers/auth"
	"audition_backend/internals/testutil"
)

func TestRunBlacklistCleanup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_ = authHelper.AddToBlacklist(ctx, db, "old-1", testutil.TestJWTSecret, time.Now().Add(-time.Hour))
	_ = authHelper.AddToBlacklist(ctx, db, "old-2", testutil.TestJWTSecret, time.Now().Add(-time.Minute))
	_ = authHelper.AddToBlacklist(ctx, db, "fresh", testutil.TestJWTSecret, time.Now().Add(time.Hour))

	if n := RunBlacklistCleanup(db); n != 2 {
		t.Errorf("Expected 2 rows purged, got %d", n)
	}
	if n := RunBlacklistCleanup(db); n != 0 {
		t.Errorf("Expected nothing left to purge, got %d", n)
	}
}

func TestStartBlacklistCleanupScheduler(t *testing.T) {
	db := testutil.SetupTestDB(t)

	t.Setenv("TOKEN_BLACKLIST_CRON", "not a cron")
	if _, err := StartBlacklistCleanupScheduler(db); err == nil {
		t.Error("Expected invalid cron spec to fail")
	}

	t.Setenv("TOKEN_BLACKLIST_CRON", "*/5 * * * *")
	c, err := StartBlacklistCleanupScheduler(db)
	if err != nil {
		t.Fatalf("StartBlacklistCleanupScheduler failed: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("Expected one scheduled entry, got %d", len(c.Entries()))
	}
	<-c.Stop().Done()
}
