package helper_test

import (
	"context"
	"testing"
	"time"

	authModel "audition_backend/internals/features/users/auth/model"
	helperAuth "audition_backend/internals/helpers/auth"
	"audition_backend/internals/testutil"
)

func TestBlacklistLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	active := "token-active"
	stale := "token-stale"

	if err := helperAuth.AddToBlacklist(ctx, db, active, secret, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("AddToBlacklist failed: %v", err)
	}
	// idempotent
	if err := helperAuth.AddToBlacklist(ctx, db, active, secret, time.Now().Add(2*time.Hour)); err != nil {
		t.Fatalf("AddToBlacklist (again) failed: %v", err)
	}
	if err := helperAuth.AddToBlacklist(ctx, db, stale, secret, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("AddToBlacklist stale failed: %v", err)
	}

	if ok, err := helperAuth.IsBlacklisted(ctx, db, active, secret); err != nil || !ok {
		t.Errorf("Expected active token blacklisted, got %t (%v)", ok, err)
	}
	if ok, _ := helperAuth.IsBlacklisted(ctx, db, stale, secret); ok {
		t.Error("Expired blacklist entry must not block the token")
	}
	if ok, _ := helperAuth.IsBlacklisted(ctx, db, active, "other-secret"); ok {
		t.Error("Lookup with a different secret must not match")
	}

	var rows []authModel.TokenBlacklist
	db.Find(&rows)
	for _, r := range rows {
		if r.Token == active || r.Token == stale {
			t.Error("Raw tokens must never be stored")
		}
	}

	purged, err := helperAuth.PurgeExpired(ctx, db)
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("Expected 1 purged row, got %d", purged)
	}
	if ok, _ := helperAuth.IsBlacklisted(ctx, db, active, secret); !ok {
		t.Error("Active entry must survive purge")
	}
}
