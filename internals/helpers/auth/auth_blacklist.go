package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "audition_backend/internals/features/users/auth/model"
)

// =========================================================
// LOW-LEVEL UTILS
// =========================================================

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil)) // cocok ke kolom TEXT
}

// =========================================================
// CORE API (token disimpan sebagai HMAC hex, bukan plaintext)
// =========================================================

// AddToBlacklist: idempotent (ON CONFLICT token → perpanjang expired_at).
func AddToBlacklist(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return nil
	}
	row := authModel.TokenBlacklist{
		Token:     hmacHex(rawAccessToken, jwtSecret),
		ExpiredAt: expiresAt.UTC(),
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
	}).Create(&row).Error
}

// IsBlacklisted: ada baris aktif dan belum expired?
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", hmacHex(rawAccessToken, jwtSecret), time.Now().UTC()).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired: hard delete baris yang sudah lewat.
func PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Where("expired_at <= ?", time.Now().UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
