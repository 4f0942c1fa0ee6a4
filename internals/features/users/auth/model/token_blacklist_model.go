package model

import "time"

// TokenBlacklist: access token yang sudah logout, disimpan sebagai HMAC hex
// sampai expired_at lewat (lalu dihapus cron cleanup).
type TokenBlacklist struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Token     string    `gorm:"column:token;type:text;not null;uniqueIndex:uq_token_blacklist_token" json:"-"`
	ExpiredAt time.Time `gorm:"column:expired_at;not null;index:idx_token_blacklist_expired_at" json:"expiredAt"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (TokenBlacklist) TableName() string { return "token_blacklist" }
