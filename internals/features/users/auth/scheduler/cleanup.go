package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"audition_backend/internals/configs"
	authHelper "audition_backend/internals/helpers/auth"
)

const defaultBlacklistCron = "0 3 * * *" // tiap hari jam 03:00

// StartBlacklistCleanupScheduler: hapus token_blacklist yang sudah lewat expired_at.
// Jadwal dari TOKEN_BLACKLIST_CRON (format cron 5 field). Caller wajib Stop() saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB) (*cron.Cron, error) {
	spec := configs.GetEnv("TOKEN_BLACKLIST_CRON", defaultBlacklistCron)

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() { RunBlacklistCleanup(db) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[INFO] token_blacklist cleanup scheduled (%s)", spec)
	return c, nil
}

// RunBlacklistCleanup: satu kali jalan, dipakai cron & test.
func RunBlacklistCleanup(db *gorm.DB) int64 {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := authHelper.PurgeExpired(ctx, db)
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus token kadaluarsa: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	}
	return n
}
