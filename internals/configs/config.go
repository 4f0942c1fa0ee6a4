package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret      string
	JWTTTL         time.Duration
	GoogleClientID string
	FrontendURL    string
	AdminEmails    []string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env file not found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTTTL = time.Duration(GetEnvInt("JWT_TTL_HOURS", 24)) * time.Hour
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	FrontendURL = GetEnv("FRONTEND_URL", "http://localhost:3000")
	AdminEmails = SplitCSV(GetEnv("ADMIN_EMAILS"))

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
	if GoogleClientID == "" {
		log.Println("❌ GOOGLE_CLIENT_ID is not set, Google login disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// SplitCSV memecah "a@x.com, b@y.com" → ["a@x.com","b@y.com"] (lowercase, tanpa kosong)
func SplitCSV(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsAdminEmail: email terdaftar di ADMIN_EMAILS?
func IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

// =======================
// DATABASE CONNECTOR
// =======================
func InitSeederDB() *gorm.DB {
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		GetEnv("DB_USER"), GetEnv("DB_PASSWORD"), GetEnv("DB_HOST"),
		GetEnv("DB_PORT"), GetEnv("DB_NAME"), GetEnv("DB_SSLMODE", "require"))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Seeder DB connection failed: %v", err)
	}
	log.Println("✅ Database (Seeder) connected.")
	return db
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnvBool("DB_LOG_QUERIES", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && err != gorm.ErrRecordNotFound:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
