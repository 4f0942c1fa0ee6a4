package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"audition_backend/internals/configs"
	roundOneModel "audition_backend/internals/features/audition/round_one/model"
	roundTwoModel "audition_backend/internals/features/audition/round_two/model"
	answerModel "audition_backend/internals/features/quiz/answers/model"
	questionModel "audition_backend/internals/features/quiz/questions/model"
	authModel "audition_backend/internals/features/users/auth/model"
	userModel "audition_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	// statement_timeout selaras dengan timeout request (5s) di main.go
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=audition&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Models: urutan migrasi (parent dulu).
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&questionModel.QuestionModel{},
		&questionModel.OptionModel{},
		&answerModel.AnswerModel{},
		&answerModel.QuizAttemptModel{},
		&roundOneModel.AuditionRoundModel{},
		&roundOneModel.ReviewModel{},
		&roundTwoModel.RoundTwoModel{},
		&roundTwoModel.RoundTwoReviewModel{},
	}
}

// AutoMigrate dipakai saat DB_AUTO_MIGRATE=true dan oleh test (sqlite).
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
