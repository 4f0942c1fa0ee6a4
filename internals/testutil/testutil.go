// Package testutil: DB sqlite sementara + fixture untuk test service/controller.
package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"audition_backend/internals/configs"
	"audition_backend/internals/constants"
	database "audition_backend/internals/databases"
	rTwoModel "audition_backend/internals/features/audition/round_two/model"
	qModel "audition_backend/internals/features/quiz/questions/model"
	userModel "audition_backend/internals/features/users/user/model"
	helper "audition_backend/internals/helpers"
	helperAuth "audition_backend/internals/helpers/auth"
)

const TestJWTSecret = "test-secret-do-not-use"

// SetupTestDB membuat database sqlite baru per test (file di t.TempDir) dengan skema lengkap.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "audition_test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// sqlite: satu koneksi supaya transaksi tidak saling kunci
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	configs.JWTSecret = TestJWTSecret
	configs.JWTTTL = time.Hour
	return db
}

type UserOpts struct {
	Email        string
	UserName     string
	Role         string
	Round        int
	HasGivenExam bool
}

// CreateTestUser: default kandidat round 1.
func CreateTestUser(t *testing.T, db *gorm.DB, opts UserOpts) *userModel.UserModel {
	t.Helper()

	if opts.Email == "" {
		opts.Email = "user-" + uuid.NewString()[:8] + "@example.com"
	}
	if opts.UserName == "" {
		opts.UserName = "candidate"
	}
	if opts.Role == "" {
		opts.Role = constants.RoleUser
	}
	if opts.Round == 0 {
		opts.Round = 1
	}

	u := userModel.UserModel{
		UserName: opts.UserName,
		Email:    opts.Email,
		Role:     opts.Role,
		Round:    opts.Round,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	if opts.HasGivenExam {
		if err := db.Model(&u).Update("has_given_exam", true).Error; err != nil {
			t.Fatalf("Failed to flag test user: %v", err)
		}
		u.HasGivenExam = true
	}
	return &u
}

func CreateTestAdmin(t *testing.T, db *gorm.DB) *userModel.UserModel {
	t.Helper()
	return CreateTestUser(t, db, UserOpts{UserName: "admin", Role: constants.RoleAdmin})
}

type OptionFixture struct {
	Text    string
	Correct bool
}

// CreateTestQuestion: soal + opsi (kosongkan opts untuk Descriptive).
func CreateTestQuestion(t *testing.T, db *gorm.DB, typ qModel.QuestionType, opts ...OptionFixture) *qModel.QuestionModel {
	t.Helper()

	q := qModel.QuestionModel{Description: "Question " + uuid.NewString()[:8], Type: typ}
	for _, o := range opts {
		q.Options = append(q.Options, qModel.OptionModel{Text: o.Text, IsCorrect: o.Correct})
	}
	if err := db.Create(&q).Error; err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return &q
}

// OptionByText: cari opsi fixture berdasarkan teks.
func OptionByText(t *testing.T, q *qModel.QuestionModel, text string) uuid.UUID {
	t.Helper()
	for _, o := range q.Options {
		if o.Text == text {
			return o.ID
		}
	}
	t.Fatalf("option %q not found on question %s", text, q.ID)
	return uuid.Nil
}

// CreateTestRoundTwo: baris round_twos (panel boleh nil).
func CreateTestRoundTwo(t *testing.T, db *gorm.DB, userID uuid.UUID, panel *int, status string) *rTwoModel.RoundTwoModel {
	t.Helper()

	rt := rTwoModel.RoundTwoModel{UserID: userID, Panel: panel, Status: status}
	if err := db.Create(&rt).Error; err != nil {
		t.Fatalf("Failed to create test round two: %v", err)
	}
	return &rt
}

// AssertFiberStatus: err harus *fiber.Error dengan kode tertentu.
func AssertFiberStatus(t *testing.T, err error, code int) {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fiber.Error with status %d, got %v", code, err)
	}
	if fe.Code != code {
		t.Fatalf("expected status %d, got %d (%s)", code, fe.Code, fe.Message)
	}
}

func IntPtr(v int) *int       { return &v }
func BoolPtr(v bool) *bool    { return &v }
func StrPtr(v string) *string { return &v }

// IssueTestToken: access token valid untuk user.
func IssueTestToken(t *testing.T, u *userModel.UserModel) string {
	t.Helper()
	tok, _, err := helperAuth.SignAccessToken(u.ID, u.Email, u.Role, u.UserName, TestJWTSecret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return tok
}

// WithIdentity: isi Locals seperti AuthMiddleware, untuk test controller tanpa JWT.
func WithIdentity(u *userModel.UserModel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, u.ID.String())
		c.Locals(helper.LocUserEmail, u.Email)
		c.Locals(helper.LocUserRole, u.Role)
		c.Locals(helper.LocUserName, u.UserName)
		return c.Next()
	}
}

// NewTestApp: fiber app dengan ErrorHandler & codec yang sama dengan main.
func NewTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.ErrorHandler,
	})
}

// MakeRequest membuat request JSON; token opsional (Bearer).
func MakeRequest(method, path string, body any, token string) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := sonic.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// Envelope: bentuk response standar helper.JsonOK / JsonError.
type Envelope struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	ErrorCode string            `json:"error_code"`
	Errors    map[string]string `json:"errors"`
	Data      json.RawMessage   `json:"data"`
}

// Do menjalankan request ke app lalu decode envelope; data di-decode ke dataOut kalau tidak nil.
func Do(t *testing.T, app *fiber.App, req *http.Request, dataOut any) (int, Envelope) {
	t.Helper()

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var env Envelope
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode body %q: %v", string(raw), err)
		}
	}
	if dataOut != nil && len(env.Data) > 0 {
		if err := sonic.Unmarshal(env.Data, dataOut); err != nil {
			t.Fatalf("decode data %q: %v", string(env.Data), err)
		}
	}
	return resp.StatusCode, env
}
