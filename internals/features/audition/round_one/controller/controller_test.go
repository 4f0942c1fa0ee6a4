package controller

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"audition_backend/internals/testutil"
)

func TestEvaluateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp()
	app.Post("/evaluate", NewEvaluationController(db).Evaluate)
	u := testutil.CreateTestUser(t, db, testutil.UserOpts{})

	tests := []struct {
		name  string
		body  fiber.Map
		want  int
		field string
	}{
		{"missing finalSelection", fiber.Map{"userId": u.ID, "remarks": "x", "evaluatedBy": "p1"}, fiber.StatusBadRequest, "FinalSelection"},
		{"missing remarks", fiber.Map{"userId": u.ID, "finalSelection": true, "evaluatedBy": "p1"}, fiber.StatusBadRequest, "Remarks"},
		{"panel out of range", fiber.Map{"userId": u.ID, "finalSelection": true, "remarks": "x", "evaluatedBy": "p1", "panel": 7}, fiber.StatusBadRequest, "Panel"},
		{"missing user", fiber.Map{"finalSelection": true, "remarks": "x", "evaluatedBy": "p1"}, fiber.StatusBadRequest, ""},
		{"ok", fiber.Map{"userId": u.ID, "finalSelection": false, "remarks": "x", "evaluatedBy": "p1"}, fiber.StatusCreated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := testutil.Do(t, app, testutil.MakeRequest(http.MethodPost, "/evaluate", tt.body, ""), nil)
			if status != tt.want {
				t.Fatalf("Expected %d, got %d (%s)", tt.want, status, env.Message)
			}
			if tt.field != "" {
				if _, ok := env.Errors[tt.field]; !ok {
					t.Errorf("Expected validation error on %s, got %v", tt.field, env.Errors)
				}
			}
		})
	}
}

func TestCandidateList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp()
	app.Get("/candidate", NewCandidateController(db).List)

	testutil.CreateTestUser(t, db, testutil.UserOpts{UserName: "alice", HasGivenExam: true})
	testutil.CreateTestUser(t, db, testutil.UserOpts{UserName: "bob"})
	testutil.CreateTestAdmin(t, db)

	var rows []map[string]any
	status, env := testutil.Do(t, app, testutil.MakeRequest(http.MethodGet, "/candidate", nil, ""), &rows)
	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", status, env.Message)
	}
	if len(rows) != 2 {
		t.Errorf("Expected 2 candidates (admins excluded), got %d", len(rows))
	}

	rows = nil
	status, _ = testutil.Do(t, app, testutil.MakeRequest(http.MethodGet, "/candidate?has_given_exam=true", nil, ""), &rows)
	if status != fiber.StatusOK || len(rows) != 1 {
		t.Errorf("Expected 1 candidate who took the exam, got %d (status %d)", len(rows), status)
	}
}
