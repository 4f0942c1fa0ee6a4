package dto

import (
	"strings"
	"testing"

	qModel "audition_backend/internals/features/quiz/questions/model"
)

func TestCreateQuestionRequestToModel(t *testing.T) {
	two := []OptionInput{{Text: "A", IsCorrect: true}, {Text: "B"}}

	tests := []struct {
		name    string
		req     CreateQuestionRequest
		wantErr string
		want    qModel.QuestionType
	}{
		{"mcq ok", CreateQuestionRequest{Description: "q", Type: "mcq", Options: two}, "", qModel.QuestionTypeMCQ},
		{"pictorial ok", CreateQuestionRequest{Description: "q", Type: "Pictorial", Options: two}, "", qModel.QuestionTypePictorial},
		{"descriptive ok", CreateQuestionRequest{Description: "q", Type: "DESCRIPTIVE"}, "", qModel.QuestionTypeDescriptive},
		{"unknown type", CreateQuestionRequest{Description: "q", Type: "essay"}, "type must be", ""},
		{"descriptive with options", CreateQuestionRequest{Description: "q", Type: "Descriptive", Options: two}, "cannot have options", ""},
		{"single option", CreateQuestionRequest{Description: "q", Type: "MCQ", Options: two[:1]}, "at least 2 options", ""},
		{"no correct option", CreateQuestionRequest{Description: "q", Type: "MCQ", Options: []OptionInput{{Text: "A"}, {Text: "B"}}}, "at least 1 correct", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, msg := tt.req.ToModel()
			if tt.wantErr != "" {
				if m != nil || !strings.Contains(msg, tt.wantErr) {
					t.Fatalf("Expected error containing %q, got model=%v msg=%q", tt.wantErr, m, msg)
				}
				return
			}
			if msg != "" || m == nil {
				t.Fatalf("Unexpected error: %q", msg)
			}
			if m.Type != tt.want {
				t.Errorf("Expected type %s, got %s", tt.want, m.Type)
			}
			if m.Type.HasOptions() && len(m.Options) != len(tt.req.Options) {
				t.Errorf("Expected %d options, got %d", len(tt.req.Options), len(m.Options))
			}
		})
	}
}

func TestFromQuestionModelHidesCorrectness(t *testing.T) {
	m := qModel.QuestionModel{
		Description: "Pick the gopher",
		Type:        qModel.QuestionTypePictorial,
		Options:     []qModel.OptionModel{{Text: "Gopher", IsCorrect: true}, {Text: "Cat"}},
	}
	out := FromQuestionModel(&m)
	if out.Type != "Pictorial" || len(out.Options) != 2 {
		t.Fatalf("Unexpected public question: %+v", out)
	}
	if out.Options[0].Text != "Gopher" {
		t.Errorf("Expected options kept in order, got %+v", out.Options)
	}
}
