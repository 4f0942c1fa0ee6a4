package questions

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	qModel "audition_backend/internals/features/quiz/questions/model"
)

type OptionSeed struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionSeed struct {
	Description string       `json:"description"`
	Type        string       `json:"type"`
	Picture     *string      `json:"picture"`
	Options     []OptionSeed `json:"options"`
}

// SeedQuestionsFromJSON: idempotent by description (soal yang sama dilewati).
func SeedQuestionsFromJSON(db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Membaca file soal:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []QuestionSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return SeedQuestions(db, inputs)
}

func SeedQuestions(db *gorm.DB, inputs []QuestionSeed) (int, error) {
	inserted := 0
	for _, in := range inputs {
		desc := strings.TrimSpace(in.Description)
		t, ok := qModel.ParseQuestionType(in.Type)
		if desc == "" || !ok {
			log.Printf("⚠️ Soal tidak valid dilewati: %q (%s)", desc, in.Type)
			continue
		}

		var n int64
		if err := db.Model(&qModel.QuestionModel{}).Where("description = ?", desc).Count(&n).Error; err != nil {
			return inserted, err
		}
		if n > 0 {
			log.Printf("ℹ️ Soal '%s' sudah ada, dilewati.", desc)
			continue
		}

		q := qModel.QuestionModel{Description: desc, Type: t, Picture: in.Picture}
		if t.HasOptions() {
			for _, o := range in.Options {
				q.Options = append(q.Options, qModel.OptionModel{Text: strings.TrimSpace(o.Text), IsCorrect: o.IsCorrect})
			}
		}
		if err := db.Create(&q).Error; err != nil {
			return inserted, fmt.Errorf("insert %q: %w", desc, err)
		}
		inserted++
	}
	log.Printf("✅ %d soal baru ditambahkan", inserted)
	return inserted, nil
}
