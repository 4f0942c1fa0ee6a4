package seeds

import (
	"log"

	"gorm.io/gorm"

	"audition_backend/internals/configs"
	questions "audition_backend/internals/seeds/quiz/questions"
	admins "audition_backend/internals/seeds/users/admins"
)

const questionsFile = "internals/seeds/quiz/questions/data_questions.json"

func RunAllSeeds(db *gorm.DB) {

	//* Quiz
	if _, err := questions.SeedQuestionsFromJSON(db, configs.GetEnv("SEED_QUESTIONS_FILE", questionsFile)); err != nil {
		log.Printf("❌ Seed soal gagal: %v", err)
	}

	//* Admin
	if _, err := admins.SeedAdmins(db, configs.AdminEmails); err != nil {
		log.Printf("❌ Seed admin gagal: %v", err)
	}
}
