package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/domain"
	"quizforge/internal/logger"
	"quizforge/internal/repository"

	"go.uber.org/zap"
)

const seedFilePath = "config/seed_data/demo_quizzes.json"

type seedQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type seedQuiz struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedBy   string         `json:"created_by"`
	CourseID    string         `json:"course_id"`
	Questions   []seedQuestion `json:"questions"`
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting demo data seeding...")
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	data, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var seeds []seedQuiz
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatal("Failed to parse seed file", zap.Error(err))
	}

	quizRepo := repository.NewQuizDatabaseAdapter(db)

	seeded := 0
	for _, seed := range seeds {
		questions := make([]domain.Question, 0, len(seed.Questions))
		for _, q := range seed.Questions {
			questions = append(questions, domain.Question{
				Text:    q.Question,
				Options: q.Options,
				Answer:  q.Answer,
			})
		}

		quiz := domain.NewQuiz(seed.Title, seed.Description, seed.CreatedBy, seed.CourseID, questions)
		if err := quiz.Validate(); err != nil {
			log.Warn("Skipping invalid seed quiz", zap.String("title", seed.Title), zap.Error(err))
			continue
		}

		if err := quizRepo.SaveQuiz(ctx, quiz); err != nil {
			log.Fatal("Failed to save seed quiz", zap.String("title", seed.Title), zap.Error(err))
		}
		log.Info("Seeded quiz", zap.String("quiz_id", quiz.ID), zap.String("title", quiz.Title))
		seeded++
	}

	log.Info("Demo data seeding finished", zap.Int("quizzes", seeded))
}
