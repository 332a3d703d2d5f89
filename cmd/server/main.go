package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fadilmartias/interview-agent/internal/config"
	"github.com/fadilmartias/interview-agent/internal/domain/fiber/handler"
	"github.com/fadilmartias/interview-agent/internal/evaluation"
	"github.com/fadilmartias/interview-agent/internal/interview"
	"github.com/fadilmartias/interview-agent/internal/logger"
	"github.com/fadilmartias/interview-agent/internal/model"
	"github.com/fadilmartias/interview-agent/internal/repository"
	"github.com/fadilmartias/interview-agent/internal/room"
	"github.com/fadilmartias/interview-agent/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	zlog, err := logger.New(appConfig.Env)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer zlog.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	db := ConnectDB(zlog)
	questionRepo := repository.NewQuestionRepository(db)
	reportRepo := repository.NewSessionReportRepository(db)

	var llm evaluation.TextGenerator
	var embedder interview.Embedder
	gemini, err := service.NewGeminiService(ctx, zlog)
	if err != nil {
		zlog.Warn("gemini unavailable, answer evaluation will use keyword matching", zap.Error(err))
	} else {
		llm = gemini
		embedder = gemini
		SeedQuestionBank(ctx, questionRepo, gemini, zlog)
	}

	hub := room.NewHub(zlog)
	notifier := room.NewNotifier(hub, zlog)
	transcripts := service.NewTranscriptService(zlog)
	manager := interview.NewManager(llm, embedder, questionRepo, reportRepo, transcripts, notifier, zlog)

	h := handler.NewInterviewHandler(manager, hub, reportRepo, zlog)
	h.RegisterRoutes(app)

	zlog.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func ConnectDB(zlog *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Jakarta",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zlog.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.Question{}, &model.SessionReport{}); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	return db
}

// SeedQuestionBank inserts the default questions on an empty table.
// Embeddings are best effort: a question whose embedding fails is stored
// without one and only reachable by bank order.
func SeedQuestionBank(ctx context.Context, repo *repository.QuestionRepository, embedder interview.Embedder, zlog *zap.Logger) {
	count, err := repo.CountQuestions()
	if err != nil {
		zlog.Warn("question count failed, skipping seed", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	for _, q := range interview.DefaultQuestionBank() {
		question := q
		if values, err := embedder.GenerateEmbedding(ctx, question.Text); err == nil {
			question.Embedding = pgvector.NewVector(values)
		} else {
			zlog.Warn("question embedding failed", zap.String("category", question.Category), zap.Error(err))
		}
		if err := repo.CreateQuestion(&question); err != nil {
			zlog.Error("question seed insert failed", zap.Error(err))
		}
	}
	zlog.Info("question bank seeded")
}
