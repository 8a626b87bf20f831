package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"checkflow/internal/cache"
	"checkflow/internal/catalog"
	"checkflow/internal/config"
	"checkflow/internal/repository"
	"checkflow/internal/service"
	"checkflow/internal/transport/rest"
	"checkflow/internal/transport/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()
	ctx := context.Background()

	mongoClient := mustMongo(ctx, cfg.MongoURI)
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDatabase)

	rdb := mustRedis(ctx, cfg.RedisAddr)
	defer rdb.Close()

	questions := loadQuestions(cfg)
	templates := loadTemplates(cfg, db)

	checklistRepo := repository.NewChecklistRepo(db)
	sessionStore := cache.NewSessionStore(rdb, cfg.SessionTTL)
	suggestionCache := cache.NewSuggestionCache(rdb)

	wsHub := ws.NewHub()

	sessionSvc := service.NewSessionService(sessionStore, questions)
	sessionSvc.SetSuggestionCache(suggestionCache)
	sessionSvc.SetBroadcaster(wsHub)

	suggestionSvc := service.NewSuggestionService(service.DefaultWeights(), templates)
	suggestionSvc.SetCache(suggestionCache)

	checklistSvc := service.NewChecklistService(sessionSvc, templates, service.NewMergeService(), checklistRepo)

	router := rest.NewRouter(&rest.Container{
		AuthService:       service.NewAuthService(cfg),
		SessionService:    sessionSvc,
		SuggestionService: suggestionSvc,
		ChecklistService:  checklistSvc,
		Templates:         templates,
		ChecklistRepo:     checklistRepo,
		WSHub:             wsHub,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("checkflow listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown:", err)
	}
	log.Println("Server exited")
}

func mustMongo(ctx context.Context, uri string) *mongo.Client {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")
	return client
}

func mustRedis(ctx context.Context, addr string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")
	return rdb
}

// loadQuestions returns the built-in question flow unless a YAML
// catalog is configured.
func loadQuestions(cfg *config.Config) *catalog.Questions {
	if cfg.QuestionCatalogPath == "" {
		return catalog.DefaultQuestions()
	}
	questions, err := catalog.LoadQuestionsFile(cfg.QuestionCatalogPath)
	if err != nil {
		log.Fatal("Failed to load question catalog:", err)
	}
	log.Printf("Loaded %d questions from %s", questions.Len(), cfg.QuestionCatalogPath)
	return questions
}

// loadTemplates serves templates from the Mongo collection seeded by
// cmd/seed, or from a YAML catalog when one is configured.
func loadTemplates(cfg *config.Config, db *mongo.Database) catalog.TemplateSource {
	if cfg.TemplateCatalogPath == "" {
		return repository.NewTemplateRepo(db)
	}
	templates, err := catalog.LoadTemplatesFile(cfg.TemplateCatalogPath)
	if err != nil {
		log.Fatal("Failed to load template catalog:", err)
	}
	log.Printf("Loaded %d templates from %s", len(templates), cfg.TemplateCatalogPath)
	return catalog.NewStaticTemplates(templates)
}
