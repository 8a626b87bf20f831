package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"checkflow/internal/catalog"
	"checkflow/internal/config"
	"checkflow/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	repo := repository.NewTemplateRepo(db)

	templates := catalog.BuiltinTemplates()
	if cfg.TemplateCatalogPath != "" {
		templates, err = catalog.LoadTemplatesFile(cfg.TemplateCatalogPath)
		if err != nil {
			log.Fatalf("Failed to load template catalog: %v", err)
		}
	}

	for _, template := range templates {
		if err := repo.Upsert(ctx, template); err != nil {
			log.Fatalf("Failed to seed template %s: %v", template.ID, err)
		}
		fmt.Printf("Seeded template %s (%s/%s)\n", template.ID, template.ServiceType, template.PropertyType)
	}

	fmt.Printf("Done, %d templates seeded\n", len(templates))
}
