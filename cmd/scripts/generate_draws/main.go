package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/lottopantera/draw-engine/internal/config"
	mongorepo "github.com/lottopantera/draw-engine/internal/repositories/mongodb"
	"github.com/lottopantera/draw-engine/internal/services"
	"github.com/lottopantera/draw-engine/pkg/mongodb"
)

// Generates the draw schedule for a calendar date, same as the daily driver
// inside the API process. Useful for backfilling after downtime. Usage:
//
//	go run ./cmd/scripts/generate_draws [YYYY-MM-DD]
//
// Without an argument it generates for today in the configured timezone.
func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	location, err := time.LoadLocation(cfg.Draw.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", cfg.Draw.Timezone, err)
	}

	date := time.Now().In(location)
	if len(os.Args) > 1 {
		date, err = time.ParseInLocation("2006-01-02", os.Args[1], location)
		if err != nil {
			log.Fatalf("Invalid date %q, expected YYYY-MM-DD: %v", os.Args[1], err)
		}
	}

	client, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB.Database)

	templateRepo := mongorepo.NewTemplateRepository(db)
	drawRepo := mongorepo.NewDrawRepository(db)
	auditRepo := mongorepo.NewAuditRepository(db)
	pauseRepo := mongorepo.NewPauseRepository(db)
	systemConfigRepo := mongorepo.NewSystemConfigRepository(db)

	pauseService := services.NewPauseService(pauseRepo)
	systemConfigService := services.NewSystemConfigService(systemConfigRepo)
	generator := services.NewGeneratorService(templateRepo, drawRepo, auditRepo, pauseService, systemConfigService)

	draws, err := generator.GenerateForDate(context.Background(), date, "cli")
	if err != nil {
		log.Fatalf("Generation failed for %s: %v", date.Format("2006-01-02"), err)
	}

	log.Printf("Created %d draw(s) for %s", len(draws), date.Format("2006-01-02"))
}
