package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/mohamedkhaled004/school-academy-backend/internal/config"
	"github.com/mohamedkhaled004/school-academy-backend/internal/database"
	"github.com/mohamedkhaled004/school-academy-backend/internal/logger"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
)

func main() {
	classID := flag.Int("class", 0, "class ID to generate codes for")
	count := flag.Int("count", 50, "number of codes to generate")
	price := flag.Float64("price", 0, "price recorded on each code")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *classID <= 0 {
		log.Fatal().Msg("Usage: seed-codes -class <id> [-count N] [-price P]")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	classRepo := repository.NewClassRepository(pool)
	codeRepo := repository.NewAccessCodeRepository(pool)
	codeService := service.NewAccessCodeService(codeRepo, classRepo, log)

	fmt.Printf("=== Generating %d access codes for class %d ===\n", *count, *classID)

	codes, err := codeService.Generate(ctx, *classID, *count, *price)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			log.Fatal().Int("class_id", *classID).Msg("Class does not exist")
		}
		log.Fatal().Err(err).Msg("Failed to generate codes")
	}

	for i, code := range codes {
		fmt.Println(code.Code)
		if (i+1)%10 == 0 {
			log.Info().Int("generated", i+1).Msg("Progress")
		}
	}

	fmt.Printf("\nSeed completed! Successfully generated %d/%d codes.\n", len(codes), *count)
}
