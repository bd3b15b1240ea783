package main

import (
	"context"
	"oec/config"
	"oec/helper"
	"oec/infras/otel"
	"oec/infras/postgres"
	contentRepository "oec/internal/domains/content/repository"
	facilityRepository "oec/internal/domains/facility/repository"
	postRepository "oec/internal/domains/post/repository"
	"oec/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Seed target (dormitories/posts/contents/all) is required")
	}

	ctx := context.Background()
	db := postgres.New(cfg)
	ot := otel.New(cfg)

	defer func() {
		if err := ot.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}()

	target := os.Args[1]

	seeders := map[string]func() (int, error){
		"dormitories": func() (int, error) {
			return helper.SeedDormitories(ctx, facilityRepository.New(db, ot))
		},
		"posts": func() (int, error) {
			return helper.SeedPosts(ctx, postRepository.New(db, ot))
		},
		"contents": func() (int, error) {
			return helper.SeedContents(ctx, contentRepository.New(db, ot))
		},
	}

	order := []string{"dormitories", "posts", "contents"}

	if target != "all" {
		if _, ok := seeders[target]; !ok {
			log.Fatal().Str("target", target).Msg("Invalid target. Use 'dormitories', 'posts', 'contents' or 'all'")
		}

		order = []string{target}
	}

	for _, name := range order {
		count, err := seeders[name]()
		if err != nil {
			log.Fatal().Err(err).Str("target", name).Msg("Seeding failed")
		}

		log.Info().Str("target", name).Int("inserted", count).Msg("Seeding finished")
	}
}
