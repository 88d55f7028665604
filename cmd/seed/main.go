package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/logger"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var (
	genres  = []string{"Fantasy", "Science Fiction", "History", "Science", "Mystery", "Romance", "Biography", "Philosophy"}
	authors = []string{"Ada Palmer", "Ted Chiang", "Mary Beard", "Carl Sagan", "Tana French", "Jane Austen", "Walter Isaacson", "Iris Murdoch"}
	words   = []string{"Silent", "Hidden", "River", "Empire", "Garden", "Winter", "Signal", "Harbor", "Atlas", "Ember"}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "seed",
		Usage: "Fill the configured store with sample books",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "Number of books to create", Value: 100},
			&cli.Int64Flag{Name: "seed", Usage: "Random seed, for repeatable data", Value: 1},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Setup(logger.Config{Level: cfg.Log.Level, Format: logger.ParseLogFormat(cfg.Log.Format)})

			repo, closeFn, err := book.OpenRepository(c.Context, cfg.DB)
			if err != nil {
				return err
			}
			defer closeFn()

			svc, err := book.NewService(repo, book.Mappings)
			if err != nil {
				return err
			}

			inputs := generateBooks(c.Int("count"), rand.New(rand.NewSource(c.Int64("seed"))))
			n, err := seed(c.Context, svc, inputs)
			if err != nil {
				return err
			}
			log.Info().Int("count", n).Str("driver", cfg.DB.Driver).Msg("seeded books")
			return nil
		},
	}
}

func generateBooks(count int, rng *rand.Rand) []book.CreateInput {
	inputs := make([]book.CreateInput, 0, count)
	for i := 0; i < count; i++ {
		genre := genres[rng.Intn(len(genres))]
		published := time.Date(1900+rng.Intn(125), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)
		title := fmt.Sprintf("The %s %s %d", words[rng.Intn(len(words))], words[rng.Intn(len(words))], i+1)

		inputs = append(inputs, book.CreateInput{
			Title:       title,
			Author:      authors[rng.Intn(len(authors))],
			Genre:       genre,
			Description: fmt.Sprintf("A %s book about the %s.", genre, words[rng.Intn(len(words))]),
			PublishDate: &published,
			Price:       float64(500+rng.Intn(4500)) / 100,
		})
	}
	return inputs
}

// seed creates every input through the service, so sample data obeys the same
// rules as API writes.
func seed(ctx context.Context, svc *book.Service, inputs []book.CreateInput) (int, error) {
	for i, in := range inputs {
		if _, err := svc.Create(ctx, in); err != nil {
			return i, fmt.Errorf("create book %d: %w", i+1, err)
		}
		if (i+1)%1000 == 0 {
			log.Info().Int("created", i+1).Int("total", len(inputs)).Msg("seeding")
		}
	}
	return len(inputs), nil
}
