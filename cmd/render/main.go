package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/bedwards/wdi-go/adapters/postgres"
	"github.com/bedwards/wdi-go/app"
	"github.com/bedwards/wdi-go/internal/config"
	"github.com/bedwards/wdi-go/ports"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var (
		storyName = flag.String("story", "", "render a single story by name (default: all)")
		outDir    = flag.String("out", appConfig.Output.Dir, "directory for rendered reports")
		search    = flag.String("search", "", "list indicators matching a name substring and exit")
	)
	flag.Parse()

	store, err := postgres.Open(appConfig.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if *search != "" {
		if err := listIndicators(store, *search); err != nil {
			log.Fatalf("Indicator search failed: %v", err)
		}
		return
	}

	analysis := app.NewAnalysis(store)

	selected := stories
	if *storyName != "" {
		selected = nil
		for _, story := range stories {
			if story.Name == *storyName {
				selected = []Story{story}
				break
			}
		}
		if selected == nil {
			log.Fatalf("Unknown story %q, available: %s", *storyName, strings.Join(storyNames(), ", "))
		}
	}

	g, ctx := errgroup.WithContext(context.Background())
	for _, story := range selected {
		g.Go(func() error {
			log.Printf("Rendering %s: %s", story.Name, story.Summary)
			if err := story.Run(ctx, analysis, *outDir); err != nil {
				return err
			}
			log.Printf("✓ Saved %s", story.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Rendering failed: %v", err)
	}
}

func storyNames() []string {
	names := make([]string, len(stories))
	for i, story := range stories {
		names[i] = story.Name
	}
	return names
}

// listIndicators prints catalog matches for a search term, handy for
// finding indicator codes when writing a new story.
func listIndicators(store *postgres.Store, search string) error {
	indicators, err := store.Indicators(context.Background(), ports.IndicatorFilter{Search: search})
	if err != nil {
		return err
	}
	for i := 0; i < indicators.Len(); i++ {
		row := indicators.Row(i)
		log.Printf("%-24s %s", row.String("indicator_code"), row.String("indicator_name"))
	}
	log.Printf("%d indicators match %q", indicators.Len(), search)
	return nil
}
