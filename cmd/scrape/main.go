// Package main provides the LocalPulse scraper CLI. It fetches one
// registered source (or all of them), extracts event drafts and writes
// them out as JSON for review.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/localpulse/localpulse/internal/extractor"
	"github.com/localpulse/localpulse/internal/sources"
	"github.com/localpulse/localpulse/pkg/event"
	"github.com/localpulse/localpulse/pkg/logging"
)

// ScrapeResult is the JSON envelope written by the CLI.
type ScrapeResult struct {
	ScrapedAt   time.Time     `json:"scraped_at"`
	TotalEvents int           `json:"total_events"`
	Events      []event.Event `json:"events"`
}

func main() {
	output := flag.String("output", "scraped_events.json", "file to write extracted events to")
	csvOutput := flag.String("csv", "", "optional CSV export alongside the JSON output")
	configPath := flag.String("sources", "", "optional YAML sources config (defaults to the built-in registry)")
	list := flag.Bool("list", false, "list available sources and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <source|all>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := logging.SetupLogger(&logging.LogConfig{Level: "info", Format: "pretty", Console: true}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure logging: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetLogger("scrape")

	registry := sources.Default()
	if *configPath != "" {
		loaded, err := sources.Load(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load sources config")
		}
		registry = loaded
	}

	if *list {
		for _, s := range registry.All() {
			fmt.Printf("%-22s %s (%s)\n", s.Key, s.Name, s.URL)
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var targets []sources.Source
	if key := flag.Arg(0); key == "all" {
		targets = registry.All()
	} else {
		src, ok := registry.Lookup(key)
		if !ok {
			logger.Fatal().Str("source", key).Strs("available", registry.Keys()).Msg("Unknown source")
		}
		targets = []sources.Source{src}
	}

	client := sources.NewClient(sources.DefaultFetchConfig())
	ext := extractor.New()
	ctx := context.Background()

	var all []event.Event
	failures := 0
	for _, src := range targets {
		events, err := scrapeSource(ctx, client, ext, src)
		if err != nil {
			logger.Error().Err(err).Str("source", src.Key).Msg("Scrape failed")
			failures++
			continue
		}
		logger.Info().Str("source", src.Key).Int("events", len(events)).Msg("Scraped source")
		all = append(all, events...)
	}

	result := ScrapeResult{
		ScrapedAt:   time.Now().UTC(),
		TotalEvents: len(all),
		Events:      all,
	}
	if err := writeResult(*output, result); err != nil {
		logger.Fatal().Err(err).Str("path", *output).Msg("Failed to write output")
	}
	if *csvOutput != "" {
		if err := writeCSV(*csvOutput, all); err != nil {
			logger.Fatal().Err(err).Str("path", *csvOutput).Msg("Failed to write CSV output")
		}
	}

	printStats(all)
	logger.Info().
		Int("total", len(all)).
		Int("sources", len(targets)).
		Int("failures", failures).
		Str("output", *output).
		Msg("Scrape complete")

	// A page with nothing on it is a normal result; a source that could
	// not be fetched is not.
	if failures > 0 {
		os.Exit(1)
	}
}

func scrapeSource(ctx context.Context, client *sources.Client, ext *extractor.Extractor, src sources.Source) ([]event.Event, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	html, err := client.Fetch(fetchCtx, src.URL)
	if err != nil {
		return nil, err
	}
	return ext.Extract(html, src.Request())
}

func writeResult(path string, result ScrapeResult) error {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// csvHeader fixes the column order for CSV exports.
var csvHeader = []string{
	"name", "date", "time", "price", "price_category", "category",
	"venue_name", "location", "artists", "tags", "external_link", "source",
}

func writeCSV(path string, events []event.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range events {
		if err := w.Write(csvRow(e)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// csvRow flattens one event into the csvHeader column order. List
// fields are joined so the file stays one row per event.
func csvRow(e event.Event) []string {
	return []string{
		e.Name,
		e.Date,
		e.Time,
		strconv.FormatFloat(e.Price, 'f', -1, 64),
		string(e.PriceCategory),
		string(e.Category),
		e.VenueName,
		e.Location,
		e.Artists,
		strings.Join(e.Tags, ", "),
		e.ExternalLink,
		e.Source,
	}
}

func printStats(events []event.Event) {
	if len(events) == 0 {
		fmt.Println("No events extracted.")
		return
	}

	byCategory := make(map[event.Category]int)
	free := 0
	for _, e := range events {
		byCategory[e.Category]++
		if e.PriceCategory == event.PriceFree {
			free++
		}
	}

	fmt.Printf("Extracted %d events (%d free):\n", len(events), free)
	for category, count := range byCategory {
		fmt.Printf("  %-12s %d\n", category, count)
	}
}
