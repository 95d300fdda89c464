package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vidshelf/vidshelf/internal/config"
	"github.com/vidshelf/vidshelf/internal/discover"
	"github.com/vidshelf/vidshelf/internal/fetch"
	"github.com/vidshelf/vidshelf/internal/gallery"
	"github.com/vidshelf/vidshelf/internal/index"
	"github.com/vidshelf/vidshelf/internal/source"
	"github.com/vidshelf/vidshelf/internal/tui"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "vidshelf",
		Short: "A TUI gallery for videos discovered from a remote site",
		Long: `Vidshelf discovers playable videos from a site's JSON manifest, falling
back to scraping its directory listing, and presents them as a gallery.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(os.Stderr)
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
		RunE: runTUI,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().Bool("plain", false, "List entries in plain text instead of launching TUI")
	rootCmd.Flags().Bool("json", false, "List entries as JSON instead of launching TUI")

	// List command (non-interactive discovery)
	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "Discover videos and list them in plain text",
		RunE:  runList,
	}
	lsCmd.Flags().Bool("json", false, "Output JSON")
	lsCmd.Flags().Bool("name-only", false, "Only print names")
	lsCmd.Flags().Int("limit", 0, "Limit number of entries (0 = unlimited)")

	// Index command
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Discover videos and cache them in the local index",
		RunE:  runIndex,
	}

	// Search command
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the local index for videos",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().Int("limit", 50, "Maximum number of results")
	searchCmd.Flags().Bool("json", false, "Output JSON")

	rootCmd.AddCommand(lsCmd, indexCmd, searchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildPipeline wires the fetch client, resolver, sources and pipeline
// from config.
func buildPipeline(cfg *config.Config) (*discover.Pipeline, gallery.Classifier) {
	client := fetch.New(cfg.RequestsPerSecond)
	resolver := gallery.NewResolver(cfg.VideoDir)
	norm := gallery.NewNormalizer(resolver)

	manifest := source.NewManifest(client, cfg.ManifestURL())
	listing := source.NewListing(client, cfg.ListingURL(), cfg.MediaExtension, norm)

	pipeline := discover.New(manifest, listing, norm, logrus.StandardLogger())
	classifier := gallery.NewClassifier(cfg.SensitiveMarker)
	return pipeline, classifier
}

func runTUI(cmd *cobra.Command, args []string) error {
	plainMode, _ := cmd.Flags().GetBool("plain")
	jsonMode, _ := cmd.Flags().GetBool("json")
	if plainMode || jsonMode || !isInteractiveTerminal() {
		return runList(cmd, args)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pipeline, classifier := buildPipeline(cfg)
	return tui.Run(pipeline, classifier, cfg.BaseURL)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pipeline, classifier := buildPipeline(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	entries, err := pipeline.Discover(ctx)
	if errors.Is(err, source.ErrNoMedia) {
		return fmt.Errorf("no manifest and no videos in the directory listing at %s", cfg.ListingURL())
	}
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	jsonMode, _ := cmd.Flags().GetBool("json")
	if jsonMode {
		return printJSON(entries, classifier)
	}

	if len(entries) == 0 {
		fmt.Println("No videos found.")
		return nil
	}

	nameOnly, _ := cmd.Flags().GetBool("name-only")
	for _, e := range entries {
		if nameOnly {
			fmt.Println(e.Name)
			continue
		}
		flag := " "
		if classifier.IsSensitive(e) {
			flag = "!"
		}
		fmt.Printf("%s\t%-40s\t%s\n", flag, e.Name, e.URL)
	}
	return nil
}

func printJSON(entries []gallery.VideoEntry, classifier gallery.Classifier) error {
	type entryOut struct {
		Name      string `json:"name"`
		URL       string `json:"url"`
		Poster    string `json:"poster,omitempty"`
		Sensitive bool   `json:"sensitive"`
	}
	out := struct {
		Count  int        `json:"count"`
		Videos []entryOut `json:"videos"`
	}{
		Count:  len(entries),
		Videos: make([]entryOut, 0, len(entries)),
	}
	for _, e := range entries {
		out.Videos = append(out.Videos, entryOut{
			Name:      e.Name,
			URL:       e.URL,
			Poster:    e.Poster,
			Sensitive: classifier.IsSensitive(e),
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pipeline, classifier := buildPipeline(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	entries, err := pipeline.Discover(ctx)
	if err != nil {
		return err
	}

	db, err := index.OpenDB(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	records := make([]index.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, index.Record{
			Name:      e.Name,
			URL:       e.URL,
			Poster:    e.Poster,
			Sensitive: classifier.IsSensitive(e),
		})
	}
	if err := db.ReplaceAll(records); err != nil {
		return fmt.Errorf("caching videos: %w", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Indexed %d videos (%d sensitive)\n", stats.Videos, stats.Sensitive)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	db, err := index.OpenDB(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	results, err := db.Search(query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	jsonMode, _ := cmd.Flags().GetBool("json")
	if jsonMode {
		out := struct {
			Query   string         `json:"query"`
			Count   int            `json:"count"`
			Results []index.Record `json:"results"`
		}{
			Query:   query,
			Count:   len(results),
			Results: results,
		}
		if out.Results == nil {
			out.Results = []index.Record{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		fmt.Println("Tip: Run 'vidshelf index' to build the local index first.")
		return nil
	}

	for _, r := range results {
		flag := " "
		if r.Sensitive {
			flag = "!"
		}
		fmt.Printf("%s\t%-40s\t%s\n", flag, r.Name, r.URL)
	}
	fmt.Fprintf(os.Stderr, "\n%d results found.\n", len(results))
	return nil
}

func isInteractiveTerminal() bool {
	inInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	outInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (inInfo.Mode()&os.ModeCharDevice) != 0 && (outInfo.Mode()&os.ModeCharDevice) != 0
}
