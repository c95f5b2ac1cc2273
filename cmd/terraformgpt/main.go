package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/meronimo/terraformgpt"
	"github.com/meronimo/terraformgpt/gemini"
	"github.com/meronimo/terraformgpt/goquery"
	"github.com/meronimo/terraformgpt/htmltomarkdown"
	tghttp "github.com/meronimo/terraformgpt/http"
	"github.com/meronimo/terraformgpt/ingest"
	"github.com/meronimo/terraformgpt/markdown"
	"github.com/meronimo/terraformgpt/registry"
	tgslog "github.com/meronimo/terraformgpt/slog"
	"github.com/meronimo/terraformgpt/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ResourceService  terraformgpt.ResourceService
	AttributeService terraformgpt.AttributeService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("terraformgpt"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'terraformgpt --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The selected command comes from the parse, not the raw arguments;
	// global flags like --verbose may precede the command name.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TERRAFORMGPT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ResourceService = sqlite.NewResourceService(m.DB)
	m.AttributeService = sqlite.NewAttributeService(m.DB)
	deps.DB = m.DB
	deps.Resources = m.ResourceService
	deps.Attributes = m.AttributeService

	logOutput := io.Discard
	if cli.Verbose {
		logOutput = stderr
	}
	logger := slog.New(slog.NewTextHandler(logOutput, nil))

	limiter := ingest.NewDomainLimiter(registryRequestsPerSecond)
	deps.Registry = tgslog.NewLoggingRegistryService(
		registry.NewClient(registry.WithLimiter(limiter)), logger)

	if cmd == "ingest" {
		fetcher := tgslog.NewLoggingFetcher(tghttp.NewFetcher(), logger)
		defer fetcher.Close()

		deps.Ingester = &ingest.Ingester{
			Registry:    deps.Registry,
			Resources:   m.ResourceService,
			Attributes:  m.AttributeService,
			Parser:      markdown.NewParser(),
			Fetcher:     fetcher,
			Extractor:   goquery.NewExtractor(),
			Converter:   htmltomarkdown.NewConverter(),
			Sitemaps:    tgslog.NewLoggingSitemapService(tghttp.NewSitemapService(nil), logger),
			Limiter:     limiter,
			Namespace:   cli.Ingest.Namespace,
			Concurrency: cli.Ingest.Concurrency,
			Force:       cli.Ingest.Force,
		}
	}

	if cmd == "explain" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		deps.Explainer = gemini.NewExplainer(client, m.ResourceService, m.AttributeService,
			cli.Explain.Model, gemini.WithTokenCounter(tokenCounter))
	}

	return kongCtx.Run(deps)
}

// registryRequestsPerSecond throttles requests to the public registry.
const registryRequestsPerSecond = 2.0

// tokenizerModel is used for token counting. Using gemini-2.5-flash until
// gemini-3-flash-preview is supported by google.golang.org/genai/tokenizer.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("TERRAFORMGPT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "terraformgpt.db"
	}
	dir := filepath.Join(home, ".terraformgpt")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "terraformgpt.db")
}
