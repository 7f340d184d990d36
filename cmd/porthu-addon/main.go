// Command porthu-addon runs the Stremio catalog addon server.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	porthu "github.com/zmolnar/porthu-addon"
	"github.com/zmolnar/porthu-addon/catalog"
	"github.com/zmolnar/porthu-addon/goquery"
	porthuhttp "github.com/zmolnar/porthu-addon/http"
	"github.com/zmolnar/porthu-addon/metrics"
	porthuslog "github.com/zmolnar/porthu-addon/slog"
	"github.com/zmolnar/porthu-addon/trafilatura"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Listen        string        `short:"l" default:":7000" env:"PORT_HU_LISTEN" help:"Address to listen on"`
	TimeoutMS     int           `name:"timeout-ms" default:"12000" env:"PORT_HU_HTTP_TIMEOUT_MS" help:"Page fetch timeout in milliseconds"`
	CatalogLimit  int           `default:"50" env:"CATALOG_LIMIT" help:"Catalog page size (capped at 100)"`
	RPS           float64       `name:"rps" default:"2" env:"PORT_HU_RPS" help:"Per-domain request rate limit"`
	Concurrency   int           `short:"c" default:"8" env:"PORT_HU_CONCURRENCY" help:"Detail-page fetch concurrency"`
	EnrichLimit   int           `default:"50" env:"PORT_HU_ENRICH_LIMIT" help:"Detail-page fetch quota per catalog request"`
	LogLevel      string        `default:"info" enum:"debug,info,warn,error" env:"PORT_HU_LOG_LEVEL" help:"Log level"`
	ShutdownGrace time.Duration `default:"10s" help:"Graceful shutdown grace period"`
	DiscoverSeeds bool          `help:"Discover extra listing pages from the site's sitemaps and append them to the seed lists"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("porthu-addon"),
		kong.Description("Stremio catalog addon serving Port.hu movie and series listings"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := newLogger(stderr, cli.LogLevel)

	timeout := time.Duration(cli.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = porthuhttp.DefaultFetchTimeout
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Fetcher stack: HTTP transport, then metrics, then logging.
	var fetcher porthu.Fetcher = porthuhttp.NewFetcher(porthuhttp.WithTimeout(timeout))
	fetcher = metrics.NewInstrumentedFetcher(fetcher, reg)
	fetcher = porthuslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	seeds := catalog.DefaultSeeds()
	if cli.DiscoverSeeds {
		if err := appendDiscoveredSeeds(ctx, seeds, logger); err != nil {
			logger.Warn("seed discovery failed, using defaults", "err", err)
		}
	}

	limiter := catalog.NewDomainLimiter(cli.RPS)

	details := catalog.NewDetailService(fetcher)
	details.Limiter = limiter
	details.Descriptions = trafilatura.NewExtractor()

	service := &catalog.Service{
		Fetcher: fetcher,
		Extractors: []porthu.RowExtractor{
			goquery.NewJSONLDExtractor(),
			goquery.NewCardExtractor(),
		},
		Hints:       details,
		Limiter:     limiter,
		Seeds:       seeds,
		Concurrency: cli.Concurrency,
		EnrichLimit: cli.EnrichLimit,
	}

	var catalogService porthu.CatalogService = service
	catalogService = metrics.NewInstrumentedCatalogService(catalogService, reg)
	catalogService = porthuslog.NewLoggingCatalogService(catalogService, logger)

	server := porthuhttp.NewServer(cli.Listen, catalogService,
		porthuhttp.WithCatalogLimit(cli.CatalogLimit),
		porthuhttp.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		porthuhttp.WithLogger(logger),
	)

	if err := server.Open(); err != nil {
		return err
	}
	logger.Info("addon server listening", "addr", cli.Listen)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.ShutdownGrace)
	defer cancel()
	return server.Close(shutdownCtx)
}

var (
	movieSeedRe  = regexp.MustCompile(`/(film|mozi)(/|$)`)
	seriesSeedRe = regexp.MustCompile(`/(sorozat|tv)(/|$)`)
)

// appendDiscoveredSeeds extends the seed lists with listing pages found in
// the site's sitemaps, keyed by path to the matching content type.
func appendDiscoveredSeeds(ctx context.Context, seeds map[porthu.Type][]string, logger *slog.Logger) error {
	discoverer := porthuslog.NewLoggingSeedDiscoverer(porthuhttp.NewSeedDiscovery(nil), logger)

	filter := &porthu.URLFilter{
		Include: []*regexp.Regexp{movieSeedRe, seriesSeedRe},
		Exclude: []*regexp.Regexp{regexp.MustCompile(`/adatlap/`)},
	}

	urls, err := discoverer.DiscoverSeeds(ctx, "https://"+porthu.SourceName, filter)
	if err != nil {
		return err
	}

	for _, u := range urls {
		switch {
		case movieSeedRe.MatchString(u):
			seeds[porthu.TypeMovie] = appendSeed(seeds[porthu.TypeMovie], u)
		case seriesSeedRe.MatchString(u):
			seeds[porthu.TypeSeries] = appendSeed(seeds[porthu.TypeSeries], u)
		}
	}
	return nil
}

func appendSeed(list []string, u string) []string {
	for _, existing := range list {
		if existing == u {
			return list
		}
	}
	return append(list, u)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
