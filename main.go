package main

import (
	"encoding/json"
	"fmt"
	"os"

	"skupick/internal/catalog"
	"skupick/internal/model"
	"skupick/internal/report"
	"skupick/internal/sku"
	"skupick/internal/tui"
	"skupick/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	_ = godotenv.Load()
}

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      model.RepoOwner,
		Repository: model.RepoName,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Printf("👉 Download it from https://github.com/%s/%s/releases\n", model.RepoOwner, model.RepoName)
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(level string, jsonOutput bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	if jsonOutput {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: skupick [options]\n\n")
		fmt.Fprintf(os.Stderr, "skupick is a product variant picker.\n")
		fmt.Fprintf(os.Stderr, "It shows which attribute values can still be chosen and which variant\n")
		fmt.Fprintf(os.Stderr, "the current selection resolves to.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  skupick                         # Pick from the demo catalog (TUI)\n")
		fmt.Fprintf(os.Stderr, "  skupick -c shirt.json           # Pick from a catalog file\n")
		fmt.Fprintf(os.Stderr, "  skupick -c shirt.json -s navy-m # Open with a variant restored\n")
		fmt.Fprintf(os.Stderr, "  skupick --report -v             # Print the selection report\n")
		fmt.Fprintf(os.Stderr, "  skupick --json                  # Output the selection state as JSON\n")
		fmt.Fprintf(os.Stderr, "  skupick --web --addr :9090      # Serve the picker API\n")
	}

	catalogFlag := pflag.StringP("catalog", "c", envOr("SKUPICK_CATALOG", ""), "Catalog JSON file (default: built-in demo catalog)")
	selectFlag := pflag.StringP("select", "s", "", "Restore the variant with this id")
	jsonFlag := pflag.BoolP("json", "j", false, "Output the selection state as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Print a selection report (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save report to the specified file (combined with --report)")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include every variant in the report")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode")
	addrFlag := pflag.String("addr", envOr("SKUPICK_ADDR", ":8080"), "Listen address for Web Mode")
	logLevelFlag := pflag.String("log-level", envOr("SKUPICK_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	logJSONFlag := pflag.Bool("log-json", false, "Log as JSON")
	debugLogFlag := pflag.String("debug-log", "", "Write TUI debug output to this file")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("skupick version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	logger, err := newLogger(*logLevelFlag, *logJSONFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --log-level: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if *webFlag {
		c, err := loadCatalog(*catalogFlag, *selectFlag)
		if err != nil {
			logger.Fatal("could not load catalog", zap.Error(err))
		}
		if err := web.StartServer(*addrFlag, c, logger); err != nil {
			logger.Fatal("web server stopped", zap.Error(err))
		}
		return
	}

	if *reportFlag {
		runReportMode(logger, *catalogFlag, *selectFlag, *outputFlag, *verboseFlag)
		return
	}

	if *jsonFlag {
		runJsonMode(logger, *catalogFlag, *selectFlag)
		return
	}

	// Default: TUI
	runTuiMode(*catalogFlag, *selectFlag, *debugLogFlag)
}

func loadCatalog(path, selected string) (*catalog.Catalog, error) {
	c := catalog.Demo()
	if path != "" {
		var err error
		if c, err = catalog.Load(path); err != nil {
			return nil, err
		}
	}
	if selected != "" {
		c.Selected = selected
	}
	return c, nil
}

func bindCatalog(logger *zap.Logger, path, selected string) (*catalog.Catalog, *sku.Selector) {
	c, err := loadCatalog(path, selected)
	if err != nil {
		logger.Fatal("could not load catalog", zap.Error(err))
	}
	sel := sku.New()
	if err := c.Bind(sel); err != nil {
		logger.Fatal("could not bind catalog", zap.String("catalog", c.Name), zap.Error(err))
	}
	return c, sel
}

func runReportMode(logger *zap.Logger, path, selected, outputFile string, verbose bool) {
	c, sel := bindCatalog(logger, path, selected)
	text := report.Generate(sel, c.Name, verbose)

	if outputFile != "" {
		err := os.WriteFile(outputFile, []byte(text), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
	} else {
		fmt.Println(text)
	}
}

func runJsonMode(logger *zap.Logger, path, selected string) {
	c, sel := bindCatalog(logger, path, selected)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report.Take(sel, c.Name, true)); err != nil {
		logger.Fatal("could not encode state", zap.Error(err))
	}
}

func runTuiMode(path, selected, debugLog string) {
	if debugLog != "" {
		f, err := tea.LogToFile(debugLog, "skupick")
		if err != nil {
			fmt.Printf("Could not open debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	m := tui.InitialModel(path)
	m.Restore = selected
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
