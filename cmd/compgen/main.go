package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/compgen/internal/adapters/cli"
	"github.com/3-lines-studio/compgen/internal/adapters/config"
	"github.com/3-lines-studio/compgen/internal/adapters/esbuild"
	"github.com/3-lines-studio/compgen/internal/adapters/fs"
	"github.com/3-lines-studio/compgen/internal/usecase"
)

type flags struct {
	config            string
	verbose           bool
	registry          string
	buildDir          string
	islands           bool
	serverPlaceholder string
	writeVirtual      bool
	noValidate        bool
}

var opts flags

var rootCmd = &cobra.Command{
	Use:           "compgen",
	Short:         "Generate component registration modules and type declarations",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.config, "config", "c", config.DefaultFile, "path to the config file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&opts.registry, "registry", "", "component registry JSON")
	pf.StringVar(&opts.buildDir, "build-dir", "", "directory generated files are written to")
	pf.BoolVar(&opts.islands, "islands", false, "enable component islands")
	pf.StringVar(&opts.serverPlaceholder, "server-placeholder", "", "file path of the server placeholder component")
	pf.BoolVar(&opts.writeVirtual, "write-virtual", true, "write in-memory templates to disk")
	pf.BoolVar(&opts.noValidate, "no-validate", false, "skip syntax validation of generated modules")

	rootCmd.AddCommand(generateCmd, watchCmd, initCmd, doctorCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// standaloneDefaults puts every template on disk. No in-process consumer reads
// the virtual store when running from the command line.
func standaloneDefaults() config.Config {
	cfg := config.Default()
	cfg.WriteVirtual = true
	return cfg
}

// loadConfig layers command-line flags over the config file and environment.
func loadConfig(cmd *cobra.Command, fsys fs.FileSystem) (config.Config, error) {
	cfg, err := config.LoadOver(fsys, opts.config, standaloneDefaults())
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("registry") {
		cfg.Registry = opts.registry
	}
	if changed("build-dir") {
		cfg.BuildDir = opts.buildDir
	}
	if changed("islands") {
		cfg.ComponentIslands = opts.islands
	}
	if changed("server-placeholder") {
		cfg.ServerPlaceholder = opts.serverPlaceholder
	}
	if changed("write-virtual") {
		cfg.WriteVirtual = opts.writeVirtual
	}
	if changed("no-validate") {
		cfg.Validate = !opts.noValidate
	}
	return cfg, nil
}

func generateInput(cfg config.Config) usecase.GenerateInput {
	return usecase.GenerateInput{
		Registry:     cfg.Registry,
		Options:      cfg.BuildOptions(),
		WriteVirtual: cfg.WriteVirtual,
		Validate:     cfg.Validate,
	}
}

func newGenerateService(fsys fs.FileSystem, output *cli.Output, logger *slog.Logger) *usecase.GenerateService {
	return usecase.NewGenerateService(fsys, fs.NewMemFileSystem(), esbuild.NewValidator(), output, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output := cli.NewOutput()
		output.PrintError("%v", err)
		stop()
		os.Exit(1)
	}
}
