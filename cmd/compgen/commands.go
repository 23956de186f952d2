package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/compgen/internal/adapters/cli"
	"github.com/3-lines-studio/compgen/internal/adapters/config"
	"github.com/3-lines-studio/compgen/internal/adapters/fs"
	"github.com/3-lines-studio/compgen/internal/adapters/watch"
	"github.com/3-lines-studio/compgen/internal/core"
	"github.com/3-lines-studio/compgen/internal/usecase"
)

var errGenerateFailed = errors.New("generation failed")

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render every component template once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys := fs.NewOSFileSystem()
		cfg, err := loadConfig(cmd, fsys)
		if err != nil {
			return err
		}

		output := cli.NewOutput()
		svc := newGenerateService(fsys, output, newLogger())

		result := svc.Generate(cmd.Context(), generateInput(cfg))
		if result.Error != nil {
			return fmt.Errorf("%w: %w", errGenerateFailed, result.Error)
		}
		output.PrintDone("Components generated")
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the registry or config changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys := fs.NewOSFileSystem()
		cfg, err := loadConfig(cmd, fsys)
		if err != nil {
			return err
		}

		logger := newLogger()
		output := cli.NewOutput()
		svc := usecase.NewWatchService(
			newGenerateService(fsys, output, logger),
			watch.NewFileWatcher(logger),
			fsys,
			output,
			logger,
		)

		configPath, err := filepath.Abs(opts.config)
		if err != nil {
			return err
		}

		output.PrintStep("", "Watching %s", cfg.Registry)
		return svc.Run(cmd.Context(), usecase.WatchInput{
			Generate: generateInput(cfg),
			Paths:    []string{configPath},
			Reload: func() (usecase.GenerateInput, error) {
				next, err := loadConfig(cmd, fsys)
				if err != nil {
					return usecase.GenerateInput{}, err
				}
				return generateInput(next), nil
			},
		})
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output := cli.NewOutput()
		output.PrintHeader("Compgen Init")

		if err := config.Create(fs.NewOSFileSystem(), opts.config, standaloneDefaults()); err != nil {
			return err
		}
		output.PrintFile(opts.config)
		output.PrintDone("Config created")
		return nil
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config and component registry for problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys := fs.NewOSFileSystem()
		output := cli.NewOutput()
		output.PrintHeader("Compgen Doctor")

		cfg, err := loadConfig(cmd, fsys)
		if err != nil {
			return err
		}
		output.PrintSuccess("Config %s", opts.config)

		svc := newGenerateService(fsys, output, newLogger())
		app, err := svc.LoadApp(cfg.Registry)
		if err != nil {
			return err
		}
		output.PrintSuccess("Registry %s (%d components, %d pages)", cfg.Registry, len(app.Components), len(app.Pages))

		warnings := core.CheckRegistry(app)
		for _, w := range warnings {
			output.PrintWarning("%s: %s", w.Subject, w.Message)
		}
		if len(warnings) == 0 {
			output.PrintDone("No problems found")
		}
		return nil
	},
}
