package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/compgen/internal/adapters/cli"
	"github.com/3-lines-studio/compgen/internal/core"
)

var (
	ErrRegistryNotFound = errors.New("component registry not found")
	ErrValidation       = errors.New("generated files failed validation")
)

type GenerateInput struct {
	// Registry is read when App is nil.
	Registry     string
	App          *core.App
	Options      core.BuildOptions
	WriteVirtual bool
	Validate     bool
}

type GenerateOutput struct {
	Success bool
	Files   []core.RenderedFile
	Hash    string
	Error   error
}

type GenerateService struct {
	fs        FileSystem
	virtual   FileSystem
	validator Validator
	cli       CLIOutput
	logger    *slog.Logger
	templates []core.Template
}

// NewGenerateService wires the service. virtual receives every rendered file
// (the bundler's in-memory view) and validator may be nil.
func NewGenerateService(fs FileSystem, virtual FileSystem, validator Validator, cli CLIOutput, logger *slog.Logger) *GenerateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateService{
		fs:        fs,
		virtual:   virtual,
		validator: validator,
		cli:       cli,
		logger:    logger,
		templates: core.Templates(),
	}
}

func (s *GenerateService) LoadApp(path string) (*core.App, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRegistryNotFound, path)
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return core.ParseRegistry(data)
}

func (s *GenerateService) Generate(ctx context.Context, input GenerateInput) GenerateOutput {
	s.cli.PrintHeader("Component templates")
	report := cli.NewGenerateReport(s.cli, s.cli.Writer(), input.Options.BuildDir)

	fail := func(err error) GenerateOutput {
		report.Render()
		return GenerateOutput{Success: false, Error: err}
	}

	stepLoad := report.StartStep("Loading component registry")
	app := input.App
	if app == nil {
		loaded, err := s.LoadApp(input.Registry)
		if err != nil {
			report.EndStep(stepLoad, false, err.Error())
			return fail(err)
		}
		app = loaded
	}
	report.EndStep(stepLoad, true, "")
	report.SetComponentCount(len(app.Components))

	for _, w := range core.CheckRegistry(app) {
		s.logger.Warn("registry entry", "subject", w.Subject, "message", w.Message)
		report.AddWarning(w.Subject, w.Message, nil)
	}

	stepRender := report.StartStep("Rendering templates")
	files, err := s.Render(ctx, app, input.Options)
	if err != nil {
		report.EndStep(stepRender, false, err.Error())
		return fail(err)
	}
	report.EndStep(stepRender, true, "")

	if input.Validate && s.validator != nil {
		stepValidate := report.StartStep("Validating output")
		var invalid []error
		for _, f := range files {
			if !s.validator.Supports(f.Filename) {
				continue
			}
			if err := s.validator.Validate(f.Filename, f.Contents); err != nil {
				s.logger.Error("generated file failed validation", "file", f.Filename, "error", err)
				report.AddError(f.Filename, "Syntax error", []string{err.Error()})
				invalid = append(invalid, err)
			}
		}
		if len(invalid) > 0 {
			report.EndStep(stepValidate, false, fmt.Sprintf("%d file(s) with syntax errors", len(invalid)))
			return fail(fmt.Errorf("%w: %w", ErrValidation, errors.Join(invalid...)))
		}
		report.EndStep(stepValidate, true, "")
	}

	stepWrite := report.StartStep("Writing files")
	if err := s.write(files, input, report); err != nil {
		report.EndStep(stepWrite, false, err.Error())
		return fail(err)
	}
	report.EndStep(stepWrite, true, "")

	report.Render()
	return GenerateOutput{
		Success: true,
		Files:   files,
		Hash:    core.RenderHash(files),
	}
}

// Render executes every template concurrently; results keep template order.
func (s *GenerateService) Render(ctx context.Context, app *core.App, opts core.BuildOptions) ([]core.RenderedFile, error) {
	files := make([]core.RenderedFile, len(s.templates))
	tctx := core.Context{App: app, Options: opts}

	g, gctx := errgroup.WithContext(ctx)
	for i, tmpl := range s.templates {
		i, tmpl := i, tmpl
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file, err := tmpl.Execute(tctx)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *GenerateService) write(files []core.RenderedFile, input GenerateInput, report *cli.GenerateReport) error {
	buildDir := input.Options.BuildDir
	needsDisk := input.WriteVirtual
	for _, f := range files {
		needsDisk = needsDisk || f.Write
	}
	if needsDisk {
		if err := s.fs.MkdirAll(buildDir, 0o755); err != nil {
			return fmt.Errorf("create build dir: %w", err)
		}
	}

	for _, f := range files {
		target := filepath.Join(buildDir, f.Filename)
		data := []byte(f.Contents)

		if s.virtual != nil {
			if err := s.virtual.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("store %s: %w", f.Filename, err)
			}
		}

		if !f.Write && !input.WriteVirtual {
			report.AddFile(target, len(data), true)
			continue
		}

		if existing, err := s.fs.ReadFile(target); err == nil && bytes.Equal(existing, data) {
			s.logger.Debug("generated file unchanged", "file", target)
			report.AddFile(target, len(data), false)
			continue
		}
		if err := s.fs.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.Filename, err)
		}
		report.AddFile(target, len(data), false)
	}
	return nil
}
