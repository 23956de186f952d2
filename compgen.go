package compgen

import (
	"github.com/3-lines-studio/compgen/internal/core"
)

type Component = core.Component

type Page = core.Page

type App = core.App

type Mode = core.Mode

type GlobalMode = core.GlobalMode

type LoadHint = core.LoadHint

type BuildOptions = core.BuildOptions

type Template = core.Template

type RenderedFile = core.RenderedFile

type Registrar = core.Registrar

const (
	ModeAll    = core.ModeAll
	ModeClient = core.ModeClient
	ModeServer = core.ModeServer

	GlobalNone = core.GlobalNone
	GlobalLazy = core.GlobalLazy
	GlobalSync = core.GlobalSync
)

var (
	ErrInvalidGlobal = core.ErrInvalidGlobal
	ErrInvalidHint   = core.ErrInvalidHint
)

type Option func(*BuildOptions)

func WithBuildDir(dir string) Option {
	return func(o *BuildOptions) { o.BuildDir = dir }
}

func WithComponentIslands() Option {
	return func(o *BuildOptions) { o.ComponentIslands = true }
}

// WithServerPlaceholder excludes the component at path from the
// IslandComponent wrapping in components.d.ts.
func WithServerPlaceholder(path string) Option {
	return func(o *BuildOptions) { o.ServerPlaceholderPath = path }
}

func ParseRegistry(data []byte) (*App, error) {
	return core.ParseRegistry(data)
}

func Templates() []Template {
	return core.Templates()
}

// Generate renders every template for app in a fixed order.
func Generate(app *App, opts ...Option) ([]RenderedFile, error) {
	var options BuildOptions
	for _, opt := range opts {
		opt(&options)
	}

	ctx := core.Context{App: app, Options: options}
	templates := core.Templates()
	files := make([]RenderedFile, 0, len(templates))
	for _, t := range templates {
		file, err := t.Execute(ctx)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// RegisterGlobals registers every global component under its name and its
// Lazy-prefixed name.
func RegisterGlobals(r Registrar, components []Component) error {
	return core.RegisterGlobals(r, components)
}
