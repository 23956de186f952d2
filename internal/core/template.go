package core

import (
	"bytes"
	"fmt"
	"text/template"
)

type Context struct {
	App     *App
	Options BuildOptions
}

func (ctx Context) components() []Component {
	if ctx.App == nil {
		return nil
	}
	return ctx.App.Components
}

func (ctx Context) pages() []Page {
	if ctx.App == nil {
		return nil
	}
	return ctx.App.Pages
}

// Template renders one generated file. Write marks files that must exist on
// disk rather than only in the bundler's virtual file system.
type Template struct {
	Filename string
	Write    bool
	Render   func(ctx Context) (string, error)
}

type RenderedFile struct {
	Filename string
	Contents string
	Write    bool
}

func (t Template) Execute(ctx Context) (RenderedFile, error) {
	contents, err := t.Render(ctx)
	if err != nil {
		return RenderedFile{}, fmt.Errorf("render %s: %w", t.Filename, err)
	}
	return RenderedFile{Filename: t.Filename, Contents: contents, Write: t.Write}, nil
}

var templateFuncs = template.FuncMap{
	"js":   JSString,
	"jsSQ": JSSingleQuoted,
	"lazy": LazyName,
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).Parse(text))
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Templates lists every component template in generation order.
func Templates() []Template {
	return []Template{
		ComponentsPluginTemplate,
		ComponentNamesTemplate,
		ComponentsIslandsTemplate,
		ComponentsTypeTemplate,
		ComponentsMetadataTemplate,
		ComponentsMetadataTypeTemplate,
	}
}
