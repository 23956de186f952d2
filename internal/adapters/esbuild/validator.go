package esbuild

import (
	"errors"
	"fmt"
	"path"
	"strings"

	esbuildApi "github.com/evanw/esbuild/pkg/api"
)

var ErrSyntax = errors.New("generated file has syntax errors")

var loaders = map[string]esbuildApi.Loader{
	".mjs":  esbuildApi.LoaderJS,
	".js":   esbuildApi.LoaderJS,
	".json": esbuildApi.LoaderJSON,
}

type SyntaxError struct {
	File     string
	Messages []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, strings.Join(e.Messages, "; "))
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Validator parses generated modules with esbuild without bundling them.
// Declaration files are skipped: esbuild strips types but rejects
// uninitialised const declarations that are legal in .d.ts files.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Supports(filename string) bool {
	_, ok := loaders[path.Ext(filename)]
	return ok && !strings.HasSuffix(filename, ".d.ts")
}

func (v *Validator) Validate(filename string, contents string) error {
	loader, ok := loaders[path.Ext(filename)]
	if !ok {
		return nil
	}

	result := esbuildApi.Transform(contents, esbuildApi.TransformOptions{
		Loader:     loader,
		Format:     esbuildApi.FormatESModule,
		Sourcefile: filename,
		LogLevel:   esbuildApi.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(result.Errors))
	for _, msg := range result.Errors {
		if msg.Location != nil {
			messages = append(messages, fmt.Sprintf("%d:%d %s", msg.Location.Line, msg.Location.Column, msg.Text))
			continue
		}
		messages = append(messages, msg.Text)
	}
	return &SyntaxError{File: filename, Messages: messages}
}
