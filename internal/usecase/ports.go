package usecase

import (
	"context"
	"io"

	"github.com/3-lines-studio/compgen/internal/adapters/fs"
)

type FileSystem = fs.FileSystem

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(emoji, msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)

	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Writer() io.Writer
}

// Validator checks that a generated file parses in its target language.
type Validator interface {
	Supports(filename string) bool
	Validate(filename string, contents string) error
}

// Watcher calls onChange after any of paths is created, written or replaced,
// until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, paths []string, onChange func(path string)) error
}
