package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/3-lines-studio/compgen/internal/core"
)

type WatchInput struct {
	Generate GenerateInput
	// Paths are watched in addition to the registry.
	Paths []string
	// Reload, when set, rebuilds the generate input after a config change.
	Reload func() (GenerateInput, error)
}

type WatchService struct {
	generator *GenerateService
	watcher   Watcher
	fs        FileSystem
	cli       CLIOutput
	logger    *slog.Logger

	mu           sync.Mutex
	lastRegistry string
	lastRender   string
}

func NewWatchService(generator *GenerateService, watcher Watcher, fs FileSystem, cli CLIOutput, logger *slog.Logger) *WatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WatchService{
		generator: generator,
		watcher:   watcher,
		fs:        fs,
		cli:       cli,
		logger:    logger,
	}
}

// Run generates once, then again on every registry change whose content
// differs from the last generated state, until ctx is cancelled. A config
// reload that moves the registry restarts the watcher on the new path.
func (s *WatchService) Run(ctx context.Context, input WatchInput) error {
	current := input.Generate
	s.regenerate(ctx, current, true)

	for {
		registry := current.Registry
		paths := append([]string{registry}, input.Paths...)
		watchCtx, cancel := context.WithCancel(ctx)
		moved := false

		err := s.watcher.Watch(watchCtx, paths, func(path string) {
			if moved {
				return
			}
			s.logger.Debug("watched file changed", "path", path)

			if path != registry && input.Reload != nil {
				next, err := input.Reload()
				if err != nil {
					s.cli.PrintError("Failed to reload config: %v", err)
					return
				}
				current = next
				s.regenerate(ctx, current, true)
				if current.Registry != registry {
					moved = true
					cancel()
				}
				return
			}
			s.regenerate(ctx, current, false)
		})
		cancel()

		if moved && ctx.Err() == nil {
			s.logger.Debug("registry moved, restarting watcher", "from", registry, "to", current.Registry)
			continue
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func (s *WatchService) regenerate(ctx context.Context, input GenerateInput, force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.App == nil {
		data, err := s.fs.ReadFile(input.Registry)
		if err != nil {
			s.cli.PrintError("Failed to read registry: %v", err)
			return
		}
		hash := core.HashContent(data)
		if !force && hash == s.lastRegistry {
			s.logger.Debug("registry unchanged, skipping", "path", input.Registry)
			return
		}
		s.lastRegistry = hash
	}

	out := s.generator.Generate(ctx, input)
	if out.Error != nil {
		s.cli.PrintError("%v", out.Error)
		return
	}
	if out.Hash == s.lastRender {
		s.cli.PrintStep("", "Output unchanged")
	}
	s.lastRender = out.Hash
}

func (s *WatchService) LastRenderHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRender
}
