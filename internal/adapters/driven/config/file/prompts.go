package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/logger"
)

//go:embed prompts/*.txt
var defaultPrompts embed.FS

var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore serves LLM system instructions from editable text files.
//
// Each known prompt lives in <dir>/<name>.txt. A missing file is seeded
// from the built-in default on first load; an unreadable or empty file
// falls back to that default without touching the disk.
type PromptStore struct {
	mu    sync.Mutex
	dir   string
	cache map[string]string
}

// NewPromptStore creates a prompt store rooted at dir.
// If dir is empty, defaults to ~/.synaptext/prompts/. No I/O happens until Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".synaptext", "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]string)}, nil
}

// Load returns the named prompt. Only prompts with a built-in default exist.
func (s *PromptStore) Load(name string) (string, error) {
	fallback, err := builtinPrompt(name)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prompt, ok := s.cache[name]; ok {
		return prompt, nil
	}

	path := filepath.Join(s.dir, name+".txt")
	if err := seedPrompt(path, fallback); err != nil {
		logger.Warn("seed prompt %s: %v", path, err)
	}

	prompt := fallback
	if data, err := os.ReadFile(path); err == nil {
		if custom := strings.TrimSpace(string(data)); custom != "" {
			prompt = custom
		}
	}

	s.cache[name] = prompt
	return prompt, nil
}

// Reload drops cached prompts so edited files are picked up.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

func builtinPrompt(name string) (string, error) {
	data, err := defaultPrompts.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	return strings.TrimSpace(string(data)), nil
}

// seedPrompt writes content to path unless a file is already there.
func seedPrompt(path, content string) error {
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content+"\n"), 0o600)
}
