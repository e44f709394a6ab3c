package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/alexshd/fuzzy"
	"github.com/alexshd/fuzzy/ruleset"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 32

var (
	// ErrNotFound is returned when no definition file exists for a name.
	ErrNotFound = errors.New("rule set not found")

	// ErrInvalidName is returned for names outside [A-Za-z0-9_-].
	ErrInvalidName = errors.New("invalid rule set name")

	validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Entry is a compiled rule set.
type Entry struct {
	Definition *ruleset.Definition
	Engine     *fuzzy.Engine
	Path       string
}

// Info describes a rule set without compiling it.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// Catalog serves compiled rule sets from a directory of YAML definitions.
// Engines are compiled on first use and kept in an LRU cache.
type Catalog struct {
	dir      string
	registry *fuzzy.Registry
	logger   *slog.Logger
	entries  *lru.Cache[string, *Entry]
	mu       sync.Mutex
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRegistry sets the curve registry used to compile definitions.
func WithRegistry(r *fuzzy.Registry) Option {
	return func(c *Catalog) { c.registry = r }
}

// WithLogger sets the logger handed to compiled engines.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) { c.logger = l }
}

// New creates a catalog over dir holding at most size compiled rule sets.
func New(dir string, size int, opts ...Option) (*Catalog, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	c := &Catalog{
		dir:      dir,
		registry: fuzzy.DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	cache, err := lru.NewWithEvict[string, *Entry](size, func(name string, _ *Entry) {
		c.logger.Debug("rule set evicted", "name", name)
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	c.entries = cache
	return c, nil
}

// Dir returns the definition directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// Get returns the compiled rule set, loading it if necessary.
func (c *Catalog) Get(name string) (*Entry, error) {
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	// Fast path: lru.Get updates recency
	if e, ok := c.entries.Get(name); ok {
		return e, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check under lock
	if e, ok := c.entries.Get(name); ok {
		return e, nil
	}

	path, err := c.find(name)
	if err != nil {
		return nil, err
	}

	def, err := ruleset.Load(path)
	if err != nil {
		return nil, err
	}

	engine, err := def.Compile(c.registry, fuzzy.WithLogger(c.logger.With("ruleset", name)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	e := &Entry{Definition: def, Engine: engine, Path: path}
	c.entries.Add(name, e)
	c.logger.Info("rule set loaded", "name", name, "rules", engine.Len(), "path", path)
	return e, nil
}

// List returns the rule sets in the directory, sorted by name. Files that
// fail to parse are skipped and logged.
func (c *Catalog) List() ([]Info, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("read rule set dir: %w", err)
	}

	var infos []Info
	seen := make(map[string]bool)
	for _, f := range files {
		name, ok := definitionName(f)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true

		// Describe the file Get would serve when both extensions exist.
		path, err := c.find(name)
		if err != nil {
			continue
		}
		def, err := ruleset.Load(path)
		if err != nil {
			c.logger.Warn("skipping rule set", "file", filepath.Base(path), "err", err)
			continue
		}
		infos = append(infos, Info{Name: name, Description: def.Description, Unit: def.Unit})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// Purge drops every compiled rule set so the next Get reloads from disk.
func (c *Catalog) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached rule sets.
func (c *Catalog) Len() int {
	return c.entries.Len()
}

func (c *Catalog) find(name string) (string, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(c.dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func definitionName(f os.DirEntry) (string, bool) {
	if f.IsDir() {
		return "", false
	}
	ext := filepath.Ext(f.Name())
	if ext != ".yaml" && ext != ".yml" {
		return "", false
	}
	name := strings.TrimSuffix(f.Name(), ext)
	return name, validName.MatchString(name)
}
