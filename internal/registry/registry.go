// Package registry manages the process-wide mapping from domain identifier
// to domain configuration and evaluator factory. The registry is an
// explicit container constructed once at process start and passed to the
// components that need lookups, rather than hidden package-level state.
//
// Registration is last-write-wins and lookups never fail loudly: an
// unknown domain returns an explicit not-found result so callers can fall
// back. Directory loading tolerates individual malformed documents,
// logging a warning per failure and continuing the scan.
//
// A read-write mutex guards the maps so lookups stay safe if a caller
// registers after startup. Callers needing stronger concurrent-mutation
// guarantees must add their own synchronization.
package registry

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/promptforge/tacit/internal/evaluate"
	"github.com/promptforge/tacit/internal/knowledge"
)

// documentExtensions are the structured-document suffixes the directory
// scan recognizes.
var documentExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// Registry maps domain types to their configurations and evaluator
// factories.
type Registry struct {
	mu         sync.RWMutex
	domains    map[string]knowledge.DomainConfig
	evaluators map[string]evaluate.Factory
	logger     *slog.Logger
}

// New returns an empty Registry. A nil logger is replaced with a discard
// logger; logging must never be required for correct operation.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		domains:    make(map[string]knowledge.DomainConfig),
		evaluators: make(map[string]evaluate.Factory),
		logger:     logger,
	}
}

// Register inserts or overwrites the configuration for its domain type.
// Last write wins; no duplicate detection. The factory is optional and,
// when nil, leaves any previously registered factory untouched.
func (r *Registry) Register(cfg knowledge.DomainConfig, factory evaluate.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.domains[cfg.DomainType] = cfg
	if factory != nil {
		r.evaluators[cfg.DomainType] = factory
	}
}

// Domain returns the configuration for a domain type and whether it is
// registered.
func (r *Registry) Domain(domainType string) (knowledge.DomainConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.domains[domainType]
	return cfg, ok
}

// EvaluatorFactory returns the evaluator factory for a domain type and
// whether one is registered.
func (r *Registry) EvaluatorFactory(domainType string) (evaluate.Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.evaluators[domainType]
	return factory, ok
}

// Domains returns the registered domain types. The snapshot is sorted for
// determinism; callers must not rely on any particular order beyond that.
func (r *Registry) Domains() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.domains))
	for domainType := range r.domains {
		out = append(out, domainType)
	}
	sort.Strings(out)
	return out
}

// Clear wipes all registrations. Intended for test isolation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.domains = make(map[string]knowledge.DomainConfig)
	r.evaluators = make(map[string]evaluate.Factory)
}

// LoadFromDirectory scans a directory for YAML/JSON domain documents and
// registers each one. A parse failure for one file is logged as a warning
// and does not abort the scan; partial success is the designed outcome.
// Returns the number of domains registered. Only a failure to read the
// directory itself is an error.
func (r *Registry) LoadFromDirectory(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read domain directory %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !documentExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		cfg, err := knowledge.LoadConfigFile(path)
		if err != nil {
			r.logger.Warn("failed to load domain config", "path", path, "error", err)
			continue
		}

		r.Register(cfg, nil)
		loaded++
	}

	return loaded, nil
}
