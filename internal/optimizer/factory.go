package optimizer

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/promptforge/tacit/internal/critique"
	"github.com/promptforge/tacit/internal/evaluate"
	"github.com/promptforge/tacit/internal/knowledge"
	"github.com/promptforge/tacit/internal/registry"
)

// ErrUnknownDomain indicates that a domain identifier is registered
// neither in the registry nor in the built-in fallback set. The factory
// never silently substitutes a default domain.
var ErrUnknownDomain = errors.New("unknown domain type")

// ErrNoImprovedBlock indicates that a refinement output carried no
// delimiter-wrapped improved instruction. There is no safe default text,
// so the refinement step fails and the caller must retry or abort.
var ErrNoImprovedBlock = errors.New("no improved prompt block in output")

// Fallbacks is the built-in domain set consulted when the registry misses.
// It is populated at startup by the domains package; the indirection
// avoids an import cycle between content and wiring.
var Fallbacks = struct {
	Configs   map[string]knowledge.DomainConfig
	Factories map[string]evaluate.Factory
}{
	Configs:   make(map[string]knowledge.DomainConfig),
	Factories: make(map[string]evaluate.Factory),
}

// ForDomain resolves a domain identifier to a fully wired Optimizer:
// configuration and evaluator factory from the registry, falling back to
// the built-in set. Returns ErrUnknownDomain when the identifier is known
// to neither.
func ForDomain(domainType string, reg *registry.Registry, client Client, logger *slog.Logger) (*Optimizer, error) {
	var (
		cfg     knowledge.DomainConfig
		factory evaluate.Factory
		ok      bool
	)

	if reg != nil {
		cfg, ok = reg.Domain(domainType)
		if ok {
			factory, _ = reg.EvaluatorFactory(domainType)
		}
	}
	if !ok {
		cfg, ok = Fallbacks.Configs[domainType]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domainType)
		}
		factory = Fallbacks.Factories[domainType]
	}

	var evaluator evaluate.Evaluator
	if factory != nil {
		evaluator = factory(cfg)
	}

	return New(cfg, evaluator, client, logger), nil
}

// improvedBlockPattern captures the text between the improved-prompt
// delimiters.
var improvedBlockPattern = regexp.MustCompile(`(?s)` +
	regexp.QuoteMeta(critique.ImprovedPromptStart) + `(.*?)` + regexp.QuoteMeta(critique.ImprovedPromptEnd))

// ExtractImproved pulls the improved instruction out of a refinement
// response. The instruction must sit between the delimiter pair the
// refinement prompt asked for; its absence is a definite failure.
func ExtractImproved(output string) (string, error) {
	m := improvedBlockPattern.FindStringSubmatch(output)
	if m == nil {
		return "", ErrNoImprovedBlock
	}
	return strings.TrimSpace(m[1]), nil
}
