package domains

import (
	"github.com/promptforge/tacit/internal/evaluate"
	"github.com/promptforge/tacit/internal/knowledge"
	"github.com/promptforge/tacit/internal/optimizer"
	"github.com/promptforge/tacit/internal/registry"
)

// builtin pairs each shipped configuration with its evaluator factory.
// Only medical carries a specialized evaluator; the rest use the generic
// engine.
var builtin = []struct {
	config  func() knowledge.DomainConfig
	factory evaluate.Factory
}{
	{config: Medical, factory: evaluate.MedicalFactory},
	{config: Legal, factory: genericFactory},
	{config: Finance, factory: genericFactory},
	{config: EnglishQuestion, factory: genericFactory},
}

func genericFactory(cfg knowledge.DomainConfig) evaluate.Evaluator {
	return evaluate.NewEngine(cfg, nil)
}

// RegisterBuiltins installs every shipped domain into reg. Registering
// over an existing entry follows the registry's last-write-wins rule, so
// callers that loaded external documents first should call this before
// loading.
func RegisterBuiltins(reg *registry.Registry) {
	for _, b := range builtin {
		reg.Register(b.config(), b.factory)
	}
}

// The optimizer consults this fallback set when a domain is absent from
// the registry, so the shipped domains work without any registration step.
func init() {
	for _, b := range builtin {
		cfg := b.config()
		optimizer.Fallbacks.Configs[cfg.DomainType] = cfg
		optimizer.Fallbacks.Factories[cfg.DomainType] = b.factory
	}
}
