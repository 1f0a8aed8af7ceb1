package registry

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/tacit/internal/evaluate"
	"github.com/promptforge/tacit/internal/knowledge"
)

func testEngineFactory(cfg knowledge.DomainConfig) evaluate.Evaluator {
	return evaluate.NewEngine(cfg, nil)
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := New(nil)

	cfg := knowledge.DomainConfig{DomainType: "medical", DomainName: "의료"}
	reg.Register(cfg, testEngineFactory)

	got, ok := reg.Domain("medical")
	require.True(t, ok)
	assert.Equal(t, "의료", got.DomainName)

	factory, ok := reg.EvaluatorFactory("medical")
	require.True(t, ok)
	require.NotNil(t, factory(cfg))

	_, ok = reg.Domain("unknown")
	assert.False(t, ok)
	_, ok = reg.EvaluatorFactory("unknown")
	assert.False(t, ok)
}

func TestRegistry_RegisterLastWriteWins(t *testing.T) {
	reg := New(nil)

	reg.Register(knowledge.DomainConfig{DomainType: "legal", DomainName: "첫 번째"}, testEngineFactory)
	reg.Register(knowledge.DomainConfig{DomainType: "legal", DomainName: "두 번째"}, nil)

	got, ok := reg.Domain("legal")
	require.True(t, ok)
	assert.Equal(t, "두 번째", got.DomainName)

	// A nil factory leaves the previously registered one in place.
	_, ok = reg.EvaluatorFactory("legal")
	assert.True(t, ok)
}

func TestRegistry_DomainsSorted(t *testing.T) {
	reg := New(nil)
	for _, d := range []string{"medical", "finance", "legal"} {
		reg.Register(knowledge.DomainConfig{DomainType: d, DomainName: d}, nil)
	}

	assert.Equal(t, []string{"finance", "legal", "medical"}, reg.Domains())
}

func TestRegistry_Clear(t *testing.T) {
	reg := New(nil)
	reg.Register(knowledge.DomainConfig{DomainType: "medical", DomainName: "의료"}, testEngineFactory)

	reg.Clear()

	assert.Empty(t, reg.Domains())
	_, ok := reg.Domain("medical")
	assert.False(t, ok)
	_, ok = reg.EvaluatorFactory("medical")
	assert.False(t, ok)
}

func TestRegistry_LoadFromDirectory(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	write("legal.yaml", "domain_type: legal\ndomain_name: 법률\n")
	write("finance.json", `{"domain_type": "finance", "domain_name": "금융"}`)
	write("broken.yaml", "domain_type: [unclosed")
	write("notes.txt", "not a domain document")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	var logBuf bytes.Buffer
	reg := New(slog.New(slog.NewTextHandler(&logBuf, nil)))
	loaded, err := reg.LoadFromDirectory(dir)
	require.NoError(t, err)

	// The malformed document is skipped, not fatal; the .txt file and the
	// subdirectory are ignored.
	assert.Equal(t, 2, loaded)
	assert.Equal(t, []string{"finance", "legal"}, reg.Domains())

	// Exactly one warning, for the malformed document.
	assert.Equal(t, 1, strings.Count(logBuf.String(), "level=WARN"))
	assert.Contains(t, logBuf.String(), "broken.yaml")

	got, ok := reg.Domain("legal")
	require.True(t, ok)
	assert.Equal(t, "법률", got.DomainName)
}

func TestRegistry_LoadFromDirectory_MissingDir(t *testing.T) {
	reg := New(nil)
	_, err := reg.LoadFromDirectory(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
