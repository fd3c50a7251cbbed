package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryHonoursBoundaries(t *testing.T) {
	module, err := modulePath(filepath.Join("..", "go.mod"))
	require.NoError(t, err)
	assert.Equal(t, "komunumo", module)
	assert.Empty(t, collectViolations(module, filepath.Join("..", "contexts")))
}

func TestViolationsAreReported(t *testing.T) {
	root := filepath.Join(t.TempDir(), "contexts")
	write := func(rel, body string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("ops/console/domain/entity.go", `package domain
import (
	"time"
	"github.com/google/uuid"
)
var _ = time.Now
var _ = uuid.New
`)
	write("ops/console/application/service.go", `package application
import (
	"example/contexts/ops/console/adapters/memory"
	"example/contexts/ops/other/ports"
	"example/internal/platform/db"
	"example/contexts/ops/console/ports"
)
`)
	write("ops/console/adapters/memory/store.go", `package memory
import "github.com/google/uuid"
var _ = uuid.New
`)

	violations := collectViolations("example", root)
	rules := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, v.Rule)
	}
	assert.Equal(t, []string{
		"application must not import adapters",
		"cross-service imports are forbidden",
		"application must not import runtime infrastructure",
		"domain import is outside explicit allowlist",
	}, rules)
}

func TestModulePathReadsDirective(t *testing.T) {
	dir := t.TempDir()
	quoted := filepath.Join(dir, "quoted.mod")
	require.NoError(t, os.WriteFile(quoted, []byte("// comment\nmodule \"example.com/console\" // trailing\n\ngo 1.24\n"), 0o644))
	module, err := modulePath(quoted)
	require.NoError(t, err)
	assert.Equal(t, "example.com/console", module)

	empty := filepath.Join(dir, "empty.mod")
	require.NoError(t, os.WriteFile(empty, []byte("go 1.24\n"), 0o644))
	_, err = modulePath(empty)
	assert.ErrorContains(t, err, "no module directive")

	_, err = modulePath(filepath.Join(dir, "missing.mod"))
	assert.Error(t, err)
}
