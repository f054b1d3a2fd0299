package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAskReservesFromSeedCatalog(t *testing.T) {
	out, err := runCLI(t, "ask", "necesito", "10", "sacos", "de", "cemento")
	require.NoError(t, err)

	assert.Contains(t, out, `OK: He reservado 10 de "cemento saco 25kg" (SKU SKU-003). Quedan 20 en almacén A.`)
	assert.Contains(t, out, "outcome: reserved")
}

func TestAskWithFileCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(`items:
  - id: LAD-1
    name: ladrillo hueco
    aliases: [ladrillo]
    available: 4
    location: patio
`), 0o600))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("catalog:\n  source: file\n  path: "+catalog+"\nllm:\n  locale: en\n"), 0o600))

	// "ladrillo" is not in the default rules vocabulary, so the request is
	// not understood; the file catalog and English wording are still used.
	out, err := runCLI(t, "--config", cfgPath, "ask", "5 ladrillos")
	require.NoError(t, err)
	assert.Contains(t, out, "I did not understand the request")
	assert.Contains(t, out, "outcome: not_understood")
}

func TestAskRequiresText(t *testing.T) {
	_, err := runCLI(t, "ask")
	assert.Error(t, err)
}

func TestAskRejectsInvalidConfig(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "llama")
	_, err := runCLI(t, "ask", "cemento")
	assert.Error(t, err)
}
