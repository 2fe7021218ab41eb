package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/irgen/config"
	"github.com/teranos/irgen/output"
	"github.com/teranos/irgen/version"
)

const intRef = `["Reference",{},[[["morphir"],["s","d","k"]],[["basics"]],["int"]],[]]`

// shopIR has a good module and a module whose value lacks a body.
var shopIR = `{
  "formatVersion": 3,
  "distribution": ["Library", [["acme"]], [],
    {"modules": [
      [[["shop"]], {"access": "Public", "value": {
        "types": [
          [["color"], {"access": "Public", "value": {"doc": "", "value":
            ["CustomTypeDefinition", [], {"access": "Public", "value": [[["red"], []], [["green"], []]]}]}}]
        ],
        "values": [
          [["answer"], {"access": "Public", "value": {"doc": "", "value": {
            "inputTypes": [], "outputType": ` + intRef + `,
            "body": ["Literal", ` + intRef + `, ["WholeNumberLiteral", 42]]
          }}}]
        ]
      }}],
      [[["broken"]], {"access": "Public", "value": {
        "types": [],
        "values": [
          [["oops"], {"access": "Public", "value": {"doc": "", "value": {
            "inputTypes": [], "outputType": ` + intRef + `,
            "body": ["Constructor", ` + intRef + `, [[["acme"]],[["broken"]],["missing"]]]
          }}}]
        ]
      }}]
    ]}
  ]
}`

func TestCompileAndWrite(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "morphir-ir.json")
	require.NoError(t, os.WriteFile(source, []byte(shopIR), 0644))

	cfg := config.Defaults()
	cfg.Output.Dir = filepath.Join(dir, "gen")
	cfg.Compile.Workers = 2

	report, err := compileAndWrite(context.Background(), cfg, source)
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Written, 1)
	assert.Equal(t, "acme/Shop.json", report.Written[0].Path)
	assert.Equal(t, []string{"acme/Shop.json"}, report.Changed)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "Broken", report.Failed[0].Path.String())
	assert.Error(t, reportErr(report))

	assert.FileExists(t, filepath.Join(cfg.Output.Dir, "acme", "Shop.json"))
	m, err := output.ReadManifest(report.Manifest)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, m.RunID)
	assert.Equal(t, "scala", m.Target)
	assert.Equal(t, "Acme", m.Package)
	assert.Equal(t, "irgen "+version.Get().Short(), m.Generator)

	again, err := compileAndWrite(context.Background(), cfg, source)
	require.NoError(t, err)
	assert.Empty(t, again.Changed, "unchanged IR writes identical units")
	assert.NotEqual(t, report.RunID, again.RunID)
}

func TestCompileAndWrite_ModuleFilter(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "morphir-ir.json")
	require.NoError(t, os.WriteFile(source, []byte(shopIR), 0644))

	cfg := config.Defaults()
	cfg.Output.Dir = filepath.Join(dir, "gen")
	cfg.Output.Format = "yaml"
	cfg.Output.Manifest = false
	cfg.Compile.Modules = []string{"Shop"}

	report, err := compileAndWrite(context.Background(), cfg, source)
	require.NoError(t, err)
	assert.NoError(t, reportErr(report))
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Manifest)
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, "acme", "Shop.yaml"))
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, output.ManifestName))
}

func TestCompileAndWrite_MissingSource(t *testing.T) {
	cfg := config.Defaults()
	cfg.Output.Dir = t.TempDir()
	_, err := compileAndWrite(context.Background(), cfg, filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestVersionCmd_JSON(t *testing.T) {
	var buf bytes.Buffer
	VersionCmd.SetOut(&buf)
	VersionCmd.SetArgs([]string{"--json"})
	require.NoError(t, VersionCmd.Execute())

	var info map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}
