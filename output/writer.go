// Package output writes compiled units as AST documents plus a manifest.
//
// Each unit lands at <dir>/<namespace...>/<FileName>.<ext>. The manifest
// lists every unit with a base58 SHA-256 fingerprint of its document, so
// downstream tooling can tell which units changed between runs.
package output

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/logger"
	"github.com/teranos/irgen/target/scala"
)

// Format is a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ManifestName is the manifest's file name inside the output directory.
const ManifestName = "manifest.json"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case JSON, YAML:
		return Format(s), nil
	}
	return "", errors.NewInvalidConfigError("unknown output format %q (want json or yaml)", s)
}

// Entry describes one written unit.
type Entry struct {
	Namespace   string `json:"namespace"`
	FileName    string `json:"fileName"`
	Path        string `json:"path"`
	Types       int    `json:"types"`
	Values      int    `json:"values"`
	Fingerprint string `json:"fingerprint"`
}

// Manifest lists the units of one run.
type Manifest struct {
	RunID     string    `json:"runId,omitempty"`
	Generator string    `json:"generator,omitempty"`
	Target    string    `json:"target"`
	Package   string    `json:"package"`
	Format    Format    `json:"format"`
	Generated time.Time `json:"generated"`
	Units     []Entry   `json:"units"`
}

// Writer writes units below a directory.
type Writer struct {
	dir    string
	format Format
	log    *zap.SugaredLogger
}

// NewWriter returns a writer for dir in the given format.
func NewWriter(dir string, format Format) *Writer {
	return &Writer{dir: dir, format: format, log: logger.ComponentLogger("output")}
}

// Encode renders a unit as a document in the writer's format.
func (w *Writer) Encode(unit *scala.CompilationUnit) ([]byte, error) {
	doc, err := json.MarshalIndent(unit, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s", unit.QualifiedName())
	}
	if w.format == JSON {
		return append(doc, '\n'), nil
	}

	// JSON is a subset of YAML; decoding into a node keeps key order.
	var node yaml.Node
	if err := yaml.Unmarshal(doc, &node); err != nil {
		return nil, errors.Wrapf(err, "failed to convert %s to yaml", unit.QualifiedName())
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s as yaml", unit.QualifiedName())
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to flush yaml")
	}
	return buf.Bytes(), nil
}

// RelPath is a unit's path relative to the output directory.
func (w *Writer) RelPath(unit *scala.CompilationUnit) string {
	parts := append(append([]string(nil), unit.Namespace...), unit.FileName+"."+string(w.format))
	return filepath.Join(parts...)
}

// WriteUnits writes every unit and returns their manifest entries, sorted by
// qualified name.
func (w *Writer) WriteUnits(units []*scala.CompilationUnit) ([]Entry, error) {
	entries := make([]Entry, 0, len(units))
	for _, unit := range units {
		entry, err := w.WriteUnit(unit)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// WriteUnit writes one unit document.
func (w *Writer) WriteUnit(unit *scala.CompilationUnit) (Entry, error) {
	doc, err := w.Encode(unit)
	if err != nil {
		return Entry{}, err
	}

	rel := w.RelPath(unit)
	path := filepath.Join(w.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Entry{}, errors.Wrapf(err, "failed to create directory for %s", rel)
	}
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return Entry{}, errors.Wrapf(err, "failed to write %s", rel)
	}

	entry := Entry{
		Namespace:   strings.Join(unit.Namespace, "."),
		FileName:    unit.FileName,
		Path:        filepath.ToSlash(rel),
		Types:       len(unit.Types),
		Values:      len(unit.Values),
		Fingerprint: Fingerprint(doc),
	}
	w.log.Debugw("unit written",
		logger.FieldPath, entry.Path,
		logger.FieldFingerprint, entry.Fingerprint,
		logger.FieldFormat, string(w.format))
	return entry, nil
}

// WriteManifest writes m as manifest.json in the output directory.
func (w *Writer) WriteManifest(m *Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode manifest")
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", w.dir)
	}
	path := filepath.Join(w.dir, ManifestName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	w.log.Infow("manifest written", logger.FieldPath, path, logger.FieldCount, len(m.Units))
	return path, nil
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %s", path)
	}
	return &m, nil
}

// Fingerprint is the base58 SHA-256 of data.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return base58.Encode(sum[:])
}

// Changed returns the paths of entries that are new or whose fingerprint
// differs from prev. A nil prev reports every entry.
func Changed(prev *Manifest, entries []Entry) []string {
	old := map[string]string{}
	if prev != nil {
		for _, e := range prev.Units {
			old[e.Path] = e.Fingerprint
		}
	}
	var changed []string
	for _, e := range entries {
		if fp, ok := old[e.Path]; !ok || fp != e.Fingerprint {
			changed = append(changed, e.Path)
		}
	}
	return changed
}
