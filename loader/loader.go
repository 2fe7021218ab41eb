// Package loader reads serialized IR distributions from local files or
// remote sources and checks their format version.
//
// Remote sources are anything go-getter understands: http(s) URLs, git
// repositories with a //subpath, s3 and gcs buckets. Local paths are read
// directly.
package loader

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/logger"
)

// Loader fetches and decodes IR distributions.
type Loader struct {
	formats *semver.Constraints
	log     *zap.SugaredLogger
}

// New returns a loader accepting distributions whose formatVersion
// satisfies the semver constraint formatVersions, e.g. ">= 2, < 4".
func New(formatVersions string) (*Loader, error) {
	c, err := semver.NewConstraint(formatVersions)
	if err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "invalid format version constraint %q", formatVersions),
			errors.ErrInvalidConfig)
	}
	return &Loader{formats: c, log: logger.ComponentLogger("loader")}, nil
}

// Load resolves source, reads it and decodes the distribution.
func (l *Loader) Load(ctx context.Context, source string) (*ir.Distribution, error) {
	start := time.Now()
	path, cleanup, err := l.resolve(ctx, source)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Mark(errors.Wrapf(err, "IR file %s", source), errors.ErrNotFound)
		}
		return nil, errors.Wrapf(err, "failed to read IR file %s", source)
	}

	dist, err := l.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "IR file %s", source)
	}

	l.log.Infow("IR loaded",
		logger.FieldSource, source,
		logger.FieldPackage, dist.Package.String(),
		logger.FieldCount, len(dist.Definition.Modules),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return dist, nil
}

// Decode decodes a serialized distribution and checks its format version.
func (l *Loader) Decode(data []byte) (*ir.Distribution, error) {
	dist, err := ir.DecodeDistribution(data)
	if err != nil {
		return nil, err
	}
	if err := l.CheckFormat(dist.FormatVersion); err != nil {
		return nil, err
	}
	return dist, nil
}

// CheckFormat reports ErrUnsupportedFormat for a version outside the
// accepted range.
func (l *Loader) CheckFormat(formatVersion int) error {
	v, err := semver.NewVersion(strconv.Itoa(formatVersion))
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "format version %d", formatVersion), errors.ErrUnsupportedFormat)
	}
	if !l.formats.Check(v) {
		return errors.WithHint(
			errors.Mark(errors.Newf("IR format version %d is not accepted (want %s)", formatVersion, l.formats), errors.ErrUnsupportedFormat),
			"regenerate the IR with a compatible toolchain or adjust ir.format_versions")
	}
	return nil
}

// IsRemote reports whether source needs fetching rather than a local read.
func IsRemote(source string) bool {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}
	detected, err := getter.Detect(source, pwd, getter.Detectors)
	if err != nil {
		return false
	}
	u, err := url.Parse(detected)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Scheme != "file"
}

// resolve returns a local path for source and a cleanup for any temporary
// download.
func (l *Loader) resolve(ctx context.Context, source string) (string, func(), error) {
	noop := func() {}
	if !IsRemote(source) {
		return expandHome(strings.TrimPrefix(source, "file://")), noop, nil
	}

	tempDir, err := os.MkdirTemp("", "irgen-fetch-*")
	if err != nil {
		return "", noop, errors.Wrap(err, "failed to create temp directory")
	}
	cleanup := func() {
		l.log.Debugw("removing fetched IR", logger.FieldPath, tempDir)
		os.RemoveAll(tempDir)
	}

	dst := filepath.Join(tempDir, "morphir-ir.json")
	client := &getter.Client{
		Ctx:     ctx,
		Src:     source,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getter.Getters,
	}

	l.log.Infow("fetching IR", logger.FieldSource, source, logger.FieldPath, dst)
	if err := client.Get(); err != nil {
		cleanup()
		return "", noop, errors.Wrapf(err, "failed to fetch %s", source)
	}
	return dst, cleanup, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
