package tables

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/teranos/commonargs/errors"
)

// Source is a table file resolved to a local path.
// Remote files are fetched into a temporary directory removed by Close.
type Source struct {
	Path   string
	Input  string
	Remote bool

	cleanup func()
}

// Close removes any temporary files
func (s *Source) Close() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// Resolve maps input to a local table file. Local paths (and file:// URLs)
// are used in place; any other source go-getter understands, such as
// https://host/tables/fortran.toml or s3::https://bucket/x.yaml, is
// downloaded as a single file first.
func Resolve(ctx context.Context, input string, log *zap.SugaredLogger) (*Source, error) {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect table source %q", input)
	}
	log.Debugw("Detected table source", "input", input, "detected", detected)

	u, err := url.Parse(detected)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse table source %q", detected)
	}
	if u.Scheme == "file" || u.Scheme == "" {
		local := input
		if u.Scheme == "file" {
			local = u.Path
		}
		if !filepath.IsAbs(local) {
			local = filepath.Join(pwd, local)
		}
		if _, err := os.Stat(local); err != nil {
			return nil, errors.Wrapf(err, "table file %s", local)
		}
		return &Source{Path: local, Input: input}, nil
	}

	return fetch(ctx, input, detected, log)
}

func fetch(ctx context.Context, input, detected string, log *zap.SugaredLogger) (*Source, error) {
	tempDir, err := os.MkdirTemp("", "commonargs-table-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}

	name := remoteFileName(detected)
	if _, err := FormatFromPath(name); err != nil {
		os.RemoveAll(tempDir)
		return nil, err
	}
	dst := filepath.Join(tempDir, name)

	log.Infow("Fetching table", "input", input, "destination", dst)
	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		os.RemoveAll(tempDir)
		return nil, errors.Wrapf(err, "failed to fetch table %s", input)
	}

	return &Source{
		Path:   dst,
		Input:  input,
		Remote: true,
		cleanup: func() {
			log.Debugw("Removing fetched table", "path", tempDir)
			os.RemoveAll(tempDir)
		},
	}, nil
}

// remoteFileName returns the last path element of a detected go-getter
// source, without any forced getter prefix or query.
func remoteFileName(src string) string {
	if _, rest, ok := strings.Cut(src, "::"); ok {
		src = rest
	}
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(src)
}
