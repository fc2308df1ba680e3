package splitter

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/cubahno/specsplit/internal/files"
	"github.com/cubahno/specsplit/pkg/config"
)

// Splitter writes every path of a document into its own YAML file
// under <OutputDir>/<environment>/.
type Splitter struct {
	cfg    *config.Config
	client *http.Client
	logger *slog.Logger
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithLogger sets the logger, slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Splitter) {
		s.logger = logger
	}
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Splitter) {
		s.client = client
	}
}

// WrittenFile describes a saved fragment.
// Path is the API path, File is the file system path and Hash is the SHA256 of the contents.
type WrittenFile struct {
	Path string
	File string
	Hash string
}

// Result lists the fragments written by Split in processing order.
// Files whose names collided appear once per write.
type Result struct {
	Dir   string
	Files []*WrittenFile
}

// New creates a Splitter. A nil cfg means the default config.
func New(cfg *config.Config, opts ...Option) *Splitter {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	s := &Splitter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load reads and parses the document at source, a file path or an http(s) URL.
func (s *Splitter) Load(source string) (*Document, error) {
	content, err := files.ReadFileOrURL(s.client, source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, files.ErrURLNotFound) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, source, err)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, source, err)
	}

	doc, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	doc.Source = source

	s.logger.Info("Loaded source document", "source", source, "format", doc.Format, "bytes", len(content))

	return doc, nil
}

// Split writes one fragment per path entry of doc.
// The environment directory is created even if there are no paths.
// Existing files are overwritten; when two paths share a slug the later one wins.
// The first error stops the run, fragments written before it are left in place.
func (s *Splitter) Split(doc *Document, environment string) (*Result, error) {
	entries, err := doc.Paths()
	if err != nil {
		return nil, err
	}

	dir := s.cfg.EnvironmentDir(environment)
	if err := files.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %w", ErrIO, dir, err)
	}

	res := &Result{
		Dir:   dir,
		Files: make([]*WrittenFile, 0, len(entries)),
	}

	for _, entry := range entries {
		fragment := Fragment{Path: entry.Path, Details: entry.Details}
		data, err := fragment.Marshal(s.cfg.Indent, s.cfg.SortKeys)
		if err != nil {
			return nil, err
		}

		filePath := filepath.Join(dir, Slug(entry.Path)+s.cfg.Extension)
		if err := files.SaveFile(filePath, data); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %w", ErrIO, filePath, err)
		}

		wf := &WrittenFile{
			Path: entry.Path,
			File: filePath,
			Hash: files.GetFileHash(bytes.NewReader(data)),
		}
		res.Files = append(res.Files, wf)
		s.logger.Debug("Wrote fragment", "path", wf.Path, "file", wf.File, "sha256", wf.Hash)
	}

	s.logger.Info(fmt.Sprintf("Split %d paths into %s", len(res.Files), dir), "environment", environment)

	return res, nil
}

// Run loads the source document and splits it.
func (s *Splitter) Run(environment, source string) (*Result, error) {
	doc, err := s.Load(source)
	if err != nil {
		return nil, err
	}
	return s.Split(doc, environment)
}
