// Package store persists the wizard's configuration document and refuses to
// overwrite one that already exists.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/jfmusicbot/botsetup/pkg/logging"
	"github.com/jfmusicbot/botsetup/pkg/schema"
)

// ErrAlreadyExists is returned when the target file appeared while the
// configuration was being built. The file is left untouched.
var ErrAlreadyExists = errors.New("config file already exists")

// Builder produces the configuration to persist.
type Builder interface {
	Build(ctx context.Context) (*schema.Configuration, error)
}

// Outcome tells what Gate.Run did.
type Outcome int

const (
	// Existing means a document was already present and left untouched.
	Existing Outcome = iota
	// Created means a new document was built and written.
	Created
)

func (o Outcome) String() string {
	switch o {
	case Existing:
		return "existing"
	case Created:
		return "created"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Gate guards a single configuration file.
type Gate struct {
	fs     afero.Fs
	path   string
	out    io.Writer
	logger *log.Logger
}

// NewGate returns a Gate for path on fs. Notices go to out.
func NewGate(fs afero.Fs, path string, out io.Writer, logger *log.Logger) *Gate {
	return &Gate{
		fs:     fs,
		path:   path,
		out:    out,
		logger: logging.OrNop(logger),
	}
}

// Path returns the guarded file path.
func (g *Gate) Path() string {
	return g.path
}

// Run builds and writes the configuration unless the file already exists.
// An existing file is never touched and the builder is not called.
func (g *Gate) Run(ctx context.Context, b Builder) (Outcome, error) {
	exists, err := Exists(g.fs, g.path)
	if err != nil {
		return Existing, err
	}
	if exists {
		g.logger.Info("configuration already present", "path", g.path)
		fmt.Fprintf(g.out, "The file '%s' is already existing!\n", g.path)
		return Existing, nil
	}

	cfg, err := b.Build(ctx)
	if err != nil {
		return Existing, err
	}
	if err := Save(g.fs, g.path, cfg); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			g.logger.Warn("configuration appeared during setup, answers discarded", "path", g.path)
			fmt.Fprintf(g.out, "The file '%s' is already existing!\n", g.path)
		}
		return Existing, err
	}
	g.logger.Info("configuration written", "path", g.path, "keys", cfg.Len())
	fmt.Fprintf(g.out, "The file '%s' was successfully created!\n", g.path)
	return Created, nil
}

// Exists reports whether path exists on fs.
func Exists(fs afero.Fs, path string) (bool, error) {
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", path, err)
	}
	return ok, nil
}

// Save writes cfg to path as YAML. The document is written to a sibling
// temporary file first and renamed into place. An existing file at path is
// never replaced; Save returns ErrAlreadyExists instead.
func Save(fs afero.Fs, path string, cfg *schema.Configuration) error {
	data, err := cfg.YAML()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := fs.Chmod(tmpName, 0o600); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	exists, err := Exists(fs, path)
	if err == nil && exists {
		err = ErrAlreadyExists
	}
	if err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a configuration document from path.
func Load(fs afero.Fs, path string) (*schema.Configuration, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := schema.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
