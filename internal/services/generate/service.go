package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/launchbynttdata/wych/internal/domain/appversion"
)

const filePerm fs.FileMode = 0o644

var (
	ErrNilRenderer     = errors.New("generate service: nil renderer")
	ErrNilFileSystem   = errors.New("generate service: nil file system")
	ErrEmptyOutputDir  = errors.New("generate service: empty output directory")
	ErrEmptyFileName   = errors.New("generate service: empty file name")
	ErrOutputDirNotDir = errors.New("generate service: output path is not a directory")
)

// Renderer turns a record into file contents.
type Renderer interface {
	Render(record appversion.Record) (string, error)
}

// FileSystem is the subset of file operations the service performs.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// OSFileSystem writes to the local disk.
type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm) // #nosec G306
}

// Config captures a single generation request.
type Config struct {
	OutputDir string
	FileName  string
	Record    appversion.Record
	DryRun    bool
}

// Result describes what was produced.
type Result struct {
	Path    string
	Content string
	Written bool
}

// Service renders a version record and writes it into the output directory.
type Service struct {
	renderer Renderer
	fs       FileSystem
}

// NewService constructs a Service instance.
func NewService(renderer Renderer, fsys FileSystem) Service {
	return Service{renderer: renderer, fs: fsys}
}

// Generate renders cfg.Record and, unless DryRun is set, writes the result to
// OutputDir/FileName. Nothing is written when rendering fails.
func (s Service) Generate(ctx context.Context, cfg Config) (Result, error) {
	if s.renderer == nil {
		return Result{}, ErrNilRenderer
	}
	if s.fs == nil {
		return Result{}, ErrNilFileSystem
	}
	dir := strings.TrimSpace(cfg.OutputDir)
	if dir == "" {
		return Result{}, ErrEmptyOutputDir
	}
	name := strings.TrimSpace(cfg.FileName)
	if name == "" {
		return Result{}, ErrEmptyFileName
	}

	result := Result{Path: filepath.Join(dir, name)}

	content, err := s.renderer.Render(cfg.Record)
	if err != nil {
		return result, fmt.Errorf("rendering %s: %w", name, err)
	}
	result.Content = content

	if cfg.DryRun {
		return result, nil
	}

	info, err := s.fs.Stat(dir)
	if err != nil {
		return result, fmt.Errorf("checking output directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("%w: %s", ErrOutputDirNotDir, dir)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if err := s.fs.WriteFile(result.Path, []byte(content), filePerm); err != nil {
		return result, fmt.Errorf("writing %s: %w", result.Path, err)
	}
	result.Written = true
	return result, nil
}
