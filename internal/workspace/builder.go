package workspace

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"nichefold/pkg/template"
)

const defaultWidth = 60

// Result describes what a build touched under the project root.
type Result struct {
	Root         string
	Directories  []string
	FilesCreated []string
	FilesSkipped []string
}

// Builder materialises a niche layout on a filesystem. Every step is
// idempotent: directories are created with their parents, and existing files
// are never rewritten.
type Builder struct {
	fs        billy.Filesystem
	out       io.Writer
	templates template.TemplateEngine
	width     int
}

func NewBuilder(fs billy.Filesystem, out io.Writer, templates template.TemplateEngine) *Builder {
	return &Builder{fs: fs, out: out, templates: templates, width: defaultWidth}
}

// WithWidth sets the width of the divider lines around progress output.
func (b *Builder) WithWidth(width int) *Builder {
	if width > 0 {
		b.width = width
	}
	return b
}

func (b *Builder) divider() {
	fmt.Fprintln(b.out, strings.Repeat("-", b.width))
}

// Build creates root, every directory in dirs below it and every template
// file that does not exist yet. The first failure stops the build; whatever
// was created before it stays in place.
func (b *Builder) Build(root, clientName, nicheName string, dirs []string) (*Result, error) {
	fmt.Fprintf(b.out, "\n📁 Creating project: %s (%s)\n", clientName, nicheName)
	fmt.Fprintf(b.out, "📍 Location: %s\n", root)
	b.divider()

	if err := b.fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create project folder %s: %w", root, err)
	}

	res := &Result{Root: root}
	green := color.New(color.FgGreen)

	for _, dir := range dirs {
		path := b.fs.Join(root, filepath.FromSlash(dir))
		if err := b.fs.MkdirAll(path, 0o755); err != nil {
			return res, fmt.Errorf("failed to create directory %s: %w", path, err)
		}
		res.Directories = append(res.Directories, dir)
		green.Fprintf(b.out, "✅ Dir: %s\n", dir)
	}

	for _, f := range b.templates.Render(clientName, nicheName) {
		path := b.fs.Join(root, filepath.FromSlash(f.Name))

		if err := b.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return res, fmt.Errorf("failed to create directory for %s: %w", f.Name, err)
		}

		exists, err := b.exists(path)
		if err != nil {
			return res, fmt.Errorf("failed to check %s: %w", path, err)
		}
		if exists {
			slog.Debug("keeping existing file", slog.String("path", path))
			res.FilesSkipped = append(res.FilesSkipped, f.Name)
			continue
		}

		if err := util.WriteFile(b.fs, path, []byte(f.Content), 0o644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", path, err)
		}
		res.FilesCreated = append(res.FilesCreated, f.Name)
		fmt.Fprintf(b.out, "📄 File: %s\n", f.Name)
	}

	b.divider()
	green.Fprintf(b.out, "🎉 Project '%s' for '%s' created successfully!\n", clientName, nicheName)
	fmt.Fprintf(b.out, "📂 Location: %s\n", root)

	return res, nil
}

func (b *Builder) exists(path string) (bool, error) {
	_, err := b.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
