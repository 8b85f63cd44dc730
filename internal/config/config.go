// Package config handles project and global configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents project configuration stored in cite.yml at the
// project root. Loading fills in defaults and anchors relative paths at
// the root.
type Config struct {
	Bibliography string `yaml:"bibliography,omitempty"` // Bibliography source of truth (.bib)
	Style        string `yaml:"style,omitempty"`        // Default citation style
	PDFRoot      string `yaml:"pdf_root,omitempty"`     // Folder holding the project's PDFs
	PDFViewer    string `yaml:"pdf_viewer,omitempty"`   // Viewer program ("system", "zathura", "skim", ...)
	Library      string `yaml:"library,omitempty"`      // SQLite library cache
}

const (
	// ProjectFile is the project configuration file name.
	ProjectFile = "cite.yml"
	// CiteDir holds per-project derived data.
	CiteDir = ".cite"
	// LibraryFile is the SQLite library cache file name.
	LibraryFile = "library.db"

	// DefaultBibliography is used when cite.yml does not name a source.
	DefaultBibliography = "references.bib"
	// DefaultStyle is the rendering default.
	DefaultStyle = "apa"
)

// ErrNoProject is returned when no cite.yml is found walking up from
// the starting directory.
var ErrNoProject = errors.New("not in a cite project (no cite.yml found)")

// ProjectPath returns the path to cite.yml from a project root.
func ProjectPath(root string) string {
	return filepath.Join(root, ProjectFile)
}

// CitePath returns the path to the .cite directory from a project root.
func CitePath(root string) string {
	return filepath.Join(root, CiteDir)
}

// LibraryPath returns the default library cache path from a project root.
func LibraryPath(root string) string {
	return filepath.Join(root, CiteDir, LibraryFile)
}

// IsProject checks whether root holds a cite.yml file.
func IsProject(root string) bool {
	info, err := os.Stat(ProjectPath(root))
	return err == nil && info.Mode().IsRegular()
}

// FindProject walks up from the given path to find a project root.
// Returns ErrNoProject when the filesystem root is reached without
// finding cite.yml.
func FindProject(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsProject(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoProject
		}
		abs = parent
	}
}

// Load reads cite.yml from the project at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ProjectPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults(root)
	return &cfg, nil
}

func (c *Config) applyDefaults(root string) {
	if c.Bibliography == "" {
		c.Bibliography = DefaultBibliography
	}
	c.Bibliography = anchorPath(root, c.Bibliography)

	if c.Style == "" {
		c.Style = DefaultStyle
	}

	if c.Library == "" {
		c.Library = LibraryPath(root)
	} else {
		c.Library = anchorPath(root, c.Library)
	}

	if c.PDFRoot != "" {
		c.PDFRoot = anchorPath(root, c.PDFRoot)
	}
}

// anchorPath expands ~ and resolves relative paths against root.
func anchorPath(root, path string) string {
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ExpandPath expands a leading ~ to the user's home directory. The path
// is returned unchanged when it does not start with ~ or the home
// directory cannot be determined.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
