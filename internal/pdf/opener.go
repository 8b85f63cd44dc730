package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Opener resolves bibliography PDF paths and hands them to a viewer.
type Opener struct {
	root   string
	viewer string
}

// NewOpener creates an Opener rooted at the configured pdf_root. An
// empty viewer means the platform default.
func NewOpener(root, viewer string) *Opener {
	if viewer == "" {
		viewer = "system"
	}
	return &Opener{
		root:   root,
		viewer: viewer,
	}
}

// Resolve turns a PDF argument into an absolute path. Arguments that
// already point at an existing file are used as-is; bare names are
// joined against pdf_root.
func (o *Opener) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no PDF path specified")
	}

	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return filepath.Abs(path)
	}

	if o.root == "" {
		return "", fmt.Errorf("PDF not found: %s (pdf_root not configured)", path)
	}

	fullPath := filepath.Join(o.root, path)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("PDF not found: %s", fullPath)
		}
		return "", fmt.Errorf("checking PDF: %w", err)
	}

	return fullPath, nil
}

// Open launches the configured viewer on an absolute PDF path.
func (o *Opener) Open(fullPath string) error {
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("PDF file does not exist: %s", fullPath)
		}
		return fmt.Errorf("checking PDF file: %w", err)
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = o.darwinCommand(fullPath)
	case "linux":
		cmd = o.linuxCommand(fullPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

func (o *Opener) darwinCommand(path string) *exec.Cmd {
	switch o.viewer {
	case "skim":
		return exec.Command("open", "-a", "Skim", path)
	case "preview":
		return exec.Command("open", "-a", "Preview", path)
	default: // "system"
		return exec.Command("open", path)
	}
}

func (o *Opener) linuxCommand(path string) *exec.Cmd {
	switch o.viewer {
	case "zathura":
		return exec.Command("zathura", path)
	case "evince":
		return exec.Command("evince", path)
	case "okular":
		return exec.Command("okular", path)
	default: // "system"
		return exec.Command("xdg-open", path)
	}
}
