package config

import "os"

// Environment variables the CLI honors, loaded after godotenv runs.
const (
	EnvBibliography = "CITE_BIBLIOGRAPHY"
	EnvStyle        = "CITE_STYLE"
)

// ResolveBibliography picks the bibliography source for a CLI run:
// explicit flag value, then CITE_BIBLIOGRAPHY, then the project config
// found from the working directory, then the global config, then the
// built-in default in the working directory.
func ResolveBibliography(flagValue string) string {
	if flagValue != "" {
		return ExpandPath(flagValue)
	}
	if env := os.Getenv(EnvBibliography); env != "" {
		return ExpandPath(env)
	}
	if root, err := FindProject("."); err == nil {
		if cfg, err := Load(root); err == nil {
			return cfg.Bibliography
		}
	}
	if cfg, err := LoadGlobalConfig(); err == nil && cfg.Bibliography != "" {
		return cfg.Bibliography
	}
	return DefaultBibliography
}

// ResolveStyle picks the citation style the same way: flag, CITE_STYLE,
// project config, global config, built-in default.
func ResolveStyle(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvStyle); env != "" {
		return env
	}
	if root, err := FindProject("."); err == nil {
		if cfg, err := Load(root); err == nil {
			return cfg.Style
		}
	}
	if cfg, err := LoadGlobalConfig(); err == nil && cfg.Style != "" {
		return cfg.Style
	}
	return DefaultStyle
}
