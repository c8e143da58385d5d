package cli

import (
	"os"
	"path/filepath"
)

// Paths provides access to the agentpatterns directory structure
type Paths struct {
	AppName string
	HomeDir string
}

// NewPaths creates a new Paths instance for the given app
func NewPaths(appName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{
		AppName: appName,
		HomeDir: home,
	}, nil
}

// BaseDir returns ~/.agentpatterns
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// AppDir returns ~/.agentpatterns/<app>
func (p *Paths) AppDir() string {
	return filepath.Join(p.BaseDir(), p.AppName)
}

// ConfigFile returns ~/.agentpatterns/<app>/config.yaml
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir(), DefaultConfigFile)
}

// ModelsDir returns ~/.agentpatterns/<app>/models, the default location of
// model configuration files.
func (p *Paths) ModelsDir() string {
	return filepath.Join(p.AppDir(), "models")
}

// PromptsFile returns ~/.agentpatterns/<app>/prompts.yaml
func (p *Paths) PromptsFile() string {
	return filepath.Join(p.AppDir(), "prompts.yaml")
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
