package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize sets up a configuration directory, writing the default
// config.yaml if one doesn't already exist. It can be run on an
// initialized directory; existing files are left alone.
func Initialize(fsys afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)

	exists, err := afero.Exists(fsys, configPath)
	switch {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("skipping %s, already exists", configPath)
	default:
		logger.Printf("creating %s", configPath)
		if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	return Load(fsys, path)
}
