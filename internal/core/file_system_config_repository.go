package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"smalipatch/internal/core/domain"
	"smalipatch/internal/ports"

	"gopkg.in/yaml.v3"
)

var configFilePath = filepath.Join("~", ".smalipatch.yaml")

type ConfigRepository interface {
	LoadConfig() (*domain.Config, error)
	SaveConfig(*domain.Config) error
	ConfigExists() (bool, error)
}

type FileSystemConfigRepository struct {
	fileService ports.FileSystem
	config      *domain.Config
}

func ProvideFileSystemConfigRepository(fileService ports.FileSystem) *FileSystemConfigRepository {
	return &FileSystemConfigRepository{
		fileService: fileService,
	}
}

// LoadConfig reads the user config on top of the defaults. A missing file
// is not an error, the defaults are returned as they are.
func (c *FileSystemConfigRepository) LoadConfig() (*domain.Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	config := domain.CreateDefaultConfig()
	exists, err := c.fileService.FileExists(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %v", err)
	}
	if exists {
		data, err := c.fileService.ReadFile(configFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %v", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configFilePath, err)
	}

	if config.LogFile != "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %v", err)
		}
		config.LogFile = expandHomePath(config.LogFile, home)
	}

	c.config = &config
	return c.config, nil
}

func (c *FileSystemConfigRepository) SaveConfig(config *domain.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := c.fileService.WriteFile(configFilePath, data, ports.ReadWrite); err != nil {
		return err
	}
	c.config = nil
	return nil
}

func (c *FileSystemConfigRepository) ConfigExists() (bool, error) {
	return c.fileService.FileExists(configFilePath)
}

// expandHomePath expands a leading ~ to home.
func expandHomePath(path string, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
