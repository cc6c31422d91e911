package util

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PageID represents a page number within one file
type PageID uint64

// FileID represents a unique file identifier derived from the file path
type FileID uint32

// PageSize represents the standard page size (4KB)
const PageSize = 4096

const (
	// InvalidPageID marks a frame that holds no page
	InvalidPageID PageID = ^PageID(0)

	// InvalidFileID is never assigned to a real file
	InvalidFileID FileID = 0
)

// Options represents database configuration options
type Options struct {
	Path           string `yaml:"path"`
	BufferPoolSize int    `yaml:"buffer_pool_size"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	LogOutput      string `yaml:"log_output"`
}

// DefaultOptions returns default database options
func DefaultOptions() Options {
	return Options{
		Path:           "clockdb.dat",
		BufferPoolSize: 1000, // 4MB default buffer pool
		LogLevel:       "info",
		LogFormat:      "console",
		LogOutput:      "stderr",
	}
}

// LoadOptions reads options from a YAML file, filling unset fields with defaults
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options file: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options file %s: %w", path, err)
	}

	if opts.BufferPoolSize <= 0 {
		return opts, ErrInvalidPoolSize
	}

	return opts, nil
}
