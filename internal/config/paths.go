package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Paths provides resolved output locations for a pipeline run
type Paths struct {
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// GetPaths resolves the output directories from the configuration,
// creating them if needed.
func GetPaths(cfg *Config) (*Paths, error) {
	p := &Paths{
		DataDir:    cfg.Outputs.DataDir,
		ReportsDir: cfg.Outputs.ReportsDir,
		LogsDir:    cfg.Outputs.LogsDir,
	}
	if err := p.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure output directories: %w", err)
	}
	return p, nil
}

// EnsureDirectories creates all output directories if they do not exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DataPath returns the path of an output dataset file
func (p *Paths) DataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// ReportPath returns the path of a report file
func (p *Paths) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPath returns a timestamped log file path for the given run name
func (p *Paths) LogPath(runName string) string {
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(p.LogsDir, fmt.Sprintf("%s_%s.log", runName, timestamp))
}

// FileExists checks if a file exists and is not a directory
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
