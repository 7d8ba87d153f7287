package validation

import (
	"fmt"
	"log/slog"
	"os"
)

// InputFile pairs an input path with a descriptive name for error messages
type InputFile struct {
	Path string
	Name string
}

// InputValidator checks that a run's input files exist before any stage
// starts. A missing input fails the whole run up front rather than midway
// through processing.
type InputValidator struct {
	logger *slog.Logger
}

// NewInputValidator creates an input validator
func NewInputValidator(logger *slog.Logger) *InputValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &InputValidator{logger: logger}
}

// ValidateInputFile validates that a single input file exists and is a
// regular file
func (v *InputValidator) ValidateInputFile(path, name string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("input file not found",
			slog.String("name", name),
			slog.String("path", path))
		return fmt.Errorf("%s not found at %s", name, path)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", name, path)
	}
	if info.Size() == 0 {
		v.logger.Warn("input file is empty",
			slog.String("name", name),
			slog.String("path", path))
	}
	v.logger.Info("input file found",
		slog.String("name", name),
		slog.String("path", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}

// ValidateInputFiles validates every required input, reporting the first
// failure
func (v *InputValidator) ValidateInputFiles(files []InputFile) error {
	v.logger.Info("checking input files", slog.Int("count", len(files)))
	for _, f := range files {
		if err := v.ValidateInputFile(f.Path, f.Name); err != nil {
			return err
		}
	}
	return nil
}
