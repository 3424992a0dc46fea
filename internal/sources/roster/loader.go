package roster

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// varPattern matches {{CODEX_VAR_NAME}} placeholders.
var varPattern = regexp.MustCompile(`\{\{\s*(CODEX_VAR_[A-Z0-9_]+)\s*\}\}`)

// Loader reads and parses the roster file.
type Loader struct {
	filePath string
	lookup   func(string) (string, bool)
}

// NewLoader creates a roster loader. Placeholders resolve from the environment.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
		lookup:   os.LookupEnv,
	}
}

func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the roster file
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read roster file: %w", err)
	}

	return Parse(expandVariables(data, l.lookup))
}

// Parse decodes roster YAML.
func Parse(data []byte) (File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse roster yaml: %w", err)
	}
	return file, nil
}

// expandVariables substitutes {{CODEX_VAR_...}} placeholders. Unset variables
// expand to an empty string.
// Example: "{{CODEX_VAR_ASSETS}}/aurora.png" -> "https://cdn.example/aurora.png"
func expandVariables(data []byte, lookup func(string) (string, bool)) []byte {
	return varPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := varPattern.FindSubmatch(match)[1]
		value, _ := lookup(string(name))
		return []byte(value)
	})
}
