package compose

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Stack is the subset of the compose file format the validator cares about.
type Stack struct {
	Services map[string]Service `yaml:"services"`
	Volumes  map[string]any     `yaml:"volumes,omitempty"`
	Networks map[string]any     `yaml:"networks,omitempty"`
}

// Service is one named unit in the stack. Environment and depends_on accept
// both the list and map forms of the compose format, so they stay untyped.
type Service struct {
	Image       string   `yaml:"image,omitempty"`
	Build       any      `yaml:"build,omitempty"`
	Ports       []string `yaml:"ports,omitempty"`
	Environment any      `yaml:"environment,omitempty"`
	DependsOn   any      `yaml:"depends_on,omitempty"`
	Restart     string   `yaml:"restart,omitempty"`
}

// LoadFile parses a single compose file.
func LoadFile(path string) (*Stack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file: %w", err)
	}

	var stack Stack
	if err := yaml.Unmarshal(data, &stack); err != nil {
		return nil, fmt.Errorf("failed to parse compose YAML %s: %w", path, err)
	}

	return &stack, nil
}

// LoadStack merges service definitions across the configured compose files,
// later files overriding earlier ones, matching how docker compose resolves
// multiple -f arguments at the service granularity.
func LoadStack(dir string, files []string) (*Stack, error) {
	merged := &Stack{Services: make(map[string]Service)}

	for _, f := range files {
		stack, err := LoadFile(filepath.Join(dir, f))
		if err != nil {
			return nil, err
		}
		for name, svc := range stack.Services {
			merged.Services[name] = svc
		}
	}

	return merged, nil
}

// ValidationResult collects problems found in the stack definition.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Validate checks that every required service is defined and runnable.
func (s *Stack) Validate(required []string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(s.Services) == 0 {
		result.addError("no services defined in compose files")
		return result
	}

	for _, name := range required {
		svc, ok := s.Services[name]
		if !ok {
			result.addError("service %q is not defined in the compose files", name)
			continue
		}
		if svc.Image == "" && svc.Build == nil {
			result.addError("service %q has neither an image nor a build section", name)
		}
	}

	return result
}
