package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"proto2ros/internal/ports"
)

// ProjectFilterAdapter reads a project allow-list: one name per line,
// `#` starts a comment, order of first appearance is kept.
type ProjectFilterAdapter struct {
	Fs afero.Fs
}

func NewProjectFilterAdapter(fs afero.Fs) ProjectFilterAdapter {
	return ProjectFilterAdapter{Fs: fs}
}

// LoadProjects returns a not-found error when the file is missing; callers
// treat that as "no filtering".
func (a ProjectFilterAdapter) LoadProjects(path string) ([]string, error) {
	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("projects file not found: " + path).
			WithCause(err)
	}
	var projects []string
	seen := map[string]struct{}{}
	for _, raw := range strings.Split(string(data), "\n") {
		line := raw
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		projects = append(projects, line)
	}
	return projects, nil
}

var _ ports.ProjectFilterPort = ProjectFilterAdapter{}
