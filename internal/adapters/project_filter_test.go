package adapters

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectFilterAdapterLoadProjects(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/projects.txt": "# allowed\nHmiManager\n\nAccApp # rust\nHmiManager\n  PathPlanner  \n"})

	projects, err := NewProjectFilterAdapter(fs).LoadProjects("/projects.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"HmiManager", "AccApp", "PathPlanner"}, projects)
}

func TestProjectFilterAdapterMissingFile(t *testing.T) {
	projects, err := NewProjectFilterAdapter(afero.NewMemMapFs()).LoadProjects("/missing.txt")
	assert.Error(t, err)
	assert.Empty(t, projects)
}
