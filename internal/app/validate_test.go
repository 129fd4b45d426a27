package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCountsInputs(t *testing.T) {
	fs := seatCorpus(t)
	result, err := NewServiceWithFs(fs).Validate(testContext(), ValidateRequest{
		ProtoDirs:      []string{"/proto"},
		IDLDirs:        []string{"/idl/swc"},
		ProjectsFile:   "/idl/projects.txt",
		PackageVersion: "1.0.0-1",
	})
	require.NoError(t, err)
	assert.Equal(t, ValidateResult{SchemaFiles: 2, Documents: 2, Projects: 1}, result)
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name string
		req  ValidateRequest
	}{
		{name: "no proto dirs", req: ValidateRequest{}},
		{name: "missing proto root", req: ValidateRequest{ProtoDirs: []string{"/nowhere"}}},
		{name: "missing idl root", req: ValidateRequest{ProtoDirs: []string{"/proto"}, IDLDirs: []string{"/nowhere"}}},
		{name: "missing projects file", req: ValidateRequest{ProtoDirs: []string{"/proto"}, ProjectsFile: "/idl/absent.txt"}},
		{name: "bad version", req: ValidateRequest{ProtoDirs: []string{"/proto"}, PackageVersion: "vX"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewServiceWithFs(seatCorpus(t)).Validate(testContext(), tc.req)
			assert.Error(t, err)
		})
	}
}
