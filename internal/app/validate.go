package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"proto2ros/internal/adapters"
)

// Validate checks the generation inputs without writing anything.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if len(req.ProtoDirs) == 0 {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one proto directory is required")
	}
	if err := s.Packages.ValidateVersion(req.PackageVersion); err != nil {
		return ValidateResult{}, err
	}
	corpus, err := adapters.NewSchemaCorpusAdapter(s.Fs, req.ProtoDirs, req.SchemaExt, 1)
	if err != nil {
		return ValidateResult{}, err
	}
	files, err := corpus.Files()
	if err != nil {
		return ValidateResult{}, err
	}
	result := ValidateResult{SchemaFiles: len(files)}

	if len(req.IDLDirs) > 0 {
		paths, err := s.documents(req.IDLExt).Discover(req.IDLDirs)
		if err != nil {
			return ValidateResult{}, err
		}
		result.Documents = len(paths)
	}
	if strings.TrimSpace(req.ProjectsFile) != "" {
		projects, err := s.Projects.LoadProjects(req.ProjectsFile)
		if err != nil {
			return ValidateResult{}, err
		}
		result.Projects = len(projects)
	}
	log.Ctx(ctx).Debug().Int("schema_files", result.SchemaFiles).Int("documents", result.Documents).Msg("inputs validated")
	return result, nil
}
