package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"proto2ros/internal/ports"
	"proto2ros/internal/types"
)

const (
	WarningsFile = "generation_warnings.txt"
	ReportFile   = "generation_report.yaml"
)

// RunArtifactsAdapter writes the per-run warnings log and YAML report into
// the documentation directory.
type RunArtifactsAdapter struct {
	Fs  afero.Fs
	Dir string
}

func NewRunArtifactsAdapter(fs afero.Fs, dir string) RunArtifactsAdapter {
	return RunArtifactsAdapter{Fs: fs, Dir: dir}
}

func (a RunArtifactsAdapter) WriteWarnings(warnings []types.Warning) error {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, w.String())
	}
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	return a.write(WarningsFile, []byte(content))
}

func (a RunArtifactsAdapter) WriteReport(report types.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode run report").
			WithCause(err)
	}
	return a.write(ReportFile, data)
}

// ReadReport loads a report written by WriteReport.
func (a RunArtifactsAdapter) ReadReport(path string) (types.RunReport, error) {
	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return types.RunReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("run report not found: " + path).
			WithCause(err)
	}
	var report types.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.RunReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse run report").
			WithCause(err)
	}
	return report, nil
}

func (a RunArtifactsAdapter) write(name string, data []byte) error {
	path, err := ensurePath(a.Fs, a.Dir, name)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(a.Fs, path, data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + name).
			WithCause(err)
	}
	return nil
}

var (
	_ ports.WarningLogPort = RunArtifactsAdapter{}
	_ ports.ReportPort     = RunArtifactsAdapter{}
)
