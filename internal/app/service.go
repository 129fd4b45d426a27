package app

import (
	"github.com/spf13/afero"

	"proto2ros/internal/adapters"
	"proto2ros/internal/ports"
)

// Service wires the generation use cases to their adapters. Adapters bound
// to per-request directories are built on demand over Fs.
type Service struct {
	Fs        afero.Fs
	Documents ports.InterfaceDocPort
	Projects  ports.ProjectFilterPort
	Packages  ports.InterfacePackagePort
}

func NewService() Service {
	return NewServiceWithFs(afero.NewOsFs())
}

// NewServiceWithFs builds a Service over fs; tests pass an in-memory
// filesystem.
func NewServiceWithFs(fs afero.Fs) Service {
	return Service{
		Fs:        fs,
		Documents: adapters.NewInterfaceDocAdapter(fs, ""),
		Projects:  adapters.NewProjectFilterAdapter(fs),
		Packages:  adapters.NewInterfacePackageAdapter(fs),
	}
}

func (s Service) recordStore(msgDir string, srvDir string) ports.RecordStorePort {
	return adapters.NewRecordStoreAdapter(s.Fs, msgDir, srvDir)
}

func (s Service) manifestFile(dir string) ports.ManifestPort {
	return adapters.NewManifestFileAdapter(s.Fs, dir)
}

func (s Service) runArtifacts(dir string) adapters.RunArtifactsAdapter {
	return adapters.NewRunArtifactsAdapter(s.Fs, dir)
}
