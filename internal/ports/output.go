package ports

import "proto2ros/internal/types"

// RecordStorePort persists generated records. Messages and services live
// in separate directories.
type RecordStorePort interface {
	Write(record types.OutputRecord) error
	Remove(kind types.RecordKind, name string) error
	Load() (*types.RecordSet, error)
}

type ManifestPort interface {
	WriteManifest(entries []types.ManifestEntry) error
	ReadManifest(path string) ([]types.ManifestEntry, error)
}

type WarningLogPort interface {
	WriteWarnings(warnings []types.Warning) error
}

type ReportPort interface {
	WriteReport(report types.RunReport) error
}

// InterfacePackagePort writes the ROS interface package scaffold around the
// generated records.
type InterfacePackagePort interface {
	WritePackage(meta types.PackageMeta, records []types.OutputRecord) error
	ValidateVersion(version string) error
}
