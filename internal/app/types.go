package app

import "proto2ros/internal/types"

type GenerateRequest struct {
	ProtoDirs      []string
	IDLDirs        []string
	MsgOutput      string
	SrvOutput      string
	DocOutput      string
	ProjectsFile   string
	HeaderType     string
	TopLevelDirs   []string
	SchemaExt      string
	IDLExt         string
	CacheSize      int
	PackageName    string
	PackageVersion string
	PerProject     bool
}

// GenerateOutput describes one output set; a run without per-project
// splitting produces exactly one.
type GenerateOutput struct {
	Project  string
	MsgDir   string
	SrvDir   string
	DocDir   string
	Report   types.RunReport
	Manifest []types.ManifestEntry
	Warnings []types.Warning
	Records  []types.OutputRecord
}

type GenerateResult struct {
	Outputs []GenerateOutput
}

type SanitizeRequest struct {
	MsgOutput    string
	SrvOutput    string
	ManifestPath string
}

type RenameResult struct {
	Renamed  int
	Plan     types.RenamePlan
	Warnings []types.Warning
}

type ReconcileRequest struct {
	ManifestPath string
	MsgOutput    string
	SrvOutput    string
}

type InspectRequest struct {
	ManifestPath string
}

type InspectTopicSummary struct {
	Topic       string
	Identifiers []string
	Origins     []string
}

type InspectResult struct {
	Entries  int
	Messages int
	Services int
	Topics   []InspectTopicSummary
	// Mixed lists topics whose entries resolved to more than one
	// identifier.
	Mixed []string
}

type ValidateRequest struct {
	ProtoDirs      []string
	IDLDirs        []string
	SchemaExt      string
	IDLExt         string
	ProjectsFile   string
	PackageVersion string
}

type ValidateResult struct {
	SchemaFiles int
	Documents   int
	Projects    int
}
