package adapters

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/spf13/afero"

	"proto2ros/internal/ports"
	"proto2ros/internal/types"
)

const (
	defaultPackageVersion = "0.0.1"
	defaultLicense        = "Proprietary"
	defaultMaintainer     = "maintainer@example.com"
)

type packageManifest struct {
	XMLName         xml.Name          `xml:"package"`
	Format          string            `xml:"format,attr"`
	Name            string            `xml:"name"`
	Version         string            `xml:"version"`
	Description     string            `xml:"description"`
	Maintainer      packageMaintainer `xml:"maintainer"`
	License         string            `xml:"license"`
	BuildtoolDepend []string          `xml:"buildtool_depend"`
	Depend          []string          `xml:"depend"`
	BuildDepend     []string          `xml:"build_depend"`
	ExecDepend      []string          `xml:"exec_depend"`
	MemberOfGroup   []string          `xml:"member_of_group"`
	Export          packageExport     `xml:"export"`
}

type packageMaintainer struct {
	Email string `xml:"email,attr"`
	Value string `xml:",chardata"`
}

type packageExport struct {
	BuildType string `xml:"build_type"`
}

// InterfacePackageAdapter writes package.xml and CMakeLists.txt for a ROS 2
// interface package holding the generated records.
type InterfacePackageAdapter struct {
	Fs afero.Fs
}

func NewInterfacePackageAdapter(fs afero.Fs) InterfacePackageAdapter {
	return InterfacePackageAdapter{Fs: fs}
}

// ValidateVersion checks that version parses as a Debian version, since
// ROS packages ship as debs.
func (a InterfacePackageAdapter) ValidateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return nil
	}
	if _, err := debversion.NewVersion(version); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package version %q is not a valid debian version", version)).
			WithCause(err)
	}
	return nil
}

func (a InterfacePackageAdapter) WritePackage(meta types.PackageMeta, records []types.OutputRecord) error {
	if strings.TrimSpace(meta.Name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is empty")
	}
	meta = a.mergeExisting(meta)
	if meta.Version == "" {
		meta.Version = defaultPackageVersion
	}
	if err := a.ValidateVersion(meta.Version); err != nil {
		return err
	}

	deps := referencedPackages(meta.Name, records)
	manifest := packageManifest{
		Format:          "3",
		Name:            meta.Name,
		Version:         meta.Version,
		Description:     orDefault(meta.Description, "Generated ROS 2 interfaces"),
		Maintainer:      packageMaintainer{Email: orDefault(meta.Maintainer, defaultMaintainer), Value: orDefault(meta.Maintainer, defaultMaintainer)},
		License:         orDefault(meta.License, defaultLicense),
		BuildtoolDepend: []string{"ament_cmake", "rosidl_default_generators"},
		Depend:          deps,
		ExecDepend:      []string{"rosidl_default_runtime"},
		MemberOfGroup:   []string{"rosidl_interface_packages"},
		Export:          packageExport{BuildType: "ament_cmake"},
	}
	data, err := xml.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode package.xml").
			WithCause(err)
	}
	content := xml.Header + string(data) + "\n"
	if err := a.write(meta.Dir, "package.xml", content); err != nil {
		return err
	}
	return a.write(meta.Dir, "CMakeLists.txt", cmakeLists(meta.Name, deps, records))
}

// mergeExisting fills empty metadata from a package.xml already present in
// meta.Dir, so hand-edited descriptions and maintainers survive
// regeneration.
func (a InterfacePackageAdapter) mergeExisting(meta types.PackageMeta) types.PackageMeta {
	data, err := afero.ReadFile(a.Fs, filepath.Join(meta.Dir, "package.xml"))
	if err != nil {
		return meta
	}
	var existing packageManifest
	if err := xml.Unmarshal(data, &existing); err != nil {
		return meta
	}
	if meta.Version == "" {
		meta.Version = strings.TrimSpace(existing.Version)
	}
	if meta.Description == "" {
		meta.Description = strings.TrimSpace(existing.Description)
	}
	if meta.Maintainer == "" {
		meta.Maintainer = strings.TrimSpace(existing.Maintainer.Value)
	}
	if meta.License == "" {
		meta.License = strings.TrimSpace(existing.License)
	}
	return meta
}

func cmakeLists(name string, deps []string, records []types.OutputRecord) string {
	var files []string
	for _, rec := range records {
		files = append(files, string(rec.Kind)+"/"+rec.FileName())
	}
	sort.Strings(files)

	var b strings.Builder
	b.WriteString("cmake_minimum_required(VERSION 3.8)\n")
	fmt.Fprintf(&b, "project(%s)\n\n", name)
	b.WriteString("find_package(ament_cmake REQUIRED)\n")
	b.WriteString("find_package(rosidl_default_generators REQUIRED)\n")
	for _, dep := range deps {
		fmt.Fprintf(&b, "find_package(%s REQUIRED)\n", dep)
	}
	b.WriteString("\nrosidl_generate_interfaces(${PROJECT_NAME}\n")
	for _, file := range files {
		fmt.Fprintf(&b, "  \"%s\"\n", file)
	}
	if len(deps) > 0 {
		fmt.Fprintf(&b, "  DEPENDENCIES %s\n", strings.Join(deps, " "))
	}
	b.WriteString(")\n\nament_export_dependencies(rosidl_default_runtime)\nament_package()\n")
	return b.String()
}

// referencedPackages lists the packages of `pkg/Type` field references,
// excluding the package being generated.
func referencedPackages(self string, records []types.OutputRecord) []string {
	seen := map[string]struct{}{}
	for _, rec := range records {
		for _, line := range rec.Lines {
			fields := strings.Fields(line)
			if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
				continue
			}
			pkg, _, ok := strings.Cut(fields[0], "/")
			if !ok || pkg == "" || pkg == self {
				continue
			}
			seen[pkg] = struct{}{}
		}
	}
	deps := make([]string, 0, len(seen))
	for pkg := range seen {
		deps = append(deps, pkg)
	}
	sort.Strings(deps)
	return deps
}

func orDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func (a InterfacePackageAdapter) write(dir string, name string, content string) error {
	path, err := ensurePath(a.Fs, dir, name)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(a.Fs, path, []byte(content), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + name).
			WithCause(err)
	}
	return nil
}

var _ ports.InterfacePackagePort = InterfacePackageAdapter{}
