package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"proto2ros/internal/adapters"
	"proto2ros/internal/app"
	"proto2ros/internal/core"
)

type generateOptions struct {
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

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Translate interface documents and schemas into .msg/.srv records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.ProtoDirs, "proto-dir", nil, "Schema corpus root(s)")
	cmd.Flags().StringSliceVar(&opts.IDLDirs, "idl-dir", nil, "Interface document root(s)")
	cmd.Flags().StringVar(&opts.MsgOutput, "msg-output", "", "Output directory for .msg records")
	cmd.Flags().StringVar(&opts.SrvOutput, "srv-output", "", "Output directory for .srv records")
	cmd.Flags().StringVar(&opts.DocOutput, "doc-output", "", "Output directory for manifest, warnings and report (default msg output)")
	cmd.Flags().StringVar(&opts.ProjectsFile, "projects-file", "", "Project allow-list, one document stem per line")
	cmd.Flags().StringVar(&opts.HeaderType, "header-type", core.DefaultHeaderType, "Header type prepended to top-level messages")
	cmd.Flags().StringSliceVar(&opts.TopLevelDirs, "top-level-dir", []string{"msgs", "messages"}, "Directory names holding top-level message schemas")
	cmd.Flags().StringVar(&opts.SchemaExt, "schema-ext", ".proto", "Schema file extension")
	cmd.Flags().StringVar(&opts.IDLExt, "idl-ext", ".sdvsidl", "Interface document extension")
	cmd.Flags().IntVar(&opts.CacheSize, "corpus-cache-size", adapters.DefaultCorpusCacheSize, "Number of schema files kept in memory")
	cmd.Flags().StringVar(&opts.PackageName, "package-name", "", "Write a ROS interface package scaffold with this name")
	cmd.Flags().StringVar(&opts.PackageVersion, "package-version", "", "Interface package version (debian format)")
	cmd.Flags().BoolVar(&opts.PerProject, "per-project", false, "Write one output set per interface document")
	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	service := newAppService()
	result, err := service.Generate(ctx, app.GenerateRequest{
		ProtoDirs:      resolveStrings(cmd, opts.ProtoDirs, "proto_dirs", "proto-dir"),
		IDLDirs:        resolveStrings(cmd, opts.IDLDirs, "idl_dirs", "idl-dir"),
		MsgOutput:      resolveString(cmd, opts.MsgOutput, "msg_output", "msg-output"),
		SrvOutput:      resolveString(cmd, opts.SrvOutput, "srv_output", "srv-output"),
		DocOutput:      resolveString(cmd, opts.DocOutput, "doc_output", "doc-output"),
		ProjectsFile:   resolveString(cmd, opts.ProjectsFile, "projects_file", "projects-file"),
		HeaderType:     resolveString(cmd, opts.HeaderType, "header_type", "header-type"),
		TopLevelDirs:   resolveStrings(cmd, opts.TopLevelDirs, "top_level_dirs", "top-level-dir"),
		SchemaExt:      resolveString(cmd, opts.SchemaExt, "schema_ext", "schema-ext"),
		IDLExt:         resolveString(cmd, opts.IDLExt, "idl_ext", "idl-ext"),
		CacheSize:      resolveInt(cmd, opts.CacheSize, "corpus_cache_size", "corpus-cache-size"),
		PackageName:    resolveString(cmd, opts.PackageName, "package_name", "package-name"),
		PackageVersion: resolveString(cmd, opts.PackageVersion, "package_version", "package-version"),
		PerProject:     resolveBool(cmd, opts.PerProject, "per_project", "per-project"),
	})
	if err != nil {
		return err
	}
	for _, out := range result.Outputs {
		label := out.Project
		if label == "" {
			label = "all"
		}
		fmt.Printf("%s: %d msg, %d srv, %d renamed, %d skipped, %d warnings\n",
			label, out.Report.Messages, out.Report.Services, out.Report.Renamed, out.Report.Skipped, len(out.Warnings))
		fmt.Printf("  messages: %s\n  services: %s\n", out.MsgDir, out.SrvDir)
	}
	return nil
}
