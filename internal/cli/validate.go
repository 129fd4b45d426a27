package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"proto2ros/internal/app"
)

type validateOptions struct {
	ProtoDirs      []string
	IDLDirs        []string
	SchemaExt      string
	IDLExt         string
	ProjectsFile   string
	PackageVersion string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check generation inputs without writing anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.ProtoDirs, "proto-dir", nil, "Schema corpus root(s)")
	cmd.Flags().StringSliceVar(&opts.IDLDirs, "idl-dir", nil, "Interface document root(s)")
	cmd.Flags().StringVar(&opts.SchemaExt, "schema-ext", ".proto", "Schema file extension")
	cmd.Flags().StringVar(&opts.IDLExt, "idl-ext", ".sdvsidl", "Interface document extension")
	cmd.Flags().StringVar(&opts.ProjectsFile, "projects-file", "", "Project allow-list")
	cmd.Flags().StringVar(&opts.PackageVersion, "package-version", "", "Interface package version (debian format)")
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		ProtoDirs:      resolveStrings(cmd, opts.ProtoDirs, "proto_dirs", "proto-dir"),
		IDLDirs:        resolveStrings(cmd, opts.IDLDirs, "idl_dirs", "idl-dir"),
		SchemaExt:      resolveString(cmd, opts.SchemaExt, "schema_ext", "schema-ext"),
		IDLExt:         resolveString(cmd, opts.IDLExt, "idl_ext", "idl-ext"),
		ProjectsFile:   resolveString(cmd, opts.ProjectsFile, "projects_file", "projects-file"),
		PackageVersion: resolveString(cmd, opts.PackageVersion, "package_version", "package-version"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("validated: %d schema files, %d interface documents, %d projects\n",
		result.SchemaFiles, result.Documents, result.Projects)
	return nil
}
