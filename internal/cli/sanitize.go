package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"proto2ros/internal/app"
	"proto2ros/internal/types"
)

type renameOptions struct {
	MsgOutput    string
	SrvOutput    string
	ManifestPath string
}

func newSanitizeCommand() *cobra.Command {
	opts := renameOptions{}
	cmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Normalize identifiers of existing .msg/.srv records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSanitize(cmd.Context(), cmd, opts)
		},
	}
	addRenameFlags(cmd, &opts)
	return cmd
}

func addRenameFlags(cmd *cobra.Command, opts *renameOptions) {
	cmd.Flags().StringVar(&opts.MsgOutput, "msg-output", "", "Directory of .msg records")
	cmd.Flags().StringVar(&opts.SrvOutput, "srv-output", "", "Directory of .srv records")
	cmd.Flags().StringVar(&opts.ManifestPath, "manifest", "", "Manifest JSON to keep in sync")
}

func runSanitize(ctx context.Context, cmd *cobra.Command, opts renameOptions) error {
	service := newAppService()
	result, err := service.Sanitize(ctx, app.SanitizeRequest{
		MsgOutput:    resolveString(cmd, opts.MsgOutput, "msg_output", "msg-output"),
		SrvOutput:    resolveString(cmd, opts.SrvOutput, "srv_output", "srv-output"),
		ManifestPath: resolveString(cmd, opts.ManifestPath, "manifest", "manifest"),
	})
	if err != nil {
		return err
	}
	printRenames(result)
	return nil
}

func printRenames(result app.RenameResult) {
	fmt.Printf("renamed: %d\n", result.Renamed)
	for _, kind := range []types.RecordKind{types.RecordKindMessage, types.RecordKindService} {
		renames := result.Plan[kind]
		for _, from := range sortedKeys(renames) {
			if to := renames[from]; to != from {
				fmt.Printf("- %s%s -> %s%s\n", from, kind.Extension(), to, kind.Extension())
			}
		}
	}
	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning.String())
	}
}
