package cli

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"proto2ros/internal/app"
)

func newReconcileCommand() *cobra.Command {
	opts := renameOptions{}
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Prefix records of topics generated under mixed naming schemes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReconcile(cmd.Context(), cmd, opts)
		},
	}
	addRenameFlags(cmd, &opts)
	return cmd
}

func runReconcile(ctx context.Context, cmd *cobra.Command, opts renameOptions) error {
	service := newAppService()
	result, err := service.Reconcile(ctx, app.ReconcileRequest{
		ManifestPath: resolveString(cmd, opts.ManifestPath, "manifest", "manifest"),
		MsgOutput:    resolveString(cmd, opts.MsgOutput, "msg_output", "msg-output"),
		SrvOutput:    resolveString(cmd, opts.SrvOutput, "srv_output", "srv-output"),
	})
	if err != nil {
		return err
	}
	printRenames(result)
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
