package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"proto2ros/internal/app"
)

type inspectOptions struct {
	ManifestPath string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarise a generated manifest by topic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ManifestPath, "manifest", "", "Manifest JSON path")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		ManifestPath: resolveString(cmd, opts.ManifestPath, "manifest", "manifest"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("manifest entries: %d (%d msg, %d srv)\n", result.Entries, result.Messages, result.Services)
	for _, topic := range result.Topics {
		fmt.Printf("- %s: %s\n", topic.Topic, strings.Join(topic.Identifiers, ", "))
		fmt.Printf("  origins: %s\n", strings.Join(topic.Origins, ", "))
	}
	if len(result.Mixed) > 0 {
		fmt.Printf("topics with mixed identifiers: %s\n", strings.Join(result.Mixed, ", "))
	}
	return nil
}
