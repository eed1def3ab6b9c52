package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"reqmerge/internal/app"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <report.yaml>",
		Short: "Summarize a traversal report from a previous run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runInspect(ctx context.Context, reportPath string) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{ReportPath: reportPath})
	if err != nil {
		return err
	}
	fmt.Printf("visited: %d packages: %d opaque: %d\n", result.Visited, result.Packages, result.Opaque)
	for _, failure := range result.Failures {
		fmt.Printf("fetch failure: %s@%s: %s\n", failure.URL, failure.Ref, failure.Reason)
	}
	for _, conflict := range result.Conflicts {
		fmt.Printf("conflict: %s%s: %s\n", conflict.Name, conflict.Specifier, conflict.Detail)
	}
	return nil
}
