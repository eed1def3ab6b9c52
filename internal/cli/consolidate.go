package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqmerge/internal/app"
)

type consolidateOptions struct {
	Output         string
	ManifestName   string
	Token          string
	FallbackBranch string
	FetchDelayMs   int
	HTTPTimeoutSec int
	APIBaseURL     string
	RawBaseURL     string
	Report         string
	OnConflict     string
}

func newConsolidateCommand() *cobra.Command {
	opts := consolidateOptions{}
	cmd := &cobra.Command{
		Use:   "consolidate <repos.json>",
		Short: "Fetch and merge requirements manifests into one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsolidate(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Output, "output", "requirements.txt", "Consolidated manifest path")
	cmd.Flags().StringVar(&opts.ManifestName, "manifest-name", "requirements.txt", "Manifest filename fetched from each repository")
	cmd.Flags().StringVar(&opts.Token, "token", "", "Hosting service API token")
	cmd.Flags().StringVar(&opts.FallbackBranch, "fallback-branch", "main", "Branch used when the default branch lookup fails")
	cmd.Flags().IntVar(&opts.FetchDelayMs, "fetch-delay-ms", 100, "Courtesy delay after each repository fetch")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 30, "HTTP timeout in seconds")
	cmd.Flags().StringVar(&opts.APIBaseURL, "api-url", "", "Repository metadata API base URL override")
	cmd.Flags().StringVar(&opts.RawBaseURL, "raw-url", "", "Raw content base URL override")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Traversal report path (YAML, optional)")
	cmd.Flags().StringVar(&opts.OnConflict, "on-conflict", "warn", "Conflict handling: warn or fail")

	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("manifest_name", cmd.Flags().Lookup("manifest-name"))
	_ = viper.BindPFlag("token", cmd.Flags().Lookup("token"))
	_ = viper.BindPFlag("fallback_branch", cmd.Flags().Lookup("fallback-branch"))
	_ = viper.BindPFlag("fetch_delay_ms", cmd.Flags().Lookup("fetch-delay-ms"))
	_ = viper.BindPFlag("http_timeout", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("api_url", cmd.Flags().Lookup("api-url"))
	_ = viper.BindPFlag("raw_url", cmd.Flags().Lookup("raw-url"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("on_conflict", cmd.Flags().Lookup("on-conflict"))

	return cmd
}

func runConsolidate(ctx context.Context, cmd *cobra.Command, inputPath string, opts consolidateOptions) error {
	service := newAppService()
	result, err := service.Consolidate(ctx, app.ConsolidateRequest{
		InputPath:      inputPath,
		OutputPath:     resolveString(cmd, opts.Output, "output", "output"),
		ManifestName:   resolveString(cmd, opts.ManifestName, "manifest_name", "manifest-name"),
		Token:          resolveString(cmd, opts.Token, "token", "token"),
		FallbackBranch: resolveString(cmd, opts.FallbackBranch, "fallback_branch", "fallback-branch"),
		FetchDelayMs:   resolveInt(cmd, opts.FetchDelayMs, "fetch_delay_ms", "fetch-delay-ms"),
		HTTPTimeoutSec: resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout", "http-timeout"),
		APIBaseURL:     resolveString(cmd, opts.APIBaseURL, "api_url", "api-url"),
		RawBaseURL:     resolveString(cmd, opts.RawBaseURL, "raw_url", "raw-url"),
		ReportPath:     resolveString(cmd, opts.Report, "report", "report"),
		OnConflict:     resolveString(cmd, opts.OnConflict, "on_conflict", "on-conflict"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("consolidated %d package(s) from %d repositories into %s\n",
		result.Packages, result.Visited, result.OutputPath)
	if result.Opaque > 0 {
		fmt.Printf("kept %d opaque line(s) verbatim\n", result.Opaque)
	}
	if result.Conflicts > 0 {
		fmt.Printf("detected %d unsatisfiable constraint(s)\n", result.Conflicts)
	}
	return nil
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}
