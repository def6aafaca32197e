package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	opts := options{
		logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})),
	}

	cmd := &cobra.Command{
		Use:   "normalize-schemas <path-to-swagger.json>",
		Short: "Rename .NET generic schema names to valid OpenAPI component names",
		Long: `normalize-schemas renames schema components whose names are .NET generic type
names (backticks, brackets, commas, assembly details) and rewrites every $ref that
points at them. The original file is backed up before it is overwritten.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.path = args[0]
			return normalizeFile(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report the renames without modifying the file")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check that the result loads and generates models before writing it")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "YAML file overriding the naming vocabulary")
	return cmd
}
