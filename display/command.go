package display

import (
	"github.com/spf13/cobra"
)

// FormatFromCommand determines the output format of a command: --json wins,
// then an explicitly set --format, then fallback (usually the configured format).
func FormatFromCommand(cmd *cobra.Command, fallback string) (Format, error) {
	if cmd == nil {
		return ParseFormat(fallback)
	}

	if jsonFlag, err := cmd.Flags().GetBool("json"); err == nil && jsonFlag {
		return FormatJSON, nil
	}
	if globalFlag, err := cmd.Root().PersistentFlags().GetBool("json"); err == nil && globalFlag {
		return FormatJSON, nil
	}

	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		return ParseFormat(f.Value.String())
	}
	return ParseFormat(fallback)
}
