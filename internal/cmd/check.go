package cmd

import (
	"fmt"

	"github.com/kitstream/pathguard"
	"github.com/kitstream/pathguard/internal/logging"
	"github.com/spf13/cobra"
)

// NewCheckCmd groups the three validation entry points under one parent
// command, mirroring how the library exposes PathCheck, NameCheck, and
// FileNameCheck as three narrow functions rather than one do-everything
// call.
func NewCheckCmd(log *logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a path, name, or filename without touching any other resource",
	}

	cmd.AddCommand(NewCheckPathCmd(log))
	cmd.AddCommand(NewCheckNameCmd(log))
	cmd.AddCommand(NewCheckFileNameCmd(log))

	return cmd
}

func NewCheckPathCmd(log *logging.Logger) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "path PATH",
		Short: "Validate a path against a trusted base directory",
		Long: `Run PATH through the full rule engine and, on success, resolve it against
--base and print the canonical absolute path.

--base must already exist; it is trusted and is not itself checked.`,
		Example: `  pathguard check path --base /work uploads/report.pdf
  pathguard check path --base /work "../../../etc/passwd"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := pathguard.PathCheck(args[0], base)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resolved)
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "/work", "Trusted base directory")

	return cmd
}

func NewCheckNameCmd(log *logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name NAME",
		Short: "Validate a project or identifier name",
		Long: `Run NAME through the identifier rules: length 1-64, characters restricted
to [A-Za-z0-9_-], no leading or trailing '-' or '_', and not a reserved
system name.`,
		Example:       `  pathguard check name my-project`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := pathguard.NameCheck(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	return cmd
}

func NewCheckFileNameCmd(log *logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filename NAME",
		Short: "Validate a bare filename with no path separators",
		Long: `Run NAME through the filename rules: length 1-255, no separators, not
"." or "..", no control characters, and free of every content pattern
checked by the path rule groups (whitespace, encoding, dangerous
Unicode, platform-specific tricks).`,
		Example:       `  pathguard check filename report.pdf`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := pathguard.FileNameCheck(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	return cmd
}
