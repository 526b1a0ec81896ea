package cli

import (
	"github.com/spf13/cobra"
	"github.com/tacogips/gitignore-assist/internal/app"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [template]",
	Short: "Append a template's missing rules to the .gitignore",
	Long: `Merge a template into the existing .gitignore.

Rules from the template that are not already in the file are appended under
a header such as:

  # Node (Added: 2024-05-01)

Comments and blank lines in the template are skipped, and a rule counts as
present when the same text (ignoring surrounding whitespace) is already a
line of the file. Running update twice with the same template changes
nothing the second time.

The .gitignore must already exist; use 'create' or 'new' first.

Examples:
  gitignore-assist update               # choose from the list
  gitignore-assist update Node
  gitignore-assist update Go --dry-run  # preview the rules to be added`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

// Update command flags
var updateDryRun bool

func init() {
	updateCmd.Flags().BoolVarP(&updateDryRun, FlagDryRun, "d", false, DescDryRun)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess := startCatalog(ctx)

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	cat := awaitCatalog(ctx, sess)

	opts := flowOptions(args)
	opts.DryRun = updateDryRun
	return finish(app.Update(ctx, ws, newUI(), cat, opts))
}
