package cli

import (
	"github.com/spf13/cobra"
	"github.com/tacogips/gitignore-assist/internal/app"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:     "new [template]",
	Aliases: []string{"init"},
	Short:   "Create a .gitignore from a template",
	Long: `Create a .gitignore at the workspace root from a template.

Without an argument the available templates are listed for selection. The
argument may be a template's display name or its key. Nothing is written if
a .gitignore already exists; use 'update' to add rules to it.

Examples:
  gitignore-assist new            # choose from the list
  gitignore-assist new Go
  gitignore-assist init node -C ./web`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess := startCatalog(ctx)

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	cat := awaitCatalog(ctx, sess)
	return finish(app.CreateWithTemplate(ctx, ws, newUI(), cat, flowOptions(args)))
}
