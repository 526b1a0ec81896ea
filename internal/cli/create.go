package cli

import (
	"github.com/spf13/cobra"
	"github.com/tacogips/gitignore-assist/internal/app"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a .gitignore containing only a header",
	Long: `Create an empty .gitignore at the workspace root.

The file contains a single header comment. Nothing is written if a
.gitignore already exists.

Examples:
  gitignore-assist create
  gitignore-assist create -C ./my-project`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	return finish(app.CreateEmpty(cmd.Context(), ws, newUI(), flowOptions(nil)))
}
