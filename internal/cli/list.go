package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/gitignore-assist/internal/catalog"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Long: `Print the names of all available templates in sorted order.

Examples:
  gitignore-assist list
  gitignore-assist list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Print a template's rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// List command flags
var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, FlagJSON, false, DescJSON)
}

func runList(cmd *cobra.Command, args []string) error {
	cat := catalog.Load(cmd.Context(), sourceFromConfig(), catalogLogger())
	names := cat.Names()

	if listJSON {
		data, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal template names: %w", err)
		}
		printPlain(string(data))
		return nil
	}

	if len(names) == 0 {
		printInfo("No templates available.")
		return nil
	}
	for _, name := range names {
		printPlain(name)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	cat := catalog.Load(cmd.Context(), sourceFromConfig(), catalogLogger())
	tmpl, ok := cat.Resolve(args[0])
	if !ok {
		return fmt.Errorf("template %q not found", args[0])
	}
	fmt.Fprint(stdout, tmpl.Contents)
	return nil
}
