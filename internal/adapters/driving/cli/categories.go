package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:         "categories",
	Short:       "Print the category list",
	Long:        `Print the categories file exactly as stored. This is the same document served as the expense://categories MCP resource.`,
	Args:        cobra.NoArgs,
	Annotations: needsAll,
	RunE:        runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if categoryService == nil {
		return errors.New("category service not configured")
	}

	data, err := categoryService.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read categories: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
