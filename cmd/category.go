package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"cppcloc/internal/classifier"

	"github.com/spf13/cobra"
)

// newCategoryCmd 创建 category 子命令。
// 命令用于展示文件分类以及对应的文件后缀。
func newCategoryCmd(registry *classifier.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "category",
		Short: "展示文件分类及后缀",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "CATEGORY\tEXTENSIONS"); err != nil {
				return err
			}

			for _, item := range registry.Categories() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\n", item.Category, strings.Join(item.Extensions, ", ")); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
