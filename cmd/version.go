package cmd

import (
	"strings"

	"cppcloc/internal/classifier"

	"github.com/spf13/cobra"
)

// newVersionCmd 创建 version 子命令，同时列出会被统计的文件后缀。
// 命令示例：cppcloc version
//
//	cppcloc version dev (Headers: .h .hpp; C/C++: .c .cpp)
func newVersionCmd(version string, registry *classifier.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示当前版本号与支持的文件后缀",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			groups := make([]string, 0, 2)
			for _, item := range registry.Categories() {
				groups = append(groups, item.Category.String()+": "+strings.Join(item.Extensions, " "))
			}
			cmd.Printf("cppcloc version %s (%s)\n", version, strings.Join(groups, "; "))
		},
	}
}
