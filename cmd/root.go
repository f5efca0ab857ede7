// Package cmd 提供 cppcloc 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cppcloc/internal/classifier"

	"github.com/spf13/cobra"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
// SIGINT/SIGTERM 会取消正在进行的扫描或 watch。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := classifier.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	rootCmd.SetArgs(routePathArgs(rootCmd, os.Args[1:]))
	return rootCmd.ExecuteContext(ctx)
}

// routePathArgs 处理路径与子命令同名的情况。
//
// cobra 会把 cppcloc category 解析为 category 子命令；如果当前目录下
// 确实存在名为 category 的文件或目录，则改写为 scan category，按路径扫描。
// 显式的 scan 子命令只有在它是唯一的位置参数时才被当作路径。
// 需要强制执行子命令时可以换一个工作目录，强制扫描路径时可以写 ./category。
func routePathArgs(rootCmd *cobra.Command, args []string) []string {
	// help 与 completion 由 cobra 在执行时才注册，这里提前注册以便 Find 能识别。
	rootCmd.InitDefaultHelpCmd()
	rootCmd.InitDefaultCompletionCmd()

	target, _, err := rootCmd.Find(args)
	if err != nil || target == rootCmd {
		return args
	}
	for target.Parent() != nil && target.Parent() != rootCmd {
		target = target.Parent()
	}

	positional := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
		}
	}
	if len(positional) == 0 {
		return args
	}

	name := positional[0]
	if name != target.Name() && !target.HasAlias(name) {
		return args
	}
	if target.Name() == "scan" && len(positional) > 1 {
		return args
	}
	if _, statErr := os.Stat(name); statErr != nil {
		return args
	}

	return append([]string{"scan"}, args...)
}

// newRootCmd 创建根命令并注册全部子命令。
// 根命令本身即扫描命令：cppcloc <path>... 与 cppcloc scan <path>... 等价。
func newRootCmd(version string, registry *classifier.Registry) *cobra.Command {
	options := defaultScanOptions()

	rootCmd := &cobra.Command{
		Use:   "cppcloc [path...]",
		Short: "统计 C/C++ 头文件与实现文件的空行、注释行和代码行",
		Long: "cppcloc 按头文件（.h/.hpp）与实现文件（.c/.cpp）两类汇总\n" +
			"文件数、空行、注释行和代码行，不带路径参数时不输出任何内容。",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, registry, &options, args)
		},
	}
	options.bindFlags(rootCmd)

	rootCmd.AddCommand(newVersionCmd(version, registry))
	rootCmd.AddCommand(newCategoryCmd(registry))
	rootCmd.AddCommand(newScanCmd(registry))
	rootCmd.AddCommand(newWatchCmd(registry))

	return rootCmd
}
