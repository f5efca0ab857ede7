package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"cppcloc/internal/classifier"
	"cppcloc/internal/model"
	"cppcloc/internal/report"
	"cppcloc/internal/scanner"

	"github.com/spf13/cobra"
)

// scanOptions 存放扫描相关命令的可配置参数。
type scanOptions struct {
	format    string
	output    string
	workers   int
	exclude   []string
	byFile    bool
	legacySum bool
	verbose   bool
}

// defaultScanOptions 返回扫描参数默认值。
func defaultScanOptions() scanOptions {
	return scanOptions{
		format:  "table",
		workers: runtime.NumCPU(),
	}
}

// bindFlags 把参数注册到命令上。
func (o *scanOptions) bindFlags(command *cobra.Command) {
	flags := command.Flags()
	flags.StringVar(&o.format, "format", o.format, "输出格式: table 或 json")
	flags.StringVar(&o.output, "output", o.output, "json 导出文件路径，为空时不导出")
	flags.IntVar(&o.workers, "workers", o.workers, "并发 worker 数量，1 表示串行")
	flags.StringSliceVar(&o.exclude, "exclude", o.exclude, "遍历时跳过的目录名，例如 .git,build")
	flags.BoolVar(&o.byFile, "by-file", o.byFile, "在汇总表前输出按文件明细和被跳过的路径")
	flags.BoolVar(&o.legacySum, "compat-sum", o.legacySum, "Sum 行的 Lines 使用旧版公式 Headers.Files + C/C++.Lines")
	flags.BoolVarP(&o.verbose, "verbose", "v", o.verbose, "输出调试日志")
}

// validate 校验参数并规范化 format。
func (o *scanOptions) validate() error {
	o.format = strings.ToLower(strings.TrimSpace(o.format))
	if o.format != "table" && o.format != "json" {
		return errors.New("unsupported format, allowed values: table, json")
	}
	if o.workers <= 0 {
		return errors.New("workers must be greater than 0")
	}
	return nil
}

// newService 根据参数创建扫描服务，日志写到 errWriter。
func (o *scanOptions) newService(registry *classifier.Registry, errWriter io.Writer) *scanner.Service {
	return scanner.NewService(registry, scanner.Options{
		Workers: o.workers,
		Exclude: o.exclude,
		Logger:  newLogger(errWriter, o.verbose),
	})
}

// newLogger 创建写到 stderr 的文本日志，默认只输出 Warn 及以上级别。
func newLogger(writer io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	cppcloc scan ./src ./include
//	cppcloc scan ./project --format json --output result.json
func newScanCmd(registry *classifier.Registry) *cobra.Command {
	options := defaultScanOptions()

	scanCmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "扫描目录或文件并输出统计表",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, registry, &options, args)
		},
	}
	options.bindFlags(scanCmd)

	return scanCmd
}

// runScan 扫描全部路径并输出结果。没有路径时直接返回，不输出任何内容。
func runScan(cmd *cobra.Command, registry *classifier.Registry, options *scanOptions, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := options.validate(); err != nil {
		return err
	}

	service := options.newService(registry, cmd.ErrOrStderr())
	result, err := service.ScanPaths(cmd.Context(), paths)
	if err != nil {
		return err
	}

	return writeResult(cmd, options, result)
}

// writeResult 按 format 输出扫描结果。
// 被跳过的路径已经由扫描器记录为 Warn 日志，--by-file 时再额外汇总到 stderr。
func writeResult(cmd *cobra.Command, options *scanOptions, result model.ScanResult) error {
	out := cmd.OutOrStdout()

	switch options.format {
	case "table":
		if options.byFile {
			if err := report.PrintFiles(out, result.Files); err != nil {
				return err
			}
			if err := report.PrintErrors(cmd.ErrOrStderr(), result.Errors); err != nil {
				return err
			}
		}
		return report.PrintTable(out, result.Totals, report.TableOptions{LegacySum: options.legacySum})
	case "json":
		if err := report.PrintJSON(out, result); err != nil {
			return err
		}

		outputPath := strings.TrimSpace(options.output)
		if outputPath == "" {
			return nil
		}
		if err := report.WriteJSONFile(outputPath, result); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "JSON exported to %s\n", outputPath)
		return nil
	default:
		return errors.New("unsupported format")
	}
}
