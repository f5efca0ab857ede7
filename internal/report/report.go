// Package report 提供 cppcloc 的输出能力。
// 当前实现支持固定列宽的汇总表、按文件明细、错误列表和 JSON 格式（含文件导出）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"cppcloc/internal/model"
)

const (
	separatorWidth = 80
	labelWidth     = 8
	sumLabel       = "Sum"
)

// TableOptions 控制汇总表的输出细节。
type TableOptions struct {
	// LegacySum 为 true 时汇总行的 Lines 列使用旧工具的公式
	// Headers.Files + C/C++.Lines，用于和旧版本输出逐字节对比。
	LegacySum bool
}

// PrintTable 输出固定列宽的汇总表。
//
// 列依次为分类标签、文件数、空行、注释行、代码行；
// 文件数为 0 的分类不输出，Sum 行始终输出。
func PrintTable(writer io.Writer, totals model.Totals, options TableOptions) error {
	separator := strings.Repeat("-", separatorWidth)

	if _, err := fmt.Fprintln(writer, separator); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "%s %12s %15s %15s %26s\n", "Language", "Files", "Blanks", "Comments", "Lines"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, separator); err != nil {
		return err
	}

	for _, category := range model.Categories() {
		counts := totals.For(category)
		if counts.Files == 0 {
			continue
		}
		if err := printRow(writer, category.String(), *counts); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(writer, separator); err != nil {
		return err
	}
	return printRow(writer, sumLabel, totals.Sum(options.LegacySum))
}

// printRow 输出一行数据，标签左对齐补足 8 个字符。
func printRow(writer io.Writer, label string, counts model.LineCounts) error {
	_, err := fmt.Fprintf(
		writer,
		"%-*s %12d %15d %15d %26d\n",
		labelWidth,
		label,
		counts.Files,
		counts.Blank,
		counts.Comment,
		counts.Code,
	)
	return err
}

// PrintFiles 使用 tabwriter 输出按文件明细。
func PrintFiles(writer io.Writer, files []model.FileMetrics) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "FILE\tCATEGORY\tBLANK\tCOMMENT\tCODE"); err != nil {
		return err
	}
	for _, item := range files {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%s\t%d\t%d\t%d\n",
			item.Path,
			item.Category,
			item.Counts.Blank,
			item.Counts.Comment,
			item.Counts.Code,
		); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// PrintErrors 输出被跳过的路径及原因，没有错误时不输出任何内容。
func PrintErrors(writer io.Writer, errors []model.ScanError) error {
	if len(errors) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "SKIPPED\tKIND\tMESSAGE"); err != nil {
		return err
	}
	for _, item := range errors {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Path, item.Kind, item.Error); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
