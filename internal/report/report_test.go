package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cppcloc/internal/model"
)

// sampleTotals 对应“一个 3 行代码 2 行空行的头文件 + 一个 5 行代码 1 行注释的实现文件”。
func sampleTotals() model.Totals {
	return model.Totals{
		Header:         model.LineCounts{Files: 1, Code: 3, Blank: 2},
		Implementation: model.LineCounts{Files: 1, Code: 5, Comment: 1},
	}
}

// expectedRow 按汇总表列宽拼出一行期望输出。
func expectedRow(label string, files, blank, comment, code int) string {
	return fmt.Sprintf("%-8s %12d %15d %15d %26d", label, files, blank, comment, code)
}

// TestPrintTableLayout 验证表格的固定列宽布局。
func TestPrintTableLayout(t *testing.T) {
	var buffer bytes.Buffer
	if err := PrintTable(&buffer, sampleTotals(), TableOptions{}); err != nil {
		t.Fatalf("print table failed: %v", err)
	}

	separator := strings.Repeat("-", 80)
	expected := strings.Join([]string{
		separator,
		"Language        Files          Blanks        Comments                      Lines",
		separator,
		"Headers             1               2               0                          3",
		"C/C++               1               0               1                          5",
		separator,
		"Sum                 2               2               1                          8",
		"",
	}, "\n")

	if buffer.String() != expected {
		t.Fatalf("unexpected table:\n%s\nexpected:\n%s", buffer.String(), expected)
	}
}

// TestPrintTableSkipsEmptyCategory 验证文件数为 0 的分类不输出。
func TestPrintTableSkipsEmptyCategory(t *testing.T) {
	totals := model.Totals{Implementation: model.LineCounts{Files: 2, Code: 10}}

	var buffer bytes.Buffer
	if err := PrintTable(&buffer, totals, TableOptions{}); err != nil {
		t.Fatalf("print table failed: %v", err)
	}

	output := buffer.String()
	if strings.Contains(output, "Headers") {
		t.Fatalf("empty header row should be omitted:\n%s", output)
	}
	if !strings.Contains(output, expectedRow("C/C++", 2, 0, 0, 10)) {
		t.Fatalf("missing C/C++ row:\n%s", output)
	}
}

// TestPrintTableZeroTotals 验证没有任何文件时仍输出表头与 Sum 行。
func TestPrintTableZeroTotals(t *testing.T) {
	var buffer bytes.Buffer
	if err := PrintTable(&buffer, model.Totals{}, TableOptions{}); err != nil {
		t.Fatalf("print table failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buffer.String())
	}
	if lines[4] != expectedRow("Sum", 0, 0, 0, 0) {
		t.Fatalf("unexpected sum row: %q", lines[4])
	}
}

// TestPrintTableLegacySum 验证旧版汇总公式 Headers.Files + C/C++.Lines。
func TestPrintTableLegacySum(t *testing.T) {
	totals := model.Totals{
		Header:         model.LineCounts{Files: 4, Code: 100},
		Implementation: model.LineCounts{Files: 3, Code: 50},
	}

	var buffer bytes.Buffer
	if err := PrintTable(&buffer, totals, TableOptions{LegacySum: true}); err != nil {
		t.Fatalf("print table failed: %v", err)
	}

	if !strings.Contains(buffer.String(), expectedRow("Sum", 7, 0, 0, 54)) {
		t.Fatalf("unexpected legacy sum:\n%s", buffer.String())
	}
}

// TestPrintFiles 验证按文件明细输出。
func TestPrintFiles(t *testing.T) {
	files := []model.FileMetrics{
		{Path: "include/a.h", Category: model.Header, Counts: model.LineCounts{Code: 3, Blank: 2}},
		{Path: "src/a.cpp", Category: model.Implementation, Counts: model.LineCounts{Code: 5, Comment: 1}},
	}

	var buffer bytes.Buffer
	if err := PrintFiles(&buffer, files); err != nil {
		t.Fatalf("print files failed: %v", err)
	}

	output := buffer.String()
	for _, fragment := range []string{"FILE", "include/a.h", "Headers", "src/a.cpp", "C/C++"} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("missing %q in:\n%s", fragment, output)
		}
	}
}

// TestPrintErrors 验证错误列表只在存在错误时输出。
func TestPrintErrors(t *testing.T) {
	var empty bytes.Buffer
	if err := PrintErrors(&empty, nil); err != nil {
		t.Fatalf("print errors failed: %v", err)
	}
	if empty.Len() != 0 {
		t.Fatalf("expected no output, got %q", empty.String())
	}

	var buffer bytes.Buffer
	err := PrintErrors(&buffer, []model.ScanError{{Path: "missing", Kind: "path-unreadable", Error: "no such file"}})
	if err != nil {
		t.Fatalf("print errors failed: %v", err)
	}
	if !strings.Contains(buffer.String(), "path-unreadable") {
		t.Fatalf("unexpected output: %s", buffer.String())
	}
}

// TestWriteJSONFile 验证 JSON 导出会自动创建目录，且分类以字符串输出。
func TestWriteJSONFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "nested", "result.json")
	result := model.ScanResult{
		Paths:  []string{"src"},
		Files:  []model.FileMetrics{{Path: "src/a.c", Category: model.Implementation, Counts: model.LineCounts{Code: 1}}},
		Totals: model.Totals{Implementation: model.LineCounts{Files: 1, Code: 1}},
		Errors: []model.ScanError{},
	}

	if err := WriteJSONFile(outputPath, result); err != nil {
		t.Fatalf("write json failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read json failed: %v", err)
	}

	var decoded struct {
		Files []struct {
			Category string `json:"category"`
		} `json:"files"`
		Totals struct {
			Implementation struct {
				Files int64 `json:"files"`
			} `json:"implementation"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("decode json failed: %v", err)
	}
	if len(decoded.Files) != 1 || decoded.Files[0].Category != "implementation" {
		t.Fatalf("unexpected files: %+v", decoded.Files)
	}
	if decoded.Totals.Implementation.Files != 1 {
		t.Fatalf("unexpected totals: %+v", decoded.Totals)
	}
}
