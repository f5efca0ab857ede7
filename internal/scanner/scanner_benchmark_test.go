package scanner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"cppcloc/internal/classifier"
)

// prepareBenchmarkFile 创建一个用于单文件扫描基准测试的 C++ 文件。
func prepareBenchmarkFile(b *testing.B) string {
	b.Helper()

	tempDir := b.TempDir()
	filePath := filepath.Join(tempDir, "large.cpp")

	lines := make([]string, 0, 8000)
	lines = append(lines, "#include <vector>", "")
	for i := 0; i < 2000; i++ {
		lines = append(lines, "int value"+strconv.Itoa(i)+" = 1; // inline comment")
		lines = append(lines, "/* block comment */")
		lines = append(lines, "/*", " * multi line")
		lines = append(lines, " */ int f"+strconv.Itoa(i)+"() { return value"+strconv.Itoa(i)+"; }")
	}

	if err := os.WriteFile(filePath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		b.Fatalf("write benchmark fixture failed: %v", err)
	}
	return filePath
}

// prepareBenchmarkDirectory 创建目录扫描基准测试数据。
func prepareBenchmarkDirectory(b *testing.B) string {
	b.Helper()

	tempDir := b.TempDir()
	for i := 0; i < 200; i++ {
		headerFile := filepath.Join(tempDir, "include", "h"+strconv.Itoa(i)+".h")
		sourceFile := filepath.Join(tempDir, "src", "c"+strconv.Itoa(i)+".c")

		if err := os.MkdirAll(filepath.Dir(headerFile), 0o755); err != nil {
			b.Fatalf("mkdir header fixture dir failed: %v", err)
		}
		if err := os.MkdirAll(filepath.Dir(sourceFile), 0o755); err != nil {
			b.Fatalf("mkdir source fixture dir failed: %v", err)
		}

		if err := os.WriteFile(headerFile, []byte("#pragma once\nint x; // c"), 0o644); err != nil {
			b.Fatalf("write header fixture failed: %v", err)
		}
		if err := os.WriteFile(sourceFile, []byte("/* c */\nint x = 1;"), 0o644); err != nil {
			b.Fatalf("write source fixture failed: %v", err)
		}
	}
	return tempDir
}

// newBenchmarkService 创建日志静默的扫描服务。
func newBenchmarkService(workers int) *Service {
	return NewService(classifier.NewRegistry(), Options{
		Workers: workers,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// BenchmarkScanSingleFile 衡量单文件扫描性能。
func BenchmarkScanSingleFile(b *testing.B) {
	filePath := prepareBenchmarkFile(b)
	service := newBenchmarkService(1)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := service.ScanPaths(context.Background(), []string{filePath}); err != nil {
			b.Fatalf("scan failed: %v", err)
		}
	}
}

// BenchmarkScanDirectory 衡量目录并发扫描性能。
func BenchmarkScanDirectory(b *testing.B) {
	dirPath := prepareBenchmarkDirectory(b)
	service := newBenchmarkService(8)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := service.ScanPaths(context.Background(), []string{dirPath}); err != nil {
			b.Fatalf("scan failed: %v", err)
		}
	}
}
