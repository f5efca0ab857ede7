// Package scanner 提供目录遍历与并发统计能力。
// 该层负责路径分发、任务调度和结果聚合，不负责逐行分类细节。
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"cppcloc/internal/classifier"
	"cppcloc/internal/model"
)

// Options 是扫描服务的可配置参数。
type Options struct {
	// Workers 是并发分析文件的数量，<=0 时使用 CPU 核数，1 表示严格串行。
	Workers int
	// Exclude 是遍历目录时跳过的目录名（只比较名称，不比较路径）。
	Exclude []string
	// Logger 为空时使用 slog.Default()。
	Logger *slog.Logger
	// FileSystem 为空时使用本地文件系统。
	FileSystem FileSystem
}

// Service 是扫描服务对象。
type Service struct {
	registry *classifier.Registry
	workers  int
	exclude  map[string]bool
	logger   *slog.Logger
	fs       FileSystem
}

// workerResult 表示 worker 或遍历过程的产物，二者只有一个非空。
type workerResult struct {
	fileMetrics *model.FileMetrics
	scanError   *model.ScanError
}

// NewService 创建扫描服务。
func NewService(registry *classifier.Registry, options Options) *Service {
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	exclude := make(map[string]bool, len(options.Exclude))
	for _, name := range options.Exclude {
		if name != "" {
			exclude[name] = true
		}
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fileSystem := options.FileSystem
	if fileSystem == nil {
		fileSystem = osFileSystem{}
	}

	return &Service{
		registry: registry,
		workers:  workers,
		exclude:  exclude,
		logger:   logger,
		fs:       fileSystem,
	}
}

// ScanPaths 依次遍历给定路径并返回聚合结果。
//
// 单个路径或文件的失败不会中断扫描，只会记录在 Errors 中；
// 只有 ctx 被取消时才返回错误。
// 文件分析并发执行，但累计值只在当前 goroutine 中归并，
// 因此结果与遍历顺序和参数顺序无关。
func (s *Service) ScanPaths(ctx context.Context, paths []string) (model.ScanResult, error) {
	result := model.ScanResult{
		Paths:  append([]string(nil), paths...),
		Files:  make([]model.FileMetrics, 0),
		Errors: make([]model.ScanError, 0),
	}

	pool, poolCtx := errgroup.WithContext(ctx)
	pool.SetLimit(s.workers)

	results := make(chan workerResult, s.workers*4)
	done := make(chan error, 1)

	go func() {
		defer close(results)

		var walkErr error
		for _, path := range paths {
			if walkErr = s.dispatch(poolCtx, pool, path, nil, results); walkErr != nil {
				break
			}
		}

		waitErr := pool.Wait()
		if walkErr != nil {
			done <- walkErr
			return
		}
		done <- waitErr
	}()

	for item := range results {
		if item.fileMetrics != nil {
			result.Files = append(result.Files, *item.fileMetrics)
			result.Totals.AddFile(item.fileMetrics.Category, item.fileMetrics.Counts)
		}
		if item.scanError != nil {
			result.Errors = append(result.Errors, *item.scanError)
		}
	}

	if err := <-done; err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	sortResult(&result)
	return result, nil
}

// dispatch 判断路径类型：普通文件交给 worker，目录逐项递归，其余类型跳过。
// ancestors 为空表示命令行直接给出的路径。
func (s *Service) dispatch(ctx context.Context, pool *errgroup.Group, path string, ancestors []os.FileInfo, results chan<- workerResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Stat 会跟随符号链接，失效链接在这里失败。
	info, err := s.fs.Stat(path)
	if err != nil {
		if ancestors == nil {
			s.reportError(results, path, fmt.Errorf("%w: %w", ErrPathUnreadable, err))
			return nil
		}
		s.logger.Debug("skip entry", "path", path, "error", err)
		return nil
	}

	switch {
	case info.Mode().IsRegular():
		category, ok := s.registry.CategoryForFile(path)
		if !ok {
			return nil
		}
		pool.Go(func() error {
			return s.analyzeFile(ctx, path, category, results)
		})
		return nil
	case info.IsDir():
		return s.dispatchDirectory(ctx, pool, path, info, ancestors, results)
	default:
		s.logger.Debug("skip non-regular file", "path", path, "mode", info.Mode().String())
		return nil
	}
}

// dispatchDirectory 枚举目录的直接子项，每一项再交给 dispatch。
func (s *Service) dispatchDirectory(ctx context.Context, pool *errgroup.Group, path string, info os.FileInfo, ancestors []os.FileInfo, results chan<- workerResult) error {
	// 符号链接可能指回祖先目录，遇到环直接跳过。
	for _, ancestor := range ancestors {
		if os.SameFile(ancestor, info) {
			s.logger.Debug("skip directory cycle", "path", path)
			return nil
		}
	}

	entries, err := s.fs.ReadDir(path)
	if err != nil {
		s.reportError(results, path, fmt.Errorf("%w: %w", ErrDirectoryList, err))
		return nil
	}

	chain := append(append(make([]os.FileInfo, 0, len(ancestors)+1), ancestors...), info)
	for _, entry := range entries {
		if entry.IsDir() && s.exclude[entry.Name()] {
			continue
		}
		if err := s.dispatch(ctx, pool, filepath.Join(path, entry.Name()), chain, results); err != nil {
			return err
		}
	}
	return nil
}

// analyzeFile 执行真实的文件读取和逐行分类。
func (s *Service) analyzeFile(ctx context.Context, path string, category model.Category, results chan<- workerResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	counts, err := s.countFile(path)
	if err != nil {
		s.reportError(results, path, err)
		return nil
	}

	results <- workerResult{
		fileMetrics: &model.FileMetrics{
			Path:     displayPath(path),
			Category: category,
			Counts:   counts,
		},
	}
	return nil
}

// countFile 打开文件并返回单文件统计结果，文件句柄在所有路径上都会关闭。
func (s *Service) countFile(path string) (model.LineCounts, error) {
	file, err := s.fs.Open(path)
	if err != nil {
		return model.LineCounts{}, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer file.Close()

	counts, err := classifier.Analyze(file)
	if err != nil {
		return model.LineCounts{}, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	return counts, nil
}

// reportError 记录一个非致命错误并继续扫描。
func (s *Service) reportError(results chan<- workerResult, path string, err error) {
	s.logger.Warn("skipping path", "path", path, "error", err)
	results <- workerResult{
		scanError: &model.ScanError{
			Path:  displayPath(path),
			Kind:  errorKind(err),
			Error: err.Error(),
		},
	}
}

// displayPath 统一使用 / 作为分隔符，便于跨平台比较输出。
func displayPath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// sortResult 对文件明细和错误列表排序，保证输出可复现。
func sortResult(result *model.ScanResult) {
	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
}
