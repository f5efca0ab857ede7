package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cppcloc/internal/classifier"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const defaultDebounce = 250 * time.Millisecond

// watchOptions 在扫描参数之外增加防抖间隔。
type watchOptions struct {
	scanOptions
	debounce time.Duration
}

// newWatchCmd 创建 watch 子命令。
// 先完整扫描一次，之后每当被监听目录中的源码文件变化就重新扫描并输出统计表，
// 直到收到 SIGINT/SIGTERM。
func newWatchCmd(registry *classifier.Registry) *cobra.Command {
	options := watchOptions{
		scanOptions: defaultScanOptions(),
		debounce:    defaultDebounce,
	}

	watchCmd := &cobra.Command{
		Use:   "watch path...",
		Short: "监听目录变化并持续输出统计表",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := options.validate(); err != nil {
				return err
			}
			return runWatch(cmd, registry, &options, args)
		},
	}
	options.bindFlags(watchCmd)
	watchCmd.Flags().DurationVar(&options.debounce, "debounce", options.debounce, "变化事件的防抖间隔")

	return watchCmd
}

// runWatch 执行首次扫描并进入监听循环。
func runWatch(cmd *cobra.Command, registry *classifier.Registry, options *watchOptions, paths []string) error {
	ctx := cmd.Context()
	logger := newLogger(cmd.ErrOrStderr(), options.verbose)

	rescan := func() error {
		service := options.newService(registry, cmd.ErrOrStderr())
		result, err := service.ScanPaths(ctx, paths)
		if err != nil {
			return err
		}
		return writeResult(cmd, &options.scanOptions, result)
	}

	if err := rescan(); err != nil {
		return err
	}

	tree, err := newTreeWatcher(options.exclude)
	if err != nil {
		return err
	}
	defer tree.Close()

	for _, root := range watchRoots(paths) {
		if err := tree.addRecursive(root); err != nil {
			logger.Warn("cannot watch path", "path", root, "error", err)
		}
	}

	return watchLoop(ctx, tree, registry, options.debounce, logger, func(changed []string) error {
		logger.Debug("rescanning", "changed", len(changed))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "\n%s  %d path(s) changed\n", time.Now().Format(time.TimeOnly), len(changed)); err != nil {
			return err
		}
		return rescan()
	})
}

// watchLoop 收集变化事件，防抖后回调 onChange。ctx 取消时正常返回。
func watchLoop(ctx context.Context, tree *treeWatcher, registry *classifier.Registry, debounce time.Duration, logger *slog.Logger, onChange func(changed []string) error) error {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-tree.watcher.Events:
			if !ok {
				return nil
			}

			eventPath := filepath.Clean(event.Name)
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(eventPath); statErr == nil && info.IsDir() {
					if tree.exclude[filepath.Base(eventPath)] {
						continue
					}
					if err := tree.addRecursive(eventPath); err != nil {
						logger.Warn("cannot watch new directory", "path", eventPath, "error", err)
					}
					pending[eventPath] = true
					timer.Reset(debounce)
					continue
				}
			}

			if !tree.isRelevant(event, registry) {
				continue
			}
			pending[eventPath] = true
			timer.Reset(debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = map[string]bool{}

			if err := onChange(changed); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		case watchErr, ok := <-tree.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", watchErr)
		}
	}
}

// treeWatcher 递归监听目录树，并记录已经加入监听的目录。
// 只在监听循环所在的 goroutine 中使用。
type treeWatcher struct {
	watcher *fsnotify.Watcher
	exclude map[string]bool
	dirs    map[string]bool
}

// newTreeWatcher 创建监听器，exclude 中的目录名不会被监听。
func newTreeWatcher(exclude []string) (*treeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	return &treeWatcher{
		watcher: watcher,
		exclude: skip,
		dirs:    map[string]bool{},
	}, nil
}

// Close 关闭底层监听器。
func (w *treeWatcher) Close() error {
	return w.watcher.Close()
}

// isRelevant 只关心会改变统计结果的事件：源码文件的增删改和重命名，
// 以及被监听目录本身的删除或重命名。
func (w *treeWatcher) isRelevant(event fsnotify.Event, registry *classifier.Registry) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	// 删除后无法再 stat，只能靠监听记录判断是否为目录。
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		path := filepath.Clean(event.Name)
		if w.dirs[path] {
			w.forget(path)
			return true
		}
	}
	_, ok := registry.CategoryForFile(event.Name)
	return ok
}

// forget 移除目录及其子目录的监听记录，底层监听已由 fsnotify 自动撤销。
func (w *treeWatcher) forget(dir string) {
	prefix := dir + string(filepath.Separator)
	for path := range w.dirs {
		if path == dir || strings.HasPrefix(path, prefix) {
			delete(w.dirs, path)
		}
	}
}

// watchRoots 把参数转换为需要监听的目录：目录本身，或文件所在目录。
// 无法 stat 的路径被忽略，首次扫描已经记录过它们。
func watchRoots(paths []string) []string {
	seen := map[string]bool{}
	roots := make([]string, 0, len(paths))
	for _, path := range paths {
		absolute, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		info, err := os.Stat(absolute)
		if err != nil {
			continue
		}
		root := absolute
		if !info.IsDir() {
			root = filepath.Dir(absolute)
		}
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	return roots
}

// addRecursive 监听 root 及其全部子目录，跳过 exclude 中的目录名。
func (w *treeWatcher) addRecursive(root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// 无法进入的子目录不影响其余目录的监听。
			if path != root {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && w.exclude[entry.Name()] {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		w.dirs[path] = true
		return nil
	})
}
