package scanner

import "errors"

// 扫描过程中的错误分类。它们都不是致命错误：
// 出错的路径会被跳过并记录到 ScanResult.Errors，扫描继续进行。
var (
	// ErrPathUnreadable 命令行给出的路径不存在或无法 stat。
	ErrPathUnreadable = errors.New("path unreadable")
	// ErrFileOpen 发现的源码文件无法打开。
	ErrFileOpen = errors.New("open file")
	// ErrFileRead 源码文件读取中途失败。
	ErrFileRead = errors.New("read file")
	// ErrDirectoryList 目录无法枚举。
	ErrDirectoryList = errors.New("list directory")
)

// errorKind 返回错误在输出中使用的稳定分类名。
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrPathUnreadable):
		return "path-unreadable"
	case errors.Is(err, ErrFileOpen):
		return "file-open"
	case errors.Is(err, ErrFileRead):
		return "file-read"
	case errors.Is(err, ErrDirectoryList):
		return "directory-list"
	default:
		return "unknown"
	}
}
