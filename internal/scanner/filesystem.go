package scanner

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem 是扫描器依赖的文件系统操作：查询路径类型、枚举目录、打开文件。
type FileSystem interface {
	// Stat 返回路径信息，需要跟随符号链接。
	Stat(name string) (fs.FileInfo, error)
	// ReadDir 返回目录的直接子项。
	ReadDir(name string) ([]fs.DirEntry, error)
	// Open 以只读方式打开文件。
	Open(name string) (io.ReadCloser, error)
}

// osFileSystem 直接使用本地文件系统。
type osFileSystem struct{}

func (osFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (osFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
