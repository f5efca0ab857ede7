// Package model 定义 cppcloc 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

import (
	"encoding/json"
	"fmt"
)

// Category 表示文件分类，只由文件后缀决定。
type Category int

const (
	// Header 对应 .h / .hpp。
	Header Category = iota
	// Implementation 对应 .c / .cpp。
	Implementation
)

// Categories 按报表输出顺序返回全部分类。
func Categories() []Category {
	return []Category{Header, Implementation}
}

// String 返回报表中使用的分类标签。
func (c Category) String() string {
	switch c {
	case Header:
		return "Headers"
	case Implementation:
		return "C/C++"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Key 返回 JSON 输出使用的稳定标识。
func (c Category) Key() string {
	switch c {
	case Header:
		return "header"
	case Implementation:
		return "implementation"
	default:
		return "unknown"
	}
}

// MarshalJSON 以字符串形式输出分类。
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Key())
}

// LineCounts 表示一组行级统计值。
//
// 注意：
// - 每一行只会落入 Code/Comment/Blank 三者之一
// - Files 只在聚合时递增，单文件分析结果中恒为 0
type LineCounts struct {
	Files   int64 `json:"files"`
	Code    int64 `json:"code"`
	Comment int64 `json:"comment"`
	Blank   int64 `json:"blank"`
}

// Add 将另一个统计结果叠加到当前对象。
func (m *LineCounts) Add(other LineCounts) {
	m.Files += other.Files
	m.Code += other.Code
	m.Comment += other.Comment
	m.Blank += other.Blank
}

// Lines 返回被分类的总行数。
func (m LineCounts) Lines() int64 {
	return m.Code + m.Comment + m.Blank
}

// Totals 持有一次扫描中每个分类的累计值。
// 它以值的形式在扫描器与输出层之间传递，不存在进程级全局状态。
type Totals struct {
	Header         LineCounts `json:"header"`
	Implementation LineCounts `json:"implementation"`
}

// For 返回指定分类的统计值指针，未知分类返回 nil。
func (t *Totals) For(category Category) *LineCounts {
	switch category {
	case Header:
		return &t.Header
	case Implementation:
		return &t.Implementation
	default:
		return nil
	}
}

// AddFile 记录一个已完成分析的文件：Files 恰好 +1，行数合并进对应分类。
func (t *Totals) AddFile(category Category, counts LineCounts) {
	target := t.For(category)
	if target == nil {
		return
	}
	counts.Files = 1
	target.Add(counts)
}

// Sum 计算汇总行。
//
// 默认 Code = 两个分类 Code 之和。
// legacy 为 true 时复现旧工具的汇总公式：Header.Files + Implementation.Code。
func (t Totals) Sum(legacy bool) LineCounts {
	sum := t.Header
	sum.Add(t.Implementation)
	if legacy {
		sum.Code = t.Header.Files + t.Implementation.Code
	}
	return sum
}

// FileMetrics 表示单文件扫描结果。
type FileMetrics struct {
	Path     string     `json:"path"`
	Category Category   `json:"category"`
	Counts   LineCounts `json:"counts"`
}

// ScanError 记录单个路径的扫描失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错。
type ScanError struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// ScanResult 是一次扫描的完整输出模型。
type ScanResult struct {
	Paths  []string      `json:"paths"`
	Files  []FileMetrics `json:"files"`
	Totals Totals        `json:"totals"`
	Errors []ScanError   `json:"errors"`
}
