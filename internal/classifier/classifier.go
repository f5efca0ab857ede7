// Package classifier 实现 C/C++ 源文件的逐行分类与单文件统计。
//
// 状态机只有两个状态：块注释外 / 块注释内。
// 状态转换只由去除首尾空白后的行内容中的注释标记驱动，
// 不解析语法、不识别字符串字面量，也不支持嵌套块注释。
package classifier

import "strings"

const (
	lineCommentToken  = "//"
	blockCommentOpen  = "/*"
	blockCommentClose = "*/"
)

// Kind 表示单行的分类结果。
type Kind int

const (
	// Blank 去除空白后为空的行。
	Blank Kind = iota
	// LineComment 以 // 开头的行。
	LineComment
	// BlockCommentLine 属于块注释的行（开始、延续或结束）。
	BlockCommentLine
	// Code 其余所有行。
	Code
)

// String 返回分类名称，主要用于日志和测试输出。
func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case LineComment:
		return "line-comment"
	case BlockCommentLine:
		return "block-comment"
	case Code:
		return "code"
	default:
		return "unknown"
	}
}

// IsComment 判断分类是否计入注释行。
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockCommentLine
}

// ScanState 是单个文件扫描期间的状态，每个文件使用一个新的零值。
type ScanState struct {
	insideBlockComment bool
}

// InsideBlockComment 报告当前是否处在未闭合的块注释中。
func (s *ScanState) InsideBlockComment() bool {
	return s.insideBlockComment
}

// Classify 对一行已 trim 的内容分类，并原地更新块注释状态。
func (s *ScanState) Classify(line string) Kind {
	if s.insideBlockComment {
		// 结束标记之后的内容不再单独计为代码。
		if strings.Contains(line, blockCommentClose) {
			s.insideBlockComment = false
		}
		return BlockCommentLine
	}

	if line == "" {
		return Blank
	}

	if strings.HasPrefix(line, lineCommentToken) {
		return LineComment
	}

	if strings.HasPrefix(line, blockCommentOpen) {
		// 从开始标记之后查找结束标记，"/*/" 不算自闭合。
		if !strings.Contains(line[len(blockCommentOpen):], blockCommentClose) {
			s.insideBlockComment = true
		}
		return BlockCommentLine
	}

	return Code
}
