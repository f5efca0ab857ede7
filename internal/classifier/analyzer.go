package classifier

import (
	"bufio"
	"errors"
	"io"

	"cppcloc/internal/model"
)

// Analyze 对输入流逐行分类并返回单文件统计结果。
//
// 输入按原始字节处理，不要求特定编码。
// 每次调用使用新的 ScanState，文件之间不共享块注释状态。
// 未闭合的块注释会把开始行到 EOF 的每一行都计为注释。
// 返回值的 Files 字段恒为 0，由调用方在聚合时递增。
func Analyze(reader io.Reader) (model.LineCounts, error) {
	var counts model.LineCounts
	var state ScanState

	// 使用 ReadString('\n') 做“按行流式”读取，不会把整个文件一次性载入内存。
	bufferedReader := bufio.NewReader(reader)
	for {
		line, err := bufferedReader.ReadString('\n')
		// EOF 且没有任何剩余字符时，说明已经没有可处理行。
		if errors.Is(err, io.EOF) && len(line) == 0 {
			break
		}
		// 非 EOF 错误需要立即返回，避免输出不完整统计结果。
		if err != nil && !errors.Is(err, io.EOF) {
			return counts, err
		}

		record(&counts, state.Classify(TrimLine(normalizeLine(line))))

		// 最后一行没有换行符，已经统计完毕。
		if errors.Is(err, io.EOF) {
			break
		}
	}

	return counts, nil
}

// record 根据分类结果更新统计值，每行只落入一个计数。
func record(counts *model.LineCounts, kind Kind) {
	switch {
	case kind == Blank:
		counts.Blank++
	case kind.IsComment():
		counts.Comment++
	default:
		counts.Code++
	}
}
