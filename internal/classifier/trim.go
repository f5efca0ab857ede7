package classifier

import "strings"

// lineWhitespace 是行首尾需要剥离的空白字符集合。
const lineWhitespace = " \t\n\r\f\v"

// TrimLine 去掉行首尾的空白字符（空格、\t、\n、\r、\f、\v）。
// 整行都是空白时返回空字符串。
func TrimLine(line string) string {
	return strings.Trim(line, lineWhitespace)
}

// normalizeLine 用于去除每行末尾的换行符。
// 该函数适配 Windows 的 \r\n 与 Unix 的 \n。
func normalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}
