// main.go 是 cppcloc 的程序入口。
// 命令行解析、路径与子命令的区分都在 cmd 包中完成，
// 这里只注入版本号，并把错误统一转换为退出码 1。
// 被跳过的文件不算错误，只有参数错误或被中断时才会走到这里。
package main

import (
	"fmt"
	"os"

	"cppcloc/cmd"
)

// version 默认值为 dev。
// 发布时可以通过 -ldflags "-X main.version=vX.Y.Z" 覆盖该值。
var version = "dev"

func main() {
	if err := cmd.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "cppcloc error: %v\n", err)
		os.Exit(1)
	}
}
