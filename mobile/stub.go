//go:build !mobile

// 桌面端构建占位
//
// 不带 -tags mobile 时 mobile.go 和 embed.go 都被排除，
// 保留此文件让 go build ./... 和 go vet ./... 能正常遍历本包。
package mobile

// Dummy 与 mobile.go 中的导出函数保持一致
func Dummy() {}
