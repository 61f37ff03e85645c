//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把根目录的 assets/ 和 data/ 复制到此目录。
package mobile

import "embed"

//go:embed all:assets
var assetsFS embed.FS

//go:embed data/coverflow.yaml data/albums.json
var dataFS embed.FS
