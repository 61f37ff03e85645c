// layout_dump 打印封面流在指定选中索引下的目标布局
//
// 用法:
//
//	go run ./cmd/layout_dump -n 5 -index 2
//	go run ./cmd/layout_dump -n 11 -config data/coverflow.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/gonewx/coverflow/pkg/config"
)

func main() {
	count := flag.Int("n", 5, "卡片数量")
	index := flag.Int("index", -1, "选中索引（默认 n/2）")
	configPath := flag.String("config", "", "配置文件路径（为空时使用默认布局）")
	flag.Parse()

	layout := config.DefaultCoverFlowLayout()
	if *configPath != "" {
		cfg, err := config.LoadCoverFlowConfig(*configPath)
		if err != nil {
			log.Fatalf("加载配置失败: %v", err)
		}
		layout = cfg.Layout
	}

	idx := *index
	if idx < 0 {
		idx = *count / 2
	}

	placements := config.CalculateCardPlacements(*count, idx, layout)
	if len(placements) == 0 {
		fmt.Println("没有卡片")
		return
	}

	fmt.Println("==========================================================")
	fmt.Printf("封面流布局: n=%d, index=%d\n", *count, config.ClampIndex(idx, *count))
	fmt.Printf("间距 %.1f, 侧移 %.1f, 纵深 %.1f, 旋转 %.1f°\n",
		layout.SpacingX, layout.LateralOffset(), layout.DepthOffset(), layout.RotationDegrees)
	fmt.Println("==========================================================")
	fmt.Printf("%4s  %-7s %10s %10s %10s %10s\n", "i", "group", "x", "depth", "worldZ", "rotY(°)")

	for i, p := range placements {
		fmt.Printf("%4d  %-7s %10.2f %10.2f %10.2f %10.2f\n",
			i, p.Group, p.X, p.Depth, config.DepthToWorldZ(p.Depth), p.RotationY*180/math.Pi)
	}
}
