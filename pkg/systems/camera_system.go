package systems

import (
	"log"

	"github.com/gonewx/coverflow/pkg/components"
	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/ecs"
)

// DefaultCameraNear 默认近裁剪距离
const DefaultCameraNear = 1.0

// CameraSystem 管理透视摄像机实体
// 摄像机固定在 (0, 0, PositionZ) 看向原点，视口为逻辑屏幕尺寸
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID // 镜头实体ID
}

// NewCameraSystem 创建摄像机系统并生成摄像机实体
func NewCameraSystem(em *ecs.EntityManager, cfg config.CameraConfig, viewportWidth, viewportHeight float64) *CameraSystem {
	cs := &CameraSystem{entityManager: em}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		PositionZ:      cfg.PositionZ,
		FOVDegrees:     cfg.FOVDegrees,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Near:           DefaultCameraNear,
	})

	log.Printf("[CameraSystem] Camera z=%.0f fov=%.0f viewport %.0fx%.0f", cfg.PositionZ, cfg.FOVDegrees, viewportWidth, viewportHeight)
	return cs
}

// Camera 返回摄像机组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return nil
	}
	return camera
}
