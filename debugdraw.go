package sinew

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Projector maps a world-space point to screen coordinates.
type Projector func(p mgl64.Vec3) (x, y float32)

// OrthoXY is a Projector that drops Z, scales by zoom and flips Y so +Y is up
// on screen, centered on (cx, cy).
func OrthoXY(cx, cy, zoom float32) Projector {
	return func(p mgl64.Vec3) (float32, float32) {
		return cx + float32(p[0])*zoom, cy - float32(p[1])*zoom
	}
}

// SkeletonStyle controls DrawSkeleton output.
type SkeletonStyle struct {
	BoneColor   color.Color
	JointColor  color.Color
	BoneWidth   float32
	JointRadius float32
}

// DefaultSkeletonStyle draws white bones with orange joints.
var DefaultSkeletonStyle = SkeletonStyle{
	BoneColor:   color.White,
	JointColor:  color.RGBA{R: 255, G: 160, B: 0, A: 255},
	BoneWidth:   2,
	JointRadius: 3,
}

// DrawSkeleton draws a line from every node under root to each of its
// children and a dot on every joint. Intended as a debug overlay.
func DrawSkeleton(dst *ebiten.Image, root *Node, project Projector, style SkeletonStyle) {
	if root == nil || project == nil {
		return
	}
	x0, y0 := project(root.WorldPosition())
	for _, c := range root.children {
		x1, y1 := project(c.WorldPosition())
		vector.StrokeLine(dst, x0, y0, x1, y1, style.BoneWidth, style.BoneColor, true)
		DrawSkeleton(dst, c, project, style)
	}
	vector.DrawFilledCircle(dst, x0, y0, style.JointRadius, style.JointColor, true)
}

// DrawStats prints FPS, TPS and the system's plan size in the top-left
// corner of dst.
func DrawStats(dst *ebiten.Image, s *System) {
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if s != nil {
		msg += fmt.Sprintf("\ntick: %d\nlayers: %d\nnodes: %d", s.tick, len(s.layers), len(s.touched))
	}
	ebitenutil.DebugPrint(dst, msg)
}
