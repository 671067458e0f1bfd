package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/boomrig/common"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/ecs/system"
	"golang.org/x/image/colornames"
)

// pixels per world unit in the top-down view
const viewScale = 16

func toScreen(x, z float64) (float32, float32) {
	return float32(baseWidth/2 + x*viewScale), float32(baseHeight/2 + z*viewScale)
}

// drawScene renders every box from above, X to the right and Z down the
// screen, plus a heading line for the camera.
func drawScene(screen *ebiten.Image, w *ecs.World) {
	screen.Fill(colornames.Midnightblue)

	ecs.ForEach2(w, component.BoxComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, box *component.Box, transform *component.Transform) {
		pos := transform.Position
		if global, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind()); ok {
			pos = global.Position()
		}
		x, y := toScreen(pos.X()-box.HalfExtents.X(), pos.Z()-box.HalfExtents.Z())
		width := float32(2 * box.HalfExtents.X() * viewScale)
		height := float32(2 * box.HalfExtents.Z() * viewScale)
		fill := box.Color
		if fill == (color.RGBA{}) {
			fill = colornames.White
		}
		vector.DrawFilledRect(screen, x, y, width, height, fill, false)
		vector.StrokeRect(screen, x, y, width, height, 1, colornames.Black, false)
	})

	camera, ok := w.Last(component.CameraComponent.Kind().ID())
	if !ok {
		return
	}
	global, ok := ecs.Get(w, camera, component.GlobalTransformComponent.Kind())
	if !ok {
		return
	}
	pos := global.Position()
	forward := global.TransformDirection(common.WorldForward).Mul(2)
	x0, y0 := toScreen(pos.X(), pos.Z())
	x1, y1 := toScreen(pos.X()+forward.X(), pos.Z()+forward.Z())
	vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.Yellow, true)
}

func drawControllerDebug(screen *ebiten.Image, ls *system.LocomotionSystem, ticks uint64) {
	if ls == nil {
		return
	}
	dir := ls.Direction()
	text := fmt.Sprintf("TPS: %.1f  Ticks: %d\nState: %s\nAirborne: %.2f\nInput: (%.0f, %.0f, %.0f)",
		ebiten.ActualTPS(), ticks, ls.State(), ls.AirborneTimer(), dir.X(), dir.Y(), dir.Z())
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}
