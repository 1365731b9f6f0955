package sinew

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

func TestNewGroupDefaults(t *testing.T) {
	g := NewGroup("look")
	if g.Weight != 1 || g.Index() != -1 || len(g.Elements()) != 0 {
		t.Errorf("defaults = weight %v index %d elements %d", g.Weight, g.Index(), len(g.Elements()))
	}
	g.Add(NewRepose(NewNode("n")))
	if len(g.Elements()) != 1 {
		t.Error("Add did not append")
	}
}

func TestEffectiveWeightMultiplies(t *testing.T) {
	r := NewRepose(NewNode("n"))
	r.Weight = 0.5
	g := NewGroup("g", r)
	g.Weight = 0.5
	assertNear(t, "product", g.effectiveWeight(r), 0.25)

	g.Weight = 3
	assertNear(t, "clamped group", g.effectiveWeight(r), 0.5)
	r.Weight = -2
	assertNear(t, "clamped element", g.effectiveWeight(r), 0)
}

func TestFadeToImmediate(t *testing.T) {
	g := NewGroup("g")
	g.FadeTo(0.3, 0, nil)
	if g.Weight != 0.3 || g.Fading() {
		t.Errorf("Weight = %v, fading = %v", g.Weight, g.Fading())
	}
	g.FadeTo(7, -1, nil)
	if g.Weight != 1 {
		t.Errorf("Weight = %v, want clamped 1", g.Weight)
	}
}

func TestFadeToReachesTarget(t *testing.T) {
	g := NewGroup("g")
	g.FadeTo(0, 1.0, ease.Linear)
	if !g.Fading() {
		t.Fatal("expected fade in progress")
	}

	g.Update(0.5)
	if math.Abs(g.Weight-0.5) > 0.01 {
		t.Errorf("mid Weight = %v, want ~0.5", g.Weight)
	}
	g.Update(0.5)
	if g.Fading() {
		t.Error("fade should be finished")
	}
	if math.Abs(g.Weight) > 1e-6 {
		t.Errorf("Weight = %v, want ~0", g.Weight)
	}
}

func TestFadeEasingChangesCurve(t *testing.T) {
	linear := NewGroup("linear")
	linear.Weight = 0
	linear.FadeTo(1, 1, ease.Linear)
	eased := NewGroup("eased")
	eased.Weight = 0
	eased.FadeTo(1, 1, ease.InQuad)

	linear.Update(0.25)
	eased.Update(0.25)
	if eased.Weight >= linear.Weight {
		t.Errorf("InQuad %v should trail Linear %v early in the fade", eased.Weight, linear.Weight)
	}
}

func TestUpdateWithoutFadeIsNoop(t *testing.T) {
	g := NewGroup("g")
	g.Weight = 0.4
	g.Update(1)
	if g.Weight != 0.4 {
		t.Errorf("Weight = %v, want 0.4", g.Weight)
	}
}

func TestSystemUpdateWeightsDrivesFades(t *testing.T) {
	n := NewNode("n")
	g := NewGroup("pin", NewRepose(n).SetPosition(mgl64.Vec3{4, 0, 0}, ReposeNewWorld))
	g.Weight = 0
	sys := newTestSystem(t, g)
	g.FadeTo(1, 1, nil)

	sys.ResetPose()
	sys.UpdateWeights(0.5)
	sys.Solve()
	if math.Abs(n.Position[0]-2) > 0.01 {
		t.Errorf("x = %v, want ~2 at half fade", n.Position[0])
	}

	sys.ResetPose()
	sys.UpdateWeights(0.5)
	sys.Solve()
	if math.Abs(n.Position[0]-4) > 1e-6 {
		t.Errorf("x = %v, want 4 after fade", n.Position[0])
	}
}
