// Package rigfile loads sinew IK groups from YAML rig descriptions.
//
//	groups:
//	  - name: look
//	    weight: 1
//	    elements:
//	      - kind: aim
//	        node: head
//	        target: look_target
//	        aim_axis: +z
//	        stabilize_axis: +y
//	      - kind: two_joint
//	        node: hand_l
//	        shoulder: upperarm_l
//	        elbow: forearm_l
//	        target: grip_l
//	        hint: elbow_hint_l
//	        layer: 1
//	      - kind: repose
//	        node: prop
//	        force_reset: true
//	        position: [1, 0, 0]
//	        position_mode: new_local
//	        rotation: {axis: [0, 1, 0], degrees: 90}
//	        rotation_mode: offset_local
//	      - kind: sibling
//	        node: hand_r
//	        sibling: hand_l
//
// Node names resolve under a caller-supplied root with Node.FindChild.
package rigfile

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/sinew"
	"gopkg.in/yaml.v3"
)

// Element kinds.
const (
	KindAim      = "aim"
	KindRepose   = "repose"
	KindTwoJoint = "two_joint"
	KindSibling  = "sibling"
)

// RigSpec is the top level of a rig file: groups in precedence order.
type RigSpec struct {
	Groups []GroupSpec `yaml:"groups"`
}

// GroupSpec describes one group. A nil Weight means full weight.
type GroupSpec struct {
	Name     string        `yaml:"name"`
	Weight   *float64      `yaml:"weight"`
	Elements []ElementSpec `yaml:"elements"`
}

// RotationSpec is an axis-angle rotation in degrees.
type RotationSpec struct {
	Axis    [3]float64 `yaml:"axis"`
	Degrees float64    `yaml:"degrees"`
}

// ElementSpec describes one element. Kind selects which fields apply; nodes
// are referred to by name.
type ElementSpec struct {
	Kind       string   `yaml:"kind"`
	Node       string   `yaml:"node"`
	Layer      int      `yaml:"layer"`
	Additive   *bool    `yaml:"additive"`
	ForceReset *bool    `yaml:"force_reset"`
	Weight     *float64 `yaml:"weight"`

	// aim, two_joint
	Target string `yaml:"target"`

	// aim
	AimAxis       string `yaml:"aim_axis"`
	StabilizeAxis string `yaml:"stabilize_axis"`

	// two_joint
	Shoulder string  `yaml:"shoulder"`
	Elbow    string  `yaml:"elbow"`
	Hint     string  `yaml:"hint"`
	Epsilon  float64 `yaml:"epsilon"`

	// repose
	Position     *[3]float64   `yaml:"position"`
	PositionMode string        `yaml:"position_mode"`
	Rotation     *RotationSpec `yaml:"rotation"`
	RotationMode string        `yaml:"rotation_mode"`

	// sibling
	Sibling string `yaml:"sibling"`
}

// LoadFile reads and builds the rig at path.
func LoadFile(path string, root *sinew.Node) ([]*sinew.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rigfile: load %s: %w", path, err)
	}
	groups, err := Parse(data, root)
	if err != nil {
		return nil, fmt.Errorf("rigfile: %s: %w", path, err)
	}
	return groups, nil
}

// Parse decodes a YAML rig and builds its groups against the hierarchy under
// root. Unknown node names, kinds, axes and modes are errors.
func Parse(data []byte, root *sinew.Node) ([]*sinew.Group, error) {
	var spec RigSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("rigfile: unmarshal: %w", err)
	}
	return Build(spec, root)
}

// Build turns a decoded rig into groups.
func Build(spec RigSpec, root *sinew.Node) ([]*sinew.Group, error) {
	if root == nil {
		return nil, fmt.Errorf("rigfile: nil root")
	}
	groups := make([]*sinew.Group, 0, len(spec.Groups))
	for gi, gs := range spec.Groups {
		g := sinew.NewGroup(gs.Name)
		if gs.Weight != nil {
			g.Weight = *gs.Weight
		}
		for ei, es := range gs.Elements {
			e, err := buildElement(es, root)
			if err != nil {
				return nil, fmt.Errorf("rigfile: group %d (%s) element %d: %w", gi, gs.Name, ei, err)
			}
			g.Add(e)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func buildElement(es ElementSpec, root *sinew.Node) (sinew.Element, error) {
	r := resolver{root: root}
	node := r.node("node", es.Node)

	var e sinew.Element
	switch es.Kind {
	case KindAim:
		aim, err := parseAxis("aim_axis", es.AimAxis)
		if err != nil {
			return nil, err
		}
		stab, err := parseAxis("stabilize_axis", es.StabilizeAxis)
		if err != nil {
			return nil, err
		}
		e = sinew.NewAim(node, r.node("target", es.Target), aim, stab)
	case KindRepose:
		rp := sinew.NewRepose(node)
		if es.Position != nil {
			mode, err := parseMode("position_mode", es.PositionMode)
			if err != nil {
				return nil, err
			}
			rp.SetPosition(mgl64.Vec3(*es.Position), mode)
		}
		if es.Rotation != nil {
			mode, err := parseMode("rotation_mode", es.RotationMode)
			if err != nil {
				return nil, err
			}
			axis := mgl64.Vec3(es.Rotation.Axis)
			if axis.Len() == 0 {
				return nil, fmt.Errorf("rotation axis is zero")
			}
			rp.SetRotation(mgl64.QuatRotate(mgl64.DegToRad(es.Rotation.Degrees), axis.Normalize()), mode)
		}
		e = rp
	case KindTwoJoint:
		tj := sinew.NewTwoJoint(
			r.node("shoulder", es.Shoulder),
			r.node("elbow", es.Elbow),
			node,
			r.node("target", es.Target),
			r.node("hint", es.Hint),
		)
		if es.Epsilon > 0 {
			tj.Epsilon = es.Epsilon
		}
		e = tj
	case KindSibling:
		e = sinew.NewSiblingAsParent(node, r.node("sibling", es.Sibling))
	default:
		return nil, fmt.Errorf("unknown kind %q", es.Kind)
	}
	if r.err != nil {
		return nil, r.err
	}

	b := e.Base()
	b.Layer = es.Layer
	if es.Additive != nil {
		b.Additive = *es.Additive
	}
	if es.ForceReset != nil {
		b.ForcePoseReset = *es.ForceReset
	}
	if es.Weight != nil {
		b.Weight = *es.Weight
	}
	return e, nil
}

// resolver looks up node names and keeps the first failure.
type resolver struct {
	root *sinew.Node
	err  error
}

func (r *resolver) node(field, name string) *sinew.Node {
	if r.err != nil {
		return nil
	}
	if name == "" {
		r.err = fmt.Errorf("%s: missing node name", field)
		return nil
	}
	n := r.root.FindChild(name)
	if n == nil {
		r.err = fmt.Errorf("%s: node %q not found", field, name)
	}
	return n
}

func parseAxis(field, s string) (sinew.Axis, error) {
	a, ok := sinew.ParseAxis(s)
	if !ok {
		return 0, fmt.Errorf("%s: unknown axis %q", field, s)
	}
	return a, nil
}

func parseMode(field, s string) (sinew.ReposeMode, error) {
	m, ok := sinew.ParseReposeMode(s)
	if !ok || m == sinew.ReposeNone {
		return 0, fmt.Errorf("%s: unknown mode %q", field, s)
	}
	return m, nil
}
