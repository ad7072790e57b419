package radial

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func dist(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// buildMap creates a map whose i-th primary has fanout[i] children.
func buildMap(fanout ...int) mindmap.MindMap {
	m := mindmap.MindMap{Title: "root"}
	for i, k := range fanout {
		n := mindmap.Node{ID: mindmap.ID(fmt.Sprintf("n%d", i)), Label: fmt.Sprintf("N%d", i)}
		for j := range k {
			n.Children = append(n.Children, mindmap.Child{
				ID:    mindmap.ID(fmt.Sprintf("c%d", j)),
				Label: fmt.Sprintf("C%d.%d", i, j),
			})
		}
		m.Nodes = append(m.Nodes, n)
	}
	return m
}

func TestComputeScenario(t *testing.T) {
	m := mindmap.MindMap{
		Title: "Topic",
		Nodes: []mindmap.Node{
			{ID: "a", Label: "A", Children: []mindmap.Child{}},
			{ID: "b", Label: "B", Children: []mindmap.Child{{ID: "b1", Label: "B1"}}},
		},
	}

	got, err := Compute(m, 800, 650)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if got.Center != (Point{400, 325}) {
		t.Errorf("Center = %+v, want (400, 325)", got.Center)
	}
	if !near(got.RingRadius, 220) || !near(got.ChildRadiusOffset, 140) {
		t.Errorf("radii = %v/%v, want 220/140", got.RingRadius, got.ChildRadiusOffset)
	}

	checks := []struct {
		name string
		p    Point
		want Point
	}{
		{"a", got.Primary[0].Point, Point{620, 325}},
		{"b", got.Primary[1].Point, Point{180, 325}},
		{"b1", got.Secondary[0].Point, Point{40, 325}},
	}
	for _, c := range checks {
		if !near(c.p.X, c.want.X) || !near(c.p.Y, c.want.Y) {
			t.Errorf("%s at %+v, want %+v", c.name, c.p, c.want)
		}
	}

	if !near(got.Primary[1].Angle, math.Pi) || got.Secondary[0].Angle != got.Primary[1].Angle {
		t.Errorf("angles b=%v b1=%v, want both π", got.Primary[1].Angle, got.Secondary[0].Angle)
	}
	if got.Secondary[0].ParentIndex != 1 {
		t.Errorf("b1 ParentIndex = %d, want 1", got.Secondary[0].ParentIndex)
	}

	var primary, secondary int
	for _, c := range got.Connectors {
		switch c.Level {
		case LevelPrimary:
			primary++
		case LevelSecondary:
			secondary++
		}
	}
	if primary != 2 || secondary != 1 {
		t.Errorf("connectors = %d primary, %d secondary; want 2, 1", primary, secondary)
	}
}

func TestComputeEmpty(t *testing.T) {
	for _, m := range []mindmap.MindMap{{Title: "only"}, {Title: "only", Nodes: []mindmap.Node{}}} {
		got, err := Compute(m, 800, 650)
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}
		if got.Center != (Point{400, 325}) {
			t.Errorf("Center = %+v", got.Center)
		}
		if len(got.Primary) != 0 || len(got.Secondary) != 0 || len(got.Connectors) != 0 {
			t.Errorf("empty map produced %d/%d/%d items", len(got.Primary), len(got.Secondary), len(got.Connectors))
		}
		if got.Title != "only" {
			t.Errorf("Title = %q", got.Title)
		}
	}
}

func TestComputeInvalidCanvas(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 650},
		{"negative height", 800, -650},
		{"nan", math.NaN(), 650},
		{"inf", 800, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(buildMap(2, 1), tt.w, tt.h)
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Fatalf("Compute() error = %v, want INVALID_ARGUMENT", err)
			}
			if !reflect.DeepEqual(got, Model{}) {
				t.Errorf("Compute() returned partial model on error: %+v", got)
			}
		})
	}
}

func TestPrimaryAnglesEvenlySpaced(t *testing.T) {
	for n := 1; n <= 12; n++ {
		got, err := Compute(buildMap(make([]int, n)...), 800, 650)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		step := 2 * math.Pi / float64(n)
		for i := range n {
			next := got.Primary[(i+1)%n].Angle
			if i == n-1 {
				next += 2 * math.Pi
			}
			if d := next - got.Primary[i].Angle; !near(d, step) {
				t.Errorf("n=%d: gap after %d = %v, want %v", n, i, d, step)
			}
		}
		if got.Primary[0].Angle != 0 {
			t.Errorf("n=%d: first angle = %v, want 0", n, got.Primary[0].Angle)
		}
	}
}

func TestChildFanSymmetric(t *testing.T) {
	for m := 1; m <= 7; m++ {
		got, err := Compute(buildMap(m, m, m), 800, 650)
		if err != nil {
			t.Fatalf("m=%d: %v", m, err)
		}
		for i, p := range got.Primary {
			children := got.Children(i)
			if len(children) != m {
				t.Fatalf("m=%d: primary %d has %d children", m, i, len(children))
			}
			var sum float64
			for j, c := range children {
				off := c.Angle - p.Angle
				if want := ChildOffset(j, m); !near(off, want) {
					t.Errorf("m=%d: child %d offset = %v, want %v", m, j, off, want)
				}
				sum += off
			}
			if math.Abs(sum/float64(m)) > eps {
				t.Errorf("m=%d: mean child offset = %v, want 0", m, sum/float64(m))
			}
			if m == 1 && children[0].Angle != p.Angle {
				t.Errorf("single child angle %v differs from parent %v", children[0].Angle, p.Angle)
			}
			if m == 2 && !near(children[1].Angle-children[0].Angle, AngularSpread) {
				t.Errorf("two children should be Δ apart, got %v", children[1].Angle-children[0].Angle)
			}
		}
	}
}

func TestDistanceInvariant(t *testing.T) {
	canvases := [][2]float64{{800, 650}, {1024, 768}, {300, 900}, {1, 1}}
	for _, c := range canvases {
		got, err := Compute(buildMap(3, 0, 5, 1, 2), c[0], c[1])
		if err != nil {
			t.Fatalf("canvas %v: %v", c, err)
		}
		for _, p := range got.Primary {
			if d := dist(got.Center, p.Point); !near(d, got.RingRadius) {
				t.Errorf("canvas %v: primary %s at distance %v, want %v", c, p.ID, d, got.RingRadius)
			}
		}
		outer := got.RingRadius + got.ChildRadiusOffset
		for _, s := range got.Secondary {
			if d := dist(got.Center, s.Point); !near(d, outer) {
				t.Errorf("canvas %v: child %s at distance %v, want %v", c, s.ID, d, outer)
			}
		}
		if !near(got.RingRadius, RingRatio*c[0]) || !near(got.ChildRadiusOffset, ChildOffsetRatio*c[0]) {
			t.Errorf("canvas %v: radii not proportional to width", c)
		}
	}
}

func TestConnectors(t *testing.T) {
	m := mindmap.MindMap{Nodes: []mindmap.Node{
		{ID: "red", Color: "#f00", Children: []mindmap.Child{{ID: "x"}, {ID: "y", Color: "#0f0"}}},
		{ID: "plain", Children: []mindmap.Child{{ID: "z"}}},
	}}
	got, err := Compute(m, 800, 650)
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		level    Level
		color    string
		animated bool
	}{
		{LevelPrimary, ColorPrimary, true},
		{LevelSecondary, "#f00", false},
		{LevelSecondary, "#f00", false},
		{LevelPrimary, ColorPrimary, true},
		{LevelSecondary, ColorSecondary, false},
	}
	if len(got.Connectors) != len(want) {
		t.Fatalf("len(Connectors) = %d, want %d", len(got.Connectors), len(want))
	}
	for i, w := range want {
		c := got.Connectors[i]
		if c.Level != w.level || c.Color != w.color || c.Animated != w.animated {
			t.Errorf("Connectors[%d] = {%v %q %v}, want {%v %q %v}", i, c.Level, c.Color, c.Animated, w.level, w.color, w.animated)
		}
	}

	if got.Connectors[0].From != got.Center || got.Connectors[0].To != got.Primary[0].Point {
		t.Error("primary connector should run center → primary")
	}
	if got.Connectors[2].From != got.Primary[0].Point || got.Connectors[2].To != got.Secondary[1].Point {
		t.Error("child connector should run parent → child")
	}
}

func TestColorDefaults(t *testing.T) {
	m := mindmap.MindMap{Nodes: []mindmap.Node{
		{ID: "p", Children: []mindmap.Child{{ID: "c"}}},
		{ID: "q", Color: "#123456", Children: []mindmap.Child{{ID: "d"}, {ID: "e", Color: "#abcdef"}}},
	}}
	got, err := Compute(m, 800, 650)
	if err != nil {
		t.Fatal(err)
	}

	if got.Primary[0].Color != ColorSecondary {
		t.Errorf("colorless primary = %q, want %q", got.Primary[0].Color, ColorSecondary)
	}
	if got.Primary[1].Color != "#123456" {
		t.Errorf("colored primary = %q", got.Primary[1].Color)
	}
	if got.Secondary[0].Color != ColorChild || ColorChild != "#2dd4bf" {
		t.Errorf("colorless child = %q, want %q", got.Secondary[0].Color, "#2dd4bf")
	}
	// Children never inherit their parent's color.
	if got.Secondary[1].Color != ColorChild {
		t.Errorf("colorless child of colored parent = %q, want %q", got.Secondary[1].Color, ColorChild)
	}
	if got.Secondary[2].Color != "#abcdef" {
		t.Errorf("colored child = %q", got.Secondary[2].Color)
	}
}

func TestComputeOrderAndIdempotence(t *testing.T) {
	m := buildMap(2, 0, 3)
	first, err := Compute(m, 800, 650)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := Compute(m.Clone(), 800, 650)
	if !reflect.DeepEqual(first, second) {
		t.Error("Compute() is not idempotent for equal input")
	}

	wantIDs := []mindmap.ID{"c0", "c1", "c0", "c1", "c2"}
	wantParents := []int{0, 0, 2, 2, 2}
	for i, s := range first.Secondary {
		if s.ID != wantIDs[i] || s.ParentIndex != wantParents[i] {
			t.Errorf("Secondary[%d] = %s/%d, want %s/%d", i, s.ID, s.ParentIndex, wantIDs[i], wantParents[i])
		}
	}
	for i, p := range first.Primary {
		if p.ID != m.Nodes[i].ID {
			t.Errorf("Primary[%d] = %s, want %s", i, p.ID, m.Nodes[i].ID)
		}
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	m := buildMap(2, 1)
	before := m.Clone()
	if _, err := Compute(m, 800, 650); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m, before) {
		t.Error("Compute() mutated its input")
	}
}

func TestComputeConcurrent(t *testing.T) {
	m := buildMap(4, 3, 2, 1)
	want, _ := Compute(m, 800, 650)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Compute(m, 800, 650)
			if err != nil || !reflect.DeepEqual(got, want) {
				t.Error("concurrent Compute() diverged")
			}
		}()
	}
	wg.Wait()
}

func TestPercent(t *testing.T) {
	got, _ := Compute(buildMap(1), 800, 650)
	x, y := got.Percent(got.Center)
	if x != 50 || y != 50 {
		t.Errorf("Percent(center) = %v,%v, want 50,50", x, y)
	}
	x, _ = got.Percent(got.Primary[0].Point)
	if !near(x, 77.5) {
		t.Errorf("Percent(primary).x = %v, want 77.5", x)
	}
}

func TestNoNonFinitePositions(t *testing.T) {
	got, err := Compute(buildMap(1, 2, 3, 4, 5, 6, 7, 8), 1e-300, 1e-300)
	if err != nil {
		t.Fatal(err)
	}
	check := func(p Point) {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Errorf("non-finite position %+v", p)
		}
	}
	for _, p := range got.Primary {
		check(p.Point)
	}
	for _, s := range got.Secondary {
		check(s.Point)
	}
}

func TestModelValidate(t *testing.T) {
	valid, err := Compute(buildMap(2, 0, 1), 800, 650)
	if err != nil {
		t.Fatal(err)
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("computed model should validate: %v", err)
	}
	empty, _ := Compute(mindmap.MindMap{}, 800, 650)
	if err := empty.Validate(); err != nil {
		t.Errorf("empty model should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(m *Model)
		code   errors.Code
	}{
		{"zero canvas", func(m *Model) { m.Width = 0 }, errors.ErrCodeInvalidArgument},
		{"parent index too large", func(m *Model) { m.Secondary[0].ParentIndex = len(m.Primary) }, errors.ErrCodeInvalidInput},
		{"negative parent index", func(m *Model) { m.Secondary[0].ParentIndex = -1 }, errors.ErrCodeInvalidInput},
		{"NaN primary", func(m *Model) { m.Primary[1].X = math.NaN() }, errors.ErrCodeInvalidInput},
		{"infinite child", func(m *Model) { m.Secondary[2].Y = math.Inf(-1) }, errors.ErrCodeInvalidInput},
		{"NaN center", func(m *Model) { m.Center.Y = math.NaN() }, errors.ErrCodeInvalidInput},
		{"NaN connector", func(m *Model) { m.Connectors[0].To.X = math.NaN() }, errors.ErrCodeInvalidInput},
		{"unknown level", func(m *Model) { m.Connectors[0].Level = 7 }, errors.ErrCodeInvalidInput},
		{"missing connector", func(m *Model) { m.Connectors = m.Connectors[1:] }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := Compute(buildMap(2, 0, 1), 800, 650)
			tt.mutate(&m)
			if err := m.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}
