package xrinput

import (
	"testing"
	"time"
)

// --- Click tests ---

func TestClickDetection(t *testing.T) {
	s, p := newTestScene(t)
	panel := testPanel("panel")
	s.Add(panel)

	var log eventLog
	log.record(s)
	var counts []int
	s.OnClick(func(ctx ClickContext) {
		counts = append(counts, ctx.ClickCount)
		if ctx.Object != panel {
			t.Errorf("click target = %v, want panel", ctx.Object)
		}
	})

	p.InjectPress(500, 500)
	s.Update(at(0))
	p.InjectRelease(502, 500)
	s.Update(at(100))

	want := []string{"down", "enter", "up", "click"}
	if len(log) != len(want) {
		t.Fatalf("events = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("events = %v, want %v", log, want)
		}
	}
	if len(counts) != 1 || counts[0] != 1 {
		t.Errorf("click counts = %v, want [1]", counts)
	}
}

func TestClickCount(t *testing.T) {
	s, p := newTestScene(t)
	s.Add(testPanel("panel"))

	var counts []int
	s.OnClick(func(ctx ClickContext) {
		counts = append(counts, ctx.ClickCount)
	})

	frames := []struct {
		ms    int
		press bool
	}{
		{0, true}, {100, false},
		{200, true}, {250, false}, // within the interval of the previous press
		{700, true}, {750, false}, // too late, count restarts
	}
	for _, f := range frames {
		if f.press {
			p.InjectPress(500, 500)
		} else {
			p.InjectRelease(500, 500)
		}
		s.Update(at(f.ms))
	}

	want := []int{1, 2, 1}
	if len(counts) != len(want) {
		t.Fatalf("click counts = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("click counts = %v, want %v", counts, want)
			break
		}
	}
}

func TestClickNotFiredOnDifferentTarget(t *testing.T) {
	s, p := newTestScene(t)
	a := testPanel("a")
	b := testPanel("b")
	b.Pose.Position.X = 0.2
	s.Add(a, b)

	clicks := 0
	s.OnClick(func(ClickContext) { clicks++ })
	ups := 0
	s.OnPointerUp(func(ctx PointerContext) {
		ups++
		if ctx.Object != a {
			t.Errorf("pointer up target = %v, want the pressed panel", ctx.Object)
		}
	})

	// Jump straight to b in the release frame.
	p.InjectPress(500, 500)
	s.Update(at(0))
	p.InjectRelease(700, 500)
	s.Update(at(16))

	if ups != 1 {
		t.Errorf("pointer up fired %d times, want 1", ups)
	}
	if clicks != 0 {
		t.Errorf("click fired %d times, want 0", clicks)
	}
}

func TestClickRequiresTarget(t *testing.T) {
	s, p := newTestScene(t)
	var log eventLog
	log.record(s)

	p.InjectClick(500, 500)
	s.Update(at(0))
	s.Update(at(16))

	if log.count("down") != 1 || log.count("up") != 1 {
		t.Errorf("events = %v, want one down and one up", log)
	}
	if log.count("click") != 0 {
		t.Errorf("click fired with no target")
	}
}

// --- Drag tests ---

func TestDragDetection(t *testing.T) {
	s, p := newTestScene(t)
	s.Add(testPanel("panel"))

	var log eventLog
	log.record(s)
	var starts []DragContext
	s.OnDragStart(func(ctx DragContext) { starts = append(starts, ctx) })

	p.InjectPress(500, 500)
	p.InjectMove(506, 500) // inside the threshold
	p.InjectMove(512, 500)
	p.InjectRelease(512, 500)
	for i := 0; i < 4; i++ {
		s.Update(at(16 * i))
	}

	want := []string{"down", "enter", "dragstart", "drag", "up", "drop", "dragend"}
	if len(log) != len(want) {
		t.Fatalf("events = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("events = %v, want %v", log, want)
		}
	}
	if len(starts) != 1 {
		t.Fatalf("drag start fired %d times", len(starts))
	}
	ctx := starts[0]
	if !approxEqual(ctx.PressPosition.X, 500, 1e-6) || !approxEqual(ctx.Position.X, 512, 1e-6) {
		t.Errorf("drag start press=%v pos=%v, want press x=500 pos x=512", ctx.PressPosition, ctx.Position)
	}
	if !approxEqual(ctx.Delta.X, 6, 1e-6) {
		t.Errorf("drag start delta = %v, want x=6", ctx.Delta)
	}
}

func TestDragBelowThreshold(t *testing.T) {
	s, p := newTestScene(t)
	s.Add(testPanel("panel"))
	var log eventLog
	log.record(s)

	p.InjectPress(500, 500)
	p.InjectMove(505, 505)
	p.InjectRelease(505, 505)
	for i := 0; i < 3; i++ {
		s.Update(at(16 * i))
	}

	if log.count("dragstart") != 0 {
		t.Errorf("drag started within threshold: %v", log)
	}
	if log.count("click") != 1 {
		t.Errorf("click count = %d, want 1", log.count("click"))
	}
}

func TestDragCustomThreshold(t *testing.T) {
	s, p := newTestScene(t)
	s.Add(testPanel("panel"))
	s.SetDragThreshold(2)
	var log eventLog
	log.record(s)

	p.InjectPress(500, 500)
	p.InjectMove(503, 500)
	s.Update(at(0))
	s.Update(at(16))

	if log.count("dragstart") != 1 {
		t.Errorf("events = %v, want a drag start", log)
	}
}

func TestDragEndpointLockedToPressDistance(t *testing.T) {
	// Press on a far box, then move over a near panel: the endpoint stays
	// at the press distance while the resolved hit follows the ray.
	s, p := newTestScene(t)
	far := NewObject("far", Pose{Position: Vec3{0, 0, 0.45}, Rotation: QuatIdentity},
		BoxCollider{Size: Vec3{0.4, 0.4, 0.1}})
	near := testPanel("near")
	near.Pose.Position = Vec3{0.1, 0, 0.1}
	s.Add(far, near)

	p.InjectPress(500, 500)
	p.InjectMove(600, 500)
	s.Update(at(0))
	if got := p.EndpointPose().Position; !vecApprox(got, Vec3{0, 0, 0.4}, 1e-9) {
		t.Fatalf("endpoint at press = %v, want (0,0,0.4)", got)
	}
	s.Update(at(16))

	if got := p.Result().Target; got != near {
		t.Fatalf("result = %v, want near", got)
	}
	if got := p.ScreenPosition(); !approxEqual(got.X, 600, 1e-6) {
		t.Errorf("screen position = %v, want x=600", got)
	}
	if got := p.EndpointPose().Position; !vecApprox(got, Vec3{0.1, 0, 0.4}, 1e-9) {
		t.Errorf("endpoint = %v, want (0.1,0,0.4)", got)
	}
}

func TestUIPressDoesNotLockEndpoint(t *testing.T) {
	s, p := newTestScene(t)
	far := testPanel("far")
	far.Pose.Position.Z = 0.4
	far.Surface.Rect = Rect{X: -0.2, Y: -0.2, Width: 0.4, Height: 0.4}
	near := testPanel("near")
	near.Pose.Position = Vec3{0.1, 0, 0.1}
	s.Add(far, near)

	p.InjectPress(500, 500)
	p.InjectMove(600, 500)
	s.Update(at(0))
	s.Update(at(16))

	if got := p.EndpointPose().Position; !vecApprox(got, Vec3{0.1, 0, 0.1}, 1e-9) {
		t.Errorf("endpoint = %v, want the near hit (0.1,0,0.1)", got)
	}
}

func TestDragCarriesDraggableObject(t *testing.T) {
	s, p := newTestScene(t)
	box := NewObject("box", Pose{Position: Vec3{0, 0, 0.3}, Rotation: QuatIdentity},
		BoxCollider{Size: Vec3{0.1, 0.1, 0.1}})
	box.Draggable = true
	s.Add(box)

	var drops int
	box.OnDrop = func(DragContext) { drops++ }

	pose := func(x float64) Pose { return Pose{Position: Vec3{x, 0, 0}, Rotation: QuatIdentity} }
	p.InjectPose(pose(0), true)
	s.Update(at(0))
	if got := p.EndpointPose().Position; !vecApprox(got, Vec3{0, 0, 0.25}, 1e-9) {
		t.Fatalf("endpoint at press = %v, want (0,0,0.25)", got)
	}

	p.InjectPose(pose(0.02), true) // 20 px: drag starts, object grabbed
	s.Update(at(16))
	if p.GrabObject() != box {
		t.Fatalf("grab object = %v, want box", p.GrabObject())
	}
	if !vecApprox(box.Pose.Position, Vec3{0, 0, 0.3}, 1e-9) {
		t.Errorf("box moved on grab: %v", box.Pose.Position)
	}

	p.InjectPose(pose(0.04), true)
	s.Update(at(32))
	if !vecApprox(box.Pose.Position, Vec3{0.02, 0, 0.3}, 1e-9) {
		t.Errorf("box = %v, want (0.02,0,0.3)", box.Pose.Position)
	}

	p.InjectPose(pose(0.04), false)
	s.Update(at(48))
	if p.GrabObject() != nil {
		t.Errorf("grab object after release = %v, want nil", p.GrabObject())
	}
	if drops != 1 {
		t.Errorf("drop fired %d times, want 1", drops)
	}

	// The object stays where it was released.
	p.InjectPose(pose(0.3), false)
	s.Update(at(64))
	if !vecApprox(box.Pose.Position, Vec3{0.02, 0, 0.3}, 1e-9) {
		t.Errorf("box after release = %v, want (0.02,0,0.3)", box.Pose.Position)
	}
}

func TestDragNotDraggableObjectStays(t *testing.T) {
	s, p := newTestScene(t)
	box := NewObject("box", Pose{Position: Vec3{0, 0, 0.3}, Rotation: QuatIdentity},
		BoxCollider{Size: Vec3{0.1, 0.1, 0.1}})
	s.Add(box)

	pose := func(x float64) Pose { return Pose{Position: Vec3{x, 0, 0}, Rotation: QuatIdentity} }
	p.InjectPose(pose(0), true)
	p.InjectPose(pose(0.02), true)
	p.InjectPose(pose(0.04), true)
	for i := 0; i < 3; i++ {
		s.Update(at(16 * i))
	}
	if p.GrabObject() != nil {
		t.Errorf("non-draggable object grabbed")
	}
	if box.Pose.Position != (Vec3{0, 0, 0.3}) {
		t.Errorf("box moved to %v", box.Pose.Position)
	}
}

func TestDragDisposedObjectReleased(t *testing.T) {
	s, p := newTestScene(t)
	box := NewObject("box", Pose{Position: Vec3{0, 0, 0.3}, Rotation: QuatIdentity},
		BoxCollider{Size: Vec3{0.1, 0.1, 0.1}})
	box.Draggable = true
	s.Add(box)

	pose := func(x float64) Pose { return Pose{Position: Vec3{x, 0, 0}, Rotation: QuatIdentity} }
	p.InjectPose(pose(0), true)
	p.InjectPose(pose(0.02), true)
	s.Update(at(0))
	s.Update(at(16))
	if p.GrabObject() != box {
		t.Fatal("box not grabbed")
	}

	box.Dispose()
	p.InjectPose(pose(0.04), true)
	s.Update(at(32))
	if p.GrabObject() != nil {
		t.Errorf("grab object after dispose = %v, want nil", p.GrabObject())
	}
}

// --- Enter/exit tests ---

func TestEnterExitDeferred(t *testing.T) {
	s, p := newTestScene(t)
	s.Add(testPanel("panel"))
	var log eventLog
	log.record(s)

	p.InjectHover(500, 500)
	s.Update(at(0))
	if len(log) != 0 {
		t.Fatalf("events on first frame = %v, want none", log)
	}
	s.Update(at(16))
	if log.count("enter") != 1 {
		t.Fatalf("events = %v, want enter on second frame", log)
	}

	// Holding the same hit fires nothing more.
	s.Update(at(32))
	if len(log) != 1 {
		t.Fatalf("events = %v, want only enter", log)
	}

	p.InjectHover(900, 900)
	s.Update(at(48))
	if log.count("exit") != 0 {
		t.Fatalf("exit fired on the frame the hit was lost")
	}
	s.Update(at(64))
	if log.count("exit") != 1 {
		t.Errorf("events = %v, want exit", log)
	}
}

func TestEnterExitSwitchTargets(t *testing.T) {
	s, p := newTestScene(t)
	a := testPanel("a")
	b := testPanel("b")
	b.Pose.Position.X = 0.2
	s.Add(a, b)

	var order []string
	s.OnPointerEnter(func(ctx PointerContext) { order = append(order, "enter "+ctx.Object.Name) })
	s.OnPointerExit(func(ctx PointerContext) { order = append(order, "exit "+ctx.Object.Name) })

	p.InjectHover(500, 500)
	p.InjectHover(700, 500)
	for i := 0; i < 3; i++ {
		s.Update(at(16 * i))
	}
	want := []string{"enter a", "exit a", "enter b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestEnterSuppressedForDisposedObject(t *testing.T) {
	s, p := newTestScene(t)
	panel := testPanel("panel")
	s.Add(panel)
	var log eventLog
	log.record(s)

	p.InjectHover(500, 500)
	s.Update(at(0))
	panel.Dispose()
	s.Update(at(16))
	s.Update(at(32))

	if len(log) != 0 {
		t.Errorf("events = %v, want none for a disposed object", log)
	}
	if len(s.Objects()) != 0 {
		t.Errorf("disposed object still in scene")
	}
}

func TestInvisiblePointerReadsButtons(t *testing.T) {
	s := NewScene()
	src := newFakeSource()
	sty, err := NewStylus(src, testCamera())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddPointer(sty); err != nil {
		t.Fatal(err)
	}
	s.Add(testPanel("panel"))

	s.Update(at(0))
	if sty.Result().Target == nil {
		t.Fatal("visible stylus missed the panel")
	}

	src.visible = false
	src.buttons[ButtonMiddle] = true
	s.Update(at(16))
	if sty.Result() != (RaycastHit{}) {
		t.Errorf("invisible result = %+v, want zero hit", sty.Result())
	}
	if !sty.ButtonDown(ButtonMiddle) {
		t.Error("button edge lost while invisible")
	}
}

// --- Pointer skipping ---

func TestNilCameraSkipsPointer(t *testing.T) {
	s, p := newTestScene(t)
	s.Add(testPanel("panel"))
	p.SetCamera(nil)

	var log eventLog
	log.record(s)
	p.InjectPress(500, 500)
	s.Update(at(0))

	if len(log) != 0 {
		t.Errorf("events = %v, want none without a camera", log)
	}
	if p.Pending() != 1 {
		t.Errorf("pending = %d, want the event still queued", p.Pending())
	}

	p.SetCamera(testCamera())
	s.Update(at(16))
	if log.count("down") != 1 {
		t.Errorf("events = %v, want down once the camera is set", log)
	}
}

// --- Event streams ---

func TestRightButtonStream(t *testing.T) {
	s, p := newTestScene(t)
	s.Add(testPanel("panel"))

	var clicks []ClickContext
	s.OnClick(func(ctx ClickContext) { clicks = append(clicks, ctx) })

	p.InjectButton(ButtonRight, 500, 500, true)
	p.InjectButton(ButtonRight, 500, 500, false)
	s.Update(at(0))
	s.Update(at(16))

	if len(clicks) != 1 {
		t.Fatalf("clicks = %d, want 1", len(clicks))
	}
	if clicks[0].Button != ButtonRight {
		t.Errorf("button = %v, want ButtonRight", clicks[0].Button)
	}
	if clicks[0].PointerID != ScriptedID+1 {
		t.Errorf("pointer id = %d, want %d", clicks[0].PointerID, ScriptedID+1)
	}
}

func TestButtonEdgeEvents(t *testing.T) {
	s, p := newTestScene(t)
	var got []ButtonContext
	s.OnButtonPressed(func(ctx ButtonContext) { got = append(got, ctx) })
	s.OnButtonReleased(func(ctx ButtonContext) { got = append(got, ctx) })

	p.InjectButton(ButtonMiddle, 0, 0, true)
	p.InjectButton(ButtonMiddle, 0, 0, false)
	s.Update(at(0))
	s.Update(at(16))

	if len(got) != 2 {
		t.Fatalf("button events = %d, want 2", len(got))
	}
	for _, ctx := range got {
		if ctx.Button != ButtonMiddle || ctx.PointerID != ScriptedID+2 {
			t.Errorf("unexpected button context %+v", ctx)
		}
	}
}

// --- Callback dispatch ---

func TestCallbackOrder_SceneThenObject(t *testing.T) {
	s, p := newTestScene(t)
	panel := testPanel("panel")
	s.Add(panel)

	var order []string
	s.OnPointerDown(func(PointerContext) { order = append(order, "scene") })
	panel.OnPointerDown = func(PointerContext) { order = append(order, "object") }

	p.InjectPress(500, 500)
	s.Update(at(0))
	if len(order) != 2 || order[0] != "scene" || order[1] != "object" {
		t.Errorf("expected [scene object], got %v", order)
	}
}

func TestCallbackHandle_Remove(t *testing.T) {
	s, p := newTestScene(t)
	count := 0
	handle := s.OnPointerDown(func(PointerContext) { count++ })

	p.InjectClick(500, 500)
	s.Update(at(0))
	s.Update(at(16))
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	handle.Remove()
	p.InjectClick(500, 500)
	s.Update(at(1000))
	s.Update(at(1016))
	if count != 1 {
		t.Fatalf("expected count still 1 after Remove, got %d", count)
	}
}

func TestMultipleSceneHandlers(t *testing.T) {
	s, p := newTestScene(t)
	var a, b int
	s.OnPointerDown(func(PointerContext) { a++ })
	h := s.OnPointerDown(func(PointerContext) { b++ })
	s.OnPointerDown(func(PointerContext) { a++ })
	h.Remove()

	p.InjectPress(0, 0)
	s.Update(at(0))
	if a != 2 || b != 0 {
		t.Errorf("a=%d b=%d, want a=2 b=0", a, b)
	}
}

// --- ECS bridge ---

type mockStore struct {
	events []InteractionEvent
}

func (m *mockStore) EmitEvent(e InteractionEvent) {
	m.events = append(m.events, e)
}

func TestECSBridge(t *testing.T) {
	s, p := newTestScene(t)
	store := &mockStore{}
	s.SetEntityStore(store)
	panel := testPanel("panel")
	panel.EntityID = 42
	s.Add(panel)

	p.InjectClick(500, 500)
	s.Update(at(0))
	s.Update(at(16))

	want := []EventType{
		EventButtonPressed, EventPointerDown,
		EventPointerEnter, EventButtonReleased, EventPointerUp, EventClick,
	}
	if len(store.events) != len(want) {
		t.Fatalf("events = %+v, want %d", store.events, len(want))
	}
	for i, e := range store.events {
		if e.Type != want[i] {
			t.Errorf("event %d = %v, want %v", i, e.Type, want[i])
		}
	}
	click := store.events[5]
	if click.EntityID != 42 || click.ClickCount != 1 {
		t.Errorf("click event = %+v", click)
	}
	down := store.events[1]
	if !approxEqual(down.Distance, 0.2, 1e-9) || !vecApprox(down.WorldPosition, Vec3{0, 0, 0.2}, 1e-9) {
		t.Errorf("down hit fields = (%v, %v)", down.Distance, down.WorldPosition)
	}
	if store.events[0].EntityID != 0 || store.events[0].PointerID != ScriptedID {
		t.Errorf("button event = %+v", store.events[0])
	}
}

func TestECSBridge_NoEntity(t *testing.T) {
	s, p := newTestScene(t)
	store := &mockStore{}
	s.SetEntityStore(store)
	s.Add(testPanel("panel"))

	p.InjectPress(500, 500)
	s.Update(at(0))
	for _, e := range store.events {
		if e.Type == EventPointerDown {
			t.Errorf("pointer down emitted for object without EntityID")
		}
	}
}

func TestECSBridge_DragFields(t *testing.T) {
	s, p := newTestScene(t)
	store := &mockStore{}
	s.SetEntityStore(store)
	panel := testPanel("panel")
	panel.EntityID = 7
	s.Add(panel)

	p.InjectPress(500, 500)
	p.InjectMove(520, 490)
	s.Update(at(0))
	s.Update(at(16))

	var drag *InteractionEvent
	for i := range store.events {
		if store.events[i].Type == EventDrag {
			drag = &store.events[i]
		}
	}
	if drag == nil {
		t.Fatal("no drag event emitted")
	}
	if drag.EntityID != 7 {
		t.Errorf("EntityID = %d, want 7", drag.EntityID)
	}
	if !approxEqual(drag.StartX, 500, 1e-6) || !approxEqual(drag.StartY, 500, 1e-6) {
		t.Errorf("StartX/Y = (%v,%v), want (500,500)", drag.StartX, drag.StartY)
	}
	if !approxEqual(drag.DeltaX, 20, 1e-6) || !approxEqual(drag.DeltaY, -10, 1e-6) {
		t.Errorf("DeltaX/Y = (%v,%v), want (20,-10)", drag.DeltaX, drag.DeltaY)
	}
}

// --- Input module ---

func TestProcessStats(t *testing.T) {
	s, p := newTestScene(t)
	s.Add(testPanel("a"), testPanel("b"))
	idle := NewScriptedPointer(ScriptedID+10, nil)
	if err := s.AddPointer(idle); err != nil {
		t.Fatal(err)
	}

	p.InjectHover(500, 500)
	stats := s.input.process(at(0))
	if stats.pointerCount != 2 || stats.skippedCount != 1 {
		t.Errorf("pointers=%d skipped=%d, want 2 and 1", stats.pointerCount, stats.skippedCount)
	}
	if stats.candidateCount != 2 {
		t.Errorf("candidates = %d, want 2", stats.candidateCount)
	}
}

func TestFrameDelta(t *testing.T) {
	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want float64
	}{
		{"first frame", time.Time{}, at(0), 1.0 / 60},
		{"normal", at(0), at(20), 0.02},
		{"clock went back", at(20), at(10), 1.0 / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameDelta(tt.last, tt.now); !approxEqual(got, tt.want, 1e-12) {
				t.Errorf("frameDelta = %v, want %v", got, tt.want)
			}
		})
	}
}
