package xrinput

import "time"

// --- Constants ---

const (
	defaultDragThreshold = 10.0                   // pixels
	defaultClickInterval = 300 * time.Millisecond // multi-click window
)

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type buttonHandler struct {
	id uint32
	fn func(ButtonContext)
}

type handlerRegistry struct {
	pointerDown    []pointerHandler
	pointerUp      []pointerHandler
	pointerEnter   []pointerHandler
	pointerExit    []pointerHandler
	click          []clickHandler
	dragStart      []dragHandler
	drag           []dragHandler
	dragEnd        []dragHandler
	drop           []dragHandler
	buttonPressed  []buttonHandler
	buttonReleased []buttonHandler
	nextID         uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id, func(x pointerHandler) uint32 { return x.id })
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id, func(x pointerHandler) uint32 { return x.id })
	case EventPointerEnter:
		h.reg.pointerEnter = removeHandler(h.reg.pointerEnter, h.id, func(x pointerHandler) uint32 { return x.id })
	case EventPointerExit:
		h.reg.pointerExit = removeHandler(h.reg.pointerExit, h.id, func(x pointerHandler) uint32 { return x.id })
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id, func(x clickHandler) uint32 { return x.id })
	case EventDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id, func(x dragHandler) uint32 { return x.id })
	case EventDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id, func(x dragHandler) uint32 { return x.id })
	case EventDragEnd:
		h.reg.dragEnd = removeHandler(h.reg.dragEnd, h.id, func(x dragHandler) uint32 { return x.id })
	case EventDrop:
		h.reg.drop = removeHandler(h.reg.drop, h.id, func(x dragHandler) uint32 { return x.id })
	case EventButtonPressed:
		h.reg.buttonPressed = removeHandler(h.reg.buttonPressed, h.id, func(x buttonHandler) uint32 { return x.id })
	case EventButtonReleased:
		h.reg.buttonReleased = removeHandler(h.reg.buttonReleased, h.id, func(x buttonHandler) uint32 { return x.id })
	}
}

// removeHandler deletes the entry with the given id, keeping order.
func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) handle(event EventType) CallbackHandle {
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventPointerDown)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventPointerUp)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired at the start of the frame after the ray first hits an object.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.pointerEnter = append(s.handlers.pointerEnter, pointerHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventPointerEnter)
}

// OnPointerExit registers a scene-level callback for pointer exit events.
// Fired at the start of the frame after the ray stops hitting an object.
func (s *Scene) OnPointerExit(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.pointerExit = append(s.handlers.pointerExit, pointerHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventPointerExit)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.click = append(s.handlers.click, clickHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventClick)
}

// OnDragStart registers a scene-level callback for drag start events.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.dragStart = append(s.handlers.dragStart, dragHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventDragStart)
}

// OnDrag registers a scene-level callback for drag events.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.drag = append(s.handlers.drag, dragHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventDrag)
}

// OnDragEnd registers a scene-level callback for drag end events.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.dragEnd = append(s.handlers.dragEnd, dragHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventDragEnd)
}

// OnDrop registers a scene-level callback for drop events.
func (s *Scene) OnDrop(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.drop = append(s.handlers.drop, dragHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventDrop)
}

// OnButtonPressed registers a scene-level callback for raw button down edges.
func (s *Scene) OnButtonPressed(fn func(ButtonContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.buttonPressed = append(s.handlers.buttonPressed, buttonHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventButtonPressed)
}

// OnButtonReleased registers a scene-level callback for raw button up edges.
func (s *Scene) OnButtonReleased(fn func(ButtonContext)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.buttonReleased = append(s.handlers.buttonReleased, buttonHandler{id: s.handlers.nextID, fn: fn})
	return s.handlers.handle(EventButtonReleased)
}

// --- Input module ---

// InputModule turns pointer samples into interaction events. Each pointer
// feeds three event streams, one per button; stream ButtonLeft is driven by
// the pointer's primary key.
type InputModule struct {
	scene *Scene

	// DragThreshold is the movement in pixels a press must exceed to become
	// a drag.
	DragThreshold float64
	// ClickInterval is the window in which a repeated press on the same
	// target increments the click count.
	ClickInterval time.Duration

	last   time.Time
	events int
}

func newInputModule(s *Scene) *InputModule {
	return &InputModule{
		scene:         s,
		DragThreshold: defaultDragThreshold,
		ClickInterval: defaultClickInterval,
	}
}

// Process runs one frame for every registered pointer, in registration order.
func (m *InputModule) Process(now time.Time) {
	m.process(now)
}

func (m *InputModule) process(now time.Time) debugStats {
	dt := frameDelta(m.last, now)
	m.last = now
	m.events = 0

	var stats debugStats
	for _, p := range m.scene.pointers.Pointers() {
		stats.pointerCount++
		if !m.processPointer(p, now, dt) {
			stats.skippedCount++
			continue
		}
		stats.candidateCount += len(p.core().candidates)
	}
	stats.eventCount = m.events
	return stats
}

// processPointer runs the per-frame state machine for one pointer. It
// reports false when the pointer has no event camera and was skipped.
func (m *InputModule) processPointer(p Pointer, now time.Time, dt float64) bool {
	c := p.core()
	if c.camera == nil {
		return false
	}

	// Enter/exit found by the previous frame's raycast.
	m.fireCollisions(p)

	c.updateState(p.sample(now))
	m.fireButtonEdges(p)

	c.raycast(m.scene, dt)
	c.applyDrag()

	primary := &c.data[ButtonLeft]
	m.processPress(p, primary, c.StateOf(ButtonLeft), now)
	m.processDrag(p, primary)
	for _, b := range [...]Button{ButtonRight, ButtonMiddle} {
		d := &c.data[b]
		d.copyShared(primary)
		m.processPress(p, d, c.StateOf(b), now)
		m.processDrag(p, d)
	}
	return true
}

func (m *InputModule) fireCollisions(p Pointer) {
	c := p.core()
	exited, entered := c.exited, c.entered
	c.exited, c.entered = nil, nil
	hit := c.result
	if valid(exited) {
		m.firePointerExit(p, exited, hit)
	}
	if valid(entered) {
		m.firePointerEnter(p, entered, hit)
	}
}

func (m *InputModule) fireButtonEdges(p Pointer) {
	c := p.core()
	for i := 0; i < buttonCount; i++ {
		if c.last[i] == c.cur[i] {
			continue
		}
		ctx := ButtonContext{Pointer: p, PointerID: c.id + i, Button: Button(i)}
		if c.cur[i] {
			m.fireButton(EventButtonPressed, ctx)
		} else {
			m.fireButton(EventButtonReleased, ctx)
		}
	}
}

// processPress handles the down and up edges of one event stream.
func (m *InputModule) processPress(p Pointer, d *buttonEventData, state FramePressState, now time.Time) {
	c := p.core()
	current := d.currentRaycast.Target
	if !valid(current) {
		current = nil
	}

	switch state {
	case Pressed:
		d.pressing = true
		d.eligibleForClick = true
		d.delta = Vec2{}
		d.dragging = false
		d.pressPosition = d.position
		d.pressRaycast = d.currentRaycast

		if current == d.lastPress && now.Sub(d.clickTime) < m.ClickInterval {
			d.clickCount++
		} else {
			d.clickCount = 1
		}
		d.clickTime = now
		d.pointerPress = current
		d.rawPointerPress = current
		d.pointerDrag = current

		m.firePointerDown(p, d, current)

	case Released:
		if !d.pressing {
			return
		}
		press := d.pointerPress
		if !valid(press) {
			press = nil
		}
		m.firePointerUp(p, d, press)

		if press != nil && press == current && d.eligibleForClick {
			m.fireClick(p, d, press)
		} else if d.dragging && current != nil {
			m.fireDrag(EventDrop, p, d, current)
		}

		d.eligibleForClick = false
		d.lastPress = d.pointerPress
		d.pointerPress = nil
		d.rawPointerPress = nil

		if d.dragging {
			drag := d.pointerDrag
			if !valid(drag) {
				drag = nil
			}
			m.fireDrag(EventDragEnd, p, d, drag)
		}
		d.dragging = false
		d.pointerDrag = nil
		d.pressing = false

		if d == &c.data[ButtonLeft] && c.session != nil {
			c.SetGrabObject(nil)
		}
	}
}

// processDrag promotes a moving press to a drag once it leaves the
// threshold, then reports drag movement.
func (m *InputModule) processDrag(p Pointer, d *buttonEventData) {
	if !d.pressing || !d.moving() {
		return
	}
	c := p.core()
	target := d.pointerDrag
	if !valid(target) {
		target = nil
	}
	if !d.dragging && d.position.Sub(d.pressPosition).Len() > m.DragThreshold {
		d.dragging = true
		d.eligibleForClick = false
		m.fireDrag(EventDragStart, p, d, target)
		if d == &c.data[ButtonLeft] && target != nil && target.Draggable {
			c.grab = target
			c.session = BeginDrag(c.EndpointPose(), target)
		}
	}
	if d.dragging {
		m.fireDrag(EventDrag, p, d, target)
	}
}

// --- Event dispatch ---

func (m *InputModule) pointerContext(p Pointer, d *buttonEventData, obj *Object, hit RaycastHit) PointerContext {
	ctx := PointerContext{
		Object:    obj,
		Pointer:   p,
		PointerID: p.ID() + int(d.button),
		Button:    d.button,
		Position:  d.position,
		Hit:       hit,
	}
	if obj != nil {
		ctx.EntityID = obj.EntityID
		ctx.UserData = obj.UserData
	}
	return ctx
}

func (m *InputModule) firePointerDown(p Pointer, d *buttonEventData, obj *Object) {
	ctx := m.pointerContext(p, d, obj, d.currentRaycast)
	m.events++
	// Scene-level handlers first.
	for _, h := range m.scene.handlers.pointerDown {
		h.fn(ctx)
	}
	// Per-object callback.
	if obj != nil {
		if obj.OnPointerDown != nil {
			obj.OnPointerDown(ctx)
		}
		obj.Vibration.onPress(p)
	}
	// ECS bridge.
	m.emit(EventPointerDown, obj, ctx.PointerID, d.button, d.position, d.currentRaycast, d, 0)
}

func (m *InputModule) firePointerUp(p Pointer, d *buttonEventData, obj *Object) {
	ctx := m.pointerContext(p, d, obj, d.currentRaycast)
	m.events++
	for _, h := range m.scene.handlers.pointerUp {
		h.fn(ctx)
	}
	if obj != nil {
		if obj.OnPointerUp != nil {
			obj.OnPointerUp(ctx)
		}
		obj.Vibration.onRelease(p)
	}
	m.emit(EventPointerUp, obj, ctx.PointerID, d.button, d.position, d.currentRaycast, d, 0)
}

func (m *InputModule) firePointerEnter(p Pointer, obj *Object, hit RaycastHit) {
	d := &p.core().data[ButtonLeft]
	ctx := m.pointerContext(p, d, obj, hit)
	m.events++
	for _, h := range m.scene.handlers.pointerEnter {
		h.fn(ctx)
	}
	if obj.OnPointerEnter != nil {
		obj.OnPointerEnter(ctx)
	}
	obj.Vibration.onEnter(p)
	m.emit(EventPointerEnter, obj, ctx.PointerID, d.button, d.position, hit, nil, 0)
}

func (m *InputModule) firePointerExit(p Pointer, obj *Object, hit RaycastHit) {
	d := &p.core().data[ButtonLeft]
	ctx := m.pointerContext(p, d, obj, hit)
	m.events++
	for _, h := range m.scene.handlers.pointerExit {
		h.fn(ctx)
	}
	if obj.OnPointerExit != nil {
		obj.OnPointerExit(ctx)
	}
	obj.Vibration.onExit(p)
	m.emit(EventPointerExit, obj, ctx.PointerID, d.button, d.position, hit, nil, 0)
}

func (m *InputModule) fireClick(p Pointer, d *buttonEventData, obj *Object) {
	ctx := ClickContext{
		Object:     obj,
		EntityID:   obj.EntityID,
		UserData:   obj.UserData,
		Pointer:    p,
		PointerID:  p.ID() + int(d.button),
		Button:     d.button,
		Position:   d.position,
		ClickCount: d.clickCount,
	}
	m.events++
	for _, h := range m.scene.handlers.click {
		h.fn(ctx)
	}
	if obj.OnClick != nil {
		obj.OnClick(ctx)
	}
	m.emit(EventClick, obj, ctx.PointerID, d.button, d.position, d.currentRaycast, nil, d.clickCount)
}

func (m *InputModule) fireDrag(event EventType, p Pointer, d *buttonEventData, obj *Object) {
	ctx := DragContext{
		Object:        obj,
		Pointer:       p,
		PointerID:     p.ID() + int(d.button),
		Button:        d.button,
		Position:      d.position,
		PressPosition: d.pressPosition,
		Delta:         d.delta,
		Hit:           d.currentRaycast,
	}
	if obj != nil {
		ctx.EntityID = obj.EntityID
		ctx.UserData = obj.UserData
	}
	m.events++

	var handlers []dragHandler
	var cb func(DragContext)
	switch event {
	case EventDragStart:
		handlers = m.scene.handlers.dragStart
		if obj != nil {
			cb = obj.OnDragStart
		}
	case EventDrag:
		handlers = m.scene.handlers.drag
		if obj != nil {
			cb = obj.OnDrag
		}
	case EventDragEnd:
		handlers = m.scene.handlers.dragEnd
		if obj != nil {
			cb = obj.OnDragEnd
		}
	case EventDrop:
		handlers = m.scene.handlers.drop
		if obj != nil {
			cb = obj.OnDrop
		}
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
	if cb != nil {
		cb(ctx)
	}
	m.emit(event, obj, ctx.PointerID, d.button, d.position, d.currentRaycast, d, 0)
}

func (m *InputModule) fireButton(event EventType, ctx ButtonContext) {
	m.events++
	handlers := m.scene.handlers.buttonPressed
	if event == EventButtonReleased {
		handlers = m.scene.handlers.buttonReleased
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
	// Raw button edges have no target; always emit to the EntityStore.
	if m.scene.store != nil {
		m.scene.store.EmitEvent(InteractionEvent{
			Type:      event,
			PointerID: ctx.PointerID,
			Button:    ctx.Button,
		})
	}
}

// --- ECS bridge ---

func (m *InputModule) emit(event EventType, obj *Object, pointerID int, button Button,
	pos Vec2, hit RaycastHit, d *buttonEventData, clickCount int) {
	store := m.scene.store
	if store == nil || obj == nil || obj.EntityID == 0 {
		return
	}
	e := InteractionEvent{
		Type:       event,
		EntityID:   obj.EntityID,
		PointerID:  pointerID,
		Button:     button,
		ScreenX:    pos.X,
		ScreenY:    pos.Y,
		ClickCount: clickCount,
	}
	if hit.Target != nil {
		e.WorldPosition = hit.WorldPosition
		e.Distance = hit.Distance
	}
	if d != nil {
		e.StartX, e.StartY = d.pressPosition.X, d.pressPosition.Y
		e.DeltaX, e.DeltaY = d.delta.X, d.delta.Y
	}
	store.EmitEvent(e)
}
