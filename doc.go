// Package xrinput turns tracked 6-DoF pointer input into pointer events for
// an interactive 3D scene.
//
// A tracked stylus (or the desktop mouse cast through an event camera) casts
// a ray into the scene every frame. The input module resolves the ray against
// colliders and world-space UI surfaces, and derives press, release, click
// and drag events that behave like mouse input from the application's point
// of view.
//
// # Quick start
//
//	scene := xrinput.NewScene()
//	cam := xrinput.NewCamera(xrinput.PoseIdentity, xrinput.Rect{Width: 1920, Height: 1080})
//
//	stylus, err := xrinput.NewStylus(pen, cam) // pen is a tracker.PenTracker
//	if err != nil {
//		return err
//	}
//	scene.AddPointer(stylus)
//
//	box := xrinput.NewObject("box", pose, xrinput.BoxCollider{Size: xrinput.Vec3{X: 0.1, Y: 0.1, Z: 0.1}})
//	box.Draggable = true
//	box.OnClick = func(ctx xrinput.ClickContext) { ... }
//	scene.Add(box)
//
//	// once per frame
//	scene.Update(time.Now())
//
// # Pointers
//
// Every pointer reserves three consecutive IDs, one per button, and is
// registered in the scene's [Registry]. The set of pointer kinds is closed:
// [Stylus], [MousePointer] and [ScriptedPointer]. A pointer without an event
// camera is skipped for the frame.
//
// The stylus maps its [Stylus.PrimaryKey] (the middle button by default) to
// the primary event stream, so the pen's main button behaves like the left
// mouse button.
//
// # Events
//
// Register scene-level handlers with [Scene.OnPointerDown], [Scene.OnClick],
// [Scene.OnDragStart] and friends, or set the per-object callbacks on
// [Object]. Each handler returns a [CallbackHandle] that can be removed.
// Enter and exit notifications for a frame's raycast are delivered at the
// start of the next frame.
//
// A press becomes a drag once the pointer moves more than
// [InputModule.DragThreshold] pixels; dragged presses never click. Presses on
// the same target within [InputModule.ClickInterval] increment
// [ClickContext.ClickCount].
//
// Objects with Draggable set follow the pointer endpoint rigidly while the
// primary stream drags them (see [DragSession]). While dragging, the ray is
// held at the distance captured at press time so the endpoint never jumps.
//
// # ECS integration
//
// Set an [EntityStore] with [Scene.SetEntityStore] to receive every
// interaction as an [InteractionEvent]. The xrinput/ecs package provides a
// [Donburi] adapter.
//
// [Donburi]: https://github.com/yohamta/donburi
package xrinput
