// Package tracker receives pose reports from a stylus and eye tracker and
// sends commands back to it.
//
// A [Client] owns one [Transport], either a [UDP] socket bound to
// [DefaultPort] or a [WebSocket] to a bridge. Each 84-byte report is decoded
// into a [PoseSample], rescaled to the local screen and published to
// subscribers. [PenTracker] and [HeadTracker] are the usual subscribers; a
// PenTracker can drive an xrinput.Stylus directly:
//
//	client, _ := tracker.NewClient(tracker.DefaultConfig())
//	pen := tracker.NewPenTracker(client)
//	_ = client.Start(ctx)
//	stylus, _ := xrinput.NewStylus(pen, cam)
//	scene.AddPointer(stylus)
package tracker
