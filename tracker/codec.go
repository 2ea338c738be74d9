package tracker

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/phanxgames/xrinput"
)

// FrameSize is the length in bytes of one binary pose report.
const FrameSize = 84

// ErrFrameSize is returned when a pose report does not have FrameSize bytes.
var ErrFrameSize = errors.New("tracker: frame size mismatch")

// PoseSample is one decoded pose report. Positions are in tracking space,
// meters, and are rescaled by the client before publication.
type PoseSample struct {
	EyeVisible bool
	Eye        xrinput.Pose
	PenVisible bool
	Pen        xrinput.Pose
	// PenButtons is a bitmask; bit i is button i.
	PenButtons   uint8
	DataVersion  uint32
	FrameID      uint32
	ScreenWidth  float32
	ScreenHeight float32
}

// Button reports whether pen button i is held.
func (s PoseSample) Button(i int) bool {
	return s.PenButtons&(1<<uint(i)) != 0
}

// DecodeFrame decodes a little-endian pose report.
func DecodeFrame(b []byte) (PoseSample, error) {
	if len(b) != FrameSize {
		return PoseSample{}, fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(b), FrameSize)
	}
	r := frameReader{buf: b}
	var s PoseSample
	s.EyeVisible = r.int32() > 0
	s.Eye = r.pose()
	s.PenVisible = r.int32() > 0
	s.Pen = r.pose()
	s.PenButtons = uint8(r.int32() & 0x7)
	s.DataVersion = uint32(r.int32())
	s.FrameID = uint32(r.int32())
	s.ScreenWidth = r.float32()
	s.ScreenHeight = r.float32()
	return s, nil
}

// EncodeFrame encodes s in the pose report layout.
func EncodeFrame(s PoseSample) []byte {
	return AppendFrame(make([]byte, 0, FrameSize), s)
}

// AppendFrame appends the encoding of s to dst.
func AppendFrame(dst []byte, s PoseSample) []byte {
	dst = appendBool(dst, s.EyeVisible)
	dst = appendPose(dst, s.Eye)
	dst = appendBool(dst, s.PenVisible)
	dst = appendPose(dst, s.Pen)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(s.PenButtons&0x7))
	dst = binary.LittleEndian.AppendUint32(dst, s.DataVersion)
	dst = binary.LittleEndian.AppendUint32(dst, s.FrameID)
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(s.ScreenWidth))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(s.ScreenHeight))
	return dst
}

func appendBool(dst []byte, v bool) []byte {
	var n uint32
	if v {
		n = 1
	}
	return binary.LittleEndian.AppendUint32(dst, n)
}

func appendPose(dst []byte, p xrinput.Pose) []byte {
	for _, f := range [...]float64{
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Rotation.X, p.Rotation.Y, p.Rotation.Z, p.Rotation.W,
	} {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(f)))
	}
	return dst
}

type frameReader struct {
	buf []byte
	off int
}

func (r *frameReader) int32() int32 {
	v := int32(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v
}

func (r *frameReader) float32() float32 {
	v := math.Float32frombits(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v
}

func (r *frameReader) pose() xrinput.Pose {
	var p xrinput.Pose
	p.Position.X = float64(r.float32())
	p.Position.Y = float64(r.float32())
	p.Position.Z = float64(r.float32())
	p.Rotation.X = float64(r.float32())
	p.Rotation.Y = float64(r.float32())
	p.Rotation.Z = float64(r.float32())
	p.Rotation.W = float64(r.float32())
	return p
}
