package tracker

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/phanxgames/xrinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSample() PoseSample {
	return PoseSample{
		EyeVisible: true,
		Eye: xrinput.Pose{
			Position: xrinput.Vec3{X: 0.25, Y: -0.125, Z: -0.5},
			Rotation: xrinput.Quat{X: 0, Y: 0.5, Z: 0, W: 0.75},
		},
		PenVisible: true,
		Pen: xrinput.Pose{
			Position: xrinput.Vec3{X: 0.0625, Y: 0.5, Z: 0.375},
			Rotation: xrinput.Quat{X: 0.5, Y: 0.5, Z: 0.5, W: 0.5},
		},
		PenButtons:   0b101,
		DataVersion:  1,
		FrameID:      4242,
		ScreenWidth:  0.5,
		ScreenHeight: 0.28125,
	}
}

func TestFrameRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample PoseSample
	}{
		{name: "zero", sample: PoseSample{}},
		{name: "full", sample: testSample()},
		{name: "pen only", sample: PoseSample{
			PenVisible: true,
			Pen:        xrinput.Pose{Rotation: xrinput.Quat{W: 1}},
			PenButtons: 0b010,
			FrameID:    math.MaxUint32,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := EncodeFrame(tt.sample)
			require.Len(t, b, FrameSize)
			got, err := DecodeFrame(b)
			require.NoError(t, err)
			assert.Equal(t, tt.sample, got)
		})
	}
}

func TestFrameLayout(t *testing.T) {
	t.Parallel()

	b := EncodeFrame(testSample())
	le := binary.LittleEndian
	assert.Equal(t, uint32(1), le.Uint32(b[0:]), "eyeVisible")
	assert.Equal(t, float32(0.25), math.Float32frombits(le.Uint32(b[4:])), "eye.x")
	assert.Equal(t, float32(0.75), math.Float32frombits(le.Uint32(b[28:])), "eye.qw")
	assert.Equal(t, uint32(1), le.Uint32(b[32:]), "penVisible")
	assert.Equal(t, float32(0.0625), math.Float32frombits(le.Uint32(b[36:])), "pen.x")
	assert.Equal(t, uint32(0b101), le.Uint32(b[64:]), "penButtons")
	assert.Equal(t, uint32(1), le.Uint32(b[68:]), "dataVersion")
	assert.Equal(t, uint32(4242), le.Uint32(b[72:]), "frameId")
	assert.Equal(t, float32(0.5), math.Float32frombits(le.Uint32(b[76:])), "screenWidth")
	assert.Equal(t, float32(0.28125), math.Float32frombits(le.Uint32(b[80:])), "screenHeight")
}

func TestDecodeFrameRejectsSize(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, FrameSize - 1, FrameSize + 1, 2 * FrameSize} {
		_, err := DecodeFrame(make([]byte, n))
		assert.ErrorIs(t, err, ErrFrameSize, "len %d", n)
	}
}

func TestDecodeFrameMasksButtons(t *testing.T) {
	t.Parallel()

	b := EncodeFrame(PoseSample{})
	binary.LittleEndian.PutUint32(b[64:], 0xFF)
	s, err := DecodeFrame(b)
	require.NoError(t, err)
	assert.Equal(t, uint8(0b111), s.PenButtons)
	assert.True(t, s.Button(0))
	assert.True(t, s.Button(2))
	assert.False(t, s.Button(3))
}

func TestDecodeFrameVisibility(t *testing.T) {
	t.Parallel()

	b := EncodeFrame(PoseSample{})
	binary.LittleEndian.PutUint32(b[0:], 7)
	binary.LittleEndian.PutUint32(b[32:], uint32(0xFFFFFFFF)) // -1
	s, err := DecodeFrame(b)
	require.NoError(t, err)
	assert.True(t, s.EyeVisible)
	assert.False(t, s.PenVisible)
}
