package splitpane

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSize(t *testing.T) {
	tests := []struct {
		name string
		in   ResizeInput
		want ResizeResult
	}{
		{
			name: "drag first pane smaller",
			in:   ResizeInput{Current: 250, Anchor: 300, PaneExtent: 300, PrimaryFirst: true, MinSize: 50},
			want: ResizeResult{Size: 250},
		},
		{
			name: "drag first pane larger without ceiling",
			in:   ResizeInput{Current: 400, Anchor: 250, PaneExtent: 300, PrimaryFirst: true, MinSize: 50},
			want: ResizeResult{Size: 450},
		},
		{
			name: "second pane grows when pointer moves toward start",
			in:   ResizeInput{Current: 180, Anchor: 200, PaneExtent: 100, PrimaryFirst: false, MinSize: 10},
			want: ResizeResult{Size: 80},
		},
		{
			name: "floor clamps",
			in:   ResizeInput{Current: 120, Anchor: 200, PaneExtent: 100, PrimaryFirst: true, MinSize: 50},
			want: ResizeResult{Size: 50, Clamped: true},
		},
		{
			name: "absolute ceiling clamps",
			in:   ResizeInput{Current: 300, Anchor: 200, PaneExtent: 100, PrimaryFirst: true, MinSize: 10, MaxSize: IntPtr(150)},
			want: ResizeResult{Size: 150, Clamped: true},
		},
		{
			name: "container-relative ceiling clamps",
			in: ResizeInput{Current: 380, Anchor: 300, PaneExtent: 300, ContainerExtent: 400,
				PrimaryFirst: true, MinSize: 50, MaxSize: IntPtr(-50)},
			want: ResizeResult{Size: 350, Clamped: true},
		},
		{
			name: "zero max means full container",
			in: ResizeInput{Current: 390, Anchor: 300, PaneExtent: 300, ContainerExtent: 400,
				PrimaryFirst: true, MinSize: 50, MaxSize: IntPtr(0)},
			want: ResizeResult{Size: 390},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeSize(tt.in))
		})
	}
}

func TestComputeSizeIsIdempotent(t *testing.T) {
	in := ResizeInput{Current: 260, Anchor: 300, PaneExtent: 300, PrimaryFirst: true, MinSize: 50}
	assert.Equal(t, ComputeSize(in), ComputeSize(in))
}

func TestComputeSizeStaysWithinBounds(t *testing.T) {
	ceiling := IntPtr(-40)
	for current := -500; current <= 900; current += 7 {
		res := ComputeSize(ResizeInput{
			Current: current, Anchor: 200, PaneExtent: 200, ContainerExtent: 400,
			PrimaryFirst: current%2 == 0, MinSize: 50, MaxSize: ceiling,
		})
		assert.GreaterOrEqual(t, res.Size, 50)
		assert.LessOrEqual(t, res.Size, 360)
	}
}

func TestEffectiveMaxSize(t *testing.T) {
	_, ok := EffectiveMaxSize(nil, 400)
	assert.False(t, ok)

	v, ok := EffectiveMaxSize(IntPtr(-50), 400)
	assert.True(t, ok)
	assert.Equal(t, 350, v)

	v, _ = EffectiveMaxSize(IntPtr(120), 400)
	assert.Equal(t, 120, v)
}

func TestResolveSizePrecedence(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, Cells(50), ResolveSize(cfg, Size{}))

	cfg.DefaultSize = Percent(40)
	assert.Equal(t, Percent(40), ResolveSize(cfg, Size{}))
	assert.Equal(t, Cells(90), ResolveSize(cfg, Cells(90)))

	cfg.Size = Cells(120)
	assert.Equal(t, Cells(120), ResolveSize(cfg, Cells(90)))
}

func TestParseSize(t *testing.T) {
	s, err := ParseSize("40%")
	assert.NoError(t, err)
	assert.Equal(t, 40, s.Resolve(100))
	assert.True(t, s.IsRelative())

	s, err = ParseSize("30px")
	assert.NoError(t, err)
	assert.Equal(t, 30, s.Resolve(100))

	s, err = ParseSize("")
	assert.NoError(t, err)
	assert.False(t, s.IsSet())
	assert.Equal(t, 100, s.Resolve(100))

	_, err = ParseSize("wide")
	assert.Error(t, err)
	_, err = ParseSize("-3")
	assert.Error(t, err)
}
