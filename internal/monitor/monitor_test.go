package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	active  bool
	initErr error
	inits   int

	count    int
	countErr error
	names    map[int]string
	bounds   map[int]Rect
}

func (d *fakeDisplay) Active() bool { return d.active }

func (d *fakeDisplay) Init() error {
	d.inits++
	if d.initErr != nil {
		return d.initErr
	}
	d.active = true
	return nil
}

func (d *fakeDisplay) NumDisplays() (int, error) { return d.count, d.countErr }

func (d *fakeDisplay) DisplayName(i int) (string, bool) {
	name, ok := d.names[i]
	return name, ok
}

func (d *fakeDisplay) DisplayBounds(i int) (Rect, error) {
	b, ok := d.bounds[i]
	if !ok {
		return Rect{}, errors.New("no bounds")
	}
	return b, nil
}

func TestGetAll(t *testing.T) {
	d := &fakeDisplay{
		count: 3,
		names: map[int]string{0: "Built-in", 2: ""},
		bounds: map[int]Rect{
			0: {X: 0, Y: 0, W: 1920, H: 1080},
			1: {X: 1920, Y: 0, W: 2560, H: 1440},
		},
	}

	got, err := GetAll(d)
	require.NoError(t, err)
	assert.Equal(t, 1, d.inits, "inactive subsystem is initialized")

	assert.Equal(t, []Info{
		{ID: 0, Name: "Built-in", Bounds: Rect{0, 0, 1920, 1080}, HasBounds: true},
		{ID: 1, Name: "Monitor 1", Bounds: Rect{1920, 0, 2560, 1440}, HasBounds: true},
		{ID: 2, Name: "Monitor 2"},
	}, got)
}

func TestGetAllSkipsInitWhenActive(t *testing.T) {
	d := &fakeDisplay{active: true, count: 1}

	got, err := GetAll(d)
	require.NoError(t, err)
	assert.Zero(t, d.inits)
	assert.Len(t, got, 1)
	assert.False(t, got[0].HasBounds, "bounds marked absent, not zeroed")
}

func TestGetAllFailures(t *testing.T) {
	tests := []struct {
		name string
		d    *fakeDisplay
	}{
		{"init fails", &fakeDisplay{initErr: errors.New("no video")}},
		{"count fails", &fakeDisplay{active: true, countErr: errors.New("query failed")}},
		{"negative count", &fakeDisplay{active: true, count: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetAll(tt.d)
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestGetAllNoDisplays(t *testing.T) {
	got, err := GetAll(&fakeDisplay{active: true, count: 0})
	assert.NoError(t, err)
	assert.Empty(t, got)
}
