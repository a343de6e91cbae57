package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerAccumulates(t *testing.T) {
	var p Profiler
	var reported []string
	p.Report = func(name string, d time.Duration) {
		reported = append(reported, name)
	}

	d1 := p.Measure("first", func() { time.Sleep(2 * time.Millisecond) })
	d2 := p.Measure("second", func() {})

	assert.GreaterOrEqual(t, d1, 2*time.Millisecond)
	assert.Equal(t, d1+d2, p.Total())
	assert.Equal(t, []string{"first", "second"}, reported)
}

func TestMeasureValue(t *testing.T) {
	var p Profiler
	errBoom := errors.New("boom")

	v, err := MeasureValue(&p, "ok", func() (int, error) { return 42, nil })
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = MeasureValue(&p, "fail", func() (string, error) { return "", errBoom })
	assert.ErrorIs(t, err, errBoom)
}

func TestMillis(t *testing.T) {
	assert.InDelta(t, 1.5, Millis(1500*time.Microsecond), 1e-9)
}
