package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextScaleStep(t *testing.T) {
	hours := func(step int) ScaleStep {
		return ScaleStep{Scale: ScaleHours, Step: step}
	}
	days := NewScaleStep(ScaleDays)
	weeks := NewScaleStep(ScaleWeeks)
	months := NewScaleStep(ScaleMonths)

	// Scale bounds, inclusive.
	type bounds struct {
		min, max Scale
	}
	all := bounds{min: ScaleHours, max: ScaleMonths}

	type zoomTestCase struct {
		cur    ScaleStep
		dir    ZoomDirection
		bounds bounds

		want   ScaleStep
		wantOK bool
	}

	testCases := []zoomTestCase{
		{cur: hours(1), dir: ZoomIn, bounds: all, want: hours(1), wantOK: false},
		{cur: hours(1), dir: ZoomOut, bounds: all, want: hours(3), wantOK: true},
		{cur: hours(3), dir: ZoomOut, bounds: all, want: hours(6), wantOK: true},
		{cur: hours(6), dir: ZoomOut, bounds: all, want: hours(9), wantOK: true},
		{cur: hours(9), dir: ZoomOut, bounds: all, want: hours(12), wantOK: true},
		{cur: hours(12), dir: ZoomOut, bounds: all, want: days, wantOK: true},
		{cur: hours(12), dir: ZoomIn, bounds: all, want: hours(9), wantOK: true},
		{cur: hours(3), dir: ZoomIn, bounds: all, want: hours(1), wantOK: true},
		{cur: hours(2), dir: ZoomIn, bounds: all, want: hours(1), wantOK: true},
		{cur: days, dir: ZoomIn, bounds: all, want: hours(12), wantOK: true},
		{cur: days, dir: ZoomOut, bounds: all, want: weeks, wantOK: true},
		{cur: weeks, dir: ZoomIn, bounds: all, want: days, wantOK: true},
		{cur: weeks, dir: ZoomOut, bounds: all, want: months, wantOK: true},
		{cur: months, dir: ZoomIn, bounds: all, want: weeks, wantOK: true},
		{cur: months, dir: ZoomOut, bounds: all, want: months, wantOK: false},

		// Bounds.
		{cur: days, dir: ZoomIn, bounds: bounds{min: ScaleDays, max: ScaleMonths}, want: days, wantOK: false},
		{cur: hours(12), dir: ZoomOut, bounds: bounds{min: ScaleHours, max: ScaleHours}, want: hours(12), wantOK: false},
		{cur: hours(9), dir: ZoomOut, bounds: bounds{min: ScaleHours, max: ScaleHours}, want: hours(12), wantOK: true},
		{cur: weeks, dir: ZoomOut, bounds: bounds{min: ScaleHours, max: ScaleWeeks}, want: weeks, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.cur.String()+" "+tc.dir.String(), func(t *testing.T) {
			got, ok := NextScaleStep(tc.cur, tc.dir, tc.bounds.min, tc.bounds.max)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRemapOffset(t *testing.T) {
	assert.Equal(t, -200, RemapOffset(-100, 1000, 2000))
	assert.Equal(t, -50, RemapOffset(-100, 1000, 500))
	assert.Equal(t, 0, RemapOffset(0, 1000, 500))
	assert.Equal(t, 0, RemapOffset(-100, 0, 500))
	assert.Equal(t, 0, RemapOffset(100, 1000, 500))
}

func TestClampOffset(t *testing.T) {
	assert.Equal(t, 0, ClampOffset(10, 100))
	assert.Equal(t, -100, ClampOffset(-150, 100))
	assert.Equal(t, -50, ClampOffset(-50, 100))
	assert.Equal(t, 0, ClampOffset(-5, -1))
}
