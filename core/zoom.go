package core

// ZoomDirection is either ZoomIn (towards finer scales) or ZoomOut (towards
// coarser ones).
type ZoomDirection int

const (
	ZoomIn  ZoomDirection = -1
	ZoomOut ZoomDirection = 1
)

func (d ZoomDirection) String() string {
	if d == ZoomIn {
		return "in"
	}

	return "out"
}

// NextScaleStep returns the scale and step factor after zooming from cur in
// the given direction, and whether that is an actual transition. Zooming is
// rejected (cur is returned with false) when the resulting scale is outside
// of [minScale, maxScale], or when there is nowhere to zoom: hours with the
// step factor 1 can't be zoomed in, and months can't be zoomed out.
func NextScaleStep(cur ScaleStep, dir ZoomDirection, minScale, maxScale Scale) (ScaleStep, bool) {
	zoomIn := dir == ZoomIn

	var next ScaleStep

	switch cur.Scale {
	case ScaleHours:
		step := cur.hourStep() + int(dir)*zoomStepDelta
		if step <= 1 {
			step = 1
		} else if step == 1+zoomStepDelta {
			// Going out from 1 makes 3, not 4, so that the steps are 1, 3, 6, 9, 12.
			step = zoomStepDelta
		}

		if step > maxHoursStep {
			next = NewScaleStep(ScaleDays)
		} else {
			next = ScaleStep{Scale: ScaleHours, Step: step}
		}

	case ScaleDays:
		if zoomIn {
			next = ScaleStep{Scale: ScaleHours, Step: maxHoursStep}
		} else {
			next = NewScaleStep(ScaleWeeks)
		}

	case ScaleWeeks:
		if zoomIn {
			next = NewScaleStep(ScaleDays)
		} else {
			next = NewScaleStep(ScaleMonths)
		}

	case ScaleMonths:
		if zoomIn {
			next = NewScaleStep(ScaleWeeks)
		} else {
			next = cur
		}

	default:
		return cur, false
	}

	if next.Scale < minScale || next.Scale > maxScale {
		return cur, false
	}

	if next == cur {
		return cur, false
	}

	return next, true
}

// RemapOffset keeps the relative horizontal scroll position when the content
// width changes from oldWidth to newWidth. Offsets are non-positive (content
// scrolls to the left), so the result is clamped to be at most 0.
func RemapOffset(oldOffset, oldWidth, newWidth int) int {
	if oldWidth <= 0 {
		return 0
	}

	newOffset := int(int64(oldOffset) * int64(newWidth) / int64(oldWidth))
	if newOffset > 0 {
		newOffset = 0
	}

	return newOffset
}

// ClampOffset clamps the offset to [-maxScroll, 0].
func ClampOffset(offset, maxScroll int) int {
	if offset > 0 {
		return 0
	}

	if maxScroll < 0 {
		maxScroll = 0
	}

	if offset < -maxScroll {
		return -maxScroll
	}

	return offset
}
