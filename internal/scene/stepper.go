package scene

// StepOnScroll moves a selector index one step for a wheel event. A positive
// deltaY (wheel up) steps back, a negative one steps forward, and the result
// stays within [0, length-1]. A zero delta or an empty collection leaves
// current as is.
func StepOnScroll(current, length int, deltaY float64) int {
	if length <= 0 || deltaY == 0 {
		return current
	}
	switch {
	case deltaY > 0:
		if current > 0 {
			current--
		}
	case deltaY < 0:
		if current < length-1 {
			current++
		}
	}
	if current >= length {
		current = length - 1
	}
	if current < 0 {
		current = 0
	}
	return current
}
