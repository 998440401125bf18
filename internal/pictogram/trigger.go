package pictogram

// Trigger thresholds in volts.
const (
	triggerLow  = 0.0
	triggerHigh = 1.0
)

// SchmittTrigger turns a sampled voltage into rising-edge events. It fires
// once when the input climbs to triggerHigh and re-arms only after the input
// falls back to triggerLow, so noise around a single threshold cannot
// produce double triggers.
type SchmittTrigger struct {
	high bool
}

// Process feeds one sample and reports whether it is a rising edge.
func (t *SchmittTrigger) Process(in float64) bool {
	if t.high {
		if in <= triggerLow {
			t.high = false
		}
		return false
	}
	if in >= triggerHigh {
		t.high = true
		return true
	}
	return false
}

// Reset re-arms the trigger.
func (t *SchmittTrigger) Reset() {
	t.high = false
}
