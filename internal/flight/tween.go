package flight

import (
	"time"

	"github.com/Faultbox/starflight/pkg/math"
)

// TweenVec3 returns the position along a start-to-end tween at the given
// elapsed time. Cosmetic consumers (wing folds, cockpit slides) call it
// every tick from the main loop instead of scheduling their own
// callbacks. Elapsed at or past the duration pins to the end value.
func TweenVec3(start, end math.Vec3, elapsed, duration time.Duration) math.Vec3 {
	if duration <= 0 || elapsed >= duration {
		return end
	}
	if elapsed <= 0 {
		return start
	}
	t := float32(elapsed.Seconds() / duration.Seconds())
	return start.Lerp(end, t)
}
