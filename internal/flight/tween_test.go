package flight

import (
	"testing"
	"time"

	"github.com/Faultbox/starflight/pkg/math"
)

func TestTweenVec3(t *testing.T) {
	start := math.Vec3{X: 0}
	end := math.Vec3{X: 10}

	if got := TweenVec3(start, end, 0, time.Second); got != start {
		t.Errorf("tween at t=0 = %+v, want start", got)
	}
	if got := TweenVec3(start, end, 500*time.Millisecond, time.Second); got.X != 5 {
		t.Errorf("tween midpoint X = %v, want 5", got.X)
	}
	if got := TweenVec3(start, end, 2*time.Second, time.Second); got != end {
		t.Errorf("tween past duration = %+v, want end", got)
	}
	if got := TweenVec3(start, end, time.Second, 0); got != end {
		t.Errorf("zero duration = %+v, want end", got)
	}
	if got := TweenVec3(start, end, -time.Second, time.Second); got != start {
		t.Errorf("negative elapsed = %+v, want start", got)
	}
}
