package main

import "time"

// fpsLimiter sleeps out the rest of a frame to hold a target rate.
type fpsLimiter struct {
	next time.Time
}

// wait blocks until the next frame is due. target <= 0 disables limiting.
// It sleeps coarsely and spins for the last stretch, and resyncs after a hitch
// instead of racing to catch up.
func (f *fpsLimiter) wait(target int) {
	if target <= 0 {
		f.next = time.Time{}
		return
	}
	frame := time.Second / time.Duration(target)

	if f.next.IsZero() {
		f.next = time.Now().Add(frame)
	} else {
		f.next = f.next.Add(frame)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	if late := -time.Until(f.next); late > frame {
		f.next = time.Now().Add(frame)
	}
}
