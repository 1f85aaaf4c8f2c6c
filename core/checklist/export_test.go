package checklist

import "time"

// SetNowFunc replaces the clock until the returned restore func is called.
func SetNowFunc(f func() time.Time) (restore func()) {
	old := nowFunc
	nowFunc = f
	return func() { nowFunc = old }
}
