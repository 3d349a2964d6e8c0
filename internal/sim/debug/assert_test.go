//go:build !release

package debug

import "testing"

func TestAssertf(t *testing.T) {
	Assertf(true, "never")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		if r != "bad value 7" {
			t.Fatalf("panic message=%v", r)
		}
	}()
	Assertf(false, "bad value %d", 7)
}
