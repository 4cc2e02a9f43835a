//go:build !windows

package envstore

// NotifyChanged is a no-op: other platforms pick up PATH changes on the next
// shell start.
func NotifyChanged() {}
