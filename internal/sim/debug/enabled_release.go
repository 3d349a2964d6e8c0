//go:build release

package debug

const Enabled = false
