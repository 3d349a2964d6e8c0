//go:build !release

package debug

const Enabled = true
