//go:build !debug
// +build !debug

package voromesh

func DebugLog(format string, args ...interface{}) {}
