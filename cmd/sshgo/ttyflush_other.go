//go:build windows

package main

func flushTTYInput() {}
