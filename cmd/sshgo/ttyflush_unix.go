//go:build !windows

package main

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// flushTTYInput discards input queued on the controlling terminal before the
// client takes over, so late terminal replies (OSC/DSR) and keys typed while the
// browser was shutting down are not read by the client as typed characters.
// It never fails; without /dev/tty it does nothing.
func flushTTYInput() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
	if err != nil {
		return
	}
	defer func() { _ = tty.Close() }()

	fd := int(tty.Fd())

	// tcflush(fd, TCIFLUSH) via ioctl(TCFLSH); same request number on Linux and Darwin.
	const tcflsh = 0x540B
	_, _, _ = unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(tcflsh), uintptr(unix.TCIFLUSH))

	// Replies can arrive right after the flush; drain briefly without blocking.
	_ = unix.SetNonblock(fd, true)
	defer func() { _ = unix.SetNonblock(fd, false) }()

	deadline := time.Now().Add(200 * time.Millisecond)
	buf := make([]byte, 512)
	for time.Now().Before(deadline) {
		// EAGAIN (nothing pending) and real errors both end the drain.
		n, _ := unix.Read(fd, buf)
		if n <= 0 {
			break
		}
		deadline = time.Now().Add(75 * time.Millisecond)
	}
}
