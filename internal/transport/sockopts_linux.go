//go:build linux

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Keepalive probing keeps long-lived pooled connections from being
// silently dropped by intermediaries: first probe after 120s idle, then
// every 10s, giving up after 3 unanswered probes.
const (
	keepAliveIdleSecs     = 120
	keepAliveIntervalSecs = 10
	keepAliveProbeCount   = 3
)

func controlSocket(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
		if sockErr != nil {
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, keepAliveIdleSecs)
		if sockErr != nil {
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPINTVL, keepAliveIntervalSecs)
		if sockErr != nil {
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPCNT, keepAliveProbeCount)
	})
	if err != nil {
		return err
	}
	return sockErr
}
