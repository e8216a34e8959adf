//go:build !linux

package transport

import "syscall"

// Non-Linux platforms rely on the runtime's default keepalive handling.
func controlSocket(network, address string, c syscall.RawConn) error {
	return nil
}
