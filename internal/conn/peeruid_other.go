//go:build !linux && !darwin

package conn

import "net"

// No peer-credential API on this platform; socket directory permissions are
// the only guard.
func peerUIDMatchesCurrentUser(net.Conn) (bool, error) {
	return true, nil
}
