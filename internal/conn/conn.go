// Package conn opens the duplex connection to an already-running scry
// server. There is no retry and no autostart here: server lifecycle belongs
// to whoever runs the server.
package conn

import (
	"fmt"
	"net"
)

var peerUIDMatchesCurrentUserFn = peerUIDMatchesCurrentUser

// Dial connects to the server socket and verifies the peer belongs to the
// current user before handing the connection out.
func Dial(socketPath string) (net.Conn, error) {
	c, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to server at %s: %w", socketPath, err)
	}
	ok, err := peerUIDMatchesCurrentUserFn(c)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("verifying server identity: %w", err)
	}
	if !ok {
		c.Close()
		return nil, fmt.Errorf("refusing socket %s: owned by another user", socketPath)
	}
	return c, nil
}
