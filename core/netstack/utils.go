package netstack

import (
	"net"
	"strconv"
)

// CheckPortAvailability reports whether host:port can be bound right now.
func CheckPortAvailability(host string, port int) bool {
	listener, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
