package netstack

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
)

var ErrInvalidAddress = errors.New("invalid node address")

// NormalizeAddress reduces "http://host:port/path", "//host:port" or a bare
// "host:port" to "host:port".
func NormalizeAddress(address string) (string, error) {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	if !strings.Contains(addr, "://") && !strings.HasPrefix(addr, "//") {
		addr = "//" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidAddress, address, err)
	}
	if u.Host == "" || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidAddress, address)
	}
	return u.Host, nil
}

// Registry is the set of peers this node resolves against. Peers are only
// ever added.
type Registry struct {
	peers map[string]struct{}
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		peers: make(map[string]struct{}),
	}
}

// Register adds address in normalised form. Registering twice is a no-op.
func (r *Registry) Register(address string) (string, error) {
	peer, err := NormalizeAddress(address)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.peers[peer]; !exists {
		r.peers[peer] = struct{}{}
		log.Infof("Registered peer %s", peer)
	}
	return peer, nil
}

// RegisterAll validates every address before adding any of them.
func (r *Registry) RegisterAll(addresses []string) error {
	for _, address := range addresses {
		if _, err := NormalizeAddress(address); err != nil {
			return err
		}
	}
	for _, address := range addresses {
		if _, err := r.Register(address); err != nil {
			return err
		}
	}
	return nil
}

// Peers returns the registered peers sorted, so resolution visits them in
// a reproducible order.
func (r *Registry) Peers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	peers := make([]string, 0, len(r.peers))
	for p := range r.peers {
		peers = append(peers, p)
	}
	sort.Strings(peers)
	return peers
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}
