// Package discovery advertises the status server on the local network over mDNS.
package discovery

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the DNS-SD service type browsers look for.
	ServiceType = "_rhythmia._tcp"

	// Domain is the mDNS domain.
	Domain = "local."
)

type server interface {
	Shutdown()
}

type registerFunc func(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (server, error)

func zeroconfRegister(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (server, error) {
	s, err := zeroconf.Register(instance, service, domain, port, txt, ifaces)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Service advertises one instance of the daemon.
type Service struct {
	instance string
	port     int
	txt      []string
	register registerFunc

	mu     sync.Mutex
	server server
}

// New creates a Service for the given port. An empty instance name becomes
// "<hostname>-rhythmia". txt records are published as given.
func New(instance string, port int, txt ...string) *Service {
	if instance == "" {
		host, _ := os.Hostname()
		if host == "" {
			host = "unknown"
		}
		instance = host + "-rhythmia"
	}
	return &Service{
		instance: instance,
		port:     port,
		txt:      txt,
		register: zeroconfRegister,
	}
}

// Start registers the service on all interfaces. Calling Start on a running
// service is a no-op.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return nil
	}
	srv, err := s.register(s.instance, ServiceType, Domain, s.port, s.txt, nil)
	if err != nil {
		return fmt.Errorf("register %s.%s: %w", s.instance, ServiceType, err)
	}
	s.server = srv
	log.Printf("mdns: advertising %s.%s%s on port %d", s.instance, ServiceType, Domain, s.port)
	return nil
}

// Stop withdraws the advertisement.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return
	}
	s.server.Shutdown()
	s.server = nil
	log.Printf("mdns: stopped")
}

// Running reports whether the service is advertised.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server != nil
}

// Instance returns the advertised instance name.
func (s *Service) Instance() string {
	return s.instance
}

// PortFromAddr extracts the TCP port from a listen address such as ":80" or
// "0.0.0.0:8080".
func PortFromAddr(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("parse address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid port in %q", addr)
	}
	return port, nil
}
