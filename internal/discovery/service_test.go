package discovery

import (
	"errors"
	"net"
	"strings"
	"testing"
)

type fakeServer struct {
	shutdowns int
}

func (f *fakeServer) Shutdown() { f.shutdowns++ }

type registration struct {
	instance, service, domain string
	port                      int
	txt                       []string
}

func fakeRegister(calls *[]registration, srv *fakeServer, err error) registerFunc {
	return func(instance, service, domain string, port int, txt []string, _ []net.Interface) (server, error) {
		*calls = append(*calls, registration{instance, service, domain, port, txt})
		if err != nil {
			return nil, err
		}
		return srv, nil
	}
}

func TestStartStop(t *testing.T) {
	var calls []registration
	srv := &fakeServer{}
	s := New("player", 8080, "version=1", "path=/index.json")
	s.register = fakeRegister(&calls, srv, nil)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("register calls: got %d, want 1", len(calls))
	}
	c := calls[0]
	if c.instance != "player" || c.service != ServiceType || c.domain != Domain || c.port != 8080 {
		t.Errorf("registration: got %+v", c)
	}
	if len(c.txt) != 2 || c.txt[0] != "version=1" {
		t.Errorf("txt: got %v", c.txt)
	}
	if !s.Running() {
		t.Error("expected Running=true")
	}

	s.Stop()
	s.Stop()
	if srv.shutdowns != 1 {
		t.Errorf("shutdowns: got %d, want 1", srv.shutdowns)
	}
	if s.Running() {
		t.Error("expected Running=false after Stop")
	}
}

func TestStartError(t *testing.T) {
	var calls []registration
	s := New("player", 80)
	s.register = fakeRegister(&calls, nil, errors.New("no multicast interface"))

	err := s.Start()
	if err == nil || !strings.Contains(err.Error(), "no multicast interface") {
		t.Fatalf("Start: got %v", err)
	}
	if s.Running() {
		t.Error("expected Running=false after failed Start")
	}
}

func TestDefaultInstanceName(t *testing.T) {
	s := New("", 80)
	if !strings.HasSuffix(s.Instance(), "-rhythmia") {
		t.Errorf("Instance: got %q, want hostname-rhythmia", s.Instance())
	}
}

func TestPortFromAddr(t *testing.T) {
	tests := []struct {
		addr    string
		want    int
		wantErr bool
	}{
		{":80", 80, false},
		{"0.0.0.0:8080", 8080, false},
		{"[::]:9000", 9000, false},
		{"80", 0, true},
		{":http", 0, true},
		{":0", 0, true},
	}

	for _, tt := range tests {
		got, err := PortFromAddr(tt.addr)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("PortFromAddr(%q) = %d, %v; want %d, err=%v", tt.addr, got, err, tt.want, tt.wantErr)
		}
	}
}
