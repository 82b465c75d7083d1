package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestHostKeyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"", filepath.Join(home, ".arcade", "host_key")},
		{"~/keys/k", filepath.Join(home, "keys", "k")},
		{"/etc/arcade/key", "/etc/arcade/key"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := hostKeyPath(tt.in)
			if err != nil {
				t.Fatalf("hostKeyPath: %v", err)
			}
			if got != tt.want {
				t.Errorf("hostKeyPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSSHServerStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.LogLevel = "error"

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if srv.store == nil {
		t.Fatal("store not opened")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	if srv.store != nil {
		t.Error("store left open after shutdown")
	}
}
