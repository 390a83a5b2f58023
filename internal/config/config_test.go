package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "qotd.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaultsForMissingFields(t *testing.T) {
	path := writeConfig(t, `
[quotes]
directories = ["/srv/quotes"]
`)

	cfg, applied, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Server.Host", cfg.Server.Host, "0.0.0.0"},
		{"Server.TCPPort", cfg.Server.TCPPort, 17},
		{"Server.UDPPort", cfg.Server.UDPPort, 17},
		{"Quotes.Mode", cfg.Quotes.Mode, ModeRandom},
		{"Polling.IntervalSeconds", cfg.Polling.IntervalSeconds, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if len(applied) != 5 {
		t.Errorf("applied defaults = %d, want 5 (got %+v)", len(applied), applied)
	}
}

func TestLoadHonorsExplicitValues(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
tcp_port = 1717
udp_port = 1718

[quotes]
directories = ["/srv/quotes", "/srv/more"]
mode = "sequential"

[polling]
interval_seconds = 5
`)

	cfg, applied, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("applied = %+v, want none", applied)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Server.Host", cfg.Server.Host, "127.0.0.1"},
		{"Server.TCPPort", cfg.Server.TCPPort, 1717},
		{"Server.UDPPort", cfg.Server.UDPPort, 1718},
		{"Quotes.Mode", cfg.Quotes.Mode, "sequential"},
		{"Polling.IntervalSeconds", cfg.Polling.IntervalSeconds, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
	if len(cfg.Quotes.Directories) != 2 {
		t.Errorf("Directories = %v, want 2 entries", cfg.Quotes.Directories)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: Config{
				Server:  Server{Host: "0.0.0.0", TCPPort: 17, UDPPort: 17},
				Quotes:  Quotes{Directories: []string{"/a"}, Mode: ModeRandom},
				Polling: Polling{IntervalSeconds: 60},
			},
			wantErr: false,
		},
		{
			name: "no directories",
			cfg: Config{
				Server:  Server{TCPPort: 17, UDPPort: 17},
				Quotes:  Quotes{Mode: ModeRandom},
				Polling: Polling{IntervalSeconds: 60},
			},
			wantErr: true,
		},
		{
			name: "unknown mode",
			cfg: Config{
				Server:  Server{TCPPort: 17, UDPPort: 17},
				Quotes:  Quotes{Directories: []string{"/a"}, Mode: "nonsense"},
				Polling: Polling{IntervalSeconds: 60},
			},
			wantErr: true,
		},
		{
			name: "tcp port out of range",
			cfg: Config{
				Server:  Server{TCPPort: 0, UDPPort: 17},
				Quotes:  Quotes{Directories: []string{"/a"}, Mode: ModeRandom},
				Polling: Polling{IntervalSeconds: 60},
			},
			wantErr: true,
		},
		{
			name: "udp port out of range",
			cfg: Config{
				Server:  Server{TCPPort: 17, UDPPort: 70000},
				Quotes:  Quotes{Directories: []string{"/a"}, Mode: ModeRandom},
				Polling: Polling{IntervalSeconds: 60},
			},
			wantErr: true,
		},
		{
			name: "interval below one",
			cfg: Config{
				Server:  Server{TCPPort: 17, UDPPort: 17},
				Quotes:  Quotes{Directories: []string{"/a"}, Mode: ModeRandom},
				Polling: Polling{IntervalSeconds: 0},
			},
			wantErr: true,
		},
		{
			name: "empty mode defaults to random and passes",
			cfg: Config{
				Server:  Server{TCPPort: 17, UDPPort: 17},
				Quotes:  Quotes{Directories: []string{"/a"}, Mode: ""},
				Polling: Polling{IntervalSeconds: 60},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
