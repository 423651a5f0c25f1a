package operator

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		lookup     func() (string, error)
		want       string
	}{
		{
			name:       "configured wins",
			configured: "leitstelle",
			lookup:     func() (string, error) { return "alice", nil },
			want:       "leitstelle@host1",
		},
		{
			name:   "os user",
			lookup: func() (string, error) { return "alice", nil },
			want:   "alice@host1",
		},
		{
			name:   "fallback",
			lookup: func() (string, error) { return "", errors.New("no user") },
			want:   "console@host1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolve(tt.configured, "host1", tt.lookup)
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got.String(), tt.want)
			}
		})
	}
}
