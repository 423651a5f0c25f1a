// Package operator resolves who is working the console. The name is stamped
// on every journal entry.
package operator

import (
	"fmt"
	"os"
	"os/user"
	"strings"
)

// Fallback is used when no operator name can be found.
const Fallback = "console"

// Identity is the operator of this console.
type Identity struct {
	Name string
	Host string
}

// String renders the identity as name@host, or just the name without a host.
func (i Identity) String() string {
	if i.Host == "" {
		return i.Name
	}
	return fmt.Sprintf("%s@%s", i.Name, i.Host)
}

// Resolve determines the current operator. A configured name wins, then the
// login name of the OS user, then Fallback.
func Resolve(configured string) Identity {
	host, _ := os.Hostname()
	return resolve(configured, host, currentUser)
}

func resolve(configured, host string, lookup func() (string, error)) Identity {
	name := strings.TrimSpace(configured)
	if name == "" {
		if u, err := lookup(); err == nil {
			name = strings.TrimSpace(u)
		}
	}
	if name == "" {
		name = Fallback
	}
	return Identity{Name: name, Host: host}
}

func currentUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}
