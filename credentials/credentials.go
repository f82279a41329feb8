// Package credentials resolves controller credentials from a
// prioritized set of sources: explicit caller-supplied values,
// environment variables, and an encrypted Ansible Vault file.
package credentials

import (
	"os"
	"strings"

	nd "github.com/ndfabric/go-nd"
)

// Environment variables consulted by Resolve, in the conventional
// controller naming.
const (
	EnvHost           = "ND_IP4"
	EnvUsername       = "ND_USERNAME"
	EnvPassword       = "ND_PASSWORD"
	EnvDomain         = "ND_DOMAIN"
	EnvSwitchUsername = "NXOS_USERNAME"
	EnvSwitchPassword = "NXOS_PASSWORD"
)

// Vault keys corresponding to the environment variables above.
const (
	vaultHost           = "nd_ip4"
	vaultUsername       = "nd_username"
	vaultPassword       = "nd_password"
	vaultDomain         = "nd_domain"
	vaultSwitchUsername = "nxos_username"
	vaultSwitchPassword = "nxos_password"
)

// Explicit holds credential values supplied directly by the caller
// (command-line arguments, API parameters). Explicit values take
// precedence over every other source; empty fields fall through.
type Explicit struct {
	Host           string
	Username       string
	Password       string
	Domain         string
	SwitchUsername string
	SwitchPassword string
}

// Credentials is the resolved, immutable credential set. Host,
// Username, and Password are always non-empty; the rest are optional.
type Credentials struct {
	// Host is the controller address (ND_IP4).
	Host string

	// Username and Password authenticate against the controller.
	Username string
	Password string

	// Domain is the optional login domain.
	Domain string

	// SwitchUsername and SwitchPassword are the optional NX-OS switch
	// credentials used by switch-credential operations.
	SwitchUsername string
	SwitchPassword string
}

// Option configures Resolve.
type Option func(*resolver)

// WithVault adds an encrypted Ansible Vault file as the lowest-priority
// credential source. The passphrase is supplied out-of-band by the
// caller; a decryption or parse failure fails resolution rather than
// being silently ignored.
func WithVault(path, passphrase string) Option {
	return func(r *resolver) {
		r.vaultPath = path
		r.vaultPassphrase = passphrase
	}
}

type resolver struct {
	explicit        Explicit
	vaultPath       string
	vaultPassphrase string
	vault           map[string]string
}

// Resolve determines the effective credentials, checking explicit
// values, then the environment, then the vault (when configured) for
// each field and taking the first non-empty value. It fails with
// *nd.CredentialError when any of host, username, or password remains
// empty after all sources, or when the vault cannot be read.
func Resolve(explicit Explicit, opts ...Option) (*Credentials, error) {
	r := &resolver{explicit: explicit}
	for _, opt := range opts {
		opt(r)
	}

	if r.vaultPath != "" {
		vault, err := loadVault(r.vaultPath, r.vaultPassphrase)
		if err != nil {
			return nil, &nd.CredentialError{Err: err}
		}
		r.vault = vault
	}

	creds := &Credentials{
		Host:           r.first(explicit.Host, EnvHost, vaultHost),
		Username:       r.first(explicit.Username, EnvUsername, vaultUsername),
		Password:       r.first(explicit.Password, EnvPassword, vaultPassword),
		Domain:         r.first(explicit.Domain, EnvDomain, vaultDomain),
		SwitchUsername: r.first(explicit.SwitchUsername, EnvSwitchUsername, vaultSwitchUsername),
		SwitchPassword: r.first(explicit.SwitchPassword, EnvSwitchPassword, vaultSwitchPassword),
	}

	var missing []string
	if creds.Host == "" {
		missing = append(missing, "host")
	}
	if creds.Username == "" {
		missing = append(missing, "username")
	}
	if creds.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &nd.CredentialError{Missing: missing}
	}

	return creds, nil
}

// first returns the highest-priority non-empty value for one field.
func (r *resolver) first(explicit, envKey, vaultKey string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return r.vault[vaultKey]
}

// ClientConfig returns an nd.ClientConfig populated from the resolved
// credentials, ready to pass to nd.NewWithConfig. A bare host is given
// an https scheme.
func (c *Credentials) ClientConfig() *nd.ClientConfig {
	url := c.Host
	if !strings.Contains(url, "://") {
		url = "https://" + url
	}
	return &nd.ClientConfig{
		ControllerURL: url,
		Username:      c.Username,
		Password:      c.Password,
		Domain:        c.Domain,
	}
}
