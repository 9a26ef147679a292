// Package config loads Grafana instance credentials and connection
// settings. Environment variables, a URL's embedded userinfo/query, and
// a JSON config file are all folded into one ManagerConfig through
// koanf's confmap and env providers.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Credentials holds one instance's login material. Exactly one of
// (Username && Password) or Token is expected to be set, but this isn't
// enforced at load time: a config file is free to carry both and let the
// client decide which one to use.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// HasAny reports whether any credential material was found at all.
func (c Credentials) HasAny() bool {
	return (c.Username != "" && c.Password != "") || c.Token != ""
}

// InstanceConfig is one Grafana endpoint: its base URL, credentials, and
// whether it is the master instance patch results are read from (slaves
// only ever receive writes).
type InstanceConfig struct {
	URL         string      `json:"url"`
	Credentials Credentials `json:"-"`
	Master      bool        `json:"master"`
}

// ManagerConfig is the full set of instances a dashboard/datasource
// manager operates against.
type ManagerConfig struct {
	Instances []InstanceConfig
}

// Master returns the configured master instance, or the first instance if
// none was explicitly marked master (a single-instance config is always
// its own master).
func (m ManagerConfig) Master() (InstanceConfig, bool) {
	for _, inst := range m.Instances {
		if inst.Master {
			return inst, true
		}
	}
	if len(m.Instances) > 0 {
		return m.Instances[0], true
	}
	return InstanceConfig{}, false
}

// Slaves returns every non-master instance. When no instance is marked
// master, the first instance is the implicit master (see Master) and is
// not returned here.
func (m ManagerConfig) Slaves() []InstanceConfig {
	explicit := false
	for _, inst := range m.Instances {
		if inst.Master {
			explicit = true
			break
		}
	}
	var out []InstanceConfig
	for i, inst := range m.Instances {
		if inst.Master || (!explicit && i == 0) {
			continue
		}
		out = append(out, inst)
	}
	return out
}

// EnvCredentials reads GRAFANA_API_USERNAME / GRAFANA_API_PASSWORD /
// GRAFANA_API_TOKEN from the process environment via koanf's env provider.
func EnvCredentials() Credentials {
	k := koanf.New(".")
	_ = k.Load(env.Provider("GRAFANA_API_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GRAFANA_API_"))
	}), nil)

	return Credentials{
		Username: k.String("username"),
		Password: k.String("password"),
		Token:    k.String("token"),
	}
}

// URLCredentials extracts userinfo and an "auth_token" query parameter
// from a Grafana URL.
func URLCredentials(rawURL string) (Credentials, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Credentials{}, fmt.Errorf("config: parse url: %w", err)
	}
	var creds Credentials
	if parsed.User != nil {
		creds.Username = parsed.User.Username()
		creds.Password, _ = parsed.User.Password()
	}
	creds.Token = parsed.Query().Get("auth_token")
	return creds, nil
}

// FromURL builds a single-instance, single-master ManagerConfig for the
// --url CLI flag, trying environment credentials first and falling back
// to credentials embedded in the URL.
func FromURL(rawURL string) (ManagerConfig, error) {
	creds := EnvCredentials()
	if !creds.HasAny() {
		urlCreds, err := URLCredentials(rawURL)
		if err != nil {
			return ManagerConfig{}, err
		}
		creds = urlCreds
	}
	if !creds.HasAny() {
		return ManagerConfig{}, fmt.Errorf("config: no Grafana credentials found in environment or URL")
	}
	return ManagerConfig{Instances: []InstanceConfig{{URL: rawURL, Credentials: creds, Master: true}}}, nil
}

// wireManagerConfig is the JSON shape of a config file / --conf flag
// payload: a list of instances, each carrying its own url/master flag,
// plus credential fields that may be left blank and backfilled from the
// environment (credentials rarely differ from the environment across
// instances in practice).
type wireManagerConfig struct {
	Instances []struct {
		URL      string `json:"url"`
		Master   bool   `json:"master"`
		Username string `json:"username"`
		Password string `json:"password"`
		Token    string `json:"token"`
	} `json:"instances"`
}

// FromJSON parses a raw manager config document (the --conf flag's
// payload or a config file's contents). koanf's confmap provider folds
// each decoded instance into a queryable tree, with environment
// credentials filling only the fields the instance leaves blank, the same
// merge koanf.Load performs for every other provider in this package.
func FromJSON(data []byte) (ManagerConfig, error) {
	var wire wireManagerConfig
	if err := json.Unmarshal(data, &wire); err != nil {
		return ManagerConfig{}, fmt.Errorf("config: decode manager config: %w", err)
	}

	k := koanf.New(".")
	envFallback := EnvCredentials()

	cfg := ManagerConfig{Instances: make([]InstanceConfig, len(wire.Instances))}
	for i, inst := range wire.Instances {
		instMap := map[string]any{
			"url":      inst.URL,
			"master":   inst.Master,
			"username": firstNonEmpty(inst.Username, envFallback.Username),
			"password": firstNonEmpty(inst.Password, envFallback.Password),
			"token":    firstNonEmpty(inst.Token, envFallback.Token),
		}
		if err := k.Load(confmap.Provider(instMap, "."), nil); err != nil {
			return ManagerConfig{}, fmt.Errorf("config: merge instance %d: %w", i, err)
		}
		cfg.Instances[i] = InstanceConfig{
			URL:    k.String("url"),
			Master: k.Bool("master"),
			Credentials: Credentials{
				Username: k.String("username"),
				Password: k.String("password"),
				Token:    k.String("token"),
			},
		}
	}

	if len(cfg.Instances) == 0 {
		return ManagerConfig{}, fmt.Errorf("config: manager config has no instances")
	}
	return cfg, nil
}

// FromFile reads and parses a config file path.
func FromFile(path string) (ManagerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ManagerConfig{}, fmt.Errorf("config: read config file %q: %w", path, err)
	}
	return FromJSON(data)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
