package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvURL   = "PIPELINE_STATUS_URL"
	EnvToken = "PIPELINE_STATUS_TOKEN"

	DefaultURL = "https://gitlab.com"
)

type Server struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token,omitempty"`
	Active bool   `yaml:"active"`
}

// Duration reads and writes "10s" style values; yaml.v3 has no native
// time.Duration support.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

type Defaults struct {
	LimitPipelines int      `yaml:"limit_pipelines"`
	SearchDepth    int      `yaml:"search_depth"`
	Concurrency    int      `yaml:"concurrency"`
	Timeout        Duration `yaml:"timeout"`
}

type Config struct {
	Servers  map[string]Server `yaml:"servers"`
	Defaults Defaults          `yaml:"defaults"`
}

func DefaultPath() string {
	return expandHome("~/.config/pipeline-status/config.yaml")
}

// Load reads the config file if it exists and applies env defaults.
// A missing file is fine: the env pair or the gitlab.com fallback can
// still carry a run, and the server subcommands create the file.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	c := Config{Servers: map[string]Server{}}
	c.Defaults.LimitPipelines = 1
	c.Defaults.SearchDepth = 50
	c.Defaults.Concurrency = 4
	c.Defaults.Timeout = Duration(10 * time.Second)

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return c, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return c, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if c.Servers == nil {
		c.Servers = map[string]Server{}
	}
	if c.Defaults.LimitPipelines <= 0 {
		c.Defaults.LimitPipelines = 1
	}
	if c.Defaults.SearchDepth <= 0 {
		c.Defaults.SearchDepth = 50
	}
	if c.Defaults.Concurrency <= 0 {
		c.Defaults.Concurrency = 4
	}
	if c.Defaults.Timeout <= 0 {
		c.Defaults.Timeout = Duration(10 * time.Second)
	}

	return c, nil
}

// ActiveServer picks the active entry (first in alias order when
// several are flagged), then lets the env pair override its fields.
func (c Config) ActiveServer() Server {
	var s Server
	for _, alias := range c.Aliases() {
		if c.Servers[alias].Active {
			s = c.Servers[alias]
			break
		}
	}

	if v := os.Getenv(EnvURL); v != "" {
		s.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		s.Token = v
	}
	if s.URL == "" {
		s.URL = DefaultURL
	}
	return s
}

func (c Config) Aliases() []string {
	out := make([]string, 0, len(c.Servers))
	for alias := range c.Servers {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// AddServer inserts or updates an entry and makes it the active one.
// Returns true when alias already existed.
func (c *Config) AddServer(alias, url, token string) bool {
	_, existed := c.Servers[alias]
	c.Servers[alias] = Server{URL: url, Token: token}
	c.activate(alias)
	return existed
}

func (c *Config) SwitchServer(alias string) error {
	if _, ok := c.Servers[alias]; !ok {
		return fmt.Errorf("server %q is unknown", alias)
	}
	c.activate(alias)
	return nil
}

// RemoveServer deletes an entry. If the active server was removed and
// others remain, the first remaining alias becomes active; its name is
// returned so callers can report it.
func (c *Config) RemoveServer(alias string) (string, error) {
	if _, ok := c.Servers[alias]; !ok {
		return "", fmt.Errorf("server %q is unknown", alias)
	}
	delete(c.Servers, alias)

	for _, srv := range c.Servers {
		if srv.Active {
			return "", nil
		}
	}
	if rest := c.Aliases(); len(rest) > 0 {
		c.activate(rest[0])
		return rest[0], nil
	}
	return "", nil
}

func (c *Config) activate(alias string) {
	for name, srv := range c.Servers {
		srv.Active = name == alias
		c.Servers[name] = srv
	}
}

// Save writes the config atomically under an exclusive lock, so two
// invocations racing on add/switch cannot shred the file.
func Save(path string, c Config) error {
	if path == "" {
		return errors.New("empty config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lf, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = lf.Close() }()

	if runtime.GOOS != "windows" {
		if err := syscall.Flock(int(lf.Fd()), syscall.LOCK_EX); err != nil {
			return err
		}
		defer func() { _ = syscall.Flock(int(lf.Fd()), syscall.LOCK_UN) }()
	}

	b, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(b); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if h, _ := os.UserHomeDir(); h != "" {
			return h + p[1:]
		}
	}
	return p
}
