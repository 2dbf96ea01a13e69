package storage

import (
	"net/url"
	"path/filepath"
	"strings"

	"agoranet.io/agora/lib/errors"
)

type Config struct {
	Scheme string
	Path   string
}

// NewConfigFromString parses a storage endpoint like
// `file:///var/lib/agora/db` or `memory://`.
func NewConfigFromString(s string) (config *Config, err error) {
	var parsed *url.URL
	if parsed, err = url.Parse(s); err != nil {
		return
	}

	switch parsed.Scheme {
	case "file":
		path := filepath.Join(parsed.Host, parsed.Path)
		if len(strings.TrimSpace(path)) < 1 {
			err = errors.StorageCoreError.Clone().SetData("error", "empty path")
			return
		}
		config = &Config{Scheme: "file", Path: path}
	case "memory":
		config = &Config{Scheme: "memory"}
	default:
		err = errors.StorageCoreError.Clone().SetData("error", "unsupported scheme")
	}

	return
}

func (c *Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}
	return "file://" + c.Path
}
