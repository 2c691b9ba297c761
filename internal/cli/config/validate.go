package config

import (
	"fmt"
	"strings"
)

var validOutputs = map[string]bool{
	"":         true,
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks configuration invariants that do not depend on which
// command runs. Command-specific requirements (a token for fetch, a cache
// for analysis) are checked at the point of use.
func (c *Config) Validate() error {
	if !validOutputs[strings.ToLower(c.OutputFormat)] {
		return fmt.Errorf("invalid output format %q (want auto, text, markdown, or json)", c.OutputFormat)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.KeepSnaps < 1 {
		return fmt.Errorf("keep_snapshots must be at least 1, got %d", c.KeepSnaps)
	}
	if c.APIURL != "" && !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api_url must start with http:// or https://, got %q", c.APIURL)
	}
	return nil
}
