package exec

import "time"

// config holds the configuration for command execution.
// It distinguishes between global settings (set at creation time) and local settings (set per-execution).
type config struct {
	// Global settings (set at creation time)
	globalEnv           map[string]string
	globalDir           string
	globalDisableColors bool
	globalPassthrough   bool
	globalTimeout       time.Duration
	globalMaxBuffer     int
	globalKillSignal    string
	globalShell         string

	// Local settings (set per-execution, override global)
	localEnv           map[string]string
	localDir           string
	localDisableColors *bool
	localPassthrough   *bool
	localTimeout       *time.Duration
	localMaxBuffer     *int
	localKillSignal    string
	localShell         string
}

func newConfig() *config {
	return &config{
		globalEnv: make(map[string]string),
		localEnv:  make(map[string]string),
	}
}

// clone creates a deep copy of the configuration.
func (c *config) clone() *config {
	clone := *c
	clone.globalEnv = copyEnv(c.globalEnv)
	clone.localEnv = copyEnv(c.localEnv)
	clone.localDisableColors = copyPtr(c.localDisableColors)
	clone.localPassthrough = copyPtr(c.localPassthrough)
	clone.localTimeout = copyPtr(c.localTimeout)
	clone.localMaxBuffer = copyPtr(c.localMaxBuffer)
	return &clone
}

// effectiveEnv merges global and local variables. It returns nil when
// nothing is set so the inherited environment is used unchanged.
func (c *config) effectiveEnv() map[string]string {
	env := make(map[string]string)
	for k, v := range c.globalEnv {
		env[k] = v
	}
	for k, v := range c.localEnv {
		env[k] = v
	}

	if c.effectiveDisableColors() {
		env["NO_COLOR"] = "1"
		env["TERM"] = "dumb"
		env["CLICOLOR"] = "0"
		env["CLICOLOR_FORCE"] = "0"
		env["FORCE_COLOR"] = "0"
	}

	if len(env) == 0 {
		return nil
	}
	return env
}

func (c *config) effectiveDir() string {
	if c.localDir != "" {
		return c.localDir
	}
	return c.globalDir
}

func (c *config) effectiveDisableColors() bool {
	if c.localDisableColors != nil {
		return *c.localDisableColors
	}
	return c.globalDisableColors
}

func (c *config) effectivePassthrough() bool {
	if c.localPassthrough != nil {
		return *c.localPassthrough
	}
	return c.globalPassthrough
}

func (c *config) effectiveTimeout() time.Duration {
	if c.localTimeout != nil {
		return *c.localTimeout
	}
	return c.globalTimeout
}

func (c *config) effectiveMaxBuffer() int {
	if c.localMaxBuffer != nil {
		return *c.localMaxBuffer
	}
	return c.globalMaxBuffer
}

func (c *config) effectiveKillSignal() string {
	if c.localKillSignal != "" {
		return c.localKillSignal
	}
	return c.globalKillSignal
}

func (c *config) effectiveShell() string {
	if c.localShell != "" {
		return c.localShell
	}
	return c.globalShell
}

// resetLocal resets all local settings.
// This should be called after each run to ensure local settings don't carry over.
func (c *config) resetLocal() {
	c.localEnv = make(map[string]string)
	c.localDir = ""
	c.localDisableColors = nil
	c.localPassthrough = nil
	c.localTimeout = nil
	c.localMaxBuffer = nil
	c.localKillSignal = ""
	c.localShell = ""
}

func copyEnv(env map[string]string) map[string]string {
	dup := make(map[string]string, len(env))
	for k, v := range env {
		dup[k] = v
	}
	return dup
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
