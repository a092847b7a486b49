package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/chatmonitor/internal/core"
)

// Script modes.
const (
	ScriptModeType = "type"
	ScriptModeSay  = "say"
)

// Config holds chat room configuration values.
type Config struct {
	Capacity     int           `mapstructure:"capacity" yaml:"capacity"`
	Users        []string      `mapstructure:"users" yaml:"users"`
	Letters      int           `mapstructure:"letters" yaml:"letters"`
	Alphabet     string        `mapstructure:"alphabet" yaml:"alphabet"`
	TypingDelay  time.Duration `mapstructure:"typing_delay" yaml:"typing_delay"`
	ReadInterval time.Duration `mapstructure:"read_interval" yaml:"read_interval"`
	TypingLock   string        `mapstructure:"typing_lock" yaml:"typing_lock"`
	Script       []string      `mapstructure:"script" yaml:"script,omitempty"`
	ScriptMode   string        `mapstructure:"script_mode" yaml:"script_mode"`
	LogLevel     string        `mapstructure:"log_level" yaml:"log_level"`
	Duration     time.Duration `mapstructure:"duration" yaml:"duration"`
}

// Default returns the configuration of the two-person demo room.
func Default() Config {
	return Config{
		Capacity:    core.DefaultCapacity,
		Users:       []string{"Ricky", "Marty"},
		Letters:     6,
		Alphabet:    core.DefaultAlphabet,
		TypingDelay: 300 * time.Millisecond,
		TypingLock:  core.TypingLockHold.String(),
		ScriptMode:  ScriptModeType,
		LogLevel:    "info",
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Capacity != 0 {
		c.Capacity = other.Capacity
	}
	if len(other.Users) > 0 {
		c.Users = append([]string(nil), other.Users...)
	}
	if other.Letters != 0 {
		c.Letters = other.Letters
	}
	if other.Alphabet != "" {
		c.Alphabet = other.Alphabet
	}
	if other.TypingDelay != 0 {
		c.TypingDelay = other.TypingDelay
	}
	if other.ReadInterval != 0 {
		c.ReadInterval = other.ReadInterval
	}
	if other.TypingLock != "" {
		c.TypingLock = other.TypingLock
	}
	if len(other.Script) > 0 {
		c.Script = append([]string(nil), other.Script...)
	}
	if other.ScriptMode != "" {
		c.ScriptMode = other.ScriptMode
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Duration != 0 {
		c.Duration = other.Duration
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be at least 1, got %d", c.Capacity))
	}
	if len(c.Users) == 0 {
		errs = append(errs, errors.New("at least one user is required"))
	}
	seen := make(map[string]struct{}, len(c.Users))
	for _, u := range c.Users {
		name := strings.TrimSpace(u)
		if name == "" {
			errs = append(errs, errors.New("user names must not be empty"))
			continue
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("duplicate user %q", name))
		}
		seen[name] = struct{}{}
	}
	if c.Letters < 1 {
		errs = append(errs, fmt.Errorf("letters must be at least 1, got %d", c.Letters))
	}
	if c.TypingDelay < 0 {
		errs = append(errs, fmt.Errorf("typing_delay must not be negative, got %s", c.TypingDelay))
	}
	if c.ReadInterval < 0 {
		errs = append(errs, fmt.Errorf("read_interval must not be negative, got %s", c.ReadInterval))
	}
	if c.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration must not be negative, got %s", c.Duration))
	}
	if _, err := core.ParseTypingLock(c.TypingLock); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ScriptKind(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ScriptKind maps ScriptMode onto the command kind clients post scripted lines with.
func (c Config) ScriptKind() (core.CommandKind, error) {
	switch strings.ToLower(c.ScriptMode) {
	case "", ScriptModeType:
		return core.CommandType, nil
	case ScriptModeSay:
		return core.CommandSay, nil
	default:
		return core.CommandType, fmt.Errorf("unknown script_mode %q", c.ScriptMode)
	}
}
