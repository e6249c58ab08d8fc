package logx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	VerbosityFlagName      = "verbosity"
	verbosityFlagShortName = "v"
)

var levelStrings = map[string]zapcore.Level{
	"debug": zap.DebugLevel,
	"info":  zap.InfoLevel,
	"error": zap.ErrorLevel,
}

// ParseLevel accepts debug, info, error or a positive integer N, which
// enables logr V(N) output.
func ParseLevel(value string) (zapcore.Level, error) {
	value = strings.TrimSpace(value)
	if level, ok := levelStrings[strings.ToLower(value)]; ok {
		return level, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 || n > 127 {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", value)
	}
	return zapcore.Level(int8(-n)), nil
}

// LevelFlagValue is a pflag.Value that applies the level as soon as the flag
// is parsed.
type LevelFlagValue struct {
	onLevel func(zapcore.Level)
	value   string
}

func (v *LevelFlagValue) Set(flagValue string) error {
	level, err := ParseLevel(flagValue)
	if err != nil {
		return err
	}
	v.onLevel(level)
	v.value = flagValue
	return nil
}

func (v *LevelFlagValue) String() string {
	return v.value
}

func (*LevelFlagValue) Type() string {
	return "level"
}

// AddLevelFlag registers -v/--verbosity on fs.
func (l *Logger) AddLevelFlag(fs *pflag.FlagSet) {
	fs.VarP(&LevelFlagValue{onLevel: l.SetLevel}, VerbosityFlagName, verbosityFlagShortName,
		"Logging verbosity level (e.g. -v=debug). One of 'debug', 'info', 'error', or a positive integer for increasing debug verbosity.")
}

var _ pflag.Value = &LevelFlagValue{}
