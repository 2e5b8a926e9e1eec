package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/launchbynttdata/wych/internal/config"
)

type flagBase struct {
	fs      *pflag.FlagSet
	setting string
	name    string
	envKeys []string
}

func newFlagBase(fs *pflag.FlagSet, setting, name string, envKeys []string) flagBase {
	return flagBase{fs: fs, setting: setting, name: name, envKeys: envKeys}
}

func (b flagBase) changed() bool {
	if b.fs == nil || b.name == "" {
		return false
	}
	return b.fs.Changed(b.name)
}

func describeUsage(usage string, envKeys []string) string {
	trimmed := strings.TrimSpace(usage)
	if len(envKeys) == 0 {
		return trimmed
	}
	envs := strings.Join(envKeys, ", ")
	if trimmed == "" {
		return fmt.Sprintf("env: %s", envs)
	}
	return fmt.Sprintf("%s (env: %s)", trimmed, envs)
}

type stringFlag struct {
	base       flagBase
	defaultVal string
	value      string
}

func bindStringFlag(fs *pflag.FlagSet, setting, name, short string, envKeys []string, defaultVal, usage string) *stringFlag {
	f := &stringFlag{
		base:       newFlagBase(fs, setting, name, envKeys),
		defaultVal: defaultVal,
		value:      defaultVal,
	}
	if fs == nil {
		return f
	}
	if short != "" {
		fs.StringVarP(&f.value, name, short, defaultVal, describeUsage(usage, envKeys))
	} else {
		fs.StringVar(&f.value, name, defaultVal, describeUsage(usage, envKeys))
	}
	return f
}

func (f *stringFlag) Value(resolver config.Resolver) string {
	cliVal := strings.TrimSpace(f.value)
	return resolver.String(f.base.setting, f.base.envKeys, cliVal, f.base.changed(), f.defaultVal)
}

type boolFlag struct {
	base       flagBase
	defaultVal bool
	value      bool
}

func bindBoolFlag(fs *pflag.FlagSet, setting, name, short string, envKeys []string, defaultVal bool, usage string) *boolFlag {
	f := &boolFlag{
		base:       newFlagBase(fs, setting, name, envKeys),
		defaultVal: defaultVal,
		value:      defaultVal,
	}
	if fs == nil {
		return f
	}
	if short != "" {
		fs.BoolVarP(&f.value, name, short, defaultVal, describeUsage(usage, envKeys))
	} else {
		fs.BoolVar(&f.value, name, defaultVal, describeUsage(usage, envKeys))
	}
	return f
}

func (f *boolFlag) Value(resolver config.Resolver) (bool, error) {
	return resolver.Bool(f.base.setting, f.base.envKeys, f.value, f.base.changed(), f.defaultVal)
}

type uint32Flag struct {
	base       flagBase
	defaultVal uint32
	value      uint32
}

func bindUint32Flag(fs *pflag.FlagSet, setting, name, short string, envKeys []string, defaultVal uint32, usage string) *uint32Flag {
	f := &uint32Flag{
		base:       newFlagBase(fs, setting, name, envKeys),
		defaultVal: defaultVal,
		value:      defaultVal,
	}
	if fs == nil {
		return f
	}
	if short != "" {
		fs.Uint32VarP(&f.value, name, short, defaultVal, describeUsage(usage, envKeys))
	} else {
		fs.Uint32Var(&f.value, name, defaultVal, describeUsage(usage, envKeys))
	}
	return f
}

// Value returns the resolved number and whether it was supplied at all.
func (f *uint32Flag) Value(resolver config.Resolver) (uint32, bool, error) {
	return resolver.Uint32(f.base.setting, f.base.envKeys, f.value, f.base.changed(), f.defaultVal)
}
