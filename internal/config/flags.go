package config

import (
	"flag"
	"strings"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Parse builds a Config from command line arguments. The -config file is
// loaded first, then the bound flags, then every -set override in order.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	path := configPath(args)
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	var overrides KVList
	fs.String("config", path, "YAML engine configuration file")
	fs.Var(&overrides, "set", "config override in key=value form (repeatable)")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath finds the value of -config ahead of flag parsing so that the
// file can supply defaults for the other flags.
func configPath(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if len(name) == len(arg) || len(arg)-len(name) > 2 {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
