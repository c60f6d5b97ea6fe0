package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cogentcore.org/core/cli"
)

// DefaultFile is read when no -config flag is given, if it exists.
const DefaultFile = "gldemos.toml"

// ErrHelp is returned by Parse when help was asked for.
var ErrHelp = errors.New("help requested")

// Options returns the command line options of the named binary.
func Options(appName, about string) *cli.Options {
	opts := cli.DefaultOptions(appName, about)
	opts.DefaultFiles = []string{DefaultFile}
	return opts
}

// Parse reads settings for a binary from its arguments, not including the
// program name. The file named by -config, or else the first of
// opts.DefaultFiles that exists, is decoded over the defaults with the same
// strict rules as Decode. The other flags are then set by the cli package
// and take precedence over the file.
func Parse(opts *cli.Options, args []string) (Settings, error) {
	path, rest, err := splitConfigFlag(args)
	if err != nil {
		return Settings{}, err
	}

	if path == "" {
		path = firstExisting(opts.DefaultFiles)
	}

	s := Default()
	if path != "" {
		if s, err = Load(path); err != nil {
			return Settings{}, err
		}
	}

	if _, err := cli.SetFromArgs(&s, rest, cli.ErrNotFound); err != nil {
		return Settings{}, fmt.Errorf("parsing flags: %w", err)
	}

	return s, s.Validate()
}

// Usage describes the flags Parse accepts.
func Usage(opts *cli.Options) string {
	s := Default()
	return cli.Usage(opts, &s, "")
}

// splitConfigFlag takes -config (and -help) out of args. The settings file
// has to be known before the other flags are applied over it.
func splitConfigFlag(args []string) (path string, rest []string, err error) {
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(strings.TrimLeft(args[i], "-"), "=")
		if !strings.HasPrefix(args[i], "-") {
			rest = append(rest, args[i])
			continue
		}

		switch name {
		case "h", "help":
			return "", nil, ErrHelp
		case "config", "cfg":
			if !hasValue {
				if i+1 >= len(args) {
					return "", nil, fmt.Errorf("flag %v needs a file name", args[i])
				}
				i++
				value = args[i]
			}
			path = value
		default:
			rest = append(rest, args[i])
		}
	}
	return path, rest, nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
