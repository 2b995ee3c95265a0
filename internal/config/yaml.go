// Package config loads optional YAML configuration files into kong.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/lifetracker/internal/constants"
)

// Paths are the configuration files consulted, in order. Missing files are
// skipped by kong.
var Paths = []string{
	"~/.config/" + constants.AppName + "/config.yaml",
	"./" + constants.AppName + ".yaml",
}

// YAML is a kong.ConfigurationLoader. Keys are flag names with dashes or
// underscores. Flags of a subcommand may also be nested under the command
// name:
//
//	debug: true
//	serve:
//	  addr: ":9000"
//	  cors_origins: ["http://localhost:5173"]
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if section, ok := lookup(values, parent.Command.Name).(map[string]any); ok {
				if v := lookup(section, flag.Name); v != nil {
					return v, nil
				}
			}
		}
		return lookup(values, flag.Name), nil
	}
	return f, nil
}

func lookup(values map[string]any, name string) any {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		if v, ok := values[key]; ok {
			return v
		}
	}
	return nil
}
