// Package flagx extracts a few bootstrap flags (config file, env file) from
// os.Args before the main flag set is parsed.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the flags named in keep, together with their values.
// Both "-c file" and "--config=file" forms are recognised. A token that starts
// with "-" is never consumed as a value.
func FilterArgs(args []string, keep []string) []string {
	wanted := make(map[string]bool, len(keep))
	for _, k := range keep {
		wanted[k] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if wanted[name] {
				out = append(out, arg)
			}
			continue
		}

		if !wanted[arg] {
			continue
		}
		out = append(out, arg)
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			out = append(out, args[next])
			i = next
		}
	}

	return out
}

// LookupFlag parses only the given flag names out of args and returns the
// last value supplied for any of them. Other arguments are ignored, so it is
// safe to call before the application's own flag set is built.
func LookupFlag(args []string, names ...string) string {
	var value string

	keep := make([]string, 0, len(names)*2)
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		keep = append(keep, "-"+n, "--"+n)
		fs.StringVar(&value, n, "", "")
	}
	_ = fs.Parse(FilterArgs(args, keep))

	return value
}

// ConfigFileFlag returns the config file path given via -c or -config.
func ConfigFileFlag() string {
	return LookupFlag(os.Args[1:], "c", "config")
}

// EnvFileFlag returns the dotenv file path given via -env.
func EnvFileFlag() string {
	return LookupFlag(os.Args[1:], "env")
}
