// Package flagx lets several independent flag parsers share one command
// line: each parser keeps only the arguments it knows about.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the subset of args that belong to allowedFlags,
// together with their values.
//
// Supported forms, for an allowed flag "-c":
//
//	-c conf.json
//	-c=conf.json
//	--c conf.json
//	--c=conf.json
//
// A value is only taken from the following argument when that argument
// does not itself start with '-'.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[canonical(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := allowed[canonical(name)]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// canonical strips leading dashes so "-c" and "--c" compare equal.
func canonical(name string) string {
	return strings.TrimLeft(name, "-")
}

// ConfigFile extracts the JSON config path given with -c or -config.
// It returns "" when neither flag is present; when both are, the last wins.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
