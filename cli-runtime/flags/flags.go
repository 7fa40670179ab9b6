// Package flags extracts kubectl style flags from a token list. Every
// extractor removes the tokens it matched, so whatever remains afterwards is
// positional no matter where the flags appeared on the line.
package flags

import (
	"fmt"
	"strconv"
	"strings"
)

// Display renders a flag name the way it is typed: "-n" or "--namespace".
func Display(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

// match reports whether token is one of names, returning the inline value of
// a "--name=value" token.
func match(token string, names []string) (inline string, hasInline, ok bool) {
	for _, name := range names {
		flag := Display(name)
		if token == flag {
			return "", false, true
		}
		if v, found := strings.CutPrefix(token, flag+"="); found {
			return v, true, true
		}
	}
	return "", false, false
}

// looksLikeFlag reports whether token starts a new flag rather than being a
// value. Negative numbers are values.
func looksLikeFlag(token string) bool {
	if !strings.HasPrefix(token, "-") || token == "-" {
		return false
	}
	_, err := strconv.ParseFloat(token, 64)
	return err != nil
}

// ExtractFlagValues removes every occurrence of the flag from args and
// returns their values in order. Both "--flag value" and "--flag=value" are
// accepted.
func ExtractFlagValues(args *[]string, names ...string) ([]string, error) {
	var (
		values []string
		rest   = make([]string, 0, len(*args))
		tokens = *args
	)

	for i := 0; i < len(tokens); i++ {
		inline, hasInline, ok := match(tokens[i], names)
		if !ok {
			rest = append(rest, tokens[i])
			continue
		}
		if hasInline {
			values = append(values, inline)
			continue
		}
		if i+1 >= len(tokens) || looksLikeFlag(tokens[i+1]) {
			return nil, fmt.Errorf("flag needs an argument: %s", tokens[i])
		}
		values = append(values, tokens[i+1])
		i++
	}

	*args = rest
	return values, nil
}

// ExtractFlagValue removes the flag from args and returns its value. When
// the flag is given more than once the last value wins.
func ExtractFlagValue(args *[]string, names ...string) (string, bool, error) {
	values, err := ExtractFlagValues(args, names...)
	if err != nil || len(values) == 0 {
		return "", false, err
	}
	return values[len(values)-1], true, nil
}

// ExtractFlag is ExtractFlagValue with a default for an absent flag.
func ExtractFlag(args *[]string, def string, names ...string) (string, error) {
	value, found, err := ExtractFlagValue(args, names...)
	if err != nil {
		return "", err
	}
	if !found {
		return def, nil
	}
	return value, nil
}

// ExtractListFlag collects a repeated flag whose values may also be comma
// separated, e.g. "--verb=get,list --verb watch".
func ExtractListFlag(args *[]string, names ...string) ([]string, error) {
	values, err := ExtractFlagValues(args, names...)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out, nil
}

// ExtractIntFlag removes an integer flag from args.
func ExtractIntFlag(args *[]string, def int, names ...string) (int, bool, error) {
	value, found, err := ExtractFlagValue(args, names...)
	if err != nil || !found {
		return def, false, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def, true, fmt.Errorf("invalid argument %q for %q flag: %w", value, Display(names[0]), err)
	}
	return n, true, nil
}

// ExtractBoolFlag removes a boolean flag from args. "--flag" means true;
// "--flag=false" is honored.
func ExtractBoolFlag(args *[]string, names ...string) (bool, error) {
	var (
		result bool
		rest   = make([]string, 0, len(*args))
	)

	for _, token := range *args {
		inline, hasInline, ok := match(token, names)
		if !ok {
			rest = append(rest, token)
			continue
		}
		if !hasInline {
			result = true
			continue
		}
		b, err := strconv.ParseBool(inline)
		if err != nil {
			return false, fmt.Errorf("invalid argument %q for %q flag: %w", inline, Display(names[0]), err)
		}
		result = b
	}

	*args = rest
	return result, nil
}

// ExtractRemainingFlags removes every "--key=value" or "--key value" token
// that is still in args and returns them as a map. Used by handlers that
// store arbitrary flags as metadata.
func ExtractRemainingFlags(args *[]string) map[string]string {
	out := map[string]string{}
	rest := make([]string, 0, len(*args))
	tokens := *args

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if !looksLikeFlag(token) {
			rest = append(rest, token)
			continue
		}
		key := strings.TrimLeft(token, "-")
		if k, v, found := strings.Cut(key, "="); found {
			out[k] = v
			continue
		}
		if i+1 < len(tokens) && !looksLikeFlag(tokens[i+1]) {
			out[key] = tokens[i+1]
			i++
			continue
		}
		out[key] = "true"
	}

	*args = rest
	return out
}

// CheckUnknown returns an error naming the first flag left in args.
func CheckUnknown(args []string) error {
	for _, token := range args {
		if looksLikeFlag(token) {
			name, _, _ := strings.Cut(token, "=")
			return fmt.Errorf("unknown flag: %s", name)
		}
	}
	return nil
}
