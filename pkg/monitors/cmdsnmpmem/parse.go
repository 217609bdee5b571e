package cmdsnmpmem

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedResult is returned when the script output can't be parsed
var ErrMalformedResult = errors.New("malformed result")

// ParseResult pulls the name=value pairs out of the performance section of
// the script output, which is everything after the first '|' up to the next
// one.
func ParseResult(out string) (map[string]string, error) {
	parts := strings.Split(out, "|")
	if len(parts) < 2 {
		return nil, errors.Wrapf(ErrMalformedResult, "no '|' found in %q", strings.TrimSpace(out))
	}

	values := map[string]string{}
	for _, tok := range strings.Fields(parts[1]) {
		kv := strings.Split(tok, "=")
		if len(kv) != 2 {
			return nil, errors.Wrapf(ErrMalformedResult, "bad datapoint %q", tok)
		}
		values[kv[0]] = kv[1]
	}
	return values, nil
}
