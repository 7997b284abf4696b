package handler

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseQuery splits a raw query string on '&' only, the way browsers'
// URLSearchParams do. Unlike url.ParseQuery it never drops a pair: ';' is an
// ordinary character, '+' is a space, and malformed percent escapes are kept
// as literal text.
func ParseQuery(raw string) url.Values {
	values := url.Values{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = decodeComponent(key)
		values[key] = append(values[key], decodeComponent(value))
	}
	return values
}

func decodeComponent(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			if c, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(c))
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
