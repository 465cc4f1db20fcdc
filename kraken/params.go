package kraken

import (
	"net/url"
	"strings"
)

// Params is the key/value parameter set of a request.
type Params map[string]string

// Clone returns a copy that is safe to modify. A nil receiver yields an empty
// map.
func (p Params) Clone() Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// With returns a copy of p with key set to value.
func (p Params) With(key, value string) Params {
	out := p.Clone()
	out[key] = value
	return out
}

// WithList returns a copy of p with the values joined by commas under key.
func (p Params) WithList(key string, values []string) Params {
	return p.With(key, strings.Join(values, ","))
}

// Values converts p to url.Values.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for key, value := range p {
		v.Set(key, value)
	}
	return v
}

// EncodeParams serializes p as a URL query string with keys in sorted order,
// so the string that is signed is byte for byte the string that is sent. An
// empty set encodes to "".
func EncodeParams(p Params) string {
	if len(p) == 0 {
		return ""
	}
	return p.Values().Encode()
}

// DecodeParams parses an encoded query string back into a parameter set. When
// a key repeats the first value wins.
func DecodeParams(encoded string) (Params, error) {
	values, err := url.ParseQuery(encoded)
	if err != nil {
		return nil, err
	}
	p := make(Params, len(values))
	for k, v := range values {
		if len(v) > 0 {
			p[k] = v[0]
		}
	}
	return p, nil
}
