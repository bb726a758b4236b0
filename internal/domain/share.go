package domain

import (
	"net/url"
	"strings"
)

// Share query parameter names
const (
	ParamOrientation = "dir"
	ParamWindowSize  = "win"
	ParamDistance    = "dist"
	ParamObstruction = "obs"
)

// EncodeQuery serializes a profile into the four share parameters
func EncodeQuery(p RoomProfile) url.Values {
	obs := "0"
	if p.HasObstruction {
		obs = "1"
	}

	return url.Values{
		ParamOrientation: {string(p.Orientation)},
		ParamWindowSize:  {string(p.WindowSize)},
		ParamDistance:    {string(p.Distance)},
		ParamObstruction: {obs},
	}
}

// ShareURL appends the encoded profile to the site's base origin
func ShareURL(baseURL string, p RoomProfile) string {
	return strings.TrimRight(baseURL, "/") + "/?" + EncodeQuery(p).Encode()
}

// ParseObstruction accepts only "0" and "1"
func ParseObstruction(s string) (bool, bool) {
	switch s {
	case "1":
		return true, true
	case "0":
		return false, true
	}
	return false, false
}

// DecodeQuery rebuilds a profile from share parameters.
// It reports false when a parameter is missing or holds an unknown value;
// nothing falls back to a default, since that would change the diagnosis.
func DecodeQuery(q url.Values) (RoomProfile, bool) {
	for _, key := range []string{ParamOrientation, ParamWindowSize, ParamDistance, ParamObstruction} {
		if !q.Has(key) {
			return RoomProfile{}, false
		}
	}

	o, ok := ParseOrientation(q.Get(ParamOrientation))
	if !ok {
		return RoomProfile{}, false
	}
	w, ok := ParseWindowSize(q.Get(ParamWindowSize))
	if !ok {
		return RoomProfile{}, false
	}
	d, ok := ParseDistance(q.Get(ParamDistance))
	if !ok {
		return RoomProfile{}, false
	}
	obs, ok := ParseObstruction(q.Get(ParamObstruction))
	if !ok {
		return RoomProfile{}, false
	}

	return RoomProfile{
		Orientation:    o,
		WindowSize:     w,
		Distance:       d,
		HasObstruction: obs,
	}, true
}

// DecodeShareURL accepts a full share URL or a bare query string
func DecodeShareURL(raw string) (RoomProfile, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}

	q, err := url.ParseQuery(raw)
	if err != nil {
		return RoomProfile{}, false
	}
	return DecodeQuery(q)
}
