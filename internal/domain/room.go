package domain

import "fmt"

// Orientation is the compass direction the room's window faces
type Orientation string

const (
	North Orientation = "north"
	East  Orientation = "east"
	South Orientation = "south"
	West  Orientation = "west"
)

// Orientations lists every orientation in display order
var Orientations = []Orientation{North, East, South, West}

// WindowSize is the ordinal size of the window
type WindowSize string

const (
	SmallWindow  WindowSize = "small"
	MediumWindow WindowSize = "medium"
	LargeWindow  WindowSize = "large"
)

// WindowSizes lists every window size in display order
var WindowSizes = []WindowSize{SmallWindow, MediumWindow, LargeWindow}

// Distance is how far from the window the plant will stand
type Distance string

const (
	Near   Distance = "near"
	Middle Distance = "medium"
	Far    Distance = "far"
)

// Distances lists every distance band in display order
var Distances = []Distance{Near, Middle, Far}

// RoomProfile describes the lighting situation of one spot in a room.
// Profiles are values: build a new one instead of changing an old one.
type RoomProfile struct {
	Orientation    Orientation `json:"orientation"`
	WindowSize     WindowSize  `json:"windowSize"`
	Distance       Distance    `json:"distanceFromWindow"`
	HasObstruction bool        `json:"hasObstruction"`
}

// DefaultRoomProfile is what the questionnaire starts from
func DefaultRoomProfile() RoomProfile {
	return RoomProfile{
		Orientation: South,
		WindowSize:  MediumWindow,
		Distance:    Near,
	}
}

// NewRoomProfile builds a profile from raw strings with validation
func NewRoomProfile(orientation, windowSize, distance string, hasObstruction bool) (RoomProfile, error) {
	o, ok := ParseOrientation(orientation)
	if !ok {
		return RoomProfile{}, fmt.Errorf("%w: orientation %q", ErrInvalidProfile, orientation)
	}
	w, ok := ParseWindowSize(windowSize)
	if !ok {
		return RoomProfile{}, fmt.Errorf("%w: window size %q", ErrInvalidProfile, windowSize)
	}
	d, ok := ParseDistance(distance)
	if !ok {
		return RoomProfile{}, fmt.Errorf("%w: distance %q", ErrInvalidProfile, distance)
	}

	return RoomProfile{
		Orientation:    o,
		WindowSize:     w,
		Distance:       d,
		HasObstruction: hasObstruction,
	}, nil
}

// ParseOrientation accepts only the exact enumerator spelling
func ParseOrientation(s string) (Orientation, bool) {
	for _, o := range Orientations {
		if string(o) == s {
			return o, true
		}
	}
	return "", false
}

// ParseWindowSize accepts only the exact enumerator spelling
func ParseWindowSize(s string) (WindowSize, bool) {
	for _, w := range WindowSizes {
		if string(w) == s {
			return w, true
		}
	}
	return "", false
}

// ParseDistance accepts only the exact enumerator spelling
func ParseDistance(s string) (Distance, bool) {
	for _, d := range Distances {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// Label is the human-readable name shown in forms
func (o Orientation) Label() string {
	switch o {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return string(o)
}

func (w WindowSize) Label() string {
	switch w {
	case SmallWindow:
		return "Small (waist-high window)"
	case MediumWindow:
		return "Medium (standard sliding door)"
	case LargeWindow:
		return "Large (floor-to-ceiling glass)"
	}
	return string(w)
}

func (d Distance) Label() string {
	switch d {
	case Near:
		return "0-0.5m (right by the window)"
	case Middle:
		return "0.5-1.5m (middle of the room)"
	case Far:
		return "Over 1.5m (far from the window)"
	}
	return string(d)
}
