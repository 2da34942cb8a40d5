// Package device defines the Controller interface the engine drives, the
// capability model, and the atvremote-backed implementation.
package device

import (
	"context"
	"fmt"
	"strings"
)

// Button is a named remote-control button.
type Button string

// Remote buttons understood by PressButton.
const (
	ButtonUp        Button = "up"
	ButtonDown      Button = "down"
	ButtonLeft      Button = "left"
	ButtonRight     Button = "right"
	ButtonSelect    Button = "select"
	ButtonMenu      Button = "menu"
	ButtonHome      Button = "home"
	ButtonPlay      Button = "play"
	ButtonPause     Button = "pause"
	ButtonPlayPause Button = "play_pause"
	ButtonStop      Button = "stop"
	ButtonNext      Button = "next"
	ButtonPrevious  Button = "previous"
)

// Feature is a capability a device may or may not expose, typically depending
// on completed pairing.
type Feature string

// Features checked before invoking the matching primitive.
const (
	FeatureUp         Feature = "Up"
	FeatureDown       Feature = "Down"
	FeatureLeft       Feature = "Left"
	FeatureRight      Feature = "Right"
	FeatureSelect     Feature = "Select"
	FeatureMenu       Feature = "Menu"
	FeatureHome       Feature = "Home"
	FeaturePlay       Feature = "Play"
	FeaturePause      Feature = "Pause"
	FeaturePlayPause  Feature = "PlayPause"
	FeatureStop       Feature = "Stop"
	FeatureNext       Feature = "Next"
	FeaturePrevious   Feature = "Previous"
	FeatureSwipe      Feature = "Swipe"
	FeatureLaunchApp  Feature = "LaunchApp"
	FeatureAppList    Feature = "AppList"
	FeatureTurnOn     Feature = "TurnOn"
	FeatureTurnOff    Feature = "TurnOff"
	FeaturePowerState Feature = "PowerState"
	FeatureVolumeUp   Feature = "VolumeUp"
	FeatureVolumeDown Feature = "VolumeDown"
	FeatureSetVolume  Feature = "SetVolume"
)

// ButtonFeature maps a button to the feature gating it.
func ButtonFeature(b Button) Feature {
	switch b {
	case ButtonUp:
		return FeatureUp
	case ButtonDown:
		return FeatureDown
	case ButtonLeft:
		return FeatureLeft
	case ButtonRight:
		return FeatureRight
	case ButtonSelect:
		return FeatureSelect
	case ButtonMenu:
		return FeatureMenu
	case ButtonHome:
		return FeatureHome
	case ButtonPlay:
		return FeaturePlay
	case ButtonPause:
		return FeaturePause
	case ButtonPlayPause:
		return FeaturePlayPause
	case ButtonStop:
		return FeatureStop
	case ButtonNext:
		return FeatureNext
	case ButtonPrevious:
		return FeaturePrevious
	}
	return Feature(string(b))
}

// Gesture is a touch swipe in pad coordinates (0..1000, origin top-left).
type Gesture struct {
	StartX, StartY int
	EndX, EndY     int
	DurationMS     int
}

// Controller is the remote-control session the core needs from a connected
// device. Every call is a suspension point and honors ctx cancellation.
type Controller interface {
	// Supports reports whether the device currently exposes a capability.
	Supports(f Feature) bool

	PressButton(ctx context.Context, b Button) error
	Swipe(ctx context.Context, g Gesture) error
	LaunchApp(ctx context.Context, bundleID string) error

	TurnOn(ctx context.Context) error
	TurnOff(ctx context.Context) error
	PowerState(ctx context.Context) (string, error)

	VolumeUp(ctx context.Context) error
	VolumeDown(ctx context.Context) error
	SetVolume(ctx context.Context, level int) error

	Close() error
}

// Info describes a device found on the network.
type Info struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Identifier string `json:"identifier"`
}

// Scanner discovers devices on the local network.
type Scanner interface {
	Scan(ctx context.Context) ([]Info, error)
}

// NotFoundError is returned when a device selector matches no candidate.
type NotFoundError struct {
	Selector string
}

func (e *NotFoundError) Error() string {
	if e.Selector == "" {
		return "Aucun appareil trouve sur le reseau"
	}
	return fmt.Sprintf("Appareil '%s' non trouve", e.Selector)
}

// FeatureNotAvailableError is returned when a step requires a capability the
// device does not currently expose, commonly because pairing is incomplete.
type FeatureNotAvailableError struct {
	Feature Feature
}

func (e *FeatureNotAvailableError) Error() string {
	return fmt.Sprintf("Fonctionnalite %s non disponible. Assurez-vous d'avoir appaire l'appareil.", e.Feature)
}

// RequireFeature is the explicit pre-condition check applied before invoking a
// primitive: it returns a FeatureNotAvailableError when the capability is
// missing, nil otherwise.
func RequireFeature(c Controller, f Feature) error {
	if !c.Supports(f) {
		return &FeatureNotAvailableError{Feature: f}
	}
	return nil
}

// Select resolves a selector against a scan result. An empty selector picks
// the device when exactly one was found; otherwise the selector must equal
// the identifier or match the device name as a case-insensitive substring.
func Select(devices []Info, selector string) (Info, error) {
	if len(devices) == 0 {
		return Info{}, &NotFoundError{}
	}
	if selector == "" {
		if len(devices) == 1 {
			return devices[0], nil
		}
		return Info{}, &NotFoundError{Selector: selector}
	}
	for _, d := range devices {
		if strings.EqualFold(d.Identifier, selector) {
			return d, nil
		}
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(selector)) {
			return d, nil
		}
	}
	return Info{}, &NotFoundError{Selector: selector}
}
