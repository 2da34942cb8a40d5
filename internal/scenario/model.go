// Package scenario contains the scenario/step model, its validation and the
// execution engine that drives a connected device through a scenario.
package scenario

import (
	"fmt"
	"sort"
	"strings"
)

// Action identifies one kind of scenario step.
type Action string

// The closed action vocabulary. Navigation, playback and swipe actions
// meaningfully repeat; launch, wait and scenario fire once regardless of Repeat.
const (
	ActionUp         Action = "up"
	ActionDown       Action = "down"
	ActionLeft       Action = "left"
	ActionRight      Action = "right"
	ActionSelect     Action = "select"
	ActionMenu       Action = "menu"
	ActionHome       Action = "home"
	ActionHomeDouble Action = "home_double"

	ActionPlay      Action = "play"
	ActionPause     Action = "pause"
	ActionPlayPause Action = "play_pause"
	ActionStop      Action = "stop"
	ActionNext      Action = "next"
	ActionPrevious  Action = "previous"

	ActionSwipeUp    Action = "swipe_up"
	ActionSwipeDown  Action = "swipe_down"
	ActionSwipeLeft  Action = "swipe_left"
	ActionSwipeRight Action = "swipe_right"

	ActionLaunch   Action = "launch"
	ActionWait     Action = "wait"
	ActionScenario Action = "scenario"
)

// DefaultActionDelay is the pause in seconds applied after each firing of a
// navigation, playback or swipe action, letting the device UI settle.
const DefaultActionDelay = 0.5

var navActions = map[Action]bool{
	ActionUp: true, ActionDown: true, ActionLeft: true, ActionRight: true,
	ActionSelect: true, ActionMenu: true, ActionHome: true, ActionHomeDouble: true,
}

var playActions = map[Action]bool{
	ActionPlay: true, ActionPause: true, ActionPlayPause: true,
	ActionStop: true, ActionNext: true, ActionPrevious: true,
}

var swipeActions = map[Action]bool{
	ActionSwipeUp: true, ActionSwipeDown: true, ActionSwipeLeft: true, ActionSwipeRight: true,
}

// Valid reports whether a belongs to the action vocabulary.
func (a Action) Valid() bool {
	return navActions[a] || playActions[a] || swipeActions[a] ||
		a == ActionLaunch || a == ActionWait || a == ActionScenario
}

// IsNav reports whether a is a directional/navigation action.
func (a Action) IsNav() bool { return navActions[a] }

// IsPlay reports whether a is a playback transport action.
func (a Action) IsPlay() bool { return playActions[a] }

// IsSwipe reports whether a is a swipe gesture.
func (a Action) IsSwipe() bool { return swipeActions[a] }

// validActionList returns the sorted vocabulary for error messages.
func validActionList() string {
	all := []string{
		string(ActionLaunch), string(ActionWait), string(ActionScenario),
	}
	for a := range navActions {
		all = append(all, string(a))
	}
	for a := range playActions {
		all = append(all, string(a))
	}
	for a := range swipeActions {
		all = append(all, string(a))
	}
	sort.Strings(all)
	return strings.Join(all, ", ")
}

// ValidationError reports one or more structural defects in scenario or
// schedule data. It is always raised before any device interaction.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// AggregateErrors combines every collected validation message into a single
// ValidationError, or returns nil when there is nothing to report.
func AggregateErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d erreur(s) de validation:", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e)
	}
	return &ValidationError{msg: b.String()}
}

// Step is one validated instruction within a scenario.
type Step struct {
	Action  Action  `json:"action"`
	App     string  `json:"app,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Name    string  `json:"name,omitempty"`
	Repeat  int     `json:"repeat,omitempty"`
	Delay   float64 `json:"delay"`
}

// RawStep mirrors the wire shape. Optional numeric fields are pointers so an
// absent field can be told apart from an explicit zero before defaults apply.
type RawStep struct {
	Action  string   `json:"action"`
	App     string   `json:"app,omitempty"`
	Seconds *float64 `json:"seconds,omitempty"`
	Name    string   `json:"name,omitempty"`
	Repeat  *int     `json:"repeat,omitempty"`
	Delay   *float64 `json:"delay,omitempty"`
}

// ParseStep applies defaults to a raw step and validates every constraint.
// A violated constraint fails here, at construction, never at execution time.
func ParseStep(raw RawStep) (Step, error) {
	s := Step{
		Action: Action(raw.Action),
		App:    raw.App,
		Name:   raw.Name,
		Repeat: 1,
		Delay:  DefaultActionDelay,
	}
	if raw.Seconds != nil {
		s.Seconds = *raw.Seconds
	}
	if raw.Repeat != nil {
		s.Repeat = *raw.Repeat
	}
	if raw.Delay != nil {
		s.Delay = *raw.Delay
	}

	if !s.Action.Valid() {
		return Step{}, NewValidationError(
			"Action '%s' invalide. Actions valides: %s", s.Action, validActionList())
	}
	if s.Action == ActionLaunch && s.App == "" {
		return Step{}, NewValidationError("L'action 'launch' requiert le parametre 'app'")
	}
	if s.Action == ActionWait && raw.Seconds == nil {
		return Step{}, NewValidationError("L'action 'wait' requiert le parametre 'seconds'")
	}
	if s.Action == ActionScenario && s.Name == "" {
		return Step{}, NewValidationError("L'action 'scenario' requiert le parametre 'name'")
	}
	if s.Seconds < 0 {
		return Step{}, NewValidationError("'seconds' doit etre positif, recu: %v", s.Seconds)
	}
	if s.Delay < 0 {
		return Step{}, NewValidationError("'delay' doit etre positif, recu: %v", s.Delay)
	}
	if s.Repeat < 1 {
		return Step{}, NewValidationError("'repeat' doit etre >= 1, recu: %d", s.Repeat)
	}
	return s, nil
}

// Scenario is a named, ordered, non-empty sequence of steps.
type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

// RawScenario is the wire shape of one scenario definition.
type RawScenario struct {
	Description string    `json:"description,omitempty"`
	Steps       []RawStep `json:"steps"`
}

// RawSet is the wire shape of the scenarios file: name -> definition.
type RawSet map[string]RawScenario

// ParseScenario validates one scenario; per-step errors are wrapped with the
// scenario name and the 1-based step index.
func ParseScenario(name string, raw RawScenario) (Scenario, error) {
	if name == "" {
		return Scenario{}, NewValidationError("Le nom du scenario est requis")
	}

	steps := make([]Step, 0, len(raw.Steps))
	for i, rawStep := range raw.Steps {
		step, err := ParseStep(rawStep)
		if err != nil {
			return Scenario{}, NewValidationError("Scenario '%s', etape %d: %s", name, i+1, err)
		}
		steps = append(steps, step)
	}

	if len(steps) == 0 {
		return Scenario{}, NewValidationError("Le scenario '%s' n'a aucune etape", name)
	}

	return Scenario{Name: name, Description: raw.Description, Steps: steps}, nil
}

// Set is a validated scenario registry: unique name -> scenario. During a run
// the engine treats it as an immutable snapshot.
type Set map[string]Scenario

// Names returns the scenario names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseSet validates every scenario of a raw set. Errors are collected across
// all scenarios and reported together, never one at a time.
func ParseSet(raw RawSet) (Set, error) {
	set := make(Set, len(raw))
	var errs []string

	for _, name := range sortedKeys(raw) {
		sc, err := ParseScenario(name, raw[name])
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		set[name] = sc
	}

	if err := AggregateErrors(errs); err != nil {
		return nil, err
	}
	return set, nil
}

func sortedKeys(raw RawSet) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
