package env

import "strings"

// Target identifies the element a click landed on. Parent links let
// classification look at enclosing elements.
type Target struct {
	ID     string
	Tag    string
	Role   string
	Parent *Target
}

var interactiveTags = map[string]bool{
	"BUTTON":   true,
	"A":        true,
	"INPUT":    true,
	"SELECT":   true,
	"TEXTAREA": true,
}

// NewTarget creates a target with the given tag.
func NewTarget(tag string) *Target {
	return &Target{Tag: tag}
}

// Within returns a copy of target nested inside parent.
func (target *Target) Within(parent *Target) *Target {
	if target == nil {
		return nil
	}
	nested := *target
	nested.Parent = parent
	return &nested
}

// TagName returns the upper-cased tag, or "" for a nil target.
func (target *Target) TagName() string {
	if target == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(target.Tag))
}

// IsInteractive reports whether target, or any element enclosing it, is a
// control the user is expected to click. Nil targets are not interactive.
func IsInteractive(target *Target) bool {
	for current := target; current != nil; current = current.Parent {
		if interactiveTags[current.TagName()] {
			return true
		}
		if strings.EqualFold(strings.TrimSpace(current.Role), "button") {
			return true
		}
	}
	return false
}
