package events

// Kind names a category of event. Kinds use an "entity:action" form,
// e.g. "user:created".
type Kind string

// String returns the kind as a string.
func (k Kind) String() string {
	return string(k)
}
