package notify

import "github.com/cooper/evented-configuration/value"

// sectionType is the reserved block type for unnamed blocks. An empty
// Event.Type is normalized to it, so both spellings address the same event.
const sectionType = "section"

// Event identifies one watchable configuration key by its block type,
// block name, and key.
type Event struct {
	Type string
	Name string
	Key  string
}

// NewEvent returns the event for a key in a block. An empty block type
// addresses an unnamed block.
func NewEvent(blockType, blockName, key string) Event {
	return Event{Type: blockType, Name: blockName, Key: key}.normalized()
}

func (e Event) normalized() Event {
	if e.Type == "" {
		e.Type = sectionType
	}
	return e
}

// String returns the canonical event name. Keys in unnamed blocks produce
// "change:name:key"; keys in typed blocks produce "change:type/name:key".
// The name is part of the public contract and stays stable across releases.
func (e Event) String() string {
	e = e.normalized()
	if e.Type == sectionType {
		return "change:" + e.Name + ":" + e.Key
	}
	return "change:" + e.Type + "/" + e.Name + ":" + e.Key
}

// Change carries one committed configuration change: the event it belongs
// to, the value before the change, and the value after. Old is nil when
// the key had never been set.
type Change struct {
	Event Event
	Old   value.Value
	New   value.Value
}

// Listener consumes one Change.
type Listener func(Change)
