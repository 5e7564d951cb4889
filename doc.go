// Package evconf implements an evented configuration: a plain-text
// configuration file parsed into a typed store, with change events fired
// for every value that differs from what the store already holds.
//
// The package exists for programs that re-read their configuration while
// running. Calling [Config.Parse] again after the file has been edited, a
// rehash, applies only the differences and announces each one to the
// listeners watching that key. Code that cares about one setting registers
// for that setting alone and is never bothered by the rest of the file.
//
// # File format
//
// A file is a sequence of blocks. A block header is a bracketed line, and
// every key-value line after it belongs to that block until the next
// header:
//
//	[ myblock ]
//
//	[ cookies: chocolate ]
//
// The first form declares an unnamed block, addressed by name alone. The
// second declares a typed block: type "cookies", name "chocolate". Unnamed
// blocks live under the reserved type "section", so the two spellings
// [section: general] and [general] address the same block.
//
// Keys are separated from their values by ":" or "=". Blank lines and
// lines starting with "#" are ignored:
//
//	[ cookies: chocolate ]
//
//	# how many cookies to keep on hand
//	count:  12
//	brands: ['toll house', 'keebler']
//
// # Values
//
// A value is a quoted string, a number, or a bracketed sequence of values;
// sequences nest. The range form first..last expands immediately to the
// full sequence of intervening integers or characters, and a range written
// inside a sequence splices its elements into it, so ['a'..'c'] is the
// three-element sequence "a", "b", "c". See [value.Parse] for the grammar.
//
// # Change events
//
// Every committed change fires exactly one event carrying the old value
// (nil on first assignment) and the new one. Event names are part of the
// public contract: a key in an unnamed block fires "change:name:key", a
// key in a typed block fires "change:type/name:key". Listeners run in
// priority order, highest first. Register through [Config.OnChange], or
// against the [notify.Dispatcher] directly for anything fancier.
//
// # Rehash semantics
//
// The store only grows. Re-parsing commits values that changed, adds values
// that are new, and leaves every key the file no longer mentions exactly as
// it was. Reloading an unchanged file fires no events at all. A parse that
// fails partway leaves the lines before the fault applied; there is no
// rollback.
//
// # Usage
//
//	conf, err := evconf.New("etc/app.conf")
//	if err != nil {
//		return err
//	}
//	conf.OnChange(evconf.Section("limits"), "max", func(ch notify.Change) {
//		log.Printf("max changed: %v -> %v", ch.Old, ch.New)
//	})
//	if err := conf.Parse(); err != nil {
//		return err
//	}
//	max, err := conf.GetInt(evconf.Section("limits"), "max")
package evconf
