package evconf

import "github.com/cooper/evented-configuration/store"

// SectionType is the reserved block type of unnamed blocks.
const SectionType = store.SectionType

// Block addresses a configuration block by type and name. The alias lets
// callers stay within this package for everyday use.
type Block = store.Block

// Section addresses an unnamed block, one declared as [name].
func Section(name string) Block { return store.Section(name) }

// Named addresses a typed block, one declared as [type: name]. An empty
// type addresses an unnamed block.
func Named(blockType, name string) Block { return store.Named(blockType, name) }
