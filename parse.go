package evconf

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cooper/evented-configuration/internal/scan"
	"github.com/cooper/evented-configuration/notify"
	"github.com/cooper/evented-configuration/store"
	"github.com/cooper/evented-configuration/value"
)

// Parse reads the bound file and applies it to the store. The first call
// performs the initial load; later calls re-read the file in place, the
// "rehash". Values equal to what the store already holds are skipped;
// every value that differs is committed and its change event fired, with
// the old and new value, before the next line is read. Keys the file no
// longer mentions keep their stored values.
//
// Parse stops at the first fault and returns a *ParseError locating it.
// Lines processed before the fault stay applied, and their events stay
// fired; there is no rollback. Listener panics are not recovered and
// propagate out of Parse.
func (c *Config) Parse() error {
	f, err := os.Open(c.path)
	if err != nil {
		return &ParseError{Path: c.path, Err: err}
	}
	defer f.Close()

	var (
		current store.Block
		inBlock bool
		line    int
		changes int
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line++
		ln := scan.Classify(sc.Text())
		switch ln.Kind {
		case scan.KindSkip:
			continue

		case scan.KindBlockHeader:
			current = store.Named(ln.Type, ln.Name)
			inBlock = true

		case scan.KindKeyValue:
			if !inBlock {
				return &ParseError{Path: c.path, Line: line, Err: ErrKeyOutsideBlock}
			}
			v, err := value.Parse(ln.Expr)
			if err != nil {
				return &ParseError{Path: c.path, Line: line, Err: err}
			}
			changed, old := c.store.SetIfChanged(current, ln.Key, v)
			if !changed {
				continue
			}
			changes++
			ev := notify.NewEvent(current.Type, current.Name, ln.Key)
			n := c.dispatcher.Fire(notify.Change{Event: ev, Old: old, New: v})
			c.logger.Debug("configuration value changed",
				"event", ev.String(),
				"listeners", n)

		case scan.KindInvalid:
			return &ParseError{Path: c.path, Line: line, Err: ErrLineSyntax}
		}
	}
	if err := sc.Err(); err != nil {
		return &ParseError{Path: c.path, Line: line, Err: fmt.Errorf("reading: %w", err)}
	}

	c.logger.Debug("configuration parsed",
		"path", c.path,
		"lines", line,
		"changes", changes)
	return nil
}
