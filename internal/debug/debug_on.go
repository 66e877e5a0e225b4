//go:build debug

package debug

import (
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
)

const Enabled = true

var logger = log.New(os.Stdout, "|DEBUG| ", 0)

var indent atomic.Int32

// Printf prints debug messages. Only available if compiled with "debug" tag
func Printf(f string, args ...interface{}) {
	logger.Printf(strings.Repeat("  ", int(indent.Load()))+f, args...)
}

// Dump dumps the objects using go-spew
func Dump(v ...interface{}) {
	spew.Dump(v...)
}

// Guard pairs an IPrintf with its IRelease so nested debug output is
// indented by call depth.
type Guard struct{}

// IPrintf prints like Printf and increases the indent level until the
// returned guard is released.
func IPrintf(f string, args ...interface{}) Guard {
	Printf(f, args...)
	indent.Add(1)
	return Guard{}
}

// IRelease decreases the indent level and prints a closing message.
func (Guard) IRelease(f string, args ...interface{}) {
	if indent.Load() > 0 {
		indent.Add(-1)
	}
	Printf(f, args...)
}
