package goutil

import (
	"log"
	"runtime/debug"
)

// SafeGo runs fn on a new goroutine. The simulation log is often the only
// surviving output of a batch run, so a panic is written there with its
// stack before being re-raised.
func SafeGo(logger *log.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}
