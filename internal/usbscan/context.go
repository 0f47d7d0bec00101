package usbscan

import (
	"fmt"

	"github.com/google/gousb"
)

// Acquire initializes the host USB subsystem and returns the context that
// every subsequent enumeration pass uses. gousb reports a libusb
// initialization failure by panicking; that is recovered here and returned
// as an error so the caller can decide to shut down gracefully instead of
// crash-looping on hosts without USB support.
//
// Only one context is needed per process. The caller owns it and must close
// it on exit.
func Acquire() (ctx *gousb.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("initializing usb context: %v", r)
		}
	}()
	return newContext(), nil
}

// newContext is swapped out in tests to simulate hosts without USB support.
var newContext = gousb.NewContext
