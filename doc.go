/*
Package gokachu is a live camera toolkit: it pulls frames from a camera, runs them
through a selectable filter, detector or tracker, and layers session behaviors on
top of the raw frame stream: countdown-gated recording, a four shot photobooth
which composes a contact sheet, and a detect, track and reacquire loop for
following a colored object or a face.

The package provides a command line interface with an interactive menu.
To check the supported flags type:

	$ gokachu --help

The session core is independent of the camera and window implementation, so it
can be driven by any type satisfying the FrameSource, Display and Store interfaces:

	package main

	import (
		"log"

		"github.com/esimov/gokachu"
	)

	func main() {
		s := gokachu.NewSession(gokachu.ModeBlur, source, display, store)
		if err := s.Run(); err != nil {
			log.Fatal(err)
		}
	}
*/
package gokachu
