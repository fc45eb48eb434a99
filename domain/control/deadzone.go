package control

import "image"

// Bounds returns the deadzone rectangle centred on a frameW x frameH frame.
// Integer division matches the band test used by Steer.
func Bounds(frameW, frameH, dzW, dzH int) image.Rectangle {
	return image.Rect(frameW/2-dzW/2, frameH/2-dzH/2, frameW/2+dzW/2, frameH/2+dzH/2)
}

// outsideBand reports whether pos lies outside the centred band of width dz
// on an axis of length n.
func outsideBand(pos, n, dz int) bool {
	return pos < (n-dz)/2 || pos > (n+dz)/2
}
