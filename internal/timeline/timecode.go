package timeline

import "fmt"

// Timecode formats a frame number as HH:MM:SS:FF at the given frame
// rate. A non-positive fps is treated as 24.
func Timecode(frame, fps int) string {
	if fps <= 0 {
		fps = 24
	}
	if frame < 0 {
		frame = 0
	}
	seconds := frame / fps
	ff := frame % fps
	hh := seconds / 3600
	mm := (seconds / 60) % 60
	ss := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hh, mm, ss, ff)
}
