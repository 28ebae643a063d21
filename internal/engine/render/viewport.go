package render

// renderSize returns the pixel size the scene is drawn at for a window of
// width x height screen units on a display with deviceRatio pixels per unit,
// never exceeding ratioCap pixels per unit. scaled reports whether that is
// smaller than the drawable, in which case the frame is upscaled on blit.
func renderSize(width, height int, deviceRatio, ratioCap float32) (w, h int32, scaled bool) {
	if deviceRatio <= 0 {
		deviceRatio = 1
	}
	ratio := deviceRatio
	if ratioCap > 0 && ratio > ratioCap {
		ratio = ratioCap
	}
	w = max(int32(float32(width)*ratio+0.5), 1)
	h = max(int32(float32(height)*ratio+0.5), 1)
	return w, h, ratio < deviceRatio
}
