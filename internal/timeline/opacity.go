package timeline

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp linearly interpolates between a and b at progress t in [0, 1].
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothstep is the ease-in-out curve applied to Ken-Burns progress:
// quadratic ease-in below the midpoint, mirrored ease-out above it. Linear
// motion reads as mechanical; this does not.
func smoothstep(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	d := -2*t + 2
	return 1 - d*d/2
}

// layerOpacity computes a scene layer's opacity at a local frame. fadeIn and
// fadeOut are frame counts measured from the layer's start and end
// respectively; zero disables that ramp. Both ramps are linear and the
// result takes the more restrictive of the two, so a layer that is still
// fading in while already fading out never pops to full brightness.
func layerOpacity(local, total, fadeIn, fadeOut int) float64 {
	in := 1.0
	if fadeIn > 0 {
		in = clamp01(float64(local) / float64(fadeIn))
	}
	out := 1.0
	if fadeOut > 0 {
		out = clamp01(float64(total-local) / float64(fadeOut))
	}
	if out < in {
		return out
	}
	return in
}
