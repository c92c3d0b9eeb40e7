package timeline

// KenBurnsTransform is the pan/zoom state of a scene image at one frame.
// Scale multiplies the image size; translations are fractions of frame
// dimensions, positive meaning right/down.
type KenBurnsTransform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// kenBurnsPreset describes one directional pan/zoom motion over a scene's
// rendered window.
type kenBurnsPreset struct {
	scaleFrom, scaleTo float64
	driftX, driftY     float64
}

// kenBurnsPresets are the fixed motion variants. Selection is
// sceneIndex mod len, never random, so identical inputs render identical
// pixels while consecutive scenes still vary.
var kenBurnsPresets = [...]kenBurnsPreset{
	{scaleFrom: 1.00, scaleTo: 1.12, driftX: 0.00, driftY: 0.00},  // slow push in
	{scaleFrom: 1.12, scaleTo: 1.00, driftX: 0.00, driftY: 0.00},  // slow pull out
	{scaleFrom: 1.08, scaleTo: 1.08, driftX: 0.04, driftY: 0.00},  // pan right
	{scaleFrom: 1.08, scaleTo: 1.08, driftX: -0.04, driftY: 0.00}, // pan left
	{scaleFrom: 1.02, scaleTo: 1.14, driftX: 0.02, driftY: -0.02}, // push in, drift up-right
	{scaleFrom: 1.14, scaleTo: 1.04, driftX: -0.02, driftY: 0.02}, // pull out, drift down-left
}

// kenBurnsAt evaluates the preset for sceneIndex at progress t (0..1 across
// the scene's extended render window). Progress passes through smoothstep
// before interpolation.
func kenBurnsAt(sceneIndex int, t float64) KenBurnsTransform {
	preset := kenBurnsPresets[sceneIndex%len(kenBurnsPresets)]
	eased := smoothstep(t)
	return KenBurnsTransform{
		Scale:      lerp(preset.scaleFrom, preset.scaleTo, eased),
		TranslateX: lerp(-preset.driftX/2, preset.driftX/2, eased),
		TranslateY: lerp(-preset.driftY/2, preset.driftY/2, eased),
	}
}
