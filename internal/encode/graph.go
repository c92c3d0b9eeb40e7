package encode

import (
	"fmt"
	"strings"

	"reelforge/internal/timeline"
)

// graphParams carries the encoder settings the filter graph depends on.
type graphParams struct {
	Width   int
	Height  int
	FPS     int
	CRF     int
	Preset  string
	ASSPath string
}

// sceneInput pairs a scene span with the sampled visual state the filter
// graph needs: the Ken-Burns motion endpoints and the gradient fallback.
type sceneInput struct {
	span      timeline.SceneSpan
	startTx   timeline.KenBurnsTransform
	endTx     timeline.KenBurnsTransform
	gradient  *timeline.GradientCard
	imageRef  string
	startSec  float64
	renderSec float64
	fadeInSec float64
	fadeOut   float64
}

// collectSceneInputs samples the composition at each span's first and last
// rendered frame to recover the motion endpoints without re-deriving the
// preset tables.
func collectSceneInputs(comp *timeline.Composition) []sceneInput {
	clock := comp.Clock()
	spans := comp.Spans()
	inputs := make([]sceneInput, 0, len(spans))
	for _, span := range spans {
		first, _ := comp.RenderFrame(span.StartFrame, timeline.NoLine)
		last, _ := comp.RenderFrame(span.RenderEndFrame-1, timeline.NoLine)

		in := sceneInput{
			span:      span,
			imageRef:  span.Scene.ImageRef,
			startSec:  clock.SecondsForFrame(span.StartFrame),
			renderSec: clock.SecondsForFrame(span.RenderEndFrame - span.StartFrame),
			fadeInSec: clock.SecondsForFrame(span.FadeInFrames),
			fadeOut:   clock.SecondsForFrame(span.FadeOutFrames),
		}
		if layer, ok := layerForScene(first, span.Scene.Index); ok {
			in.startTx = layer.Transform
			in.gradient = layer.Gradient
		}
		if layer, ok := layerForScene(last, span.Scene.Index); ok {
			in.endTx = layer.Transform
		}
		inputs = append(inputs, in)
	}
	return inputs
}

func layerForScene(frame timeline.Frame, sceneIndex int) (timeline.SceneLayer, bool) {
	for _, layer := range frame.Background {
		if layer.SceneIndex == sceneIndex {
			return layer, true
		}
	}
	return timeline.SceneLayer{}, false
}

// buildRenderArgs constructs the complete ffmpeg argument list for one
// composition. The caller owns writing the ASS file referenced by
// params.ASSPath before running.
func buildRenderArgs(comp *timeline.Composition, params graphParams) []string {
	clock := comp.Clock()
	totalSec := clock.SecondsForFrame(comp.TotalFrames())
	scenes := collectSceneInputs(comp)
	audio := comp.Audio()

	// With no usable scenes the timeline holds a static title card; render
	// it as a single full-length gradient layer.
	if len(scenes) == 0 && comp.TotalFrames() > 0 {
		frame, _ := comp.RenderFrame(0, timeline.NoLine)
		if len(frame.Background) > 0 {
			scenes = append(scenes, sceneInput{
				gradient:  frame.Background[0].Gradient,
				renderSec: totalSec,
			})
		}
	}

	args := []string{"-y", "-hide_banner"}

	// Input 0 is the black canvas every scene layer composites onto.
	args = append(args, "-f", "lavfi", "-t", formatSeconds(totalSec),
		"-i", fmt.Sprintf("color=c=black:s=%dx%d:r=%d", params.Width, params.Height, params.FPS))

	// Scene inputs: a single still per image scene (zoompan expands it into
	// the frame sequence) and a generated gradient card otherwise.
	for _, scene := range scenes {
		if scene.imageRef != "" {
			args = append(args, "-i", scene.imageRef)
		} else {
			args = append(args, "-f", "lavfi", "-t", formatSeconds(scene.renderSec),
				"-i", gradientSource(scene.gradient, params))
		}
	}

	audioInputs := 0
	narrationIndex := -1
	musicIndex := -1
	if audio.NarrationRef != "" {
		narrationIndex = 1 + len(scenes)
		args = append(args, "-i", audio.NarrationRef)
		audioInputs++
	}
	if audio.MusicRef != "" {
		musicIndex = 1 + len(scenes) + audioInputs
		if audio.MusicLoop {
			args = append(args, "-stream_loop", "-1")
		}
		args = append(args, "-i", audio.MusicRef)
		audioInputs++
	}

	filter := buildFilterGraph(scenes, audio, narrationIndex, musicIndex, params)
	args = append(args, "-filter_complex", filter, "-map", "[vout]")
	if narrationIndex >= 0 {
		args = append(args, "-map", "[aout]", "-c:a", "aac", "-b:a", "192k")
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", params.Preset,
		"-crf", fmt.Sprintf("%d", params.CRF),
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%d", params.FPS),
		"-t", formatSeconds(totalSec),
		"-movflags", "+faststart",
	)
	return args
}

// buildFilterGraph chains scene layers bottom-up in span order so later
// scenes composite on top, then burns the caption track and mixes audio.
func buildFilterGraph(scenes []sceneInput, audio timeline.AudioPlan, narrationIndex, musicIndex int, params graphParams) string {
	var parts []string

	for i, scene := range scenes {
		inputIdx := i + 1
		label := fmt.Sprintf("s%d", i)
		parts = append(parts, sceneFilter(scene, inputIdx, label, params))
	}

	// Overlay chain onto the black canvas.
	prev := "[0:v]"
	for i := range scenes {
		out := fmt.Sprintf("[ov%d]", i)
		if i == len(scenes)-1 {
			out = "[video]"
		}
		parts = append(parts, fmt.Sprintf("%s[s%d]overlay=eof_action=pass%s", prev, i, out))
		prev = out
	}
	if len(scenes) == 0 {
		parts = append(parts, "[0:v]null[video]")
	}

	if params.ASSPath != "" {
		parts = append(parts, fmt.Sprintf("[video]ass=%s[vout]", escapeFilterPath(params.ASSPath)))
	} else {
		parts = append(parts, "[video]null[vout]")
	}

	switch {
	case narrationIndex >= 0 && musicIndex >= 0:
		parts = append(parts,
			fmt.Sprintf("[%d:a]volume=%s[nar]", narrationIndex, formatSeconds(audio.NarrationVolume)),
			fmt.Sprintf("[%d:a]volume=%s[mus]", musicIndex, formatSeconds(audio.MusicVolume)),
			"[nar][mus]amix=inputs=2:duration=first:normalize=0[aout]",
		)
	case narrationIndex >= 0:
		parts = append(parts, fmt.Sprintf("[%d:a]volume=%s[aout]", narrationIndex, formatSeconds(audio.NarrationVolume)))
	}

	return strings.Join(parts, ";")
}

// sceneFilter prepares one scene stream: cover-scale, Ken-Burns zoompan,
// alpha fades, and a PTS shift to the scene's slot on the global clock.
// Gradient cards skip the zoompan; the motion of a smooth ramp is not
// visible, and zoompan would misbehave on a multi-frame source anyway.
func sceneFilter(scene sceneInput, inputIdx int, label string, params graphParams) string {
	frames := scene.span.RenderEndFrame - scene.span.StartFrame
	var steps []string

	if scene.imageRef != "" {
		steps = append(steps, fmt.Sprintf(
			"scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
			params.Width, params.Height, params.Width, params.Height))
		steps = append(steps, zoompanExpr(scene.startTx, scene.endTx, frames, params))
	}

	steps = append(steps, "format=yuva420p")
	if scene.fadeInSec > 0 {
		steps = append(steps, fmt.Sprintf("fade=t=in:st=0:d=%s:alpha=1", formatSeconds(scene.fadeInSec)))
	}
	if scene.fadeOut > 0 {
		steps = append(steps, fmt.Sprintf("fade=t=out:st=%s:d=%s:alpha=1",
			formatSeconds(scene.renderSec-scene.fadeOut), formatSeconds(scene.fadeOut)))
	}
	steps = append(steps, fmt.Sprintf("setpts=PTS-STARTPTS+%s/TB", formatSeconds(scene.startSec)))

	return fmt.Sprintf("[%d:v]%s[%s]", inputIdx, strings.Join(steps, ","), label)
}

// zoompanExpr renders the sampled motion endpoints as a zoompan filter with
// smoothstep easing evaluated inline. The still input carries one frame;
// zoompan's d expands it into the scene's full frame sequence.
func zoompanExpr(start, end timeline.KenBurnsTransform, frames int, params graphParams) string {
	if frames < 1 {
		frames = 1
	}
	var z, x, y string
	if frames < 2 || start == end {
		z = fmt.Sprintf("%.4f", start.Scale)
		x = fmt.Sprintf("iw/2-(iw/zoom/2)+%.4f*iw", start.TranslateX)
		y = fmt.Sprintf("ih/2-(ih/zoom/2)+%.4f*ih", start.TranslateY)
	} else {
		denom := frames - 1
		eased := fmt.Sprintf("(pow(on/%d\\,2)*(3-2*on/%d))", denom, denom)
		z = fmt.Sprintf("%.4f+%.4f*%s", start.Scale, end.Scale-start.Scale, eased)
		x = fmt.Sprintf("iw/2-(iw/zoom/2)+(%.4f+%.4f*%s)*iw", start.TranslateX, end.TranslateX-start.TranslateX, eased)
		y = fmt.Sprintf("ih/2-(ih/zoom/2)+(%.4f+%.4f*%s)*ih", start.TranslateY, end.TranslateY-start.TranslateY, eased)
	}
	return fmt.Sprintf("zoompan=z='%s':x='%s':y='%s':d=%d:s=%dx%d:fps=%d",
		z, x, y, frames, params.Width, params.Height, params.FPS)
}

// gradientSource renders the fallback card as a lavfi gradients input with
// the title drawn large and faint across the center.
func gradientSource(card *timeline.GradientCard, params graphParams) string {
	top, bottom := "0x1f2937", "0x0b1120"
	title := ""
	titleOpacity := 0.18
	if card != nil {
		top = hexColor(card.TopColor)
		bottom = hexColor(card.BottomColor)
		title = card.Title
		titleOpacity = card.TitleOpacity
	}
	src := fmt.Sprintf("gradients=s=%dx%d:c0=%s:c1=%s:x0=%d:y0=0:x1=%d:y1=%d",
		params.Width, params.Height, top, bottom, params.Width/2, params.Width/2, params.Height)
	if title != "" {
		src += fmt.Sprintf(",drawtext=text='%s':fontcolor=white@%.2f:fontsize=h/8:x=(w-text_w)/2:y=(h-text_h)/2",
			escapeDrawText(title), titleOpacity)
	}
	return src
}

func hexColor(color string) string {
	color = strings.TrimSpace(color)
	if strings.HasPrefix(color, "#") {
		return "0x" + color[1:]
	}
	if color == "" {
		return "0x000000"
	}
	return color
}

func escapeDrawText(text string) string {
	replacer := strings.NewReplacer(`\`, `\\`, "'", `\'`, ":", `\:`, "%", `\%`, ",", `\,`)
	return replacer.Replace(text)
}

func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(`\`, `\\`, ":", `\:`, "'", `\'`)
	return replacer.Replace(path)
}

// formatSeconds renders a float without trailing noise for filter strings.
func formatSeconds(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
