package encode

import (
	"strings"
	"testing"

	"reelforge/internal/align"
	"reelforge/internal/timeline"
	"reelforge/internal/transcript"
)

func testParams() graphParams {
	return graphParams{Width: 1080, Height: 1920, FPS: 30, CRF: 21, Preset: "medium"}
}

func twoSceneComposition(opts ...timeline.Option) *timeline.Composition {
	scenes := []align.Scene{
		{Index: 0, Title: "Opening", StartSec: 0, EndSec: 2, ImageRef: "/assets/a.jpg"},
		{Index: 1, Title: "Big Finish", StartSec: 2, EndSec: 4},
	}
	words := []transcript.Word{
		{Text: "hello", StartSec: 0, EndSec: 1.0},
		{Text: "world", StartSec: 1.0, EndSec: 4.0},
	}
	return timeline.NewComposition(timeline.NewClock(30), timeline.Portrait, scenes, words, opts...)
}

func filterComplexArg(t *testing.T, args []string) string {
	t.Helper()
	for i, a := range args {
		if a == "-filter_complex" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("no -filter_complex in args: %v", args)
	return ""
}

func TestCollectSceneInputsSamplesMotionEndpoints(t *testing.T) {
	comp := twoSceneComposition()
	inputs := collectSceneInputs(comp)
	if len(inputs) != 2 {
		t.Fatalf("expected 2 scene inputs, got %d", len(inputs))
	}

	first := inputs[0]
	if first.imageRef != "/assets/a.jpg" {
		t.Errorf("imageRef = %q", first.imageRef)
	}
	if first.startSec != 0 {
		t.Errorf("startSec = %v", first.startSec)
	}
	// The first span extends past the nominal boundary by the cross-fade
	// overlap: 2.0s plus 0.6s.
	if first.renderSec != 2.6 {
		t.Errorf("renderSec = %v, want 2.6", first.renderSec)
	}
	if first.startTx.Scale != 1.0 {
		t.Errorf("start scale = %v, want 1.0", first.startTx.Scale)
	}
	if first.endTx.Scale <= first.startTx.Scale {
		t.Errorf("push-in preset should end larger: start %v end %v", first.startTx.Scale, first.endTx.Scale)
	}

	second := inputs[1]
	if second.imageRef != "" {
		t.Errorf("gradient scene should have no image, got %q", second.imageRef)
	}
	if second.gradient == nil {
		t.Fatal("gradient scene missing gradient card")
	}
	if second.gradient.Title != "Big Finish" {
		t.Errorf("gradient title = %q", second.gradient.Title)
	}
	if second.fadeOut != 0.5 {
		t.Errorf("final fade out = %v, want 0.5", second.fadeOut)
	}
}

func TestBuildRenderArgsEncoderSettings(t *testing.T) {
	comp := twoSceneComposition()
	args := buildRenderArgs(comp, testParams())
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-c:v libx264",
		"-preset medium",
		"-crf 21",
		"-pix_fmt yuv420p",
		"-r 30",
		"-movflags +faststart",
		"-t 4 -movflags",
		"-i /assets/a.jpg",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "-map [aout]") {
		t.Error("audio map present without narration input")
	}
}

func TestBuildRenderArgsGradientInput(t *testing.T) {
	comp := twoSceneComposition()
	args := buildRenderArgs(comp, testParams())
	joined := strings.Join(args, " ")

	if !strings.Contains(joined, "gradients=s=1080x1920:c0=0x3b0764:c1=0x111827") {
		t.Errorf("gradient source missing or wrong palette:\n%s", joined)
	}
	if !strings.Contains(joined, "drawtext=text='Big Finish'") {
		t.Errorf("gradient title not drawn:\n%s", joined)
	}
}

func TestBuildFilterGraphOverlayAndFades(t *testing.T) {
	comp := twoSceneComposition()
	params := testParams()
	params.ASSPath = "captions.ass"
	filter := filterComplexArg(t, buildRenderArgs(comp, params))

	for _, want := range []string{
		"[0:v][s0]overlay=eof_action=pass[ov0]",
		"[ov0][s1]overlay=eof_action=pass[video]",
		"[video]ass=captions.ass[vout]",
		"fade=t=in:st=0:d=0.3:alpha=1",
		"fade=t=in:st=0:d=0.6:alpha=1",
		"fade=t=out:st=1.5:d=0.5:alpha=1",
		"setpts=PTS-STARTPTS+2/TB",
		"format=yuva420p",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter missing %q:\n%s", want, filter)
		}
	}
	// Later scenes must composite on top, so s1 overlays after s0.
	if strings.Index(filter, "[s0]overlay") > strings.Index(filter, "[s1]overlay") {
		t.Errorf("overlay order wrong:\n%s", filter)
	}
}

func TestBuildFilterGraphZoompanEasing(t *testing.T) {
	comp := twoSceneComposition()
	filter := filterComplexArg(t, buildRenderArgs(comp, testParams()))

	// Scene 0 uses the push-in preset: 1.00 to 1.12 over the extended span.
	if !strings.Contains(filter, "zoompan=z='1.0000+0.1200*") {
		t.Errorf("push-in zoompan missing:\n%s", filter)
	}
	if !strings.Contains(filter, "pow(") {
		t.Errorf("expected smoothstep easing in zoompan:\n%s", filter)
	}
	// The gradient card renders static.
	if got := strings.Count(filter, "zoompan="); got != 1 {
		t.Errorf("expected 1 zoompan, got %d:\n%s", got, filter)
	}
}

func TestBuildRenderArgsAudioMix(t *testing.T) {
	comp := twoSceneComposition(
		timeline.WithNarration("/audio/narration.mp3"),
		timeline.WithMusic("/audio/bed.mp3"),
	)
	args := buildRenderArgs(comp, testParams())
	joined := strings.Join(args, " ")
	filter := filterComplexArg(t, args)

	if !strings.Contains(joined, "-stream_loop -1 -i /audio/bed.mp3") {
		t.Errorf("music should loop:\n%s", joined)
	}
	if !strings.Contains(joined, "-map [aout]") {
		t.Errorf("audio output not mapped:\n%s", joined)
	}
	for _, want := range []string{
		"[3:a]volume=1[nar]",
		"[4:a]volume=0.12[mus]",
		"[nar][mus]amix=inputs=2:duration=first:normalize=0[aout]",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter missing %q:\n%s", want, filter)
		}
	}
}

func TestBuildRenderArgsNarrationOnly(t *testing.T) {
	comp := twoSceneComposition(timeline.WithNarration("/audio/narration.mp3"))
	filter := filterComplexArg(t, buildRenderArgs(comp, testParams()))

	if !strings.Contains(filter, "[3:a]volume=1[aout]") {
		t.Errorf("narration passthrough missing:\n%s", filter)
	}
	if strings.Contains(filter, "amix") {
		t.Errorf("unexpected amix without music:\n%s", filter)
	}
}

func TestBuildRenderArgsFallsBackToTitleCard(t *testing.T) {
	words := []transcript.Word{{Text: "hello", StartSec: 0, EndSec: 2}}
	comp := timeline.NewComposition(timeline.NewClock(30), timeline.Portrait, nil, words,
		timeline.WithTitle("Standalone"))
	args := buildRenderArgs(comp, testParams())
	joined := strings.Join(args, " ")

	if !strings.Contains(joined, "gradients=") {
		t.Errorf("expected gradient title card without scenes:\n%s", joined)
	}
	if !strings.Contains(joined, "drawtext=text='Standalone'") {
		t.Errorf("title card should carry the project title:\n%s", joined)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{0.12, "0.12"},
		{2.6, "2.6"},
		{1.234, "1.234"},
	}
	for _, tc := range cases {
		if got := formatSeconds(tc.in); got != tc.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeDrawText(t *testing.T) {
	got := escapeDrawText("100%: it's done, really")
	want := `100\%\: it\'s done\, really`
	if got != want {
		t.Errorf("escapeDrawText = %q, want %q", got, want)
	}
}
