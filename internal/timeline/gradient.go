package timeline

// GradientCard is the fallback background for a scene without an assigned
// image: a vertical two-stop gradient with the scene title rendered large
// and faint across it.
type GradientCard struct {
	TopColor     string
	BottomColor  string
	Title        string
	TitleOpacity float64
}

// gradientTitleOpacity keeps the oversized fallback title legible without
// competing with the caption overlay.
const gradientTitleOpacity = 0.18

// gradientPalette holds the fixed fallback gradients. Like the Ken-Burns
// presets these are chosen by sceneIndex mod len for reproducible renders.
var gradientPalette = [...][2]string{
	{"#1f2937", "#0b1120"}, // slate
	{"#3b0764", "#111827"}, // violet
	{"#134e4a", "#041418"}, // teal
	{"#7c2d12", "#1c0a03"}, // ember
	{"#1e3a8a", "#0a101f"}, // indigo
}

// gradientFor returns the deterministic fallback card for a scene.
func gradientFor(sceneIndex int, title string) *GradientCard {
	pair := gradientPalette[sceneIndex%len(gradientPalette)]
	return &GradientCard{
		TopColor:     pair[0],
		BottomColor:  pair[1],
		Title:        title,
		TitleOpacity: gradientTitleOpacity,
	}
}
