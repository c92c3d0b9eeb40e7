package timeline

// SceneLayer is one background layer of a frame. Layers are emitted in
// ascending scene index; the compositor draws later entries on top.
type SceneLayer struct {
	SceneIndex int
	Title      string
	ImageRef   string
	Opacity    float64
	Transform  KenBurnsTransform
	Gradient   *GradientCard
}

// Frame is the full visual state at one frame index.
type Frame struct {
	Index      int
	Background []SceneLayer
	Caption    *CaptionFrame
}

// RenderFrame evaluates the composition at frame f. It is a pure function
// of the composition, the frame index, and the caption hint; evaluating
// frames out of order is safe. The returned hint feeds the next sequential
// evaluation of the same pass.
func (c *Composition) RenderFrame(f int, hint LineHint) (Frame, LineHint) {
	t := c.clock.SecondsForFrame(f)
	frame := Frame{Index: f}

	if len(c.spans) == 0 {
		// No valid scenes at all: hold a static title card so the render
		// still produces output.
		frame.Background = []SceneLayer{{
			Opacity:   1.0,
			Transform: KenBurnsTransform{Scale: 1.0},
			Title:     c.title,
			Gradient:  gradientFor(0, c.title),
		}}
	} else {
		for _, span := range c.spans {
			if f < span.StartFrame || f >= span.RenderEndFrame {
				continue
			}
			local := f - span.StartFrame
			total := span.RenderEndFrame - span.StartFrame
			denom := total - 1
			if denom < 1 {
				denom = 1
			}

			layer := SceneLayer{
				SceneIndex: span.Scene.Index,
				Title:      span.Scene.Title,
				ImageRef:   span.Scene.ImageRef,
				Opacity:    layerOpacity(local, total, span.FadeInFrames, span.FadeOutFrames),
				Transform:  kenBurnsAt(span.Scene.Index, float64(local)/float64(denom)),
			}
			if span.Scene.ImageRef == "" {
				layer.Gradient = gradientFor(span.Scene.Index, span.Scene.Title)
			}
			frame.Background = append(frame.Background, layer)
		}
	}

	caption, next := c.captionAt(t, hint)
	frame.Caption = caption
	return frame, next
}
