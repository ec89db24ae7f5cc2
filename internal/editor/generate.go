package editor

import (
	"context"
	"image"
	"log"
	"strings"

	"codraw/internal/app"
	"codraw/internal/raster"
)

// Generator produces a replacement canvas image from the current canvas and
// a text prompt.
type Generator interface {
	EditImage(ctx context.Context, model, prompt string, png []byte) ([]byte, error)
}

// Generate flattens any pending overlay, snapshots the canvas and sends it
// with the prompt to the generator on a background goroutine. Each call
// supersedes the previous one: a result arriving for an older request is
// discarded entirely, success or failure.
func (e *Editor) Generate(prompt string) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return
	}

	e.mu.Lock()
	gen := e.gen
	if gen == nil {
		e.mu.Unlock()
		return
	}
	flattened := e.flattenLocked(labelImagePlaced)
	png, err := raster.EncodePNG(e.frame)
	if err != nil {
		e.mu.Unlock()
		log.Printf("failed to encode canvas for generation: %v", err)
		return
	}
	e.genSeq++
	seq := e.genSeq
	e.mu.Unlock()

	if flattened {
		e.session.Emit(app.EventFrameChanged, nil)
		e.session.Emit(app.EventHistoryChanged, nil)
	}
	e.session.SetGenerating(true)

	model := e.session.Model()
	go func() {
		data, err := gen.EditImage(context.Background(), model, prompt, png)
		e.finishGeneration(seq, prompt, data, err)
	}()
}

// SetGenerator swaps the generation backend. Requests already in flight
// finish against the old backend and are sequenced as usual.
func (e *Editor) SetGenerator(gen Generator) {
	e.mu.Lock()
	e.gen = gen
	e.mu.Unlock()
}

// finishGeneration lands one generation result. Only the latest request may
// touch the editor; anything older is logged and dropped.
func (e *Editor) finishGeneration(seq uint64, prompt string, data []byte, genErr error) {
	e.mu.Lock()
	if seq != e.genSeq {
		e.mu.Unlock()
		log.Printf("discarding superseded generation result (request %d)", seq)
		return
	}

	if genErr == nil {
		var img image.Image
		img, genErr = raster.DecodeBytes(data)
		if genErr == nil {
			frame := raster.NewCanvas(e.width, e.height)
			raster.Replace(frame, img)
			e.frame = frame
			e.commitLocked(prompt)
		}
	}
	e.mu.Unlock()

	e.session.SetGenerating(false)
	if genErr != nil {
		log.Printf("generation failed: %v", genErr)
		e.session.Emit(app.EventGenerationFailed, genErr.Error())
		return
	}
	e.session.Emit(app.EventFrameChanged, nil)
	e.session.Emit(app.EventHistoryChanged, nil)
}
