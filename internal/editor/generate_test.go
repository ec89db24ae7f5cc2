package editor

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codraw/internal/app"
	"codraw/internal/raster"
	"codraw/pkg/colorutil"
)

type genResult struct {
	data []byte
	err  error
}

type genCall struct {
	model  string
	prompt string
	png    []byte
	done   chan genResult
}

// fakeGenerator records calls and blocks each one until the test releases it
// through the call's done channel.
type fakeGenerator struct {
	mu    sync.Mutex
	calls []*genCall
}

func (g *fakeGenerator) EditImage(ctx context.Context, model, prompt string, png []byte) ([]byte, error) {
	call := &genCall{model: model, prompt: prompt, png: png, done: make(chan genResult, 1)}
	g.mu.Lock()
	g.calls = append(g.calls, call)
	g.mu.Unlock()

	res := <-call.done
	return res.data, res.err
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGenerator) call(t *testing.T, i int) *genCall {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		g.mu.Lock()
		if len(g.calls) > i {
			c := g.calls[i]
			g.mu.Unlock()
			return c
		}
		g.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("generator call %d never arrived", i)
	return nil
}

func newGenEditor(t *testing.T) (*Editor, *app.Session, *fakeGenerator) {
	t.Helper()
	session := app.NewSession()
	session.SetModel("test-model")
	gen := &fakeGenerator{}
	ed, err := New(session, gen, 960, 540)
	require.NoError(t, err)
	return ed, session, gen
}

func watchEvent(s *app.Session, ev app.EventType) chan interface{} {
	ch := make(chan interface{}, 8)
	s.On(ev, func(data interface{}) { ch <- data })
	return ch
}

func waitEvent(t *testing.T, ch chan interface{}) interface{} {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("event never arrived")
		return nil
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	data, err := raster.EncodePNG(img)
	require.NoError(t, err)
	return data
}

func TestGenerateCommitsResultWithPromptLabel(t *testing.T) {
	ed, session, gen := newGenEditor(t)
	finished := watchEvent(session, app.EventGenerationFinished)

	ed.Generate("a house by a lake")
	assert.True(t, session.Generating())

	call := gen.call(t, 0)
	assert.Equal(t, "test-model", call.model)
	assert.Equal(t, "a house by a lake", call.prompt)

	call.done <- genResult{data: encodePNG(t, solidImage(100, 100, colorutil.Green))}
	waitEvent(t, finished)

	assert.False(t, session.Generating())
	assert.Equal(t, []string{"New canvas", "a house by a lake"}, labels(ed))
	assert.Equal(t, 1, ed.Cursor())
	assert.Equal(t, colorutil.Green, ed.Frame().RGBAAt(480, 270))
}

func TestGenerateFlattensAtSubmitTime(t *testing.T) {
	ed, session, gen := newGenEditor(t)
	finished := watchEvent(session, app.EventGenerationFinished)

	ed.PlaceImage(solidImage(800, 400, colorutil.Red))
	ed.Generate("keep going")

	assert.Equal(t, []string{"New canvas", "Image placed"}, labels(ed))
	_, ok := ed.Overlay()
	assert.False(t, ok)

	call := gen.call(t, 0)
	sent, err := raster.DecodeBytes(call.png)
	require.NoError(t, err)
	assert.Equal(t, colorutil.Red, raster.ToRGBA(sent).RGBAAt(480, 270))

	call.done <- genResult{err: errors.New("never mind")}
	waitEvent(t, finished)
}

func TestGenerationFailureLeavesStateUntouched(t *testing.T) {
	ed, session, gen := newGenEditor(t)
	failed := watchEvent(session, app.EventGenerationFailed)

	ed.Generate("doomed")
	call := gen.call(t, 0)
	call.done <- genResult{err: errors.New("quota exhausted")}

	msg := waitEvent(t, failed)
	assert.Contains(t, msg.(string), "quota exhausted")
	assert.False(t, session.Generating())
	assert.Equal(t, []string{"New canvas"}, labels(ed))
	assert.Equal(t, 0, ed.Cursor())
	assert.Equal(t, colorutil.White, ed.Frame().RGBAAt(480, 270))
}

func TestGenerateUndecodableResultIsFailure(t *testing.T) {
	ed, session, gen := newGenEditor(t)
	failed := watchEvent(session, app.EventGenerationFailed)

	ed.Generate("garbage in")
	call := gen.call(t, 0)
	call.done <- genResult{data: []byte("not a png")}

	waitEvent(t, failed)
	assert.False(t, session.Generating())
	assert.Equal(t, []string{"New canvas"}, labels(ed))
}

func TestStaleGenerationResultDiscarded(t *testing.T) {
	ed, session, gen := newGenEditor(t)
	finished := watchEvent(session, app.EventGenerationFinished)

	ed.Generate("first")
	ed.Generate("second")

	first := gen.call(t, 0)
	second := gen.call(t, 1)

	second.done <- genResult{data: encodePNG(t, solidImage(100, 100, colorutil.Green))}
	waitEvent(t, finished)
	require.Equal(t, []string{"New canvas", "second"}, labels(ed))

	// The superseded request completing afterwards must change nothing.
	first.done <- genResult{data: encodePNG(t, solidImage(100, 100, colorutil.Blue))}
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, []string{"New canvas", "second"}, labels(ed))
	assert.Equal(t, colorutil.Green, ed.Frame().RGBAAt(480, 270))
	assert.False(t, session.Generating())
}

func TestFinishGenerationIgnoresSupersededSequence(t *testing.T) {
	ed, session, _ := newGenEditor(t)
	ed.genSeq = 2

	green := encodePNG(t, solidImage(100, 100, colorutil.Green))
	ed.finishGeneration(1, "old prompt", green, nil)

	assert.Equal(t, []string{"New canvas"}, labels(ed))
	assert.False(t, session.Generating())
	assert.Equal(t, colorutil.White, ed.Frame().RGBAAt(480, 270))
}

func TestGenerateIgnoresBlankPrompt(t *testing.T) {
	ed, session, gen := newGenEditor(t)

	ed.Generate("   ")

	assert.Equal(t, 0, gen.callCount())
	assert.False(t, session.Generating())
	assert.Equal(t, []string{"New canvas"}, labels(ed))
}
