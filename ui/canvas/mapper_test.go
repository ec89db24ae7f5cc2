package canvas

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

func TestDisplayToCanvasScalesPerAxis(t *testing.T) {
	// Widget stretched to double width but native height.
	display := fyne.NewSize(1920, 540)

	x, y := DisplayToCanvas(fyne.NewPos(960, 270), display, 960, 540)

	assert.InDelta(t, 480, x, 1e-6)
	assert.InDelta(t, 270, y, 1e-6)
}

func TestDisplayToCanvasIdentityAtNativeSize(t *testing.T) {
	display := fyne.NewSize(960, 540)

	x, y := DisplayToCanvas(fyne.NewPos(123, 45), display, 960, 540)

	assert.InDelta(t, 123, x, 1e-4)
	assert.InDelta(t, 45, y, 1e-4)
}

func TestDisplayToCanvasZeroSizeIsSafe(t *testing.T) {
	x, y := DisplayToCanvas(fyne.NewPos(10, 10), fyne.NewSize(0, 0), 960, 540)

	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestCanvasToDisplayRoundTrip(t *testing.T) {
	display := fyne.NewSize(480, 800)

	dx, dy := CanvasToDisplay(300, 200, display, 960, 540)
	x, y := DisplayToCanvas(fyne.NewPos(float32(dx), float32(dy)), display, 960, 540)

	assert.InDelta(t, 300, x, 1e-3)
	assert.InDelta(t, 200, y, 1e-3)
}
