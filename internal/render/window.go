package render

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/cptspacemanspiff/battery-alert/internal/popup"
)

// Window is a GLFW window that shows a Canvas. GLFW must be used from the
// main OS thread; the caller is responsible for runtime.LockOSThread.
type Window struct {
	*Canvas
	win *glfw.Window

	// cursorScale converts GLFW screen coordinates to logical coordinates.
	cursorScale float64
}

var _ popup.Window = (*Window)(nil)

// Open initializes GLFW and creates the popup window. It matches popup.Opener.
func Open(opts popup.WindowOptions) (popup.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Floating, boolHint(opts.Floating))
	glfw.WindowHint(glfw.Decorated, boolHint(!opts.Undecorated))
	glfw.WindowHint(glfw.ScaleToMonitor, boolHint(opts.HighDPI))
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("init gl: %w", err)
	}
	glfw.SwapInterval(1)

	ww, wh := win.GetSize()
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			win.SetPos((mode.Width-ww)/2, (mode.Height-wh)/2)
		}
	}
	win.Show()

	fbw, _ := win.GetFramebufferSize()
	w := &Window{
		Canvas:      NewCanvas(opts.Width, opts.Height, float64(fbw)/float64(opts.Width)),
		win:         win,
		cursorScale: float64(ww) / float64(opts.Width),
	}
	if w.cursorScale <= 0 {
		w.cursorScale = 1
	}
	return w, nil
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) Input() popup.Input {
	x, y := w.win.GetCursorPos()
	return popup.Input{
		Cursor:      popup.Point{X: x / w.cursorScale, Y: y / w.cursorScale},
		PrimaryDown: w.win.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press,
	}
}

func (w *Window) BeginFrame() {}

// EndFrame uploads the canvas, swaps buffers (blocking on vsync) and polls events.
func (w *Window) EndFrame() {
	fbw, fbh := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	img := w.Image()
	gl.RasterPos2f(-1, 1)
	gl.PixelZoom(1, -1)
	gl.DrawPixels(int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	w.win.SwapBuffers()
	glfw.PollEvents()
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() error {
	w.win.Destroy()
	glfw.Terminate()
	return nil
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}
