package popup

import "image/color"

// Font is a loaded font face owned by the window that loaded it.
type Font interface {
	Size() float64
}

// Window is the drawing surface a session runs on. Implementations are not
// safe for concurrent use.
type Window interface {
	LoadFont(path string, size float64) (Font, error)
	UnloadFont(f Font)
	MeasureText(f Font, text string) Point

	// ShouldClose reports a close request from the window manager.
	ShouldClose() bool
	Input() Input

	BeginFrame()
	Clear(c color.NRGBA)
	DrawText(f Font, text string, at Point, c color.NRGBA)
	DrawRoundedRect(r Rect, radius float64, c color.NRGBA)
	// EndFrame presents the frame, waits for the display and polls events.
	EndFrame()

	Close() error
}

// WindowOptions describes the popup window.
type WindowOptions struct {
	Width, Height int
	Title         string
	Floating      bool
	Undecorated   bool
	HighDPI       bool
}

// Opener creates a window.
type Opener func(WindowOptions) (Window, error)
