package xr

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	buttonWidth    = 160
	buttonHeight   = 40
	buttonMargin   = 20
	buttonFontSize = 20
)

var (
	buttonColor      = rl.NewColor(0, 0, 0, 160)
	buttonHoverColor = rl.NewColor(0, 0, 0, 220)
	buttonBorder     = rl.NewColor(255, 255, 255, 200)
)

// Button is the immersive entry control, anchored bottom-centre. It is hidden
// when immersive sessions are not supported.
type Button struct {
	Visible bool
}

func (b *Button) rect() rl.Rectangle {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	return rl.NewRectangle((w-buttonWidth)/2, h-buttonHeight-buttonMargin, buttonWidth, buttonHeight)
}

// Clicked reports whether the button was clicked this frame.
func (b *Button) Clicked() bool {
	if !b.Visible || !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}
	return rl.CheckCollisionPointRec(rl.GetMousePosition(), b.rect())
}

// Hovered reports whether the mouse is over the button. The viewer ignores
// orbit drags that start on it.
func (b *Button) Hovered() bool {
	return b.Visible && rl.CheckCollisionPointRec(rl.GetMousePosition(), b.rect())
}

// Draw draws the button labelled for the current session state.
func (b *Button) Draw(active bool) {
	if !b.Visible {
		return
	}
	r := b.rect()
	bg := buttonColor
	if b.Hovered() {
		bg = buttonHoverColor
	}
	rl.DrawRectangleRec(r, bg)
	rl.DrawRectangleLinesEx(r, 1, buttonBorder)
	label := "ENTER VR"
	if active {
		label = "EXIT VR"
	}
	tw := rl.MeasureText(label, buttonFontSize)
	rl.DrawText(label, int32(r.X)+(buttonWidth-tw)/2, int32(r.Y)+(buttonHeight-buttonFontSize)/2, buttonFontSize, rl.White)
}
