package effect

import (
	"github.com/stretchr/testify/mock"

	"github.com/jmylchreest/slidefx/internal/geom"
)

type fakeHost struct {
	screen     geom.RectF
	workArea   geom.RectF
	fullScreen bool
	locked     bool
	repaints   []geom.RectF
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		screen:   geom.Rect(0, 0, 1920, 1080),
		workArea: geom.Rect(0, 0, 1920, 1040),
	}
}

func (h *fakeHost) ClientArea(kind AreaKind, _ Window) geom.RectF {
	if kind == AreaMaximize {
		return h.workArea
	}
	return h.screen
}

func (h *fakeHost) ActiveFullScreenEffect() bool { return h.fullScreen }
func (h *fakeHost) IsScreenLocked() bool         { return h.locked }
func (h *fakeHost) AddRepaint(r geom.RectF)      { h.repaints = append(h.repaints, r) }

type mockToken struct {
	mock.Mock
}

func (m *mockToken) Release() {
	m.Called()
}

func newToken() *mockToken {
	tok := &mockToken{}
	tok.On("Release").Return().Once()
	return tok
}

type fakeWindow struct {
	id       WindowID
	frame    geom.RectF
	shadow   float64
	kind     string
	deleted  bool
	grabs    map[GrabRole]any
	blur     bool
	contrast bool
	repaints int

	tokens  []*mockToken
	reasons []LifetimeReason
}

func newNotification(id string, frame geom.RectF) *fakeWindow {
	return &fakeWindow{
		id:     WindowID(id),
		frame:  frame,
		shadow: 10,
		kind:   "notification",
		grabs:  make(map[GrabRole]any),
	}
}

func (w *fakeWindow) ID() WindowID              { return w.id }
func (w *fakeWindow) Pos() geom.PointF          { return w.frame.Pos() }
func (w *fakeWindow) FrameGeometry() geom.RectF { return w.frame }
func (w *fakeWindow) ExpandedGeometry() geom.RectF {
	return geom.Rect(w.frame.X-w.shadow, w.frame.Y-w.shadow, w.frame.Width+2*w.shadow, w.frame.Height+2*w.shadow)
}
func (w *fakeWindow) IsNotification() bool         { return w.kind == "notification" }
func (w *fakeWindow) IsCriticalNotification() bool { return w.kind == "critical" }
func (w *fakeWindow) IsDeleted() bool              { return w.deleted }
func (w *fakeWindow) SetGrab(role GrabRole, owner any) {
	w.grabs[role] = owner
}
func (w *fakeWindow) SetForcedBlur(enabled bool)     { w.blur = enabled }
func (w *fakeWindow) SetForcedContrast(enabled bool) { w.contrast = enabled }
func (w *fakeWindow) AddRepaintFull()                { w.repaints++ }

func (w *fakeWindow) KeepAlive(reason LifetimeReason) Token {
	tok := newToken()
	w.tokens = append(w.tokens, tok)
	w.reasons = append(w.reasons, reason)
	return tok
}

func (w *fakeWindow) lastToken() *mockToken {
	return w.tokens[len(w.tokens)-1]
}
