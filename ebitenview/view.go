package ebitenview

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/canopy"
)

// Option configures a View.
type Option func(*View)

// WithStyle sets the drawing style.
func WithStyle(s Style) Option {
	return func(v *View) { v.style = s }
}

// WithScript replays an interaction script, one step per tick. Screenshot
// steps are captured into the view's screenshot directory.
func WithScript(r *canopy.ScriptRunner) Option {
	return func(v *View) { v.runner = r }
}

// WithScreenshotDir sets where screenshots are written. Default "screenshots".
func WithScreenshotDir(dir string) Option {
	return func(v *View) { v.screenshotDir = dir }
}

// WithLogger routes view diagnostics (screenshots, script completion) to l.
func WithLogger(l *log.Logger) Option {
	return func(v *View) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithExitOnScriptDone ends the game loop once the script has finished and
// the last screenshot is written.
func WithExitOnScriptDone() Option {
	return func(v *View) { v.exitOnDone = true }
}

// View draws a canopy engine with Ebitengine and feeds it mouse, wheel and
// keyboard input. It implements ebiten.Game.
type View struct {
	engine *canopy.Engine
	style  Style
	logger *log.Logger

	runner     *canopy.ScriptRunner
	exitOnDone bool

	pointer pointerState
	batch   triBatch
	face    *text.GoXFace
	white   *ebiten.Image

	showHUD bool
	hud     hud

	screenshotDir   string
	screenshotQueue []string
	shots           int

	// Reused per Draw to transform polylines to screen space.
	pts []screenPoint
}

// NewView creates a view for e.
func NewView(e *canopy.Engine, opts ...Option) *View {
	v := &View{
		engine:        e,
		style:         DefaultStyle(),
		logger:        log.New(io.Discard),
		pointer:       pointerState{deadZone: defaultDragDeadZone},
		face:          text.NewGoXFace(basicfont.Face7x13),
		screenshotDir: "screenshots",
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.runner != nil {
		v.runner.OnScreenshot = v.Screenshot
	}
	return v
}

// Engine returns the engine the view draws.
func (v *View) Engine() *canopy.Engine {
	return v.engine
}

// SetShowHUD toggles the stats overlay (F3 at runtime).
func (v *View) SetShowHUD(show bool) {
	v.showHUD = show
}

// Update implements ebiten.Game.
func (v *View) Update() error {
	if v.runner != nil {
		if v.runner.Done() {
			if v.exitOnDone && len(v.screenshotQueue) == 0 {
				v.logger.Info("script finished")
				return ebiten.Termination
			}
		} else {
			v.runner.Step(v.engine)
		}
	}
	if v.runner == nil || v.runner.Done() {
		v.processInput()
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	v.engine.Update(dt)
	v.hud.update(float64(dt))
	return nil
}

// Layout implements ebiten.Game. The outside size drives the engine viewport.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.engine.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Draw implements ebiten.Game.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(v.style.Background.toRGBA())

	f := v.engine.Frame()
	vp := canopy.Viewport{PanX: f.Camera.PanX, PanY: f.Camera.PanY, Scale: f.Camera.Scale}
	cfg := v.engine.Config()

	v.batch.reset()
	v.appendEdges(f, vp)
	v.appendNodes(f, vp, cfg)
	if len(v.batch.inds) > 0 {
		var op ebiten.DrawTrianglesOptions
		op.AntiAlias = true
		screen.DrawTriangles32(v.batch.verts, v.batch.inds, v.whitePixel(), &op)
	}

	if f.Camera.Scale >= v.style.LabelMinScale {
		v.drawLabels(screen, f, vp, cfg)
	}
	if v.showHUD {
		v.hud.draw(screen, f)
	}

	v.flushScreenshots(screen)
}

// whitePixel returns the 1x1 source image for untextured triangles. It is
// created on first use so the package can be imported without a graphics
// context.
func (v *View) whitePixel() *ebiten.Image {
	if v.white == nil {
		v.white = ebiten.NewImage(1, 1)
		v.white.Fill(Color{R: 1, G: 1, B: 1, A: 1}.toRGBA())
	}
	return v.white
}

func (v *View) appendEdges(f canopy.Frame, vp canopy.Viewport) {
	width := v.style.EdgeWidth * vp.Scale
	for _, e := range f.Edges {
		v.pts = v.pts[:0]
		for _, p := range e.Points {
			sx, sy := vp.WorldToScreen(p.X, p.Y)
			v.pts = append(v.pts, screenPoint{sx, sy})
		}
		v.batch.stroke(v.pts, width, v.style.Edge)
	}
}

func (v *View) appendNodes(f canopy.Frame, vp canopy.Viewport, cfg canopy.Config) {
	r := nodeRadius(cfg) * vp.Scale
	for _, n := range f.Nodes {
		cx, cy := vp.WorldToScreen(nodeCenter(n, cfg))
		v.batch.disc(cx, cy, r, v.style.DiscSegments, v.nodeColor(n))
	}
}

func (v *View) nodeColor(n canopy.VisibleNode) Color {
	switch {
	case n.IsExpanded:
		return v.style.Open
	case n.HasChildren:
		return v.style.Branch
	default:
		return v.style.Leaf
	}
}

func (v *View) drawLabels(screen *ebiten.Image, f canopy.Frame, vp canopy.Viewport, cfg canopy.Config) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(v.style.Label.toRGBA())
	for _, n := range f.Nodes {
		cx, by := vp.WorldToScreen(n.X+cfg.NodeWidth/2, n.Y+cfg.NodeHeight)
		op.GeoM.Reset()
		op.GeoM.Translate(cx, by+4)
		text.Draw(screen, nodeLabel(n), v.face, op)
	}
}

// nodeLabel returns the text drawn under a node: the payload when it is a
// string or fmt.Stringer, otherwise the id.
func nodeLabel(n canopy.VisibleNode) string {
	switch p := n.Payload.(type) {
	case string:
		return p
	case fmt.Stringer:
		return p.String()
	}
	return strconv.FormatInt(n.ID, 10)
}
