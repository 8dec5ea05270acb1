package browser

import (
	"encoding/base64"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/cua/pkg/types"
)

// Page is the driver surface the agent needs from one browser page.
// It is deliberately narrow: the dispatcher and invoker depend on this
// interface instead of the full Playwright page so they can be tested
// against fakes.
type Page interface {
	URL() string
	Goto(url string) error
	SetViewportSize(width, height int) error
	Screenshot() ([]byte, error)

	Click(x, y float64, button string) error
	DoubleClick(x, y float64) error
	Move(x, y float64) error
	Drag(path []types.Point) error
	Scroll(x, y float64, deltaX, deltaY int) error
	Type(text string) error
	Press(keys []string) error
	Back() error
	Forward() error
}

// pwPage adapts a Playwright page to the Page interface.
type pwPage struct {
	page playwright.Page
}

// NewPage wraps a Playwright page.
func NewPage(page playwright.Page) Page {
	return &pwPage{page: page}
}

func (p *pwPage) URL() string {
	return p.page.URL()
}

func (p *pwPage) Goto(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (p *pwPage) SetViewportSize(width, height int) error {
	return p.page.SetViewportSize(width, height)
}

func (p *pwPage) Screenshot() ([]byte, error) {
	shot, err := p.page.Screenshot()
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return shot, nil
}

func (p *pwPage) Click(x, y float64, button string) error {
	opts := playwright.MouseClickOptions{}
	switch button {
	case "right":
		opts.Button = playwright.MouseButtonRight
	case "middle", "wheel":
		opts.Button = playwright.MouseButtonMiddle
	default:
		opts.Button = playwright.MouseButtonLeft
	}
	return p.page.Mouse().Click(x, y, opts)
}

func (p *pwPage) DoubleClick(x, y float64) error {
	return p.page.Mouse().Dblclick(x, y)
}

func (p *pwPage) Move(x, y float64) error {
	return p.page.Mouse().Move(x, y)
}

func (p *pwPage) Drag(path []types.Point) error {
	if len(path) == 0 {
		return nil
	}
	if err := p.page.Mouse().Move(path[0].X, path[0].Y); err != nil {
		return err
	}
	if err := p.page.Mouse().Down(); err != nil {
		return err
	}
	for _, pt := range path[1:] {
		if err := p.page.Mouse().Move(pt.X, pt.Y); err != nil {
			return err
		}
	}
	return p.page.Mouse().Up()
}

func (p *pwPage) Scroll(x, y float64, deltaX, deltaY int) error {
	if err := p.page.Mouse().Move(x, y); err != nil {
		return err
	}
	return p.page.Mouse().Wheel(float64(deltaX), float64(deltaY))
}

func (p *pwPage) Type(text string) error {
	return p.page.Keyboard().Type(text)
}

func (p *pwPage) Press(keys []string) error {
	return p.page.Keyboard().Press(chord(keys))
}

func (p *pwPage) Back() error {
	_, err := p.page.GoBack()
	return err
}

func (p *pwPage) Forward() error {
	_, err := p.page.GoForward()
	return err
}

// ScreenshotDataURL captures the page and encodes it as a PNG data URL
// suitable for an image content part or computer_call_output.
func ScreenshotDataURL(page Page) (string, error) {
	shot, err := page.Screenshot()
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(shot), nil
}
