package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Element is the slice of element behavior the extraction code needs.
// Absence of an element is a normal outcome, so lookups return a bool
// instead of an error.
type Element interface {
	Text() string
	Attribute(name string) (string, bool)
	Click() error
	ClickViaScript() error
	Input(text string) error
	ScrollIntoView() error
}

// Session is the browser capability surface the pipeline is written against.
// The lifecycle of the underlying browser is owned by the caller; a Session
// only drives pages. One Session is owned by exactly one worker for the
// duration of a scrape run.
type Session interface {
	Navigate(url string) error
	EvaluateScript(js string) error
	CurrentURL() string
	PageMarkup() (string, error)
	FindElement(selector string) (Element, bool)
	FindElements(selector string) []Element
	WaitUntil(pred func(markup string) bool, timeout time.Duration) bool
	SendKey(key string) error
	OpenContext(url string) error
	SwitchToLatestContext() error
	Close()
}

// RodSession drives a rod page created through the stealth wrapper.
type RodSession struct {
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
}

// NewSession opens a fresh stealth page on the given browser.
func NewSession(b *rod.Browser, timeout time.Duration) (*RodSession, error) {
	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("failed to open stealth page: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RodSession{browser: b, page: page, timeout: timeout}, nil
}

func (s *RodSession) Navigate(url string) error {
	if err := s.page.Timeout(30 * time.Second).Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	s.page.Timeout(s.timeout).WaitLoad()
	return nil
}

// EvaluateScript runs a JS function literal, e.g. `() => window.scrollBy(0, 400)`.
func (s *RodSession) EvaluateScript(js string) error {
	_, err := s.page.Timeout(s.timeout).Eval(js)
	return err
}

func (s *RodSession) CurrentURL() string {
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (s *RodSession) PageMarkup() (string, error) {
	html, err := s.page.Timeout(s.timeout).HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page markup: %w", err)
	}
	return html, nil
}

func (s *RodSession) FindElement(selector string) (Element, bool) {
	el, err := s.page.Timeout(s.timeout).Element(selector)
	if err != nil {
		return nil, false
	}
	return &rodElement{el: el}, true
}

func (s *RodSession) FindElements(selector string) []Element {
	els, err := s.page.Timeout(s.timeout).Elements(selector)
	if err != nil {
		return nil
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out
}

// WaitUntil polls the page markup until pred passes or timeout elapses.
func (s *RodSession) WaitUntil(pred func(markup string) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		markup, err := s.PageMarkup()
		if err == nil && pred(markup) {
			return true
		}
		time.Sleep(500 * time.Millisecond)
	}
	return false
}

func (s *RodSession) SendKey(key string) error {
	switch strings.ToLower(key) {
	case "escape", "esc":
		return s.page.Keyboard.Press(input.Escape)
	case "enter":
		return s.page.Keyboard.Press(input.Enter)
	default:
		return fmt.Errorf("unsupported key: %s", key)
	}
}

// OpenContext opens a new browsing context on the shared browser. Callers
// follow up with SwitchToLatestContext to point the session at it.
func (s *RodSession) OpenContext(url string) error {
	_, err := s.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("failed to open new context for %s: %w", url, err)
	}
	return nil
}

func (s *RodSession) SwitchToLatestContext() error {
	pages, err := s.browser.Pages()
	if err != nil {
		return fmt.Errorf("failed to list contexts: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no browsing contexts available")
	}
	s.page = pages[len(pages)-1]
	s.page.Timeout(s.timeout).WaitLoad()
	return nil
}

func (s *RodSession) Close() {
	_ = s.page.Close()
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text() string {
	text, err := e.el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func (e *rodElement) Attribute(name string) (string, bool) {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

// ClickViaScript clicks through the DOM API, which gets past overlays that
// swallow synthesized mouse events.
func (e *rodElement) ClickViaScript() error {
	_, err := e.el.Eval(`() => this.click()`)
	return err
}

func (e *rodElement) Input(text string) error {
	_ = e.el.SelectAllText()
	return e.el.Input(text)
}

func (e *rodElement) ScrollIntoView() error {
	return e.el.ScrollIntoView()
}
