package nav

import (
	"log"
	"strings"
	"time"

	"ReviewScope/internal/browser"

	"github.com/PuerkitoBio/goquery"
)

// Credentials for the login wall. Storage of these is the caller's problem;
// the handler only types them in.
type Credentials struct {
	Identifier string
	Secret     string
}

// Selector priority lists for the login form. First match wins.
var (
	identifierSelectors = []string{"#ap_email_login", "#ap_email", `input[name="email"]`, `input[type="email"]`}
	continueSelectors   = []string{"#continue", `input[type="submit"]`}
	secretSelectors     = []string{"#ap_password", `input[type="password"]`}
	submitSelectors     = []string{"#signInSubmit", `input[type="submit"]`}
)

// AuthHandler fills and submits login walls. It never aborts the run: a
// failed sign-in leaves the caller free to retry or continue degraded.
type AuthHandler struct {
	creds     Credentials
	waitBound time.Duration
}

func NewAuthHandler(creds Credentials, waitBound time.Duration) *AuthHandler {
	if waitBound <= 0 {
		waitBound = 10 * time.Second
	}
	return &AuthHandler{creds: creds, waitBound: waitBound}
}

// IsLoginWall reports whether the markup is a credential prompt rather than
// the requested content.
func (h *AuthHandler) IsLoginWall(markup string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return false
	}
	for _, sel := range identifierSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return doc.Find(secretSelectors[0]).Length() > 0
}

// SignIn types the identifier, submits, waits for the secret input, types
// and submits it, then waits until the page is no longer a login wall.
// Returns false when the wall is still up after the bound.
func (h *AuthHandler) SignIn(s browser.Session) bool {
	log.Println("[Auth] Login wall detected, signing in...")

	if field, ok := findFirst(s, identifierSelectors); ok {
		if err := field.Input(h.creds.Identifier); err != nil {
			log.Printf("[Auth] Could not fill identifier field: %v", err)
			return false
		}
		h.submit(s, continueSelectors)
	}

	secretField, ok := h.waitForSecretField(s)
	if !ok {
		log.Println("[Auth] Secret input never appeared.")
		return false
	}
	if err := secretField.Input(h.creds.Secret); err != nil {
		log.Printf("[Auth] Could not fill secret field: %v", err)
		return false
	}
	h.submit(s, submitSelectors)

	cleared := s.WaitUntil(func(markup string) bool {
		return !h.IsLoginWall(markup)
	}, h.waitBound)
	if cleared {
		log.Println("[Auth] Sign-in completed.")
	} else {
		log.Println("[Auth] Still on login wall after sign-in attempt.")
	}
	return cleared
}

// WaitForManualCompletion polls on a longer interval so an out-of-band step
// (one-time passcode, captcha) can be completed by hand. Gives up after
// maxPolls; the run then continues degraded instead of crashing.
func (h *AuthHandler) WaitForManualCompletion(s browser.Session, interval time.Duration, maxPolls int) bool {
	log.Printf("[Auth] Waiting for manual completion (up to %d polls)...", maxPolls)
	for i := 0; i < maxPolls; i++ {
		time.Sleep(interval)
		markup, err := s.PageMarkup()
		if err != nil {
			continue
		}
		if !h.IsLoginWall(markup) {
			log.Println("[Auth] Login wall cleared manually.")
			return true
		}
	}
	log.Println("[Auth] Manual completion window expired, continuing degraded.")
	return false
}

func (h *AuthHandler) submit(s browser.Session, selectors []string) {
	if btn, ok := findFirst(s, selectors); ok {
		if err := btn.Click(); err != nil {
			log.Printf("[Auth] Submit click failed: %v", err)
		}
		time.Sleep(2 * time.Second)
	}
}

func (h *AuthHandler) waitForSecretField(s browser.Session) (browser.Element, bool) {
	deadline := time.Now().Add(h.waitBound)
	for {
		if field, ok := findFirst(s, secretSelectors); ok {
			return field, true
		}
		if time.Now().After(deadline) {
			return nil, false
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func findFirst(s browser.Session, selectors []string) (browser.Element, bool) {
	for _, sel := range selectors {
		if el, ok := s.FindElement(sel); ok {
			return el, true
		}
	}
	return nil, false
}
