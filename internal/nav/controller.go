package nav

import (
	"fmt"
	"log"
	"sync"
	"time"

	"ReviewScope/internal/browser"
	"ReviewScope/internal/models"
)

// Predicate checks page markup for a known content marker.
type Predicate func(markup string) bool

type state int

const (
	stateIdle state = iota
	stateNavigating
	stateVerifying
)

// strategy is one way of getting the session onto a URL. Strategies escalate:
// a direct load, a script-driven location change that bypasses some
// navigation caching, and finally a fresh browsing context.
type strategy struct {
	name  string
	apply func(s browser.Session, url string) error
}

var strategies = []strategy{
	{"direct-load", func(s browser.Session, url string) error {
		return s.Navigate(url)
	}},
	{"script-location", func(s browser.Session, url string) error {
		return s.EvaluateScript(fmt.Sprintf(`() => { window.location.href = %q }`, url))
	}},
	{"new-context", func(s browser.Session, url string) error {
		if err := s.OpenContext(url); err != nil {
			return err
		}
		return s.SwitchToLatestContext()
	}},
}

// Controller drives navigation with escalating strategies and inline login
// handling. Navigations are strictly sequential; the mutex makes concurrent
// misuse safe rather than racy.
type Controller struct {
	mu        sync.Mutex
	session   browser.Session
	auth      *AuthHandler
	waitBound time.Duration
	state     state
}

func NewController(session browser.Session, auth *AuthHandler, waitBound time.Duration) *Controller {
	if waitBound <= 0 {
		waitBound = 8 * time.Second
	}
	return &Controller{session: session, auth: auth, waitBound: waitBound}
}

// NavigateTo tries each strategy in order, once per attempt, until ready
// passes on a page that is not a login wall. A detected login wall is handed
// to the auth handler inline; handler failure moves on to the next strategy
// instead of aborting. Returns OutcomeLoginRequired when every attempt ended
// on a login wall, OutcomeFailed otherwise.
func (c *Controller) NavigateTo(url string, ready Predicate, maxAttempts int) models.NavigationOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.state = stateIdle }()

	if maxAttempts < 1 {
		maxAttempts = 1
	}

	sawLoginWall := false
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		for _, strat := range strategies {
			c.state = stateNavigating
			log.Printf("[Nav] Attempt %d: strategy %s -> %s", attempt, strat.name, url)
			if err := strat.apply(c.session, url); err != nil {
				log.Printf("[Nav] Strategy %s failed: %v", strat.name, err)
				continue
			}

			c.state = stateVerifying
			if c.verify(ready) {
				return models.OutcomeSuccess
			}

			if c.auth != nil && c.onLoginWall() {
				sawLoginWall = true
				if c.auth.SignIn(c.session) && c.verify(ready) {
					return models.OutcomeSuccess
				}
				// Handler failure: keep escalating rather than aborting.
			}
		}
	}

	if sawLoginWall && c.onLoginWall() {
		return models.OutcomeLoginRequired
	}
	return models.OutcomeFailed
}

// verify waits boundedly for the content marker on a non-login page.
func (c *Controller) verify(ready Predicate) bool {
	return c.session.WaitUntil(func(markup string) bool {
		if c.auth != nil && c.auth.IsLoginWall(markup) {
			return false
		}
		return ready(markup)
	}, c.waitBound)
}

func (c *Controller) onLoginWall() bool {
	markup, err := c.session.PageMarkup()
	if err != nil {
		return false
	}
	return c.auth.IsLoginWall(markup)
}
