package browser

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Launch starts a browser instance for one scrape worker. A launch failure
// is fatal for the run; there is no automatic restart.
func Launch(headless bool, binPath, profileDir string) (*rod.Browser, error) {
	l := launcher.New().Headless(headless)
	if binPath != "" {
		l = l.Bin(binPath)
	}
	if profileDir != "" {
		l = l.UserDataDir(profileDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	return b, nil
}
