// Package prefs persists small user preferences, currently the UI theme.
package prefs

import (
	"context"
	"fmt"
	"sync"

	"shophub-client/internal/store"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Prefs struct {
	mu    sync.Mutex
	store store.Store
	theme string
}

// New restores the persisted theme, defaulting to light.
func New(ctx context.Context, st store.Store) *Prefs {
	p := &Prefs{store: st, theme: ThemeLight}
	if v, err := st.Get(ctx, store.KeyTheme); err == nil && (v == ThemeLight || v == ThemeDark) {
		p.theme = v
	}
	return p
}

func (p *Prefs) Theme() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// SetTheme persists the given theme.
func (p *Prefs) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	p.mu.Lock()
	p.theme = theme
	p.mu.Unlock()
	return p.store.Set(ctx, store.KeyTheme, theme)
}

// ToggleTheme flips between light and dark and returns the new theme.
func (p *Prefs) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeDark
	if p.Theme() == ThemeDark {
		next = ThemeLight
	}
	return next, p.SetTheme(ctx, next)
}
