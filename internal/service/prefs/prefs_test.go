package prefs

import (
	"context"
	"testing"

	"shophub-client/internal/store"
)

func TestDefaultThemeIsLight(t *testing.T) {
	p := New(context.Background(), store.NewMemory())
	if p.Theme() != ThemeLight {
		t.Fatalf("expected light, got %s", p.Theme())
	}
}

func TestSetThemePersists(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	p := New(ctx, st)
	if err := p.SetTheme(ctx, ThemeDark); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := New(ctx, st)
	if restored.Theme() != ThemeDark {
		t.Fatalf("expected dark after restore, got %s", restored.Theme())
	}
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	p := New(context.Background(), store.NewMemory())
	if err := p.SetTheme(context.Background(), "sepia"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	if p.Theme() != ThemeLight {
		t.Fatalf("expected theme unchanged, got %s", p.Theme())
	}
}

func TestInvalidStoredThemeFallsBackToLight(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	st.Set(ctx, store.KeyTheme, "sepia")

	p := New(ctx, st)
	if p.Theme() != ThemeLight {
		t.Fatalf("expected light fallback, got %s", p.Theme())
	}
}

func TestToggleTheme(t *testing.T) {
	ctx := context.Background()
	p := New(ctx, store.NewMemory())

	next, err := p.ToggleTheme(ctx)
	if err != nil || next != ThemeDark {
		t.Fatalf("expected dark, got %s err %v", next, err)
	}
	next, err = p.ToggleTheme(ctx)
	if err != nil || next != ThemeLight {
		t.Fatalf("expected light, got %s err %v", next, err)
	}
}
