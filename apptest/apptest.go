// Package apptest starts an ultrawire application graph inside a test.
package apptest

import (
	"testing"

	"github.com/bronystylecrazy/ultrawire"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// App wraps fxtest.App.
type App struct {
	app *fxtest.App
}

// New builds the default graph for args plus options.
func New(t testing.TB, args []string, options ...fx.Option) *App {
	t.Helper()
	return &App{app: fxtest.New(t, ultrawire.New(options...).Build(args))}
}

// RequireStart starts the app and fails the test on error.
func (a *App) RequireStart() *App {
	a.app.RequireStart()
	return a
}

// RequireStop stops the app and fails the test on error.
func (a *App) RequireStop() *App {
	a.app.RequireStop()
	return a
}

// Fx exposes the underlying fxtest.App.
func (a *App) Fx() *fxtest.App {
	return a.app
}
