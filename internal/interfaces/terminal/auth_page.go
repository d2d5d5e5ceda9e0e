package terminal

import (
	"time"

	appidentity "github.com/erp/pos/internal/application/identity"
	"github.com/erp/pos/internal/infrastructure/logger"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	labelUsername = "Username"
	labelPassword = "Password"
)

func (a *App) authPage() tview.Primitive {
	a.authForm = tview.NewForm().
		AddInputField(labelUsername, "", 30, nil, nil).
		AddPasswordField(labelPassword, "", 30, '*', nil).
		AddButton("Login", func() { a.login(a.credentials()) }).
		AddButton("Register", func() { a.register(a.credentials()) }).
		AddButton("Quit", a.Stop)
	a.authForm.SetBorder(true).SetTitle(" " + a.opts.Title + " ").SetTitleAlign(tview.AlignCenter)
	styleForm(a.authForm)

	a.authHint = tview.NewTextView().SetTextAlign(tview.AlignCenter)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.authForm, 9, 1, true).
		AddItem(a.authHint, 1, 0, false)
	return centered(layout, 50, 10)
}

func (a *App) credentials() (string, string) {
	username := a.authForm.GetFormItemByLabel(labelUsername).(*tview.InputField).GetText()
	password := a.authForm.GetFormItemByLabel(labelPassword).(*tview.InputField).GetText()
	return username, password
}

// showAuth switches to the login form with empty fields
func (a *App) showAuth() {
	a.authForm.GetFormItemByLabel(labelUsername).(*tview.InputField).SetText("")
	a.authForm.GetFormItemByLabel(labelPassword).(*tview.InputField).SetText("")
	if a.auth.HasAccount(a.ctx) {
		a.authHint.SetText("Log in with the registered account")
	} else {
		a.authHint.SetText("No account yet: choose a username and press Register")
	}
	a.pages.SwitchToPage(pageAuth)
	a.app.SetFocus(a.authForm)
}

func (a *App) login(username, password string) {
	result, err := a.auth.Login(a.ctx, appidentity.LoginInput{Username: username, Password: password})
	if err != nil {
		a.showError(err)
		return
	}

	a.user = result
	ctx, sessionLogger := logger.WithUsername(a.ctx, a.logger, result.Username)
	a.session = a.start(sessionLogger)
	a.sessionCtx, _ = logger.WithSessionID(ctx, sessionLogger, a.session.ID.String())
	a.showPOS()
}

func (a *App) register(username, password string) {
	if err := a.auth.Register(a.ctx, appidentity.RegisterInput{Username: username, Password: password}); err != nil {
		a.showError(err)
		return
	}
	a.authHint.SetText("Log in with the registered account")
	a.authForm.GetFormItemByLabel(labelPassword).(*tview.InputField).SetText("")
	a.showMessage("Registration successful. You can now log in.")
}

// logout drops the session and returns to the login form
func (a *App) logout() {
	if a.session != nil {
		a.session.Reset(a.sessionCtx)
	}
	if a.user != nil {
		logger.L(a.sessionCtx).Info("User logged out", zap.Duration("session", time.Since(a.user.LoggedInAt)))
	}
	a.user = nil
	a.sessionCtx = a.ctx
	a.session = nil
	a.showAuth()
}
