package terminal

import (
	"context"
	"time"

	appidentity "github.com/erp/pos/internal/application/identity"
	"github.com/erp/pos/internal/application/checkout"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Page names
const (
	pageSplash = "splash"
	pageAuth   = "auth"
	pagePOS    = "pos"
	pageError  = "error"
)

// Authenticator is the part of the auth service the terminal drives
type Authenticator interface {
	Login(ctx context.Context, input appidentity.LoginInput) (*appidentity.LoginResult, error)
	Register(ctx context.Context, input appidentity.RegisterInput) error
	HasAccount(ctx context.Context) bool
}

// SessionFactory starts a fresh checkout session for a logged-in user
type SessionFactory func(logger *zap.Logger) *checkout.Session

// Options configures the terminal
type Options struct {
	Title          string
	SplashDuration time.Duration
}

// App is the interactive till: a splash screen, the login/registration
// form and the POS form, stacked as tview pages.
type App struct {
	app    *tview.Application
	pages  *tview.Pages
	auth   Authenticator
	start  SessionFactory
	opts   Options
	logger *zap.Logger
	ctx    context.Context

	session    *checkout.Session
	sessionCtx context.Context
	user       *appidentity.LoginResult

	authForm      *tview.Form
	authHint      *tview.TextView
	productDrop   *tview.DropDown
	quantityField *tview.InputField
	discountDrop  *tview.DropDown
	cartList      *tview.List
	totalView     *tview.TextView
	userView      *tview.TextView
	errorModal    *tview.Modal

	lastMessage string
	afterModal  tview.Primitive
}

// New builds the terminal UI. Nothing is drawn until Run.
func New(auth Authenticator, start SessionFactory, opts Options, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = "Point of Sale"
	}

	a := &App{
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		auth:   auth,
		start:  start,
		opts:   opts,
		logger: logger,
		ctx:    context.Background(),
	}
	a.sessionCtx = a.ctx
	a.setupUI()
	return a
}

func (a *App) setupUI() {
	tview.Styles.ContrastBackgroundColor = colorUnfocusedBg
	tview.Styles.TitleColor = tcell.ColorLightSkyBlue

	a.errorModal = tview.NewModal().
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			a.dismissMessage()
		})

	a.pages.AddPage(pageSplash, a.splashPage(), true, true)
	a.pages.AddPage(pageAuth, a.authPage(), true, false)
	a.pages.AddPage(pagePOS, a.posPage(), true, false)
	a.pages.AddPage(pageError, a.errorModal, true, false)
}

// Run shows the splash screen, then the login form, and blocks until the
// user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	a.sessionCtx = ctx

	stop := context.AfterFunc(ctx, a.app.Stop)
	defer stop()

	if a.opts.SplashDuration > 0 {
		timer := time.AfterFunc(a.opts.SplashDuration, func() {
			a.app.QueueUpdateDraw(a.showAuth)
		})
		defer timer.Stop()
	} else {
		a.showAuth()
	}

	a.logger.Info("Terminal started", zap.Duration("splash", a.opts.SplashDuration))
	if err := a.app.SetRoot(a.pages, true).EnableMouse(true).Run(); err != nil {
		return err
	}
	a.logger.Info("Terminal stopped")
	return nil
}

// Stop quits the terminal
func (a *App) Stop() {
	a.app.Stop()
}

// showMessage overlays a modal with text; OK returns focus to the page below
func (a *App) showMessage(text string) {
	a.lastMessage = text
	a.afterModal = a.app.GetFocus()
	a.errorModal.SetText(text)
	a.pages.ShowPage(pageError)
	a.app.SetFocus(a.errorModal)
}

// showError reports err in a modal. Errors are never fatal.
func (a *App) showError(err error) {
	a.showMessage("Error: " + err.Error())
}

func (a *App) dismissMessage() {
	a.pages.HidePage(pageError)
	if a.afterModal != nil {
		a.app.SetFocus(a.afterModal)
		a.afterModal = nil
	}
}

// frontPage returns the name of the topmost visible page
func (a *App) frontPage() string {
	name, _ := a.pages.GetFrontPage()
	return name
}

func (a *App) splashPage() tview.Primitive {
	splash := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText("\n\n[::b]" + a.opts.Title + "[::-]\n\nLoading...")
	splash.SetBorder(true)
	return centered(splash, 40, 9)
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
