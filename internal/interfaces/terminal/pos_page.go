package terminal

import (
	"fmt"

	"github.com/erp/pos/internal/application/checkout"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const totalPlaceholder = "Total: -"

func (a *App) posPage() tview.Primitive {
	a.userView = tview.NewTextView().SetDynamicColors(true)

	a.productDrop = tview.NewDropDown().SetLabel("Product")
	a.quantityField = styleInput(tview.NewInputField().
		SetLabel("Quantity").
		SetText("1").
		SetFieldWidth(8).
		SetAcceptanceFunc(tview.InputFieldInteger))
	a.discountDrop = tview.NewDropDown().SetLabel("Discount")

	order := tview.NewForm().
		AddFormItem(a.productDrop).
		AddFormItem(a.quantityField).
		AddFormItem(a.discountDrop).
		AddButton("Add", a.addToCart).
		AddButton("Remove Selected", a.removeSelected).
		AddButton("Calculate Total", a.calculateTotal).
		AddButton("Logout", a.logout)
	order.SetBorder(true).SetTitle(" Order ")
	styleForm(order)

	a.cartList = tview.NewList().ShowSecondaryText(false)
	a.cartList.SetBorder(true).SetTitle(" Cart ")
	a.cartList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyDelete || event.Key() == tcell.KeyBackspace2 {
			a.removeSelected()
			return nil
		}
		return event
	})

	a.totalView = tview.NewTextView().SetDynamicColors(true).SetText(totalPlaceholder)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.cartList, 0, 1, false).
		AddItem(a.totalView, 1, 0, false)

	body := tview.NewFlex().
		AddItem(order, 44, 0, true).
		AddItem(right, 0, 1, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.userView, 1, 0, false).
		AddItem(body, 0, 1, true)
}

// showPOS fills the POS form from the current session and switches to it
func (a *App) showPOS() {
	a.userView.SetText(fmt.Sprintf("[yellow]Cashier:[-] %s", a.user.Username))

	a.productDrop.SetOptions(a.session.ProductNames(), nil)
	if len(a.session.ProductNames()) > 0 {
		a.productDrop.SetCurrentOption(0)
	}
	a.discountDrop.SetOptions(a.session.TierNames(), func(text string, index int) {
		a.selectDiscount(text)
	})
	a.discountDrop.SetCurrentOption(0)
	a.quantityField.SetText("1")

	a.refreshCart()
	a.pages.SwitchToPage(pagePOS)
	a.app.SetFocus(a.productDrop)
}

func (a *App) addToCart() {
	if a.session == nil {
		return
	}
	index, product := a.productDrop.GetCurrentOption()
	if index < 0 {
		a.showMessage("The catalog is empty: there is nothing to add")
		return
	}

	quantity, err := checkout.ParseQuantity(a.quantityField.GetText())
	if err != nil {
		a.showError(err)
		return
	}

	if _, err := a.session.AddToCart(a.sessionCtx, checkout.AddToCartInput{ProductName: product, Quantity: quantity}); err != nil {
		a.showError(err)
		return
	}
	a.refreshCart()
	a.cartList.SetCurrentItem(-1)
}

func (a *App) removeSelected() {
	if a.session == nil {
		return
	}
	if a.cartList.GetItemCount() == 0 {
		a.showMessage("Select a cart line to remove")
		return
	}
	if err := a.session.RemoveFromCart(a.sessionCtx, a.cartList.GetCurrentItem()); err != nil {
		a.showError(err)
		return
	}
	a.refreshCart()
}

func (a *App) selectDiscount(name string) {
	if a.session == nil {
		return
	}
	if err := a.session.SelectDiscount(a.sessionCtx, name); err != nil {
		a.showError(err)
		return
	}
	a.refreshCart()
}

func (a *App) calculateTotal() {
	if a.session == nil {
		return
	}
	q := a.session.Quote(a.sessionCtx)
	text := fmt.Sprintf("[::b]Total: %s %s[::-]", q.Total, q.Currency)
	if q.Discount != "0.00" {
		text += fmt.Sprintf("  (subtotal %s, discount %s)", q.Subtotal, q.Discount)
	}
	a.totalView.SetText(text)
}

// refreshCart redraws the cart list and clears the stale total
func (a *App) refreshCart() {
	current := a.cartList.GetCurrentItem()
	a.cartList.Clear()
	for _, line := range a.session.CartLines() {
		a.cartList.AddItem(line, "", 0, nil)
	}
	if n := a.cartList.GetItemCount(); n > 0 {
		a.cartList.SetCurrentItem(min(current, n-1))
	}
	a.totalView.SetText(totalPlaceholder)
}
