package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	colorUnfocusedBg = tcell.Color236
	colorFocusedBg   = tcell.Color24
)

func styleInput(field *tview.InputField) *tview.InputField {
	field.SetFieldBackgroundColor(colorUnfocusedBg)
	field.SetFocusFunc(func() { field.SetFieldBackgroundColor(colorFocusedBg) })
	field.SetBlurFunc(func() { field.SetFieldBackgroundColor(colorUnfocusedBg) })
	return field
}

func styleForm(f *tview.Form) {
	for i := 0; i < f.GetFormItemCount(); i++ {
		if input, ok := f.GetFormItem(i).(*tview.InputField); ok {
			styleInput(input)
		}
	}
	f.SetButtonBackgroundColor(colorUnfocusedBg)
	f.SetButtonTextColor(tcell.ColorWhite)
}
