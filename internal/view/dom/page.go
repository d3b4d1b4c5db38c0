//go:build js && wasm

package dom

import (
	"fmt"
	"syscall/js"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

// Page is the widget's form, input and log elements. It implements both
// widget.Form and widget.Surface.
type Page struct {
	doc   js.Value
	form  js.Value
	input js.Value
	log   js.Value

	submit js.Func
}

// Bind looks up the widget elements in doc.
func Bind(doc js.Value) (*Page, error) {
	p := &Page{doc: doc}
	for id, dst := range map[string]*js.Value{FormID: &p.form, InputID: &p.input, LogID: &p.log} {
		el := doc.Call("getElementById", id)
		if el.IsNull() || el.IsUndefined() {
			return nil, fmt.Errorf("element #%s not found", id)
		}
		*dst = el
	}
	return p, nil
}

// Attr reads an attribute of the form element, or "" when absent.
func (p *Page) Attr(name string) string {
	v := p.form.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (p *Page) Value() string {
	return p.input.Get("value").String()
}

func (p *Page) Clear() {
	p.input.Set("value", "")
}

func (p *Page) Append(msg chat.Message) {
	el := p.doc.Call("createElement", "div")
	el.Get("classList").Call("add", MessageClass)
	el.Call("setAttribute", MessageIDAttr, msg.ID)
	el.Set("innerHTML", Markup(msg))
	p.log.Call("appendChild", el)
	p.log.Set("scrollTop", p.log.Get("scrollHeight"))
}

func (p *Page) Replace(msg chat.Message) {
	el := p.log.Call("querySelector", Selector(msg.ID))
	if el.IsNull() {
		return
	}
	el.Set("innerHTML", Markup(msg))
}

// OnSubmit registers fn for form submissions. Default navigation is always
// suppressed.
func (p *Page) OnSubmit(fn func()) {
	p.submit = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		fn()
		return nil
	})
	p.form.Call("addEventListener", "submit", p.submit)
}

// Release detaches the submit listener.
func (p *Page) Release() {
	if p.submit.IsUndefined() {
		return
	}
	p.form.Call("removeEventListener", "submit", p.submit)
	p.submit.Release()
}
