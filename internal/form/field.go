package form

import (
	"strings"

	"github.com/freshsense/spoilage-web/pkg/utils"
)

// Visual classes applied to inputs and labels
const (
	ClassActive  = "active"
	ClassInvalid = "invalid"
	ClassNormal  = "normal"
	ClassWarning = "warning"
	ClassDanger  = "danger"
)

// sensorLabels are the captions shown next to each sensor input
var sensorLabels = map[string]string{
	"MQ8A":   "MQ8 Hydrogen",
	"MQ135A": "MQ135 Air Quality",
	"MQ9A":   "MQ9 Carbon Monoxide",
	"MQ4A":   "MQ4 Methane",
	"MQ2A":   "MQ2 Smoke / LPG",
	"MQ3A":   "MQ3 Alcohol",
}

// Label is the floating caption inside an input's wrapper
type Label struct {
	Text   string
	Active bool
}

// Field is one numeric sensor input together with its label.
// Listeners registered with OnInput run on every Dispatch.
type Field struct {
	ID    string
	Value string
	Label Label

	classes   []string
	listeners []func(*Field)
}

func newField(id string) *Field {
	text := sensorLabels[id]
	if text == "" {
		text = id
	}
	return &Field{ID: id, Label: Label{Text: text}}
}

// SetValue replaces the raw value and fires the input event
func (f *Field) SetValue(v string) {
	f.Value = v
	f.Dispatch()
}

// OnInput subscribes fn to the field's input event
func (f *Field) OnInput(fn func(*Field)) {
	f.listeners = append(f.listeners, fn)
}

// Dispatch fires the input event
func (f *Field) Dispatch() {
	for _, fn := range f.listeners {
		fn(f)
	}
}

// Number parses the raw value; NaN when it holds no number
func (f *Field) Number() float64 {
	return utils.ParseFloat(f.Value)
}

// AddClass adds c to the input's class list if missing
func (f *Field) AddClass(c string) {
	if !f.HasClass(c) {
		f.classes = append(f.classes, c)
	}
}

// RemoveClass drops every given class from the input
func (f *Field) RemoveClass(cs ...string) {
	kept := f.classes[:0]
	for _, have := range f.classes {
		drop := false
		for _, c := range cs {
			if have == c {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, have)
		}
	}
	f.classes = kept
}

// HasClass reports whether c is on the input's class list
func (f *Field) HasClass(c string) bool {
	for _, have := range f.classes {
		if have == c {
			return true
		}
	}
	return false
}

// Classes returns a copy of the input's class list
func (f *Field) Classes() []string {
	return append([]string(nil), f.classes...)
}

func (f *Field) classAttr() string {
	return strings.Join(f.classes, " ")
}
