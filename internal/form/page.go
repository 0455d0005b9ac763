package form

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/page.html
var pageHTML string

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

type fieldView struct {
	ID         string
	Value      string
	LabelText  string
	LabelClass string
	InputClass string
}

type pageView struct {
	Title   string
	Fields  []fieldView
	Result  template.HTML
	Loading template.HTML
}

// WritePage renders the whole form page with the current inputs and panel.
// The loading panel ships as a template the page swaps into the result
// container when the form is submitted.
func (c *Controller) WritePage(w io.Writer) error {
	c.mu.Lock()
	view := pageView{
		Title:   "Food Spoilage Detector",
		Result:  c.panel.HTML(),
		Loading: Panel{Kind: PanelLoading}.HTML(),
	}
	for _, f := range c.fields {
		fv := fieldView{
			ID:         f.ID,
			Value:      f.Value,
			LabelText:  f.Label.Text,
			InputClass: f.classAttr(),
		}
		if f.Label.Active {
			fv.LabelClass = ClassActive
		}
		view.Fields = append(view.Fields, fv)
	}
	c.mu.Unlock()

	if err := pageTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("form: failed to render page: %w", err)
	}
	return nil
}
