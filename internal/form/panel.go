package form

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
)

// PanelKind identifies what the result container currently shows
type PanelKind int

const (
	PanelEmpty PanelKind = iota
	PanelLoading
	PanelResult
	PanelError
)

func (k PanelKind) String() string {
	switch k {
	case PanelLoading:
		return "loading"
	case PanelResult:
		return "result"
	case PanelError:
		return "error"
	default:
		return "empty"
	}
}

const (
	LoadingText = "Analyzing food spoilage patterns..."
	ErrorHint   = "Please check your inputs and try again"
)

// ResultCard is the rendered view of a successful prediction
type ResultCard struct {
	Label       string
	StatusClass string
	Confidence  string // percentage with one decimal, e.g. "82.0%"
	Prediction  string
}

// Panel is the result container's content
type Panel struct {
	Kind     PanelKind
	Messages []string
	Card     *ResultCard
}

var panelTmpl = template.Must(template.New("panel").Parse(`
{{- define "loading" -}}
<div class="loading">
    <div class="spinner"></div>
    <p class="loading-text">{{.}}</p>
</div>
{{- end -}}
{{- define "result" -}}
<div class="result-card {{.StatusClass}}">
    <h3 class="result-status">{{.Label}}</h3>
    <span class="result-confidence">Confidence: {{.Confidence}}</span>
    <div class="result-details">
        <p>Sensor analysis complete</p>
        <small>Prediction value: {{.Prediction}}</small>
    </div>
</div>
{{- end -}}
{{- define "error" -}}
<div class="error-message">
{{- range .Messages}}
    <p>⚠️ {{.}}</p>
{{- end}}
    <small>{{.Hint}}</small>
</div>
{{- end -}}
`))

// HTML renders the panel markup; an empty panel renders nothing
func (p Panel) HTML() template.HTML {
	var buf bytes.Buffer
	var err error
	switch p.Kind {
	case PanelLoading:
		err = panelTmpl.ExecuteTemplate(&buf, "loading", LoadingText)
	case PanelResult:
		if p.Card == nil {
			return ""
		}
		err = panelTmpl.ExecuteTemplate(&buf, "result", p.Card)
	case PanelError:
		err = panelTmpl.ExecuteTemplate(&buf, "error", struct {
			Messages []string
			Hint     string
		}{p.Messages, ErrorHint})
	default:
		return ""
	}
	if err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

var unsafeClassChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// statusClass turns a prediction label into a CSS class name
func statusClass(label string) string {
	c := unsafeClassChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
	return strings.Trim(c, "-")
}
