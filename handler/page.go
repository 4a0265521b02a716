package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"ewintr.nl/tubesum/client"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/exp/slog"
)

// PageAPI serves the form. Each submission gets its own orchestrator that
// calls the endpoint logic in process.
type PageAPI struct {
	api      client.API
	markdown goldmark.Markdown
	tmpl     *template.Template
	logger   *slog.Logger
}

func NewPageAPI(transcriber client.Transcriber, summarizer client.Summarizer, logger *slog.Logger) *PageAPI {
	return &PageAPI{
		api:      client.NewLocalAPI(transcriber, summarizer),
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
		logger:   logger,
	}
}

type pageData struct {
	State       client.State
	SummaryHTML template.HTML
}

func (p *PageAPI) Form(w http.ResponseWriter, r *http.Request) {
	p.render(w, pageData{})
}

func (p *PageAPI) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Error(w, http.StatusBadRequest, "Invalid form")
		return
	}

	o := client.NewOrchestrator(p.api, p.logger)
	state := o.Run(r.Context(), r.PostForm.Get("url"))

	data := pageData{State: state}
	if state.Phase == client.PhaseSuccess {
		var buf bytes.Buffer
		if err := p.markdown.Convert([]byte(state.Summary), &buf); err != nil {
			p.logger.Error("could not render summary", slog.String("err", err.Error()))
			Error(w, http.StatusInternalServerError, "Could not render summary")
			return
		}
		// goldmark drops raw html unless configured otherwise
		data.SummaryHTML = template.HTML(buf.String())
	}
	p.render(w, data)
}

func (p *PageAPI) Download(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Error(w, http.StatusBadRequest, "Invalid form")
		return
	}
	summary := r.PostForm.Get("summary")
	if summary == "" {
		Error(w, http.StatusBadRequest, client.ErrNoSummary.Error())
		return
	}

	w.Header().Set("Content-Type", client.ExportMIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+client.ExportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(summary)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(summary))
}

func (p *PageAPI) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		p.logger.Error("could not render page", slog.String("err", err.Error()))
		Error(w, http.StatusInternalServerError, "Could not render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>YouTube Summarizer</title>
</head>
<body>
<main>
<h1>YouTube Summarizer</h1>
<form method="post" action="/">
  <input type="url" name="url" placeholder="Enter YouTube URL" value="{{.State.URL}}" required>
  <button type="submit">Summarize</button>
</form>
{{if eq .State.Phase.String "failed"}}
<section class="error">
  <h2>Oops! Something went wrong</h2>
  <p>{{.State.Err}}</p>
</section>
{{end}}
{{if eq .State.Phase.String "success"}}
<section class="summary">
  {{if .State.Transcript.Title}}<h2>{{.State.Transcript.Title}}</h2>{{end}}
  <article>{{.SummaryHTML}}</article>
  <form method="post" action="/download">
    <textarea name="summary" id="summary" hidden>{{.State.Summary}}</textarea>
    <button type="button" id="copy">Copy</button>
    <button type="submit">Download</button>
  </form>
</section>
<script>
document.getElementById("copy").addEventListener("click", function () {
  var button = this;
  navigator.clipboard.writeText(document.getElementById("summary").value).then(function () {
    button.textContent = "Copied!";
    setTimeout(function () { button.textContent = "Copy"; }, 2000);
  });
});
</script>
{{end}}
</main>
</body>
</html>
`
