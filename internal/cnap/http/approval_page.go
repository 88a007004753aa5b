package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/pkg/httpx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

type detail struct {
	Label string
	Value string
}

type approvalPage struct {
	Title   string
	Details []detail
	Action  string // form target; empty hides the form
	Button  string
	Notice  string
}

var approvalTmpl = template.Must(template.New("approval").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<dl>
{{- range .Details}}
<dt>{{.Label}}</dt><dd>{{.Value}}</dd>
{{- end}}
</dl>
{{if .Action -}}
<form method="post" action="{{.Action}}"><button type="submit">{{.Button}}</button></form>
{{- else -}}
<p>{{.Notice}}</p>
{{- end}}
</body>
</html>
`))

func requestDetails(p domain.PendingUser) []detail {
	r := p.Request
	kind := "Lab member"
	if p.IsPI {
		kind = "New lab"
	}
	return []detail{
		{"Request", kind},
		{"Requester", r.RequesterName() + " <" + r.Email + ">"},
		{"PI", r.PIName() + " <" + r.PIEmail + ">"},
		{"Organization", r.Organization},
		{"Department", r.Department},
		{"Submitted", p.RequestedAt.Format("2006-01-02 15:04 MST")},
	}
}

func renderApprovalPage(w http.ResponseWriter, r *http.Request, page approvalPage) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := approvalTmpl.Execute(w, page); err != nil {
		slogx.FromContext(r.Context()).Error("failed to render approval page", slog.Any("error", err))
	}
}
