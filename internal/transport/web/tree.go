// Package web renders the department hierarchy as an HTML page.
package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/frahmantamala/orgtree/internal/department"
	"github.com/frahmantamala/orgtree/internal/transport"
)

const (
	bootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
	bootstrapJS  = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"
)

//go:embed templates/*.html
var templatesFS embed.FS

type TreeService interface {
	GetTree(ctx context.Context) ([]*department.TreeNode, error)
}

type TreePage struct {
	*transport.BaseHandler
	service TreeService
	tmpl    *template.Template
}

type treeView struct {
	Tree         []*department.TreeNode
	BootstrapCSS string
	BootstrapJS  string
}

func NewTreePage(baseHandler *transport.BaseHandler, service TreeService) (*TreePage, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/tree.html")
	if err != nil {
		return nil, err
	}
	return &TreePage{
		BaseHandler: baseHandler,
		service:     service,
		tmpl:        tmpl,
	}, nil
}

func (p *TreePage) Render(w http.ResponseWriter, r *http.Request) {
	forest, err := p.service.GetTree(r.Context())
	if err != nil {
		p.WriteAppError(w, err)
		return
	}

	// Render into a buffer so a template error still yields a clean 500.
	var buf bytes.Buffer
	view := treeView{Tree: forest, BootstrapCSS: bootstrapCSS, BootstrapJS: bootstrapJS}
	if err := p.tmpl.ExecuteTemplate(&buf, "tree.html", view); err != nil {
		p.Logger.Error("failed to render department tree", "error", err)
		p.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
