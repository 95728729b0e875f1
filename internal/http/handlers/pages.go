package handlers

import (
	"io/fs"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const landingPage = "login.html"

// PagesHandler serves the bundled static pages.
type PagesHandler struct {
	files fs.FS
}

// NewPagesHandler serves pages out of files.
func NewPagesHandler(files fs.FS) *PagesHandler {
	return &PagesHandler{files: files}
}

// Register wires the landing page and the named pages into the router.
func (h *PagesHandler) Register(router *httprouter.Router, names ...string) {
	router.HandlerFunc(http.MethodGet, "/", h.page(landingPage))
	for _, name := range names {
		router.HandlerFunc(http.MethodGet, "/"+name, h.page(name))
	}
}

func (h *PagesHandler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, h.files, name)
	}
}
