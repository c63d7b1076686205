// Package server implements the static file responder.
package server

import (
	"net/http"
	"path"
	"strings"

	"github.com/f4ah6o/webserve-go/internal/mimetype"
)

const indexPage = "/index.html"

// fileHandler wraps http.FileServer and decides the Content-Type of
// regular files itself.
type fileHandler struct {
	root  http.FileSystem
	files http.Handler
	types *mimetype.Table
}

// NewHandler returns a handler serving the files under root.
//
// Only GET and HEAD are accepted. Regular files get their Content-Type from
// types; directory listings, redirects and errors are left to
// http.FileServer.
func NewHandler(root string, types *mimetype.Table) http.Handler {
	dir := http.Dir(root)
	return &fileHandler{
		root:  dir,
		files: http.FileServer(dir),
		types: types,
	}
}

func (h *fileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if name, ok := h.resolve(r.URL.Path); ok {
		w.Header().Set("Content-Type", h.types.TypeByPath(name))
	}

	h.files.ServeHTTP(w, r)
}

// resolve returns the name of the regular file the file server will send
// for urlPath, if there is one.
func (h *fileHandler) resolve(urlPath string) (string, bool) {
	// http.FileServer redirects these to the directory itself.
	if strings.HasSuffix(urlPath, indexPage) {
		return "", false
	}
	if !strings.HasPrefix(urlPath, "/") {
		urlPath = "/" + urlPath
	}

	name := path.Clean(urlPath)
	if strings.HasSuffix(urlPath, "/") {
		name = path.Join(name, indexPage)
	}
	if !h.isRegular(name) {
		return "", false
	}
	return name, true
}

func (h *fileHandler) isRegular(name string) bool {
	f, err := h.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}
