package router

import (
	"io/fs"
	"net/http"
	"path"

	"github.com/xy-planning-network/burrow"
)

// AssetsDir is the directory static files are served from, and the path prefix they are served under.
const AssetsDir = "assets"

// ServeAssets registers a route serving GET requests for files in the AssetsDir of filesys.
// Responses are cached for 30 days.
func (r *Router) ServeAssets(filesys fs.FS) {
	r.Register(http.MethodGet, `^`+AssetsDir+`/(.+)$`, func(w http.ResponseWriter, req *http.Request, args ...string) error {
		name := path.Join(AssetsDir, path.Clean("/" + args[0])[1:])
		if info, err := fs.Stat(filesys, name); err != nil || info.IsDir() {
			return burrow.NotFound("")
		}

		w.Header().Set("Cache-Control", "max-age=2592000")
		http.ServeFileFS(w, req, filesys, name)
		return nil
	})
}
