package webserver

import (
	"net/http"

	"github.com/ytbench/ytbench/internal/webapi"
	"github.com/ytbench/ytbench/web"
)

// registerRoutes sets up the API and the embedded viewer page on the mux.
func registerRoutes(mux *http.ServeMux, cfg Config) {
	store := webapi.NewFileStore(cfg.DatasetDir)
	webapi.RegisterRoutes(mux, store)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(web.IndexHTML) //nolint:errcheck
	})
}
