package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/navionguy/tinybasic/fileserv"
)

// startup builds the router for the program service
func startup(cfg *config) *mux.Router {
	return fileserv.New(cfg.dir, cfg.opts).NewRouter()
}

func serve(cfg *config) error {
	return http.ListenAndServe(cfg.listen, startup(cfg))
}
