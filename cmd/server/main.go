package main

import (
	"fmt"
	"log"
	"net/http"

	gridbase "github.com/dracory/gridbase"
)

func main() {
	// Load configuration (flags override env)
	cfg, err := gridbase.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app := gridbase.New(cfg)

	mux := http.NewServeMux()
	mux.Handle(cfg.BasePath, app.Handler())

	// Wrap with request logging middleware
	handler := gridbase.RequestLogger(mux, cfg.ActionParam)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Printf("Gridbase listening on %s (mount %s, driver %s)", addr, cfg.BasePath, cfg.Driver)

	log.Fatal(http.ListenAndServe(addr, handler))
}
