package handler

import (
	"net/http"
	"sync"

	"dipsport/config"
	"dipsport/di"
	"dipsport/shared/logger"
	transport "dipsport/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	server  *transport.HTTP
	initErr error
	once    sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		server, _, initErr = di.InitializeService()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	server.ServeHTTP(w, r)
}
