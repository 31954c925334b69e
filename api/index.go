package handler

import (
	"net/http"
	"sync"

	"hotelbooking/config"
	"hotelbooking/di"
	"hotelbooking/shared/logger"
	transport "hotelbooking/transport/http"
)

var (
	service *transport.HTTP
	once    sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built on the
// first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)

		service = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	service.ServeHTTP(w, r)
}
