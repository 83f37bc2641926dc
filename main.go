package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rafaelcosta/card-bin-api/api/handlers"

	"go.uber.org/zap"

	"github.com/rafaelcosta/card-bin-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //load stores, fetch dataset, build router
		log.Fatal(err)
	}

	port := a.Config.Port
	if port == "" {
		port = "3000"
	}
	zap.S().Infow("card-bin-api is up and running",
		"port", port,
		"url", a.Config.BaseUrl,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
