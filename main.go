package main

import (
	"log"
	"strings"

	"gallery/auth"
	"gallery/config"
	"gallery/handlers"
	"gallery/kv"
	"gallery/storage"

	"github.com/gin-gonic/autotls"
)

func main() {
	if config.TOKEN_SECRET == "" {
		log.Fatal("TOKEN_SECRET must be configured")
	}
	kv.Init()
	storage.Init()

	tokens := auth.NewTokenService(config.TOKEN_SECRET)
	resolver := auth.NewActorResolver(tokens, config.ADMIN_SECRET)
	router := handlers.NewRouter(resolver, tokens)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
