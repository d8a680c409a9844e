package handlers

import (
	"net/http"
	"time"

	"gallery/auth"
	"gallery/config"
	"gallery/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the middleware chain and the API routes
func NewRouter(resolver *auth.ActorResolver, tokens *auth.TokenService) *gin.Engine {
	Init(tokens)

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`^/photo/.*`})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, the photo route overrides that
	router.Use(auth.Middleware(resolver))

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// User handlers
	router.POST("/user", UserCreate)
	router.GET("/user/:username", UserGet)
	router.POST("/login", UserLogin)
	// Library handlers
	router.POST("/library", LibraryCreate)
	router.GET("/library", LibraryGet)
	// Album handlers
	router.POST("/album", AlbumCreate)
	router.PATCH("/album/:id", AlbumPatch)
	router.DELETE("/album/:id", AlbumDelete)
	// Photo handlers
	router.POST("/photo", PhotoUpload)
	router.GET("/photo/:id", PhotoFetch)

	return router
}
