package main

import (
	goflag "flag"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/polis-analysis/postmeta/server"
	"github.com/polis-analysis/postmeta/utils/dotenv"
	"github.com/polis-analysis/postmeta/utils/flag"
	Logger "github.com/polis-analysis/postmeta/utils/log"
)

const defaultPort = "8501"

func main() {
	goflag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	Logger.InitLogger()

	if dotenv.IsProdEnv() || !*flag.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	// Default comes with the Logger and Recovery middleware already
	// attached; Recovery keeps a panicking request from taking the process
	// down.
	router := gin.Default()
	router.Use(cors.Default())

	srv := server.NewServer()
	srv.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	Logger.Log.Infof("metadata server starts up on :%s", port)
	if err := router.Run(":" + port); err != nil {
		Logger.Log.Fatalf("server exited: %v", err)
	}
}
