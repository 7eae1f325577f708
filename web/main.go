package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/df07/go-phong-raytracer/internal/logger"
	"github.com/df07/go-phong-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes-dir", "scenes", "Directory containing scene files")
	debug := flag.Bool("debug", false, "Enable debug logging")
	logFile := flag.String("log-file", "", "Also write logs to this file, rotated")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	logger.Init(level, *logFile)
	defer logger.Sync()

	webServer := server.NewServer(*port, *scenesDir, logger.Log.Named("web"))

	logger.Info("Phong Raytracer Web Server", zap.String("url", fmt.Sprintf("http://localhost:%d", *port)))

	if err := webServer.Start(); err != nil {
		logger.Error("error starting server", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
