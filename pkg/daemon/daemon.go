package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/offgrid-tools/hykpi/pkg/config"
	"github.com/offgrid-tools/hykpi/pkg/events"
)

var (
	conf   config.Config
	sseHub = events.NewEventHub()
	sess   = newSession()
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/version", getVersion)
	router.GET("/config", getConfig)
	router.GET("/constants", getConstants)
	router.GET("/scenarios", getScenarios)
	router.GET("/inputs", getInputs)
	router.GET("/kpi", getKPI)
	router.GET("/session", getSession)
	router.GET("/report", getReport)
	router.PUT("/tank", setTank)
	router.PUT("/peak-load", setPeakLoad)
	router.PUT("/scenario", setScenario)
	router.PUT("/appliances", setAppliances)
	router.PUT("/appliances/:name/hours", setApplianceHours)
	router.GET("/events", streamEvents)

	return router
}

func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	router := setupRoutes()

	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")
	sess.reset(conf)

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			sess.reset(conf)
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded, session reset")
		}
	}()

	// Request contexts derive from streamCtx so that open event streams end
	// when shutdown starts instead of holding it up.
	streamCtx, stopStreams := context.WithCancel(context.Background())
	srv := &http.Server{
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return streamCtx },
	}

	// A socket left behind by an unclean exit would make Listen fail.
	if _, err := os.Stat(unixSocketPath); err == nil {
		logrus.Warnf("removing stale socket %s", unixSocketPath)
		if err := os.Remove(unixSocketPath); err != nil {
			logrus.Fatal(err)
		}
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	logrus.WithField("subscribers", sseHub.Subscribers()).Debug("closing event streams")
	stopStreams()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}
