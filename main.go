package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/router"
	"github.com/openmediation/mediation-console/server"
)

func init() {
	flag.Parse() // glog requires this
}

func main() {
	v := viper.New()
	config.SetupViper(v, "mediation-console")
	cfg, err := config.New(v)
	if err != nil {
		glog.Fatalf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	if err := serve(cfg); err != nil {
		glog.Errorf("prematurely shut down: %v", err)
	}
}

func serve(cfg *config.Configuration) error {
	r, err := router.New(cfg)
	if err != nil {
		return err
	}

	corsRouter := router.SupportCORS(r)
	server.Listen(cfg, corsRouter, http.DefaultServeMux, r.MetricsEngine)
	return nil
}
