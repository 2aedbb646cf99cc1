package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"shuttle-admin/internal/config"
	"shuttle-admin/internal/dashboard"
	"shuttle-admin/internal/mylogger"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: app dashboard [-env file] [-port port]")
}

func main() {
	dashboardCmd := flag.NewFlagSet("dashboard", flag.ExitOnError)
	envFile := dashboardCmd.String("env", ".env", "env file loaded before the environment")
	port := dashboardCmd.String("port", "", "listen port, overrides DASHBOARD_PORT")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "dashboard":
		_ = dashboardCmd.Parse(os.Args[2:])

		cfg, err := config.Load(*envFile, ".env.local")
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		if *port != "" {
			cfg.Srv.DashboardPort = *port
		}

		mylog := mylogger.New(cfg.Log.Level).With("service", "dashboard")
		if len(cfg.Defaults) > 0 {
			mylog.Action("config_defaults").Info("using default values", "keys", cfg.Defaults)
		}

		if err := dashboard.Execute(context.Background(), mylog, cfg); err != nil {
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}
