package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/conf"
	"github.com/damrufest/judgeboard/session"
	"github.com/damrufest/judgeboard/tui"
)

func main() {
	// Optional in production; the dashboard runs fine on defaults.
	_ = godotenv.Load()

	confPath := flag.String("conf", "judgeboard.toml", "configuration file path")
	apiURL := flag.String("api", "", "backend base URL (overrides configuration)")
	flag.Parse()

	cfg, err := conf.Load(*confPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	baseURL := cfg.Client.BaseURL
	if *apiURL != "" {
		baseURL = *apiURL
	}

	api, err := apiclient.New(baseURL)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	sess := session.NewStore(api)

	p := tea.NewProgram(tui.NewApp(api, sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}
