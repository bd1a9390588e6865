package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/command-center/backend/internal/client"
	"github.com/command-center/backend/internal/tui"
)

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:3030", "Base URL of the Command Center server")
	logFile := flag.String("log", "", "Write debug logs to this file")
	flag.Parse()

	// Log lines would tear the alt screen.
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "cc-tui")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	wsURL, err := client.StreamURL(*baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ws := client.NewWSClient(wsURL)
	httpClient := client.NewHTTPClient(*baseURL)

	m := tui.New(ws, httpClient)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
