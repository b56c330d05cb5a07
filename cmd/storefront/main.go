package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/elizavetaa0/web-larek-frontend/internal/api"
	"github.com/elizavetaa0/web-larek-frontend/internal/cart"
	"github.com/elizavetaa0/web-larek-frontend/internal/catalog"
	"github.com/elizavetaa0/web-larek-frontend/internal/checkout"
	"github.com/elizavetaa0/web-larek-frontend/internal/config"
	"github.com/elizavetaa0/web-larek-frontend/internal/events"
	"github.com/elizavetaa0/web-larek-frontend/internal/order"
	"github.com/elizavetaa0/web-larek-frontend/pkg/logger"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.NewFile("storefront", cfg.LogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	// one bus instance, passed to every component that needs it
	bus := events.NewBus()

	client := api.NewClient(cfg.APIBaseURL, cfg.CDNURL, cfg.RequestTimeout)
	catalogState := catalog.NewState(bus)
	cartState := cart.NewState(bus)
	draft := order.NewDraft(bus)
	machine := checkout.NewMachine(bus, cartState, draft, client, log)

	a := &app{
		client:  client,
		catalog: catalogState,
		cart:    cartState,
		draft:   draft,
		machine: machine,
	}

	program := tea.NewProgram(initialModel(a))

	// forward every bus event into the update loop, and keep a
	// structured trace of the event flow in the log file
	bus.SubscribeAll(func(name string, payload any) {
		log.Debug("event", zap.String("name", name))
		program.Send(busMsg{name: name, payload: payload})
	})

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
