package main

import (
	"context"
	"log"
	"os"

	"posdesk/internal/auth"
	"posdesk/internal/cart"
	"posdesk/internal/catalog"
	"posdesk/internal/checkout"
	"posdesk/internal/config"
	"posdesk/internal/db"
	"posdesk/internal/journal"
	"posdesk/internal/logger"
	"posdesk/internal/order"
	"posdesk/internal/payment"
	"posdesk/internal/receipt"
	"posdesk/internal/terminal"
	"posdesk/internal/transport"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	session := auth.NewSession()
	backend := transport.NewClient(cfg.BackendBaseURL, session)

	authClient := auth.NewClient(backend, session)
	catalogClient := catalog.NewClient(backend)
	orderGateway := order.NewGateway(backend)
	paymentGateway := payment.NewGateway(backend)

	loader := payment.NewScriptLoader(cfg.CheckoutScriptURL)
	widget := payment.NewBrowserWidget(loader, cfg.CheckoutKeyID, cfg.StoreDisplayName, cfg.CallbackAddr)

	cartStore := cart.NewStore()
	notifier := terminal.NewNotifier(os.Stdout)
	checkoutSvc := checkout.NewService(cartStore, orderGateway, paymentGateway, widget, notifier, cfg.Currency)

	var journalRepo journal.Repository
	if cfg.JournalEnabled() {
		database, err := db.Open(cfg)
		if err != nil {
			log.Fatalf("journal db: %v", err)
		}
		defer database.Close()
		journalRepo = journal.NewRepository(database)
	}

	presenter := receipt.NewPresenter(cfg.StoreDisplayName, receipt.LPPrinter{})

	term := terminal.New(
		os.Stdin, os.Stdout,
		cartStore, checkoutSvc, catalogClient, authClient, journalRepo, presenter,
	)

	if err := term.Run(context.Background()); err != nil {
		log.Fatalf("terminal: %v", err)
	}
}
