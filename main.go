package main

import (
	"flag"
	"log"
	"time"

	"binchecker/config"
	"binchecker/fetcher"
	"binchecker/filter"
	"binchecker/notify"
	"binchecker/parser"
	"binchecker/rungate"
	"binchecker/walker"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	gate, err := rungate.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create run gate: %v\n", err)
	}

	if !gate.ShouldRun(rungate.SignalsFromEnv(), time.Now()) {
		log.Printf("Not within %s window - exiting.\n", gate.WindowDescription())
		return
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Run failed: %v\n", err)
	}
}

// run performs a single check: walk the council site's form, parse the
// schedule, and send a reminder if a watched bin is due tomorrow
func run(cfg *config.Config) error {
	bot, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		return err
	}

	if config.ForceTestMessage() {
		if err := bot.Send(notify.TestMessage); err != nil {
			return err
		}
		log.Println("Sent test message.")
	}

	client, err := fetcher.NewClient(
		cfg.Site.BaseURL,
		cfg.Site.TrackingCookie.Name,
		cfg.Site.TrackingCookie.Value,
		cfg.AllowInsecureFallback,
	)
	if err != nil {
		return err
	}

	w, err := walker.New(client, cfg)
	if err != nil {
		return err
	}

	scheduleHTML, err := w.ResolveSchedulePage(cfg.Postcode, cfg.AddressMatch)
	if err != nil {
		return err
	}

	records := parser.ParseCollections(scheduleHTML)
	log.Printf("Found %d upcoming collections\n", len(records))

	due := filter.NewFilter(cfg.WatchFor).SelectDue(records, filter.Tomorrow(time.Now()))
	if len(due) == 0 {
		log.Println("No watched bins due tomorrow.")
		return nil
	}

	if err := bot.Send(notify.FormatReminder(due)); err != nil {
		return err
	}
	log.Println("Reminder sent.")
	return nil
}
