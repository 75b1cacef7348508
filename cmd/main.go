package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/muzaffarov/vacancy-bot/internal/clients/hh"
	"github.com/muzaffarov/vacancy-bot/internal/clients/tgpreview"
	"github.com/muzaffarov/vacancy-bot/internal/clients/uzjobs"
	"github.com/muzaffarov/vacancy-bot/internal/config"
	"github.com/muzaffarov/vacancy-bot/internal/connectors"
	"github.com/muzaffarov/vacancy-bot/internal/logger"
	"github.com/muzaffarov/vacancy-bot/internal/matching"
	"github.com/muzaffarov/vacancy-bot/internal/metrics"
	"github.com/muzaffarov/vacancy-bot/internal/notifier"
	"github.com/muzaffarov/vacancy-bot/internal/repositories"
	"github.com/muzaffarov/vacancy-bot/internal/services"
	log "github.com/sirupsen/logrus"
)

func buildConnectors(cfg *config.Config, vacancies *repositories.Vacancies) []connectors.Connector {

	hhClient := hh.NewClient()
	hhClient.SetRateLimit(cfg.Scraper.HhMaxRequestsPerSecond)

	return []connectors.Connector{
		connectors.NewHHConnector(hhClient, connectors.DefaultCurrencyRates()),
		connectors.NewUzJobsConnector(uzjobs.NewClient()),
		connectors.NewTelegramConnector(vacancies, cfg.Scraper.RecencyWindow),
		connectors.NewUserPostConnector(vacancies, cfg.Scraper.RecencyWindow),
	}
}

func runCollector(cfg *config.Config, vacancies *repositories.Vacancies,
	subscribers *repositories.Subscribers, bus EventBus.Bus) *services.VacanciesCollector {

	sender, err := notifier.NewTelegramNotifier(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("can't create telegram notifier: %v", err)
	}

	distributor := services.NewVacancyDistributor(vacancies, sender,
		cfg.Scraper.SendDelay, cfg.Scraper.FreeSendCap, cfg.Scraper.PremiumSendCap)

	ingester := services.NewChannelIngester(tgpreview.NewClient(), vacancies,
		matching.NewClassifier(nil, nil), cfg.Scraper.Channels, cfg.Scraper.ChannelMessageLimit)

	collector, err := services.NewVacanciesCollector(bus, subscribers, vacancies,
		buildConnectors(cfg, vacancies), services.NewGroupCache(cfg.Scraper.CacheTTL),
		matching.NewEngine(nil), ingester, distributor,
		services.CollectorOptions{
			Interval:         cfg.Scraper.Interval,
			PageBudget:       cfg.Scraper.PageBudget,
			GroupConcurrency: cfg.Scraper.GroupConcurrency,
		})
	if err != nil {
		log.Fatalf("can't create collector: %v", err)
	}

	collector.Start()
	return collector
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	vacancies := repositories.NewVacanciesRepository(dbContext.DB)
	subscribers := repositories.NewSubscribersRepository(dbContext.DB)
	bus := EventBus.New()

	cleaner, err := services.NewVacanciesCleaner(vacancies, cfg.Scraper.VacancyExpirationInDays)
	if err != nil {
		log.Fatalf("can't create cleaner: %v", err)
	}
	defer cleaner.Stop()

	collector := runCollector(cfg, vacancies, subscribers, bus)

	<-ctx.Done()

	log.Info("Shutting down services...")
	collector.Stop()
	log.Info("Services stopped.")
}
