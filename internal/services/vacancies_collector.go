package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/muzaffarov/vacancy-bot/internal/connectors"
	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/muzaffarov/vacancy-bot/internal/events"
	"github.com/muzaffarov/vacancy-bot/internal/logger"
	"github.com/muzaffarov/vacancy-bot/internal/matching"
	"github.com/muzaffarov/vacancy-bot/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type subscriberRepository interface {
	GetActive(ctx context.Context) ([]models.Subscriber, error)
	GetFilter(ctx context.Context, userID int64) (models.SearchFilter, error)
}

type CollectorOptions struct {
	Interval         time.Duration
	PageBudget       int
	GroupConcurrency int
}

// VacanciesCollector owns the periodic collection run: ingest channels, fetch
// per group, persist, then match and distribute per subscriber. Exactly one
// run is in flight at any time; a run that outlasts the interval makes the
// next tick a no-op instead of piling up.
type VacanciesCollector struct {
	bus         EventBus.Bus
	subscribers subscriberRepository
	vacancies   vacancyStore
	connectors  []connectors.Connector
	cache       *GroupCache
	engine      *matching.Engine
	ingester    *ChannelIngester
	distributor *VacancyDistributor
	cron        *cron.Cron
	options     CollectorOptions
	running     atomic.Bool
}

type groupMember struct {
	subscriber models.Subscriber
	filter     models.SearchFilter
}

type fetchGroup struct {
	signature GroupSignature
	keywords  []string
	location  string
	members   []groupMember
}

func NewVacanciesCollector(bus EventBus.Bus, subscribers subscriberRepository, vacancies vacancyStore,
	conns []connectors.Connector, cache *GroupCache, engine *matching.Engine,
	ingester *ChannelIngester, distributor *VacancyDistributor, options CollectorOptions) (*VacanciesCollector, error) {

	c := &VacanciesCollector{
		bus:         bus,
		subscribers: subscribers,
		vacancies:   vacancies,
		connectors:  conns,
		cache:       cache,
		engine:      engine,
		ingester:    ingester,
		distributor: distributor,
		options:     options,
	}

	if err := bus.Subscribe(events.FilterUpdatedTopic, c.onFilterUpdatedEvent); err != nil {
		return nil, err
	}

	c.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))
	_, err := c.cron.AddFunc(fmt.Sprintf("@every %s", options.Interval), c.runCollection)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *VacanciesCollector) Start() {
	c.cron.Start()
	log.Infof("vacancies collector started, interval: %v", c.options.Interval)
}

func (c *VacanciesCollector) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

func (c *VacanciesCollector) runCollection() {
	if !c.running.CompareAndSwap(false, true) {
		log.Warn("previous collection run still in progress, skipping")
		return
	}
	defer c.running.Store(false)

	startTime := time.Now()
	log.Infof("running collection at %v", startTime)

	c.RunOnce(context.Background())

	executionTime := time.Since(startTime)
	metrics.RunDuration.Observe(executionTime.Seconds())
	log.Infof("collection ended after %v", executionTime)
}

// RunOnce executes a single collection run synchronously.
func (c *VacanciesCollector) RunOnce(ctx context.Context) {

	if c.ingester != nil {
		start := time.Now()
		c.ingester.Ingest(ctx)
		metrics.RunStepDuration.WithLabelValues("channel_ingest").Observe(time.Since(start).Seconds())
	}

	subscribers, err := c.subscribers.GetActive(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get subscribers: %v", err)
		return
	}
	if len(subscribers) == 0 {
		log.Info("no active subscribers, nothing to collect")
		return
	}

	groups := c.buildGroups(ctx, subscribers)
	log.Infof("collection run: %d subscribers in %d groups", len(subscribers), len(groups))

	semaphore := make(chan struct{}, c.options.GroupConcurrency)
	var wg sync.WaitGroup

	for _, group := range groups {
		semaphore <- struct{}{}
		wg.Add(1)

		go func(group fetchGroup) {
			defer wg.Done()
			defer func() { <-semaphore }()
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("collection panic for group %q: %v", group.signature, r)
				}
			}()

			c.handleGroup(ctx, group)
		}(group)
	}

	wg.Wait()
}

// buildGroups collapses subscribers with the same keyword set and primary
// location into one fetch group. Filters without keywords would pull the
// whole firehose, so they are skipped entirely.
func (c *VacanciesCollector) buildGroups(ctx context.Context, subscribers []models.Subscriber) []fetchGroup {

	grouped := map[GroupSignature]*fetchGroup{}

	for _, subscriber := range subscribers {
		filter, err := c.subscribers.GetFilter(ctx, subscriber.ID)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to get filter for user %v: %v", subscriber.ID, err)
			continue
		}

		keywords := filter.KeywordsAsArray()
		if len(keywords) == 0 {
			log.Debugf("user %v has no keywords configured, skipping", subscriber.ID)
			continue
		}

		signature := SignatureFor(keywords, filter.PrimaryLocation())
		group, ok := grouped[signature]
		if !ok {
			group = &fetchGroup{signature: signature, keywords: keywords, location: filter.PrimaryLocation()}
			grouped[signature] = group
		}
		group.members = append(group.members, groupMember{subscriber: subscriber, filter: filter})
	}

	return lo.Map(lo.Values(grouped), func(g *fetchGroup, _ int) fetchGroup { return *g })
}

func (c *VacanciesCollector) handleGroup(ctx context.Context, group fetchGroup) {

	fetched, cached := c.cache.Get(group.signature)
	if !cached {
		start := time.Now()
		fetched = c.fetchGroup(ctx, group)
		metrics.RunStepDuration.WithLabelValues("fetch").Observe(time.Since(start).Seconds())

		c.persistFetched(ctx, fetched)
		c.cache.Set(group.signature, fetched)
	}

	start := time.Now()
	for _, member := range group.members {
		c.distributeToMember(ctx, member, fetched)
	}
	metrics.RunStepDuration.WithLabelValues("distribute").Observe(time.Since(start).Seconds())
}

// fetchGroup fans out to every connector concurrently and merges the
// results. A slow or broken source delays the group but never fails it.
func (c *VacanciesCollector) fetchGroup(ctx context.Context, group fetchGroup) []models.Vacancy {

	var mu sync.Mutex
	var merged []models.Vacancy
	var wg sync.WaitGroup

	for _, connector := range c.connectors {
		wg.Add(1)

		go func(connector connectors.Connector) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("connector %v panic: %v", connector.Source(), r)
				}
			}()

			fetched := connector.Fetch(ctx, group.keywords, group.location, c.options.PageBudget)

			mu.Lock()
			merged = append(merged, fetched...)
			mu.Unlock()
		}(connector)
	}

	wg.Wait()
	return merged
}

// persistFetched stores newly fetched vacancies. Store-backed connectors
// return rows that already carry a database ID; those are left alone.
func (c *VacanciesCollector) persistFetched(ctx context.Context, fetched []models.Vacancy) {

	fresh := lo.Filter(fetched, func(v models.Vacancy, _ int) bool { return v.ID == 0 })
	if len(fresh) == 0 {
		return
	}

	if _, err := c.vacancies.AddIfAbsent(ctx, fresh); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to persist fetched vacancies: %v", err)
	}
}

func (c *VacanciesCollector) distributeToMember(ctx context.Context, member groupMember, fetched []models.Vacancy) {

	filter := member.filter
	adjustSourcesForTier(&filter, member.subscriber.IsPremium(time.Now()))

	matched := c.engine.Apply(fetched, filter)
	if len(matched) == 0 {
		return
	}

	scored := lo.Map(matched, func(v models.Vacancy, _ int) ScoredVacancy {
		return ScoredVacancy{Vacancy: v, Score: c.engine.Score(v, filter)}
	})
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	sent := c.distributor.Distribute(ctx, member.subscriber, scored)
	if sent > 0 {
		log.Infof("sent %d vacancies to user %v", sent, member.subscriber.ID)
	}
}

// adjustSourcesForTier grants the telegram source to premium subscribers for
// the duration of the run and withholds it from free ones, regardless of
// what the stored filter says.
func adjustSourcesForTier(filter *models.SearchFilter, premium bool) {

	sources := filter.SourcesAsArray()

	if premium {
		if !lo.Contains(sources, models.SourceTelegram) {
			sources = append(sources, models.SourceTelegram)
		}
	} else {
		sources = lo.Filter(sources, func(s models.Source, _ int) bool {
			return s != models.SourceTelegram
		})
	}

	filter.SetSources(sources)
}

func (c *VacanciesCollector) onFilterUpdatedEvent(event events.FilterUpdated) {
	signature := SignatureFor(event.OldKeywords, event.OldLocation)
	c.cache.Invalidate(signature)
	log.Debugf("invalidated cached group %q after filter update by user %v", signature, event.UserID)
}
