package container

import (
	"context"
	"fmt"

	"relist/engine/internal/config"
	"relist/engine/internal/engine"
	"relist/engine/internal/metrics"
	"relist/engine/internal/repository"
	"relist/engine/internal/service"
	"relist/engine/internal/state"
	"relist/engine/internal/taxonomy"
	"relist/engine/internal/validate"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Taxonomy   taxonomy.Client
	Repository repository.AnalysisRepository
	TreeCache  state.TreeCache
	Tracker    *metrics.Tracker

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	db, err := pgxpool.New(context.Background(),
		fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
		))
	if err != nil {
		return nil, err
	}
	container.db = db
	container.Repository = repository.NewAnalysisRepository(db)

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("✅ Connected to Redis successfully")

	container.redis = rdb
	container.TreeCache = state.NewRedisTreeCache(rdb)

	container.Taxonomy = taxonomy.NewClient(cfg.Taxonomy, container.TreeCache)
	container.Tracker = metrics.NewTracker()

	container.Service = service.NewService(
		engine.New(container.Taxonomy),
		validate.NewValidator(container.Taxonomy),
		container.Tracker,
		container.Repository,
	)

	return container, nil
}

// Run performs a one-shot analysis for the given title and prints what the
// user would still have to fill in for the recommended category.
func (c *Container) Run(ctx context.Context, title, description string) error {
	result, err := c.Service.AnalyzeItem(ctx, title, description)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if len(result.SuggestedCategories) == 0 {
		log.Infof("No categories found for %q", title)
		return nil
	}

	log.Infof("Recommended category: %s", result.RecommendedCategory)
	for _, candidate := range result.SuggestedCategories {
		log.Infof("  %s [%s] %s — detected %d aspects, %d still needed",
			candidate.CategoryID, candidate.Confidence, candidate.CategoryName,
			len(candidate.AutoDetectedAspects), len(candidate.RequiredUserInput))
	}

	recommended := result.SuggestedCategories[0]
	aspects, err := c.Taxonomy.AspectsForCategory(ctx, recommended.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to fetch aspects for recommended category: %w", err)
	}

	dynamicFields := c.Service.CreateDynamicFields(ctx, aspects, recommended.AutoDetectedAspects)
	for _, field := range dynamicFields {
		log.Infof("  field %s (%s, required=%t)", field.Label, field.Type, field.Required)
	}

	log.Info(c.Service.PerformanceReport())
	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.db.Close()
	c.redis.Close()

	log.Info("Container shut down successfully")
	return nil
}
