package main

import (
	"context"
	"fmt"
	"os"

	"github.com/frontandrew/workshop/internal/editor"
	"github.com/frontandrew/workshop/internal/gateway"
	"github.com/frontandrew/workshop/internal/gateway/rest"
	"github.com/frontandrew/workshop/internal/pkg/config"
	"github.com/frontandrew/workshop/internal/pkg/logger"
	"github.com/frontandrew/workshop/internal/pkg/redis"
	"github.com/frontandrew/workshop/internal/session"
	"github.com/frontandrew/workshop/internal/shell"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting workshop admin client", map[string]interface{}{
		"api": cfg.API.BaseURL,
	})

	ctx := context.Background()

	// =========================================================================
	// Хранилище токена сессии
	// =========================================================================

	var store session.TokenStore
	switch cfg.TokenStore.Backend {
	case config.TokenStoreRedis:
		cache, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis is not available, falling back to file token store", map[string]interface{}{
				"error": err.Error(),
			})
			store = session.NewFileStore(cfg.TokenStore.FilePath)
			break
		}
		defer func() { _ = cache.Close() }()
		store = session.NewRedisStore(cache)
		log.Info("Using Redis token store", map[string]interface{}{
			"addr": cfg.Redis.Address(),
		})
	default:
		store = session.NewFileStore(cfg.TokenStore.FilePath)
		log.Info("Using file token store", map[string]interface{}{
			"path": cfg.TokenStore.FilePath,
		})
	}

	// =========================================================================
	// REST клиент и шлюзы
	// =========================================================================

	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)
	client.SetPageSize(cfg.UI.PageSize)

	authGateway := rest.NewAuthGateway(client)
	customerGateway := rest.NewCustomerGateway(client)
	orderGateway := rest.NewServiceOrderGateway(client)
	serviceLineGateway := rest.NewServiceLineGateway(client)
	partLineGateway := rest.NewCarPartLineGateway(client)

	// =========================================================================
	// Сессия и навигационная оболочка
	// =========================================================================

	sess := session.New(authGateway, store, log)
	client.SetTokenSource(sess)

	if err := sess.Restore(ctx); err != nil {
		log.Warn("Failed to restore session, login required", map[string]interface{}{
			"error": err.Error(),
		})
	}

	nav := shell.New(sess)

	if !sess.Authenticated() {
		log.Info("No active session, authentication required")
		return
	}

	entries := nav.VisibleEntries()
	log.Info("Session restored", map[string]interface{}{
		"permissions": len(sess.Permissions()),
		"screens":     len(entries),
	})
	for _, entry := range entries {
		log.Info("Screen available", map[string]interface{}{
			"label": entry.Label,
			"route": entry.Route,
		})
	}

	// =========================================================================
	// Редактор заказ-нарядов и пробный запрос
	// =========================================================================

	ed := editor.New(orderGateway, serviceLineGateway, partLineGateway, log)
	if err := ed.Open(ctx, editor.CreateUUID); err != nil {
		log.Error("Failed to open service order editor", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	log.Info("Service order editor ready", map[string]interface{}{
		"uuid": ed.UUID(),
	})

	if sess.HasCapability(shell.CapCustomerView) {
		page, err := customerGateway.Search(ctx, gateway.Query{})
		if err != nil {
			if nav.Guard(ctx, err) {
				log.Warn("Session expired, authentication required")
				return
			}
			log.Warn("Customer search failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		log.Info("Backend reachable", map[string]interface{}{
			"customers": page.TotalElements,
		})
	}
}
