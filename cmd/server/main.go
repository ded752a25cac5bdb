package main

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	migrations "vitalsim/db"
	httpadapter "vitalsim/internal/adapter/http"
	inventoryadapter "vitalsim/internal/adapter/inventory"
	metricsinmem "vitalsim/internal/adapter/metrics/inmemory"
	"vitalsim/internal/adapter/notify"
	gormrepo "vitalsim/internal/adapter/repo/gorm"
	"vitalsim/internal/adapter/repo/memory"
	"vitalsim/internal/app/consume"
	"vitalsim/internal/app/effects"
	"vitalsim/internal/app/inventory"
	"vitalsim/internal/app/ports"
	"vitalsim/internal/app/status"
	"vitalsim/internal/app/tick"
	"vitalsim/internal/domain/conditions"
	"vitalsim/internal/platform/config"
	vitalotel "vitalsim/internal/platform/otel"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	shutdown, err := vitalotel.Setup(ctx, "vitalsim", vitalotel.Options{Endpoint: cfg.OTelEndpoint, Enabled: cfg.OTelEnabled})
	if err != nil {
		log.Printf("warn: tracing disabled: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("warn: flush traces: %v", err)
		}
	}()

	catalog := conditions.DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		log.Fatalf("catalog: %v", err)
	}

	repos := mustBuildRepos(ctx, cfg)
	kpiRecorder := metricsinmem.NewRecorder()
	publisher := notify.FanOut{repos.notifications, notify.LogPublisher{}}
	binder := inventoryadapter.Binder{Catalog: catalog}
	dice := newDice(cfg.RandomSeed)

	h := httpadapter.Handler{
		StatusUC: status.UseCase{StateRepo: repos.state, Metrics: kpiRecorder, Catalog: catalog},
		ConsumeUC: consume.UseCase{
			TxManager: repos.tx,
			StateRepo: repos.state,
			Publisher: publisher,
			Inventory: binder,
			Metrics:   kpiRecorder,
			Catalog:   catalog,
			Dice:      dice,
			Now:       time.Now,
		},
		TickUC: tick.UseCase{
			TxManager: repos.tx,
			StateRepo: repos.state,
			Publisher: publisher,
			Inventory: binder,
			Metrics:   kpiRecorder,
			Catalog:   catalog,
			Dice:      dice,
			Now:       time.Now,
		},
		EffectsUC: effects.UseCase{
			TxManager: repos.tx,
			StateRepo: repos.state,
			Publisher: publisher,
			Metrics:   kpiRecorder,
			Catalog:   catalog,
			Now:       time.Now,
		},
		InventoryUC: inventory.UseCase{
			TxManager: repos.tx,
			StateRepo: repos.state,
			Inventory: binder,
			Metrics:   kpiRecorder,
			Catalog:   catalog,
			Now:       time.Now,
		},
		Notifications: repos.notifications,
		Catalog:       catalog,
		KPI:           kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)

	log.Printf("vitalsim server listening on %s (store: %s)", cfg.HTTPAddr, cfg.Store)
	s.Spin()
}

type repoSet struct {
	state         ports.SessionStateRepository
	notifications ports.NotificationRepository
	tx            ports.TxManager
}

func mustBuildRepos(ctx context.Context, cfg config.Config) repoSet {
	if cfg.Store != config.StorePostgres {
		store := memory.NewStore()
		return repoSet{
			state:         memory.NewSessionStateRepo(store),
			notifications: memory.NewNotificationRepo(store),
			tx:            memory.NewTxManager(store),
		}
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if cfg.MigrationsDir != "" {
		err = gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir)
	} else {
		err = gormrepo.ApplyMigrationsFS(ctx, db, migrations.Migrations())
	}
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return repoSet{
		state:         gormrepo.NewSessionStateRepo(db),
		notifications: gormrepo.NewNotificationRepo(db),
		tx:            gormrepo.NewTxManager(db),
	}
}

// newDice seeds a PCG source when a seed is configured so runs replay; zero
// means the process-wide random source.
func newDice(seed uint64) conditions.Dice {
	if seed == 0 {
		return conditions.GlobalDice{}
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
