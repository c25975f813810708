package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/audit"
	"github.com/mrlokans/librarium/internal/catalog"
	"github.com/mrlokans/librarium/internal/config"
	http_controllers "github.com/mrlokans/librarium/internal/http"
	"github.com/mrlokans/librarium/internal/scheduler"
	"github.com/mrlokans/librarium/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g. to stop the task queue and
	// schedulers) so in-flight work drains before the listener dies.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Librarium v%s", version)

	// Open the catalog. A missing library file just means an empty
	// catalog; a corrupt one is fatal.
	store, err := catalog.Open(cfg.Library.Path)
	if err != nil {
		log.Fatalf("Failed to open library %s: %v", cfg.Library.Path, err)
	}
	log.Printf("Library loaded from %s (%d books)", cfg.Library.Path, store.Books().Count)

	// Audit trail database.
	auditDB, err := audit.OpenDatabase(cfg.Audit.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize audit database: %v", err)
	}
	defer func() {
		if err := auditDB.Close(); err != nil {
			log.Printf("Error closing audit database: %v", err)
		}
	}()

	auditService := audit.NewService(audit.NewRepository(auditDB.DB))

	// Task queue for background maintenance.
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var auditCleanup *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Audit.DBPath, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Periodically enqueue the audit retention cleanup.
		auditCleanup = scheduler.NewAuditCleanupScheduler(
			taskClient,
			cfg.Audit.CleanupSchedule,
			cfg.Audit.RetentionDays,
		)
		if err := auditCleanup.Start(); err != nil {
			log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
		}
	}

	// Snapshot backups of the library file.
	var snapshots *scheduler.SnapshotScheduler
	if cfg.Backup.Enabled {
		snapshots = scheduler.NewSnapshotScheduler(
			cfg.Library.Path,
			cfg.Backup.Dir,
			cfg.Backup.Schedule,
			cfg.Backup.Keep,
		)
		if err := snapshots.Start(); err != nil {
			log.Fatalf("Failed to start snapshot scheduler: %v", err)
		}
		log.Printf("Snapshot backups enabled: %s -> %s (keep %d)",
			cfg.Backup.Schedule, cfg.Backup.Dir, cfg.Backup.Keep)
	}

	routerCfg := http_controllers.RouterConfig{
		Store:         store,
		AuditService:  auditService,
		AuditDB:       auditDB,
		LibraryPath:   cfg.Library.Path,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		Version:       version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if snapshots != nil {
			snapshots.Stop()
		}
		if auditCleanup != nil {
			auditCleanup.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
