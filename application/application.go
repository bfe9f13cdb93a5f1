package application

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"cmanagement/collection"
	"cmanagement/config"
	"cmanagement/database"
	"cmanagement/logger"
	"cmanagement/maxAPI"
	"cmanagement/services"
)

type Application struct {
	Bot    *maxAPI.Bot
	DB     *sqlx.DB
	logger *logger.Logger
}

func NewApplication() *Application {
	return &Application{}
}

func (app *Application) Configure(cfg *config.Config, log *logger.Logger, ctx context.Context) error {
	app.logger = log

	var sources maxAPI.Sources
	if cfg.Database.URI == "" {
		log.Info("No database configured, using simulated sources")
		sources = mockSources(cfg)
	} else {
		db, err := database.OpenDB(cfg.Database.URI)
		if err != nil {
			return err
		}
		app.DB = db
		sources = dbSources(db)
	}

	uploader := &services.MockUploader{
		BaseURL: cfg.Upload.BaseURL,
		Delay:   time.Duration(cfg.Mock.DelayMS) * time.Millisecond,
	}
	generateDelay := time.Duration(cfg.Mock.GenerateDelayMS) * time.Millisecond

	b, err := maxAPI.NewBot(&cfg.MaxAPI, log, sources, uploader, generateDelay, ctx)
	if err != nil {
		if app.DB != nil {
			_ = app.DB.Close()
		}
		return err
	}
	app.Bot = b

	return nil
}

func (app *Application) Run(ctx context.Context) {
	app.Bot.Start(ctx)
	<-ctx.Done()

	if app.DB != nil {
		_ = app.DB.Close()
	}
}

func mockSources(cfg *config.Config) maxAPI.Sources {
	delay := time.Duration(cfg.Mock.DelayMS) * time.Millisecond
	return maxAPI.Sources{
		Classes: services.NewMockSource(delay, services.MockClasses),
		Students: func(classID int64) collection.Source[database.Student] {
			return services.NewMockSource(delay, func() []database.Student {
				return services.MockStudents(classID)
			})
		},
		Events:     services.NewMockSource(delay, services.MockEvents),
		Recordings: services.NewMockSource(delay, services.MockRecordings),
		Reports:    services.NewMockSource(delay, services.MockReports),
		Schedule:   services.MockSchedule,
	}
}

func dbSources(db *sqlx.DB) maxAPI.Sources {
	reportRepo := database.NewReportRepository(db)
	return maxAPI.Sources{
		Classes: database.NewClassRepository(db),
		Students: func(classID int64) collection.Source[database.Student] {
			return database.NewStudentRepository(db, classID)
		},
		Events:     database.NewEventRepository(db),
		Recordings: database.NewRecordingRepository(db),
		Reports:    reportRepo,
		Schedule:   services.MockSchedule,
		CompleteReport: func(ctx context.Context, id int64, status database.ReportStatus, qrCode string, averageGrade float64) error {
			return reportRepo.UpdateStatus(ctx, id, status, qrCode, averageGrade)
		},
	}
}
