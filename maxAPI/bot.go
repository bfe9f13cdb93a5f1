package maxAPI

import (
	"context"
	"sync"
	"time"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"cmanagement/collection"
	"cmanagement/config"
	"cmanagement/database"
	"cmanagement/logger"
	"cmanagement/services"
)

// Sources bundles one data source per entity category. The application
// wires either the simulated sources or the Postgres repositories in here;
// the bot never knows which.
type Sources struct {
	Classes    collection.Source[database.SchoolClass]
	Students   func(classID int64) collection.Source[database.Student]
	Events     collection.Source[database.CalendarEvent]
	Recordings collection.Source[database.Recording]
	Reports    collection.Source[database.Report]

	// Schedule feeds the read-only timetable block on the class detail.
	Schedule func() []database.ScheduleEntry

	// CompleteReport persists the outcome of a background generation.
	// Nil when the backend has nowhere to persist it.
	CompleteReport func(ctx context.Context, id int64, status database.ReportStatus, qrCode string, averageGrade float64) error
}

// session is the per-user application state: one screen controller per
// entity category plus the settings and any dialog in flight. The roster
// screen is rebuilt when the user opens a different class.
type session struct {
	classes    *collection.Screen[database.SchoolClass]
	events     *collection.Screen[database.CalendarEvent]
	recordings *collection.Screen[database.Recording]
	reports    *collection.Screen[database.Report]

	classID  int64
	students *collection.Screen[database.Student]

	settings services.Settings

	dialog        *dialog
	pendingMedia  bool
	pendingImport string // import kind awaiting a file, "" when none
	pendingDelete string // entity kind awaiting yes/no, "" when none
}

type Bot struct {
	MaxBot *schemes.BotInfo
	MaxAPI *maxbot.Api
	logger *logger.Logger

	sources  Sources
	uploader services.Uploader

	generateDelay time.Duration

	sessions          map[int64]*session
	processedMessages map[string]bool
	mu                sync.Mutex
}

func NewBot(cfg *config.MaxConfig, log *logger.Logger, sources Sources, uploader services.Uploader, generateDelay time.Duration, ctx context.Context) (*Bot, error) {
	api, err := maxbot.New(cfg.Token)
	if err != nil && err.Error() != "" {
		log.Errorf("failed to create max api: %v", err)
		return nil, err
	}

	maxBot, err := api.Bots.GetBot(ctx)
	if err != nil && err.Error() != "" {
		log.Errorf("failed to get bot info: %v", err)
		return nil, err
	}

	return &Bot{
		MaxBot:            maxBot,
		MaxAPI:            api,
		logger:            log,
		sources:           sources,
		uploader:          uploader,
		generateDelay:     generateDelay,
		sessions:          make(map[int64]*session),
		processedMessages: make(map[string]bool),
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	go func() {
		for upd := range b.MaxAPI.GetUpdates(ctx) {
			b.logger.Debugf("Received update type: %T", upd)

			switch u := upd.(type) {
			case *schemes.BotStartedUpdate:
				b.handleBotStarted(ctx, u)
			case *schemes.MessageCreatedUpdate:
				b.handleMessageCreated(ctx, u)
			case *schemes.MessageCallbackUpdate:
				b.handleCallback(ctx, u)
			default:
				b.logger.Debugf("Unhandled update type: %T", upd)
			}
		}
	}()
}

// getSession returns the user's session, building the screens on first
// contact. The roster screen is created lazily when a class is opened.
func (b *Bot) getSession(userID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.sessions[userID]; ok {
		return s
	}

	notify := &chatNotifier{bot: b, userID: userID}
	s := &session{
		classes:    collection.NewScreen(b.sources.Classes, database.NewClassStore(), database.ClassQuery, database.NewClassForm(), notify),
		events:     collection.NewScreen(b.sources.Events, database.NewEventStore(), database.EventQuery, database.NewEventForm(), notify),
		recordings: collection.NewScreen(b.sources.Recordings, database.NewRecordingStore(), database.RecordingQuery, database.NewRecordingForm(), notify),
		reports:    collection.NewScreen(b.sources.Reports, database.NewReportStore(), database.ReportQuery, database.NewReportForm(), notify),
		settings:   services.DefaultSettings(),
	}
	b.sessions[userID] = s
	return s
}

// openClass points the session at a class roster, rebuilding the screen
// when the class changes.
func (b *Bot) openClass(userID int64, classID int64) *session {
	s := b.getSession(userID)

	b.mu.Lock()
	defer b.mu.Unlock()

	if s.classID != classID || s.students == nil {
		notify := &chatNotifier{bot: b, userID: userID}
		s.classID = classID
		s.students = collection.NewScreen(
			b.sources.Students(classID),
			database.NewStudentStore(),
			database.StudentQuery,
			database.NewStudentForm(classID),
			notify,
		)
	}
	return s
}
