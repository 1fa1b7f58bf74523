package api

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/i18n"
	"github.com/terraincognita07/bloom/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	location           *time.Location
	i18n               *i18n.Manager
	validate           *validator.Validate
	now                func() time.Time
	cycleService       *services.CycleService
	entryService       *services.EntryService
	preferencesService *services.PreferencesService
	exportService      *services.ExportService
	dailyLogService    *services.DailyLogService
	symptomService     *services.SymptomService
	access             *services.AccessService
	tokenLimiter       *passphraseLimiter
}

func NewHandler(database *gorm.DB, location *time.Location, i18nManager *i18n.Manager, access *services.AccessService) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if access == nil {
		return nil, errors.New("access service is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.Local
	}

	handler := &Handler{
		location: location,
		i18n:     i18nManager,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,

		access:       access,
		tokenLimiter: newPassphraseLimiter(passphraseAttemptLimit, passphraseAttemptWindow),
	}
	return handler.withDependencies(db.NewRepositories(database)), nil
}

func (handler *Handler) withDependencies(repositories *db.Repositories) *Handler {
	handler.preferencesService = services.NewPreferencesService(repositories.Preferences)
	handler.entryService = services.NewEntryService(repositories.Entries, handler.location)
	handler.cycleService = services.NewCycleService(repositories.Entries, handler.preferencesService, handler.location)
	handler.exportService = services.NewExportService(repositories.Entries, handler.location)
	handler.symptomService = services.NewSymptomService(repositories.Symptoms, repositories.DailyLogs)
	handler.dailyLogService = services.NewDailyLogService(repositories.DailyLogs, handler.symptomService, handler.location)
	return handler
}

// SymptomService exposes the symptom catalogue so startup can seed built-ins.
func (handler *Handler) SymptomService() *services.SymptomService {
	return handler.symptomService
}

// CycleService exposes the prediction service for background jobs.
func (handler *Handler) CycleService() *services.CycleService {
	return handler.cycleService
}

func (handler *Handler) today() time.Time {
	return services.DateAtLocation(handler.now(), handler.location)
}
