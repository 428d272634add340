package main

import (
	"log/slog"

	"reviewhub/proj/internal/api/tasks"
	"reviewhub/proj/internal/config"
	validatorlib "reviewhub/proj/internal/lib/validator"
	"reviewhub/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	Services  *services.Services
	validator *govalidator.Validate
	bgTasks   *tasks.BackgroundTasks
}

func NewApplication(cfg *config.Config, log *slog.Logger, svcs *services.Services, bgTasks *tasks.BackgroundTasks) *Application {
	validator := govalidator.New(govalidator.WithRequiredStructEnabled())
	for tag, fn := range map[string]govalidator.Func{
		"notfutureyear": validatorlib.ValidateYearNotInFuture,
		"slug":          validatorlib.ValidateSlug,
	} {
		if err := validator.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return &Application{
		cfg:       cfg,
		log:       log,
		validator: validator,
		Services:  svcs,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
		bgTasks: bgTasks,
	}
}
