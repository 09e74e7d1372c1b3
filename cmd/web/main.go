package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Agi91/Habit-Tracker/internal/repository"
	"github.com/Agi91/Habit-Tracker/internal/service"
	"github.com/Agi91/Habit-Tracker/internal/web"
	"github.com/Agi91/Habit-Tracker/pkg/cleanup"
	"github.com/Agi91/Habit-Tracker/pkg/config"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	pool, err := pgxpool.New(ctx, dbCfg.ConnString())
	if err != nil {
		log.Fatal("creating bootstrap connection error: " + err.Error())
	}
	if err = repository.Bootstrap(ctx, pool); err != nil {
		log.Fatal("bootstrapping schema error: " + err.Error())
	}
	pool.Close()

	habitsRepo := repository.NewHabitsRepo(&dbCfg)
	userService := service.NewUserService(repository.NewUsersRepo(&dbCfg))
	habitsService := service.NewHabitsService(habitsRepo)
	completionsService := service.NewCompletionsService(habitsRepo, repository.NewCompletionsRepo(&dbCfg))

	serv := web.New(&web.ServicesList{
		UserService:        userService,
		HabitsService:      habitsService,
		CompletionsService: completionsService,
		Sessions:           web.NewSessionManager(cfg.GetString("SESSION_SECRET")),
	})

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		cleanup.CleanUp()
		os.Exit(0)
	}()

	err = serv.Run(cfg.GetStringOr("HTTP_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	cleanup.CleanUp()
}
