package cmd

import (
	"context"
	"fmt"

	"github.com/castelle/tipcast/config"
	"github.com/castelle/tipcast/logger"
	ksvc "github.com/kardianos/service"
)

type Program struct {
	app    *App
	cancel context.CancelFunc
}

func (p *Program) Start(s ksvc.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx)
	return nil
}

func (p *Program) run(ctx context.Context) {
	if err := p.app.Scheduler.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Logger.Printf("Scheduler stopped: %v", err)
	}
}

func (p *Program) Stop(s ksvc.Service) error {
	if p.cancel != nil {
		p.cancel()
	}
	return p.app.Close()
}

func RunService() {
	cfg, err := config.LoadConfig(config.GetConfigPath())
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	if err := logger.InitLogger(cfg); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		return
	}

	app, err := NewApp(cfg)
	if err != nil {
		logger.Logger.Printf("Error building scheduler: %v", err)
		return
	}

	prg := &Program{app: app}

	svcConfig := &ksvc.Config{
		Name:        "Tipcast",
		DisplayName: "Tipcast Posting Service",
		Description: "This service posts scheduled developer tips and quizzes to LinkedIn.",
	}

	s, err := ksvc.New(prg, svcConfig)
	if err != nil {
		logger.Logger.Printf("Error creating service: %v", err)
		return
	}

	err = s.Run()
	if err != nil {
		logger.Logger.Printf("Error running service: %v", err)
	}
}
