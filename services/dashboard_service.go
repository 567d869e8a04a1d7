package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
)

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	userRepo       repositories.UserRepository
	groupRepo      repositories.GroupRepository
	predictionRepo repositories.PredictionRepository
	fixtureRepo    repositories.FixtureRepository
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
	predictionRepo repositories.PredictionRepository,
	fixtureRepo repositories.FixtureRepository,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		groupRepo:      groupRepo,
		predictionRepo: predictionRepo,
		fixtureRepo:    fixtureRepo,
	}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.UsersTotal, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.GroupsTotal, err = s.groupRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PredictionsTotal, err = s.predictionRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.SettledTotal, err = s.predictionRepo.CountSettled(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.FixturesScheduled, err = s.fixtureRepo.CountScheduled(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	return &stats, nil
}
