package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/config"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/timegrid"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const gridCacheTTL = 60 * time.Second

// AgendaService serves the daily schedule and its grid placements.
// The grid is a pure function of the day's appointments (timegrid package);
// the computed placement set is cached in redis per date and invalidated
// whenever a booking or cancellation touches that day.
type AgendaService interface {
	ListDay(ctx context.Context, date string) ([]dto.AppointmentResponse, error)
	Grid(ctx context.Context, date string) ([]timegrid.Placement, error)
	InvalidateGrid(ctx context.Context, day time.Time)
}

type agendaService struct {
	appointments repository.AppointmentRepository
	rdb          *redis.Client
	window       timegrid.Window
}

func NewAgendaService(appointments repository.AppointmentRepository, rdb *redis.Client, cfg *config.Config) AgendaService {
	window := timegrid.DefaultWindow
	if cfg != nil && cfg.GridEndHour > cfg.GridStartHour {
		window = timegrid.Window{StartHour: cfg.GridStartHour, EndHour: cfg.GridEndHour}
	}
	return &agendaService{appointments: appointments, rdb: rdb, window: window}
}

func (s *agendaService) ListDay(ctx context.Context, date string) ([]dto.AppointmentResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apierror.E(apierror.KindValidation, "date must be YYYY-MM-DD")
	}

	appts, err := s.appointments.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, *appointmentToResponse(&appts[i]))
	}
	return out, nil
}

func (s *agendaService) Grid(ctx context.Context, date string) ([]timegrid.Placement, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apierror.E(apierror.KindValidation, "date must be YYYY-MM-DD")
	}

	if cached, ok := s.cachedGrid(ctx, date); ok {
		return cached, nil
	}

	appts, err := s.appointments.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	entries := make([]timegrid.Entry, 0, len(appts))
	for _, a := range appts {
		entries = append(entries, timegrid.Entry{
			AppointmentID: a.ID,
			StaffID:       a.StaffID,
			StartTime:     a.StartTime,
			EndTime:       a.EndTime,
		})
	}
	placements := timegrid.Place(entries, s.window)

	s.storeGrid(ctx, date, placements)
	return placements, nil
}

func (s *agendaService) InvalidateGrid(ctx context.Context, day time.Time) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, gridCacheKey(day.Format("2006-01-02"))).Err(); err != nil {
		log.Warn().Err(err).Msg("agenda grid cache invalidation failed")
	}
}

func (s *agendaService) cachedGrid(ctx context.Context, date string) ([]timegrid.Placement, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, gridCacheKey(date)).Result()
	if err != nil {
		return nil, false
	}
	var placements []timegrid.Placement
	if err := json.Unmarshal([]byte(raw), &placements); err != nil {
		return nil, false
	}
	return placements, true
}

func (s *agendaService) storeGrid(ctx context.Context, date string, placements []timegrid.Placement) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(placements)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, gridCacheKey(date), data, gridCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("agenda grid cache write failed")
	}
}

func gridCacheKey(date string) string { return "agenda:grid:" + date }
