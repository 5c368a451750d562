package service

import (
	"context"
	"errors"
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResponse, error)
}

type bookingService struct {
	appointments repository.AppointmentRepository
	comandas     repository.ComandaRepository
	clients      repository.ClientRepository
	catalog      repository.CatalogRepository
	staff        repository.StaffRepository
	agenda       AgendaService
}

func NewBookingService(
	appointments repository.AppointmentRepository,
	comandas repository.ComandaRepository,
	clients repository.ClientRepository,
	catalog repository.CatalogRepository,
	staff repository.StaffRepository,
	agenda AgendaService,
) BookingService {
	return &bookingService{
		appointments: appointments,
		comandas:     comandas,
		clients:      clients,
		catalog:      catalog,
		staff:        staff,
		agenda:       agenda,
	}
}

// CreateBooking turns "client receives service X from staff Y at time T"
// into an Appointment plus an open Comanda pre-populated with that service.
// The whole sequence — client creation, overlap check, appointment insert,
// comanda insert with its initial line — runs in one transaction, so a
// booking either fully exists or not at all: there is no window where an
// appointment has no comanda.
func (s *bookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, &apierror.Error{
			Kind:   apierror.KindValidation,
			Msg:    "start_time must be RFC 3339",
			Fields: map[string]string{"start_time": "invalid"},
		}
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apierror.E(apierror.KindValidation, "service_id is not a valid uuid")
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, apierror.E(apierror.KindValidation, "staff_id is not a valid uuid")
	}

	// Resolve the service — must be an active service with a duration
	svc, err := s.catalog.FindByID(ctx, serviceID)
	if err != nil {
		return nil, apierror.Ef(apierror.KindNotFound, "service %s not found", req.ServiceID)
	}
	if !svc.Active || svc.Kind != model.KindService {
		return nil, apierror.Ef(apierror.KindNotFound, "service %s is not an active service", svc.Name)
	}
	duration := 30 * time.Minute
	if svc.DurationMin != nil {
		duration = time.Duration(*svc.DurationMin) * time.Minute
	}
	end := start.Add(duration)

	// Resolve the professional
	professional, err := s.staff.FindByID(ctx, staffID)
	if err != nil {
		return nil, apierror.Ef(apierror.KindNotFound, "staff %s not found", req.StaffID)
	}
	if professional.Status != "active" {
		return nil, apierror.Ef(apierror.KindNotFound, "staff %s is inactive", professional.Name)
	}

	// Resolve the client outside the tx; creation (if needed) happens inside
	client, newClient, err := s.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		appointment model.Appointment
		comanda     model.Comanda
	)
	txErr := runTx(ctx, s.appointments.DB(), func(tx *gorm.DB) error {
		// Serialize bookings per staff before the overlap check. Without
		// the lock two concurrent transactions each see zero conflicts
		// and both commit.
		if err := s.appointments.LockAgendaTx(tx, staffID); err != nil {
			return err
		}
		conflicts, err := s.appointments.CountConflicts(tx, staffID, start, end)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return apierror.Ef(apierror.KindConflict, "staff %s already has an appointment between %s and %s",
				professional.Name, start.Format("15:04"), end.Format("15:04"))
		}

		if newClient {
			if err := s.clients.CreateTx(tx, client); err != nil {
				return err
			}
		}

		appointment = model.Appointment{
			ClientID:  client.ID,
			StaffID:   staffID,
			ServiceID: serviceID,
			StartTime: start,
			EndTime:   end,
			Status:    model.AppointmentConfirmed,
		}
		if err := s.appointments.CreateTx(tx, &appointment); err != nil {
			return err
		}

		// Initial comanda: one line snapshotting the service's current
		// price and name; responsible staff defaults to the booked barber.
		apptID := appointment.ID
		staffRef := staffID
		comanda = model.Comanda{
			ClientID:      client.ID,
			AppointmentID: &apptID,
			StaffID:       &staffRef,
			Origin:        model.OriginScheduled,
			Status:        model.ComandaOpen,
			Items: []model.ComandaItem{{
				Kind:               model.KindService,
				CatalogItemID:      svc.ID,
				Name:               svc.Name,
				UnitPrice:          svc.Price,
				Quantity:           1,
				ResponsibleStaffID: staffID,
			}},
		}
		comanda.RecomputeTotals()
		return s.comandas.CreateTx(tx, &comanda)
	})
	if txErr != nil {
		var de *apierror.Error
		if errors.As(txErr, &de) {
			return nil, de
		}
		return nil, apierror.Wrap(apierror.KindDependency, "booking transaction failed", txErr)
	}

	if s.agenda != nil {
		s.agenda.InvalidateGrid(ctx, start)
	}

	return &dto.BookingResponse{
		Appointment: *appointmentToResponse(&appointment),
		Comanda:     *comandaToResponse(&comanda),
	}, nil
}

// resolveClient returns the existing client (by id, or case-insensitive
// exact name match) or a new unsaved Client when the explicit create path
// applies. New clients require a phone number.
func (s *bookingService) resolveClient(ctx context.Context, req dto.CreateBookingRequest) (*model.Client, bool, error) {
	if req.ClientID != nil {
		id, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, false, apierror.E(apierror.KindValidation, "client_id is not a valid uuid")
		}
		client, err := s.clients.FindByID(ctx, id)
		if err != nil {
			return nil, false, apierror.Ef(apierror.KindNotFound, "client %s not found", *req.ClientID)
		}
		return client, false, nil
	}

	if req.ClientName == "" {
		return nil, false, &apierror.Error{
			Kind:   apierror.KindValidation,
			Msg:    "either client_id or client_name is required",
			Fields: map[string]string{"client_name": "required"},
		}
	}

	if existing, err := s.clients.FindByName(ctx, req.ClientName); err == nil {
		return existing, false, nil
	}

	if req.ClientPhone == "" {
		return nil, false, &apierror.Error{
			Kind:   apierror.KindValidation,
			Msg:    "a phone number is required to register a new client",
			Fields: map[string]string{"client_phone": "required"},
		}
	}
	return &model.Client{Name: req.ClientName, Phone: req.ClientPhone}, true, nil
}
