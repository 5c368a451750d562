package service

import (
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
)

const timeFormat = time.RFC3339

func comandaToResponse(c *model.Comanda) *dto.ComandaResponse {
	items := make([]dto.ComandaItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, dto.ComandaItemResponse{
			ID:                 item.ID.String(),
			Kind:               item.Kind,
			CatalogItemID:      item.CatalogItemID.String(),
			Name:               item.Name,
			UnitPrice:          item.UnitPrice,
			Quantity:           item.Quantity,
			ResponsibleStaffID: item.ResponsibleStaffID.String(),
		})
	}

	resp := &dto.ComandaResponse{
		ID:            c.ID.String(),
		ClientID:      c.ClientID.String(),
		Origin:        c.Origin,
		Items:         items,
		Discount:      c.Discount,
		Subtotal:      c.Subtotal,
		Total:         c.Total,
		Status:        c.Status,
		PaymentMethod: c.PaymentMethod,
		CreatedAt:     c.CreatedAt.Format(timeFormat),
	}
	if c.AppointmentID != nil {
		s := c.AppointmentID.String()
		resp.AppointmentID = &s
	}
	if c.StaffID != nil {
		s := c.StaffID.String()
		resp.StaffID = &s
	}
	if c.ClosedAt != nil {
		s := c.ClosedAt.Format(timeFormat)
		resp.ClosedAt = &s
	}
	return resp
}

func appointmentToResponse(a *model.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:        a.ID.String(),
		ClientID:  a.ClientID.String(),
		StaffID:   a.StaffID.String(),
		ServiceID: a.ServiceID.String(),
		StartTime: a.StartTime.Format(timeFormat),
		EndTime:   a.EndTime.Format(timeFormat),
		Status:    a.Status,
	}
}

func transactionToResponse(t *model.Transaction) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:          t.ID.String(),
		Type:        t.Type,
		Amount:      t.Amount,
		Method:      t.Method,
		Description: t.Description,
		Date:        t.Date.Format(timeFormat),
	}
	if t.ComandaID != nil {
		s := t.ComandaID.String()
		resp.ComandaID = &s
	}
	return resp
}

func clientToResponse(c *model.Client) *dto.ClientResponse {
	resp := &dto.ClientResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		TotalSpent: c.TotalSpent,
	}
	if c.LastVisit != nil {
		s := c.LastVisit.Format(timeFormat)
		resp.LastVisit = &s
	}
	return resp
}

func catalogItemToResponse(item *model.CatalogItem) *dto.CatalogItemResponse {
	return &dto.CatalogItemResponse{
		ID:          item.ID.String(),
		Kind:        item.Kind,
		Name:        item.Name,
		Price:       item.Price,
		DurationMin: item.DurationMin,
		Stock:       item.Stock,
		MinStock:    item.MinStock,
		Active:      item.Active,
	}
}
