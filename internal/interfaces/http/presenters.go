package http

import (
	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/inventory"
	"github.com/jhoicas/smartstock-api/internal/application/ordering"
	"github.com/jhoicas/smartstock-api/internal/application/shipping"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:               o.ID,
		ContractID:       o.ContractID,
		Quantity:         o.Quantity,
		Status:           o.Status,
		InventoryStatus:  o.InventoryStatus,
		UsagePctSnapshot: o.UsagePctSnapshot,
		InactiveSnapshot: o.InactiveSnapshot,
		RequestedAt:      o.RequestedAt,
		ApprovedAt:       o.ApprovedAt,
		ApprovedBy:       o.ApprovedBy,
		RejectionReason:  o.RejectionReason,
		CustomerName:     o.CustomerName,
		ProductName:      o.ProductName,
	}
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toReservationResponse(msg string, r *ordering.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		Message:     msg,
		Order:       toOrderResponse(r.Order),
		ProductName: r.ProductName,
		Stock:       dto.StockMovement{Before: r.StockBefore, After: r.StockAfter},
		Quota: dto.QuotaMovement{
			Max:          r.MaxCards,
			IssuedBefore: r.IssuedBefore,
			IssuedAfter:  r.IssuedAfter,
			Remaining:    r.MaxCards - r.IssuedAfter,
		},
		Inventory: dto.InventorySnapshot{
			AvailableBefore: r.AvailableBefore,
			AvailableAfter:  r.AvailableAfter,
			InTransit:       r.InTransit,
		},
	}
}

func toShipmentResponse(s *entity.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:           s.ID,
		OrderID:      s.OrderID,
		CourierID:    s.CourierID,
		TrackingCode: s.TrackingCode,
		Status:       s.Status,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		DepartedAt:   s.DepartedAt,
		DeliveredAt:  s.DeliveredAt,
		EvidenceURL:  s.EvidenceURL,
		Quantity:     s.Quantity,
		CustomerName: s.CustomerName,
		ProductName:  s.ProductName,
		CourierName:  s.CourierName,
	}
}

func toShipmentResponses(list []*entity.Shipment) []dto.ShipmentResponse {
	out := make([]dto.ShipmentResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toShipmentResponse(s))
	}
	return out
}

func toDeliveryResponse(d *shipping.Delivery) dto.DeliveryResponse {
	resp := dto.DeliveryResponse{
		Message:  "entrega confirmada",
		Shipment: toShipmentResponse(d.Shipment),
		Order:    toOrderResponse(d.Order),
	}
	if d.State != nil {
		resp.Inventory = inventory.ToStateResponse(d.State)
	}
	return resp
}
