package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/account"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// CourierUseCase repartidores y sus envíos activos.
type CourierUseCase struct {
	repo         repository.CourierRepository
	shipmentRepo repository.ShipmentRepository
}

// NewCourierUseCase construye el caso de uso.
func NewCourierUseCase(repo repository.CourierRepository, shipmentRepo repository.ShipmentRepository) *CourierUseCase {
	return &CourierUseCase{repo: repo, shipmentRepo: shipmentRepo}
}

// Create registra un repartidor disponible.
func (uc *CourierUseCase) Create(ctx context.Context, in dto.CreateCourierRequest) (*dto.CourierResponse, error) {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "nombre es requerido")
	}
	if in.Phone != "" && !account.ValidPhone(in.Phone) {
		errs = append(errs, "El teléfono debe tener al menos 10 dígitos")
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}
	c := &entity.Courier{
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Vehicle:   strings.TrimSpace(in.Vehicle),
		Available: true,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCourierResponse(c)
	return &resp, nil
}

// ListAvailable repartidores disponibles por nombre.
func (uc *CourierUseCase) ListAvailable(ctx context.Context) ([]dto.CourierResponse, error) {
	list, err := uc.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourierResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCourierResponse(c))
	}
	return out, nil
}

// ActiveShipments envíos pendientes o en tránsito asignados al repartidor.
func (uc *CourierUseCase) ActiveShipments(ctx context.Context, courierID int64) ([]*entity.Shipment, error) {
	c, err := uc.repo.GetByID(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("repartidor %d: %w", courierID, domain.ErrNotFound)
	}
	return uc.shipmentRepo.ListByCourier(ctx, courierID)
}

func toCourierResponse(c *entity.Courier) dto.CourierResponse {
	return dto.CourierResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Vehicle:   c.Vehicle,
		Available: c.Available,
	}
}
