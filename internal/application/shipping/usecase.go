// Package shipping implementa el ciclo de vida de los envíos: despacho, seguimiento GPS y
// confirmación de entrega con su movimiento de inventario.
package shipping

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
	"github.com/jhoicas/smartstock-api/pkg/metrics"
	"github.com/jhoicas/smartstock-api/pkg/tracing"
)

var tracer = tracing.Tracer("shipping")

// UseCase casos de uso de envíos.
type UseCase struct {
	txRunner     TxRunner
	shipmentRepo repository.ShipmentRepository
	courierRepo  repository.CourierRepository
	labels       LabelGenerator
	now          func() time.Time
}

// NewUseCase construye el caso de uso. labels puede ser nil si no se exponen guías PDF.
func NewUseCase(
	txRunner TxRunner,
	shipmentRepo repository.ShipmentRepository,
	courierRepo repository.CourierRepository,
	labels LabelGenerator,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		shipmentRepo: shipmentRepo,
		courierRepo:  courierRepo,
		labels:       labels,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// CreateInput datos para despachar un pedido.
type CreateInput struct {
	OrderID   int64
	CourierID *int64
}

// Create despacha un pedido en pendiente_envio o aprobado: crea el envío en tránsito con
// código de rastreo y pasa el pedido a en_transito.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (sh *entity.Shipment, err error) {
	ctx, span := tracer.Start(ctx, "shipping.Create")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if in.OrderID <= 0 {
		return nil, domain.NewValidationError("pedido_id es requerido")
	}
	if in.CourierID != nil {
		c, err := uc.courierRepo.GetByID(ctx, *in.CourierID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("repartidor %d: %w", *in.CourierID, domain.ErrNotFound)
		}
	}

	err = uc.txRunner.RunShipping(ctx, func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.InventoryStateRepository,
		_ repository.StockHistoryRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %d: %w", in.OrderID, domain.ErrNotFound)
		}
		if !order.CanShip() {
			return &domain.StateError{
				Entity:   "pedido",
				Current:  order.Status,
				Expected: []string{entity.OrderStatusPendingShipment, entity.OrderStatusApproved},
			}
		}

		s := &entity.Shipment{
			OrderID:      order.ID,
			CourierID:    in.CourierID,
			TrackingCode: NewTrackingCode(uc.now()),
			Status:       entity.ShipmentStatusInTransit,
			DepartedAt:   uc.now(),
			Quantity:     order.Quantity,
			CustomerID:   order.CustomerID,
		}
		if err := shipmentRepo.Create(ctx, s); err != nil {
			return err
		}
		order.Status = entity.OrderStatusInTransit
		order.InventoryStatus = entity.InventoryStatusInTransit
		if err := orderRepo.UpdateStatus(ctx, order); err != nil {
			return err
		}
		sh = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("tracking_code", sh.TrackingCode))
	metrics.RecordShipment("creado")
	return sh, nil
}

// NewTrackingCode genera TRACK-<epoch ms>-<9 caracteres aleatorios en mayúsculas>.
func NewTrackingCode(now time.Time) string {
	rnd := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return fmt.Sprintf("TRACK-%d-%s", now.UnixMilli(), rnd)
}

// UpdateLocation registra la posición GPS; solo permitido con el envío en tránsito.
func (uc *UseCase) UpdateLocation(ctx context.Context, id int64, lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.NewValidationError("latitud debe estar en [-90, 90] y longitud en [-180, 180]")
	}
	sh, err := uc.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sh == nil {
		return fmt.Errorf("envío %d: %w", id, domain.ErrNotFound)
	}
	ok, err := uc.shipmentRepo.UpdateLocation(ctx, id, lat, lng)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.StateError{Entity: "envío", Current: sh.Status, Expected: []string{entity.ShipmentStatusInTransit}}
	}
	return nil
}

// Delivery resultado de confirmar una entrega.
type Delivery struct {
	Shipment *entity.Shipment
	Order    *entity.Order
	State    *entity.InventoryState
}

// Deliver confirma la entrega: envío entregado, pedido entregado/recibido y mueve la cantidad
// del pedido de en tránsito a recibido por el cliente (el total no cambia).
func (uc *UseCase) Deliver(ctx context.Context, id int64, evidenceURL string) (d *Delivery, err error) {
	ctx, span := tracer.Start(ctx, "shipping.Deliver")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()
	span.SetAttributes(attribute.Int64("envio_id", id))

	err = uc.txRunner.RunShipping(ctx, func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		stateRepo repository.InventoryStateRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		// Bloquea el envío antes que el pedido, igual que cualquier otra entrega concurrente.
		sh, err := shipmentRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sh == nil {
			return fmt.Errorf("envío %d: %w", id, domain.ErrNotFound)
		}
		if sh.Status != entity.ShipmentStatusInTransit {
			return &domain.StateError{Entity: "envío", Current: sh.Status, Expected: []string{entity.ShipmentStatusInTransit}}
		}
		order, err := orderRepo.GetForUpdate(ctx, sh.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %d del envío: %w", sh.OrderID, domain.ErrNotFound)
		}

		now := uc.now()
		sh.Status = entity.ShipmentStatusDelivered
		sh.DeliveredAt = &now
		if evidenceURL = strings.TrimSpace(evidenceURL); evidenceURL != "" {
			sh.EvidenceURL = &evidenceURL
		}
		if err := shipmentRepo.MarkDelivered(ctx, sh); err != nil {
			return err
		}

		order.Status = entity.OrderStatusDelivered
		order.InventoryStatus = entity.InventoryStatusReceived
		if err := orderRepo.UpdateStatus(ctx, order); err != nil {
			return err
		}

		state, err := stateRepo.GetForUpdate(ctx, order.ProductID)
		if err != nil {
			return err
		}
		if state == nil {
			return fmt.Errorf("estado de inventario del producto %d: %w", order.ProductID, domain.ErrNotFound)
		}
		receivedBefore := state.Received
		state.ConfirmDelivery(order.Quantity, now)
		if err := stateRepo.Save(ctx, state); err != nil {
			return err
		}
		// El historial registra el acumulado recibido por clientes; el stock físico ya se descontó al reservar.
		if err := historyRepo.Append(ctx, &entity.StockHistoryEntry{
			ProductID: order.ProductID,
			Before:    receivedBefore,
			After:     state.Received,
			Reason:    entity.StockReasonDeliveryConfirmed,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		d = &Delivery{Shipment: sh, Order: order, State: state}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordShipment("entregado")
	return d, nil
}

// GetByTracking obtiene un envío por su código de rastreo.
func (uc *UseCase) GetByTracking(ctx context.Context, code string) (*entity.Shipment, error) {
	sh, err := uc.shipmentRepo.GetByTracking(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, fmt.Errorf("envío %q: %w", code, domain.ErrNotFound)
	}
	return sh, nil
}

// ListActive envíos pendientes o en tránsito.
func (uc *UseCase) ListActive(ctx context.Context) ([]*entity.Shipment, error) {
	return uc.shipmentRepo.ListActive(ctx)
}

// ListByCustomer envíos de un cliente.
func (uc *UseCase) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Shipment, error) {
	return uc.shipmentRepo.ListByCustomer(ctx, customerID)
}

// Label genera la guía PDF del envío.
func (uc *UseCase) Label(ctx context.Context, id int64) ([]byte, string, error) {
	if uc.labels == nil {
		return nil, "", fmt.Errorf("generador de guías no configurado")
	}
	sh, err := uc.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if sh == nil {
		return nil, "", fmt.Errorf("envío %d: %w", id, domain.ErrNotFound)
	}
	pdf, err := uc.labels.GenerateShippingLabel(ctx, sh)
	if err != nil {
		return nil, "", fmt.Errorf("generar guía: %w", err)
	}
	return pdf, fmt.Sprintf("guia_%s.pdf", sh.TrackingCode), nil
}
