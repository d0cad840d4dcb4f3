package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/usecase"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/testutil/mocks"
)

func TestTicketCreate(t *testing.T) {
	tickets := &mocks.TicketRepository{}
	customers := &mocks.CustomerRepository{}
	customers.On("GetByID", mock.Anything, int64(7)).Return(&entity.Customer{ID: 7}, nil)
	customers.On("GetByID", mock.Anything, int64(8)).Return(nil, nil)
	tickets.On("Create", mock.Anything, mock.AnythingOfType("*entity.Ticket")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Ticket).ID = 100 }).
		Return(nil)
	uc := usecase.NewTicketUseCase(tickets, customers)

	resp, err := uc.Create(context.Background(), dto.CreateTicketRequest{CustomerID: 7, Type: "soporte", Subject: " Tarjetas ", Message: "No llegan"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, entity.TicketStatusOpen, resp.Status)
	assert.Equal(t, "Tarjetas", resp.Subject)

	_, err = uc.Create(context.Background(), dto.CreateTicketRequest{CustomerID: 8, Subject: "x", Message: "y"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.Create(context.Background(), dto.CreateTicketRequest{})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 3)
}

func TestTicketDetail_IncluyeRespuestas(t *testing.T) {
	tickets := &mocks.TicketRepository{}
	tickets.On("GetByID", mock.Anything, int64(1)).Return(&entity.Ticket{ID: 1, Status: entity.TicketStatusOpen}, nil)
	tickets.On("ListReplies", mock.Anything, int64(1)).Return([]*entity.TicketReply{
		{ID: 1, TicketID: 1, Message: "hola"},
		{ID: 2, TicketID: 1, Message: "seguimiento", Internal: true},
	}, nil)
	uc := usecase.NewTicketUseCase(tickets, &mocks.CustomerRepository{})

	d, err := uc.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, d.Replies, 2)
	assert.Equal(t, 2, d.Ticket.ReplyCount)
	assert.True(t, d.Replies[1].Internal)
}

func TestTicketCerrado_NoAceptaRespuestasNiSegundoCierre(t *testing.T) {
	tickets := &mocks.TicketRepository{}
	tickets.On("GetByID", mock.Anything, int64(2)).Return(&entity.Ticket{ID: 2, Status: entity.TicketStatusClosed}, nil)
	uc := usecase.NewTicketUseCase(tickets, &mocks.CustomerRepository{})

	_, err := uc.AddReply(context.Background(), dto.AddReplyRequest{TicketID: 2, Message: "¿sigue?"})
	assert.True(t, errors.Is(err, domain.ErrInvalidState))

	err = uc.Close(context.Background(), 2)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	tickets.AssertNotCalled(t, "Close", mock.Anything, mock.Anything)
	tickets.AssertNotCalled(t, "AddReply", mock.Anything, mock.Anything)
}

func TestTicketClose(t *testing.T) {
	tickets := &mocks.TicketRepository{}
	tickets.On("GetByID", mock.Anything, int64(3)).Return(&entity.Ticket{ID: 3, Status: entity.TicketStatusOpen}, nil)
	tickets.On("Close", mock.Anything, int64(3)).Return(nil)
	uc := usecase.NewTicketUseCase(tickets, &mocks.CustomerRepository{})

	require.NoError(t, uc.Close(context.Background(), 3))
	tickets.AssertExpectations(t)
}

func TestCourierCreate(t *testing.T) {
	couriers := &mocks.CourierRepository{}
	couriers.On("Create", mock.Anything, mock.AnythingOfType("*entity.Courier")).Return(nil)
	uc := usecase.NewCourierUseCase(couriers, nil)

	resp, err := uc.Create(context.Background(), dto.CreateCourierRequest{Name: "Ana", Phone: "55 1111 2222", Vehicle: "moto"})
	require.NoError(t, err)
	assert.True(t, resp.Available)

	_, err = uc.Create(context.Background(), dto.CreateCourierRequest{Name: "", Phone: "12"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)
}

func TestCourierActiveShipments_RepartidorInexistente(t *testing.T) {
	couriers := &mocks.CourierRepository{}
	couriers.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)
	uc := usecase.NewCourierUseCase(couriers, nil)

	_, err := uc.ActiveShipments(context.Background(), 9)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
