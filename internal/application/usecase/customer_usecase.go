package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/account"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
	"github.com/jhoicas/smartstock-api/pkg/sat"
)

// PasswordCost costo bcrypt para contraseñas de clientes.
const PasswordCost = 10

// CustomerUseCase casos de uso de clientes: alta, actualización, consulta y login.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create registra un cliente activo. RFC en mayúsculas, email en minúsculas, password con bcrypt.
// Devuelve *domain.ValidationError con todos los errores de formato, o ErrConflict si RFC o email ya existen.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.RFC = sat.NormalizeRFC(in.RFC)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if errs := account.Validate(account.Fields{
		Name:     &in.Name,
		RFC:      &in.RFC,
		Email:    &in.Email,
		Phone:    &in.Phone,
		Password: &in.Password,
	}, true); len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}
	if err := uc.checkUnique(ctx, in.RFC, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, err
	}
	c := &entity.Customer{
		Name:         in.Name,
		RFC:          in.RFC,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      strings.TrimSpace(in.Address),
		PasswordHash: string(hash),
		Status:       entity.CustomerStatusActive,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Update aplica una actualización parcial validando solo los campos enviados.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}

	if in.Name != nil {
		*in.Name = strings.TrimSpace(*in.Name)
	}
	if in.RFC != nil {
		*in.RFC = sat.NormalizeRFC(*in.RFC)
	}
	if in.Email != nil {
		*in.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		*in.Phone = strings.TrimSpace(*in.Phone)
	}
	if errs := account.Validate(account.Fields{Name: in.Name, RFC: in.RFC, Email: in.Email, Phone: in.Phone}, false); len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}

	rfc, email := "", ""
	if in.RFC != nil && *in.RFC != c.RFC {
		rfc = *in.RFC
	}
	if in.Email != nil && *in.Email != c.Email {
		email = *in.Email
	}
	if err := uc.checkUnique(ctx, rfc, email, id); err != nil {
		return nil, err
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.RFC != nil {
		c.RFC = *in.RFC
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// checkUnique verifica RFC y email contra otros clientes; valores vacíos se omiten.
func (uc *CustomerUseCase) checkUnique(ctx context.Context, rfc, email string, excludeID int64) error {
	if rfc != "" {
		exists, err := uc.repo.ExistsByRFC(ctx, rfc, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("el RFC %s ya está registrado: %w", rfc, domain.ErrConflict)
		}
	}
	if email != "" {
		exists, err := uc.repo.ExistsByEmail(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("el correo %s ya está registrado: %w", email, domain.ErrConflict)
		}
	}
	return nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	return toCustomerResponse(c), nil
}

// ListActive clientes activos ordenados por nombre.
func (uc *CustomerUseCase) ListActive(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Login verifica nombre de empresa y contraseña. Credenciales incorrectas (cliente inexistente
// incluido) devuelven ErrUnauthorized; un cliente inactivo con contraseña correcta, ErrForbidden.
func (uc *CustomerUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" {
		return nil, domain.NewValidationError("nombre de empresa y contraseña son requeridos")
	}
	c, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !c.IsActive() {
		return nil, domain.ErrForbidden
	}
	return &dto.LoginResponse{
		Message:  fmt.Sprintf("¡Bienvenido %s!", c.Name),
		Customer: *toCustomerResponse(c),
	}, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		RFC:       c.RFC,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
