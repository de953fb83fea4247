package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Chelosky-O/soyElectronico/internal/dto"
	"github.com/Chelosky-O/soyElectronico/internal/model"
	"github.com/Chelosky-O/soyElectronico/internal/repository"
	"github.com/Chelosky-O/soyElectronico/internal/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// AuthService handles credential verification at login and hashing at
// registration. Token minting is delegated to the token codec.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Registrar(ctx context.Context, req dto.RegistroRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
}

type authService struct {
	repo  repository.UsuarioRepository
	codec *token.Codec
}

func NewAuthService(repo repository.UsuarioRepository, codec *token.Codec) AuthService {
	return &authService{repo: repo, codec: codec}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	tok, err := s.codec.Issue(user.ID, user.Email, user.Rol, time.Now())
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: tok}, nil
}

// Registrar creates a new user with rol forced to "cliente" regardless of
// caller input. The email pre-check is advisory; the unique constraint is
// the real guarantee, and a race between check and insert is reported as
// the same ErrEmailRegistrado. Emails are stored lowercase so the unique
// index also rejects duplicates that differ only in case.
func (s *authService) Registrar(ctx context.Context, req dto.RegistroRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailRegistrado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.Usuario{
		Nombre:        req.Nombre,
		Email:         email,
		PasswordHash:  string(hash),
		Rol:           model.RolCliente,
		FechaCreacion: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailRegistrado
		}
		return nil, err
	}

	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i, u := range users {
		resp[i] = usuarioToResponse(&u)
	}
	return resp, nil
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:            u.ID.String(),
		Nombre:        u.Nombre,
		Email:         u.Email,
		Rol:           u.Rol,
		FechaCreacion: u.FechaCreacion.Format(time.RFC3339),
	}
}
