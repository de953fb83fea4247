package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Chelosky-O/soyElectronico/internal/dto"
	"github.com/Chelosky-O/soyElectronico/internal/model"
	"github.com/Chelosky-O/soyElectronico/internal/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

// ── In-memory UsuarioRepository stub ─────────────────────────────────────────
// The mutex-guarded email index mimics the DB unique constraint, so the
// registration race (both goroutines pass the FindByEmail pre-check, only
// one Create wins) is reproducible in-process. Like the real index, the key
// is the raw stored email; like the real query, lookup is case-insensitive.

type stubUsuarioRepo struct {
	mu      sync.Mutex
	byEmail map[string]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{byEmail: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, existe := r.byEmail[u.Email]; existe {
		return gorm.ErrDuplicatedKey
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.Usuario, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		users = append(users, *u)
	}
	return users, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func newAuthService(repo *stubUsuarioRepo) (AuthService, *token.Codec) {
	codec := token.NewCodec(testSecret, time.Hour)
	return NewAuthService(repo, codec), codec
}

func seedUsuario(t *testing.T, repo *stubUsuarioRepo, email, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		ID:            uuid.New(),
		Nombre:        "Test User",
		Email:         email,
		PasswordHash:  string(hash),
		Rol:           rol,
		FechaCreacion: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// ── Registrar ────────────────────────────────────────────────────────────────

func TestRegistrar_Success(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc, _ := newAuthService(repo)

	resp, err := svc.Registrar(context.Background(), dto.RegistroRequest{
		Nombre: "Ana", Email: "ana@example.com", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.Nombre)
	assert.Equal(t, "ana@example.com", resp.Email)
	assert.Equal(t, model.RolCliente, resp.Rol)
	assert.NotEmpty(t, resp.ID)

	// Password is hashed, never stored in the clear
	stored, err := repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestRegistrar_RoleAlwaysCliente(t *testing.T) {
	// Even if someone crafts a request body with rol=admin, the DTO has no
	// role field and the service hardcodes cliente.
	repo := newStubUsuarioRepo()
	svc, _ := newAuthService(repo)

	resp, err := svc.Registrar(context.Background(), dto.RegistroRequest{
		Nombre: "Eve", Email: "eve@example.com", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RolCliente, resp.Rol)
}

func TestRegistrar_EmailNormalizadoAMinusculas(t *testing.T) {
	// The unique index is on the raw column, so storage must be lowercase
	// or case variants of one address would coexist.
	repo := newStubUsuarioRepo()
	svc, _ := newAuthService(repo)

	resp, err := svc.Registrar(context.Background(), dto.RegistroRequest{
		Nombre: "Ana", Email: "  Ana@Example.COM ", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.Email)

	stored, err := repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", stored.Email)

	_, err = svc.Registrar(context.Background(), dto.RegistroRequest{
		Nombre: "Otra Ana", Email: "ANA@EXAMPLE.COM", Password: "secreta123",
	})
	assert.ErrorIs(t, err, ErrEmailRegistrado)
}

func TestRegistrar_EmailTaken(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc, _ := newAuthService(repo)
	seedUsuario(t, repo, "ana@example.com", "x", model.RolCliente)

	_, err := svc.Registrar(context.Background(), dto.RegistroRequest{
		Nombre: "Otra Ana", Email: "ana@example.com", Password: "secreta123",
	})
	assert.ErrorIs(t, err, ErrEmailRegistrado)
}

func TestRegistrar_DuplicateKeyRaceReportedAsEmailTaken(t *testing.T) {
	// Storage-level unique violation (the pre-check missed a concurrent
	// insert) must surface as the same ErrEmailRegistrado.
	repo := newStubUsuarioRepo()
	svc, _ := newAuthService(repo)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Registrar(context.Background(), dto.RegistroRequest{
				Nombre: "Ana", Email: "ana@example.com", Password: "secreta123",
			})
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else {
			assert.ErrorIs(t, err, ErrEmailRegistrado)
		}
	}
	assert.Equal(t, 1, exitos, "exactly one concurrent registration must win")
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success_TokenCarriesStoredRole(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc, codec := newAuthService(repo)
	u := seedUsuario(t, repo, "admin@example.com", "clave-admin", model.RolAdmin)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "admin@example.com", Password: "clave-admin",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := codec.Verify(resp.Token, time.Now())
	require.NoError(t, err)
	subject, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, model.RolAdmin, claims.Rol)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc, _ := newAuthService(repo)
	seedUsuario(t, repo, "ana@example.com", "correcta", model.RolCliente)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@example.com", Password: "incorrecta",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc, _ := newAuthService(repo)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@example.com", Password: "loquesea",
	})
	assert.ErrorIs(t, err, ErrUsuarioNoEncontrado)
}

// ── ListarUsuarios ───────────────────────────────────────────────────────────

func TestListarUsuarios_OmitsPasswordHash(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc, _ := newAuthService(repo)
	seedUsuario(t, repo, "ana@example.com", "secreta", model.RolCliente)

	resp, err := svc.ListarUsuarios(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "ana@example.com", resp[0].Email)
	// DTO has no hash field at all; sanity-check the value isn't smuggled
	assert.NotContains(t, resp[0].Nombre, "$2a$")
}
