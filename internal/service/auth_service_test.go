package service

import (
	"context"
	"testing"

	"licitasis/internal/config"
	"licitasis/internal/dto"
	"licitasis/internal/model"
	"licitasis/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	users map[string]*model.Usuario
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.users[u.Email] = u
	return nil
}
func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}
func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func authFixture(t *testing.T) (AuthService, *config.Config) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &stubUsuarioRepo{users: map[string]*model.Usuario{
		"maria@licitasis.com": {
			ID: 3, Nome: "Maria", Email: "maria@licitasis.com",
			SenhaHash: string(hash), Permissao: model.PermNivel3, Ativo: true,
		},
		"inativo@licitasis.com": {
			ID: 4, Nome: "Inativo", Email: "inativo@licitasis.com",
			SenhaHash: string(hash), Permissao: model.PermNivel1, Ativo: false,
		},
	}}
	cfg := &config.Config{JWTSecret: "segredo-de-teste", JWTExpirationHours: 8}
	return NewAuthService(repo, cfg), cfg
}

func TestLoginEmiteTokenComPermissao(t *testing.T) {
	svc, cfg := authFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "maria@licitasis.com", Senha: "senha-forte",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria", resp.Nome)
	assert.Equal(t, model.PermNivel3, resp.Permissao)

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(3), claims["user_id"])
	assert.Equal(t, model.PermNivel3, claims["permissao"])
}

func TestLoginRecusaCredenciaisErradas(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "maria@licitasis.com", Senha: "errada",
	})
	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "ninguem@licitasis.com", Senha: "senha-forte",
	})
	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
}

func TestLoginRecusaUsuarioInativo(t *testing.T) {
	svc, _ := authFixture(t)
	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "inativo@licitasis.com", Senha: "senha-forte",
	})
	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
}
