package firebaseauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// DefaultRoleClaim имя custom claim с ролью пользователя
const DefaultRoleClaim = "role"

// Provider определяет пользователя по Firebase ID токену из заголовка Authorization
type Provider struct {
	verifier  TokenVerifier
	roleClaim string
	log       Logger
}

// New инициализирует Firebase App и Auth клиент.
// Пустой credentialsFile означает Application Default Credentials.
func New(ctx context.Context, credentialsFile, projectID, roleClaim string, log Logger) (*Provider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: initialize app: %v", ErrInit, err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: get auth client: %v", ErrInit, err)
	}

	return NewWithVerifier(client, roleClaim, log), nil
}

// NewWithVerifier создает провайдер поверх произвольного TokenVerifier
func NewWithVerifier(verifier TokenVerifier, roleClaim string, log Logger) *Provider {
	if roleClaim == "" {
		roleClaim = DefaultRoleClaim
	}
	return &Provider{
		verifier:  verifier,
		roleClaim: roleClaim,
		log:       log,
	}
}

// Identify проверяет Bearer токен и возвращает пользователя.
// Роль берется из custom claim; без claim пользователь получает роль user.
func (p *Provider) Identify(r *http.Request) (*domain.User, error) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return nil, ErrMissingToken
	}

	verified, err := p.verifier.VerifyIDToken(r.Context(), token)
	if err != nil {
		p.log.Warn("Identify: token verification failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role := domain.RoleUser
	if claim, ok := verified.Claims[p.roleClaim].(string); ok && domain.Role(claim) == domain.RoleAdmin {
		role = domain.RoleAdmin
	}

	return &domain.User{UID: verified.UID, Role: role}, nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
