package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
	"github.com/dad-ventas/sales-platform/internal/token"
)

// LinkQueue accepts deferred client-provisioning requests. The in-process
// dispatcher implements it; tests substitute a synchronous stub.
type LinkQueue interface {
	Enqueue(req ports.LinkRequest)
}

// AuthService implements registration, login, and token validation over the
// credential store and the token codec.
type AuthService struct {
	repo        ports.AuthRepository
	codec       *token.Codec
	provisioner ports.ClientProvisioner
	queue       LinkQueue
	log         zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, codec *token.Codec, provisioner ports.ClientProvisioner, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, provisioner: provisioner, log: log}
}

// SetLinkQueue wires the dispatcher that performs the second registration
// phase asynchronously. Without a queue, Register links inline.
func (s *AuthService) SetLinkQueue(q LinkQueue) {
	s.queue = q
}

// Login authenticates a username/password pair and mints a fresh token.
// This is the only operation that issues tokens.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.SessionClaims, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &domain.SessionClaims{
		Token:    signed,
		Username: user.Username,
		Role:     user.Role,
		ClientID: user.ClientID,
		UserID:   user.ID,
	}, nil
}

// Validate verifies a token and re-resolves the account it names. Role and
// client id come from the store, not from the token: the client link may
// have been provisioned after the token was minted. The returned Token is
// the original string, unchanged.
func (s *AuthService) Validate(ctx context.Context, tok string) (*domain.SessionClaims, error) {
	claims, err := s.codec.Verify(tok)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	return &domain.SessionClaims{
		Token:    tok,
		Username: user.Username,
		Role:     user.Role,
		ClientID: user.ClientID,
		UserID:   user.ID,
	}, nil
}

// Register creates an account and schedules provisioning of its external
// client record. The write is a deliberate non-transactional two-phase
// sequence: the account is persisted unlinked first, then the link is
// attempted; a provisioning failure leaves the account unlinked and is
// never surfaced to the caller.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	// Fast pre-check; the storage unique index remains the real guard
	// against concurrent registrations of the same username.
	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := nowUTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	req := ports.LinkRequest{
		Username: in.Username,
		Name:     in.Name,
		Document: in.Document,
		Email:    in.Username, // platform convention: username is the email
		Phone:    in.Phone,
	}

	if s.queue != nil {
		s.queue.Enqueue(req)
		return created, nil
	}

	// No queue configured: attempt the link inline. Failure is logged and
	// swallowed, the account stays unlinked.
	if err := s.Link(ctx, req); err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("client provisioning failed, account left unlinked")
	} else if linked, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		created = linked
	}

	return created, nil
}

// Link performs the second registration phase: provision the external
// client record and persist the link on the account. Safe to retry; a
// previously linked account is left untouched.
func (s *AuthService) Link(ctx context.Context, req ports.LinkRequest) error {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("link %s: %w", req.Username, err)
	}
	if user.Linked() {
		return nil
	}

	clientID, err := s.provisioner.Provision(ctx, ports.ProvisionInput{
		Name:     req.Name,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return fmt.Errorf("provision client for %s: %w", req.Username, err)
	}

	if err := user.LinkClient(clientID); err != nil {
		return fmt.Errorf("link %s: %w", req.Username, err)
	}
	user.UpdatedAt = nowUTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("save link for %s: %w", req.Username, err)
	}

	s.log.Info().Str("username", req.Username).Int64("client_id", clientID).Msg("account linked to client record")
	return nil
}

// Users returns all registered accounts.
func (s *AuthService) Users(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}
