package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"
	"resume-agent-backend/pkg/crypto"
	"resume-agent-backend/pkg/github"
	"resume-agent-backend/pkg/logger"
	"resume-agent-backend/pkg/token"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GithubClientFactory builds a GitHub client for a given access token.
type GithubClientFactory func(accessToken string) GithubClient

// GithubClient is the subset of the GitHub API the usecases need.
type GithubClient interface {
	GetAuthenticatedUser(ctx context.Context) (*github.AuthenticatedUser, error)
	ListUserRepos(ctx context.Context, includeForks, includePrivate bool, minStars int) ([]github.Repo, error)
	GetRepoDetails(ctx context.Context, fullName string) (*github.RepoDetails, error)
}

type authUsecase struct {
	userRepo   domain.UserRepository
	githubRepo domain.GithubConnectionRepository
	tokens     *token.Manager
	encryptor  *crypto.Encryptor
	githubFor  GithubClientFactory
	validate   *validator.Validate
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	githubRepo domain.GithubConnectionRepository,
	tokens *token.Manager,
	encryptor *crypto.Encryptor,
	githubFor GithubClientFactory,
	validate *validator.Validate,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:   userRepo,
		githubRepo: githubRepo,
		tokens:     tokens,
		encryptor:  encryptor,
		githubFor:  githubFor,
		validate:   validate,
	}
}

func (u *authUsecase) Register(ctx context.Context, email, name, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := u.validate.Var(email, "required,email"); err != nil {
		return nil, "", apperror.BadRequest("A valid email is required")
	}
	if len(password) < 8 {
		return nil, "", apperror.BadRequest("Password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		name = strings.Split(email, "@")[0]
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           name,
		HashedPassword: string(hashed),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", apperror.Conflict("Email already registered")
		}
		return nil, "", err
	}

	accessToken, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	logger.Log.Info("user registered", "user_id", user.ID)
	return user, accessToken, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", apperror.Unauthorized("Invalid email or password")
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}
	if !user.IsActive {
		return nil, "", apperror.Forbidden("Account is deactivated")
	}

	accessToken, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, accessToken, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, apperror.BadRequest("Name cannot be empty")
		}
		user.Name = *update.Name
	}
	if update.Headline != nil {
		user.Headline = update.Headline
	}
	if update.Summary != nil {
		user.Summary = update.Summary
	}
	if update.Location != nil {
		user.Location = update.Location
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	if update.Website != nil {
		user.Website = update.Website
	}
	if update.LinkedinURL != nil {
		user.LinkedinURL = update.LinkedinURL
	}
	if update.Institution != nil {
		user.Institution = update.Institution
	}
	if update.Degree != nil {
		user.Degree = update.Degree
	}
	if update.FieldOfStudy != nil {
		user.FieldOfStudy = update.FieldOfStudy
	}
	if update.GraduationYear != nil {
		user.GraduationYear = update.GraduationYear
	}
	if update.Skills != nil {
		user.Skills = update.Skills
	}

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ConnectGithub validates a personal access token against the GitHub API
// and stores it encrypted.
func (u *authUsecase) ConnectGithub(ctx context.Context, userID, accessToken string) (*domain.GithubConnection, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, apperror.BadRequest("Access token is required")
	}

	ghUser, err := u.githubFor(accessToken).GetAuthenticatedUser(ctx)
	if err != nil {
		if errors.Is(err, github.ErrUnauthorized) {
			return nil, apperror.Unauthorized("GitHub rejected the token")
		}
		return nil, apperror.UpstreamUnavailable("Could not reach GitHub")
	}

	encrypted, err := u.encryptor.Encrypt(accessToken)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	conn := &domain.GithubConnection{
		ID:             uuid.NewString(),
		UserID:         userID,
		GithubUserID:   ghUser.ID,
		GithubUsername: ghUser.Login,
		EncryptedToken: encrypted,
		ConnectedAt:    now,
		TokenUpdatedAt: now,
	}
	if ghUser.AvatarURL != "" {
		conn.GithubAvatarURL = &ghUser.AvatarURL
	}

	if err := u.githubRepo.Upsert(ctx, conn); err != nil {
		return nil, err
	}

	logger.Log.Info("github account connected", "user_id", userID, "github_username", ghUser.Login)
	return conn, nil
}

func (u *authUsecase) DisconnectGithub(ctx context.Context, userID string) error {
	err := u.githubRepo.DeleteByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("No GitHub connection found")
	}
	return err
}
