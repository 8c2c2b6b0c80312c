package http_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gofiber/fiber/v3"

	"userpanel/internal/panel/app"
	panelhttp "userpanel/internal/panel/app/http"
	"userpanel/internal/panel/app/http/middleware"
	"userpanel/internal/panel/domain/entities"
	"userpanel/internal/panel/domain/services"
)

const testCookieName = "panel_session"

var errStorage = errors.New("storage unavailable")

// fakeUserRepository - хранилище пользователей в памяти с семантикой
// боевого репозитория: чтения видят только неудаленных, уникальность
// email проверяется среди неудаленных.
type fakeUserRepository struct {
	users   map[int64]*entities.User
	nextID  int64
	failErr error
	bulkErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int64]*entities.User), nextID: 1}
}

func (r *fakeUserRepository) add(user entities.User) *entities.User {
	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	if user.Status == "" {
		user.Status = entities.StatusActive
	}
	if user.RegisteredAt.IsZero() {
		user.RegisteredAt = time.Now().UTC()
	}
	stored := user
	r.users[stored.ID] = &stored
	return &stored
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	for _, user := range r.users {
		if !user.IsDeleted && user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepository) FindByID(_ context.Context, id int64) (*entities.User, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	user, ok := r.users[id]
	if !ok || user.IsDeleted {
		return nil, entities.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

func (r *fakeUserRepository) Create(_ context.Context, name, email, passwordHash string) (*entities.User, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	for _, user := range r.users {
		if !user.IsDeleted && user.Email == email {
			return nil, services.ErrEmailAlreadyExists
		}
	}
	created := r.add(entities.User{Name: name, Email: email, PasswordHash: passwordHash})
	found := *created
	return &found, nil
}

func (r *fakeUserRepository) ListAllVisible(_ context.Context) ([]entities.User, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	visible := make([]entities.User, 0, len(r.users))
	for _, user := range r.users {
		if !user.IsDeleted {
			visible = append(visible, *user)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		left, right := visible[i].LastLogin, visible[j].LastLogin
		switch {
		case left == nil && right == nil:
			return visible[i].ID < visible[j].ID
		case left == nil:
			return false
		case right == nil:
			return true
		case !left.Equal(*right):
			return left.After(*right)
		default:
			return visible[i].ID < visible[j].ID
		}
	})
	return visible, nil
}

func (r *fakeUserRepository) BulkSetStatus(_ context.Context, ids []int64, status entities.Status) error {
	if r.failErr != nil {
		return r.failErr
	}
	if r.bulkErr != nil {
		return r.bulkErr
	}
	for _, id := range ids {
		if user, ok := r.users[id]; ok && !user.IsDeleted {
			user.Status = status
		}
	}
	return nil
}

func (r *fakeUserRepository) BulkSoftDelete(_ context.Context, ids []int64) error {
	if r.failErr != nil {
		return r.failErr
	}
	if r.bulkErr != nil {
		return r.bulkErr
	}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			user.IsDeleted = true
		}
	}
	return nil
}

func (r *fakeUserRepository) TouchLastLogin(_ context.Context, id int64) error {
	if r.failErr != nil {
		return r.failErr
	}
	if user, ok := r.users[id]; ok && !user.IsDeleted {
		now := time.Now().UTC()
		user.LastLogin = &now
	}
	return nil
}

// plainPasswordService - обратимая замена bcrypt для тестов.
type plainPasswordService struct{}

func (plainPasswordService) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", entities.ErrEmptyPassword
	}
	return "hashed:" + password, nil
}

func (plainPasswordService) Verify(_ context.Context, password, hash string) (bool, error) {
	return hash == "hashed:"+password, nil
}

// memSessionStore - хранилище сессий в памяти без таймаута.
type memSessionStore struct {
	sessions map[string]entities.Session
	nextID   int
	failErr  error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]entities.Session)}
}

func (s *memSessionStore) Create(_ context.Context, session entities.Session) (string, error) {
	if s.failErr != nil {
		return "", s.failErr
	}
	s.nextID++
	token := fmt.Sprintf("token-%d", s.nextID)
	s.sessions[token] = session
	return token, nil
}

func (s *memSessionStore) Get(_ context.Context, token string) (*entities.Session, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	session, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *memSessionStore) Destroy(_ context.Context, token string) error {
	if s.failErr != nil {
		return s.failErr
	}
	delete(s.sessions, token)
	return nil
}

// testEnv связывает фейковые адаптеры с реальными сценариями и маршрутизацией.
type testEnv struct {
	app   *fiber.App
	repo  *fakeUserRepository
	store *memSessionStore
}

func newTestEnv() *testEnv {
	repo := newFakeUserRepository()
	store := newMemSessionStore()

	accounts := app.NewAccountUseCase(repo, plainPasswordService{}, store)
	admin := app.NewAdminUseCase(repo)
	gate := app.NewAuthGate(repo)

	fiberApp := fiber.New()
	panelhttp.SetupRouter(
		fiberApp,
		panelhttp.NewAccountHandler(accounts, store, testCookieName),
		panelhttp.NewAdminHandler(admin),
		middleware.NewSessionAuthMiddleware(store, gate, testCookieName),
	)

	return &testEnv{app: fiberApp, repo: repo, store: store}
}

// addUser регистрирует пользователя напрямую в хранилище.
func (e *testEnv) addUser(name, email, password string, status entities.Status) *entities.User {
	return e.repo.add(entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashed:" + password,
		Status:       status,
	})
}

// openSession создает сессию пользователя напрямую в хранилище.
func (e *testEnv) openSession(user *entities.User) string {
	token, _ := e.store.Create(context.Background(), entities.Session{UserID: user.ID, UserName: user.Name})
	return token
}
