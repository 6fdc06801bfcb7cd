package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/quizctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/services"
)

type mockSession struct {
	cred    domain.Credential
	valid   bool
	token   string
	claims  *domain.TokenClaims
	err     error
	loginFn func(username, password string) (*domain.Credential, error)

	mu          sync.Mutex
	logins      []string
	loggedOut   bool
	checkCalled int
}

func (m *mockSession) Login(_ context.Context, username, password string) (*domain.Credential, error) {
	m.mu.Lock()
	m.logins = append(m.logins, username+":"+password)
	m.mu.Unlock()
	if m.loginFn != nil {
		return m.loginFn(username, password)
	}
	return &domain.Credential{AccessToken: "a1", RefreshToken: "r1", Username: username}, nil
}

func (m *mockSession) Save(_ context.Context, cred domain.Credential) error {
	m.cred = cred
	return nil
}

func (m *mockSession) Clear(_ context.Context) {
	m.cred = domain.Credential{}
}

func (m *mockSession) Logout(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loggedOut = true
	m.cred = domain.Credential{}
}

func (m *mockSession) Current(_ context.Context) (domain.Credential, error) {
	return m.cred, nil
}

func (m *mockSession) IsValid(_ context.Context) bool {
	return m.valid
}

func (m *mockSession) GetValidToken(_ context.Context) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func (m *mockSession) Refresh(ctx context.Context) (string, error) {
	return m.GetValidToken(ctx)
}

func (m *mockSession) CheckOnLoad(_ context.Context, onInvalid func()) bool {
	m.mu.Lock()
	m.checkCalled++
	m.mu.Unlock()
	if !m.valid && onInvalid != nil {
		onInvalid()
	}
	return m.valid
}

func (m *mockSession) Claims(_ context.Context) (*domain.TokenClaims, error) {
	if m.claims == nil {
		return nil, domain.ErrNoSession
	}
	return m.claims, nil
}

type mockQuiz struct {
	categories []domain.Category
	tests      []domain.Test
	questions  []domain.Question
	attempt    *domain.Attempt
	graded     []domain.GradedResponse
	err        error

	lastCategory int64
	submitted    *domain.Attempt
}

func (m *mockQuiz) Categories(_ context.Context) ([]domain.Category, error) {
	return m.categories, m.err
}

func (m *mockQuiz) Tests(_ context.Context, categoryID int64) ([]domain.Test, error) {
	m.lastCategory = categoryID
	return m.tests, m.err
}

func (m *mockQuiz) Test(_ context.Context, id int64) (*domain.Test, error) {
	for i := range m.tests {
		if m.tests[i].ID == id {
			return &m.tests[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockQuiz) Questions(_ context.Context, _ int64) ([]domain.Question, error) {
	return m.questions, m.err
}

func (m *mockQuiz) Start(_ context.Context, _ int64) (*domain.Attempt, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.attempt, nil
}

func (m *mockQuiz) Submit(_ context.Context, attempt *domain.Attempt) (*domain.ResultSummary, error) {
	m.submitted = attempt
	summary := domain.NewResultSummary(m.graded)
	return &summary, nil
}

type mockAdmin struct {
	err error

	categories []domain.Category
	tests      []domain.Test
	questions  []domain.Question
	questionTo int64
	deleted    []int64
	users      []domain.User
	userID     string
	userUpdate domain.UserUpdate
}

func (m *mockAdmin) CreateCategory(_ context.Context, c domain.Category) (*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	c.ID = 7
	m.categories = append(m.categories, c)
	return &c, nil
}

func (m *mockAdmin) UpdateCategory(_ context.Context, c domain.Category) (*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.categories = append(m.categories, c)
	return &c, nil
}

func (m *mockAdmin) DeleteCategory(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockAdmin) CreateTest(_ context.Context, t domain.Test) (*domain.Test, error) {
	if m.err != nil {
		return nil, m.err
	}
	t.ID = 12
	m.tests = append(m.tests, t)
	return &t, nil
}

func (m *mockAdmin) UpdateTest(_ context.Context, t domain.Test) (*domain.Test, error) {
	m.tests = append(m.tests, t)
	return &t, m.err
}

func (m *mockAdmin) DeleteTest(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockAdmin) CreateQuestion(_ context.Context, testID int64, q domain.Question) (*domain.Question, error) {
	if m.err != nil {
		return nil, m.err
	}
	q.ID = 99
	m.questionTo = testID
	m.questions = append(m.questions, q)
	return &q, nil
}

func (m *mockAdmin) UpdateQuestion(_ context.Context, q domain.Question) (*domain.Question, error) {
	m.questions = append(m.questions, q)
	return &q, m.err
}

func (m *mockAdmin) DeleteQuestion(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockAdmin) Users(_ context.Context) ([]domain.User, error) {
	return m.users, m.err
}

func (m *mockAdmin) UpdateUser(_ context.Context, id string, u domain.UserUpdate) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.userID = id
	m.userUpdate = u
	return &domain.User{ID: id, Username: "bob"}, nil
}

type mockRegistration struct {
	got domain.Registration
	err error
}

func (m *mockRegistration) Register(_ context.Context, reg domain.Registration) (*domain.User, error) {
	m.got = reg
	if m.err != nil {
		return nil, m.err
	}
	return &domain.User{ID: "u1", Username: reg.Username}, nil
}

type mockWatcher struct {
	changes chan struct{}
}

func (m *mockWatcher) Watch(_ context.Context) (<-chan struct{}, error) {
	return m.changes, nil
}

// resetFlags restores every package-level flag variable between runs.
func resetFlags() {
	verbose = false
	loginUsername = ""
	statusWatch = false
	listJSON = false
	testCategory = 0
	registerUsername, registerFirstName, registerLastName, registerDob = "", "", "", ""
	categoryName, categoryTitle, categoryDescription = "", "", ""
	testTitle, testDescription, testTime, testCategoryID = "", "", 0, 0
	questionText, questionCorrect = "", ""
	questionOptionA, questionOptionB, questionOptionC, questionOptionD = "", "", "", ""
	userPassword, userFirstName, userLastName, userDob = "", "", "", ""
	userRoles = nil
}

// runCLI executes the root command with services and stdin, returning combined output.
func runCLI(t *testing.T, s Services, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	SetServices(s)
	t.Cleanup(func() { SetServices(Services{}) })

	if stdin == nil {
		stdin = strings.NewReader("")
	}
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func newSettings(t *testing.T) *services.SettingsService {
	t.Helper()
	return services.NewSettingsService(memory.NewConfigStore())
}

func sampleAttempt(limit time.Duration) *domain.Attempt {
	test := domain.Test{ID: 12, Title: "Physics 101", CategoryID: 3}
	questions := []domain.Question{
		{ID: 1, QuestionText: "2+2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6"},
		{ID: 2, QuestionText: "Speed of light?", OptionA: "c", OptionB: "g", OptionC: "h", OptionD: "k"},
		{ID: 3, QuestionText: "Unit of force?", OptionA: "N", OptionB: "J", OptionC: "W", OptionD: "Pa"},
	}
	return domain.NewAttempt(test, questions, limit, time.Now())
}
