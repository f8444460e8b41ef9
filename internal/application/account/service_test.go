package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harmonyhub/portal-api/internal/domain"
	jwtinfra "github.com/harmonyhub/portal-api/internal/infrastructure/jwt"
	"github.com/harmonyhub/portal-api/internal/infrastructure/memstore"
)

// --- mock ---

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) AppointmentRequested(ctx context.Context, req domain.AppointmentRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockNotifier) ContactMessage(ctx context.Context, req domain.ContactRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockNotifier) VerificationCode(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}
func (m *mockNotifier) AccountRequested(ctx context.Context, req domain.RegisterRequest, approvalLink string) error {
	return m.Called(ctx, req, approvalLink).Error(0)
}
func (m *mockNotifier) DecisionNotice(ctx context.Context, email string, approved bool) error {
	return m.Called(ctx, email, approved).Error(0)
}

// --- builder ---

type fixture struct {
	svc           *service
	verifications *memstore.VerificationStore
	approvals     *memstore.ApprovalStore
	notifier      *mockNotifier
	now           time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sessions, err := jwtinfra.NewProvider("test-secret", 8*time.Hour)
	require.NoError(t, err)

	f := &fixture{
		verifications: memstore.NewVerificationStore(),
		approvals:     memstore.NewApprovalStore(),
		notifier:      &mockNotifier{},
		now:           time.Now(),
	}
	svc := NewService(ServiceDeps{
		Verifications: f.verifications,
		Approvals:     f.approvals,
		Verified:      memstore.NewVerifiedSet(),
		Notifier:      f.notifier,
		Sessions:      sessions,
		SiteURL:       "https://portal.example",
		AuthPassword:  "portal-secret",
		AllowedUsers:  []string{"owner@example.com"},
	}).(*service)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func validRegistration() map[string]any {
	return map[string]any{
		"fullName": "Jane Doe",
		"email":    "Jane@Example.com",
		"phone":    "555-0100",
		"password": "correct horse battery",
	}
}

// --- Register ---

func TestRegister_StoresPendingAndNotifies(t *testing.T) {
	f := newFixture(t)
	var sentCode string
	f.notifier.On("VerificationCode", mock.Anything, "jane@example.com", mock.MatchedBy(func(code string) bool {
		sentCode = code
		return len(code) == 6
	})).Return(nil)
	f.notifier.On("AccountRequested", mock.Anything, mock.Anything, mock.MatchedBy(func(link string) bool {
		return assert.Contains(t, link, "https://portal.example/api/auth/approve?token=") &&
			assert.Contains(t, link, "email=jane%40example.com")
	})).Return(nil)

	require.NoError(t, f.svc.Register(context.Background(), validRegistration()))

	v, ok := f.verifications.Get("jane@example.com")
	require.True(t, ok)
	assert.Equal(t, sentCode, v.Code)
	assert.Equal(t, f.now.Add(15*time.Minute), v.ExpiresAt)
	assert.Equal(t, "Jane Doe", v.Profile.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(v.Profile.PasswordHash), []byte("correct horse battery")))
	f.notifier.AssertExpectations(t)
}

func TestRegister_OverwritesOutstandingCode(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("VerificationCode", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("AccountRequested", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.Register(context.Background(), validRegistration()))
	first, _ := f.verifications.Get("jane@example.com")

	f.now = f.now.Add(time.Minute)
	require.NoError(t, f.svc.Register(context.Background(), validRegistration()))
	second, ok := f.verifications.Get("jane@example.com")

	require.True(t, ok)
	assert.NotEqual(t, first.ExpiresAt, second.ExpiresAt, "resend must refresh the expiry")
}

func TestRegister_ShortPassword(t *testing.T) {
	f := newFixture(t)
	body := validRegistration()
	body["password"] = "short"

	err := f.svc.Register(context.Background(), body)
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 8 characters.", err.Error())
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestRegister_MissingName(t *testing.T) {
	f := newFixture(t)
	body := validRegistration()
	delete(body, "fullName")

	err := f.svc.Register(context.Background(), body)
	require.Error(t, err)
	assert.Equal(t, "Full name is required.", err.Error())
}

func TestRegister_NotificationFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("VerificationCode", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrUnconfigured)

	err := f.svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, domain.ErrUnconfigured)
}

// --- Verify ---

func register(t *testing.T, f *fixture) string {
	t.Helper()
	var code string
	f.notifier.On("VerificationCode", mock.Anything, mock.Anything, mock.MatchedBy(func(c string) bool {
		code = c
		return true
	})).Return(nil)
	f.notifier.On("AccountRequested", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, f.svc.Register(context.Background(), validRegistration()))
	return code
}

func TestVerify_RoundTrip(t *testing.T) {
	f := newFixture(t)
	code := register(t, f)

	require.NoError(t, f.svc.Verify(context.Background(), "jane@example.com", code))

	_, ok := f.verifications.Get("jane@example.com")
	assert.False(t, ok, "pending entry is deleted on success")
}

func TestVerify_IsIdempotentOnceVerified(t *testing.T) {
	f := newFixture(t)
	code := register(t, f)

	require.NoError(t, f.svc.Verify(context.Background(), "jane@example.com", code))
	// Second call succeeds without re-checking the (now deleted) code.
	assert.NoError(t, f.svc.Verify(context.Background(), "jane@example.com", "000000"))
}

func TestVerify_WrongCode(t *testing.T) {
	f := newFixture(t)
	code := register(t, f)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	err := f.svc.Verify(context.Background(), "jane@example.com", wrong)
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	f := newFixture(t)
	code := register(t, f)
	issued := f.now

	f.now = issued.Add(14*time.Minute + 59*time.Second)
	require.NoError(t, f.svc.Verify(context.Background(), "jane@example.com", code))

	// Fresh registration, then step past the window.
	f2 := newFixture(t)
	code2 := register(t, f2)
	f2.now = f2.now.Add(15*time.Minute + time.Second)
	err := f2.svc.Verify(context.Background(), "jane@example.com", code2)
	assert.ErrorIs(t, err, domain.ErrCodeExpired)

	_, ok := f2.verifications.Get("jane@example.com")
	assert.False(t, ok, "expired entry is removed once acknowledged")
}

func TestVerify_UnknownEmail(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Verify(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- Decide / Status ---

func TestDecide_ApproveRecordsAndNotifies(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("DecisionNotice", mock.Anything, "jane@example.com", true).Return(nil)

	result, err := f.svc.Decide(context.Background(), "Jane@Example.com", "tok123", "approve")
	require.NoError(t, err)
	assert.True(t, result.Approved)

	rec, ok := f.approvals.Get("jane@example.com")
	require.True(t, ok)
	assert.True(t, rec.Approved)
	assert.Equal(t, f.now.Add(24*time.Hour), rec.ExpiresAt)

	status, err := f.svc.Status(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, status.State)
	f.notifier.AssertExpectations(t)
}

func TestDecide_RejectRecordsAndNotifies(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("DecisionNotice", mock.Anything, "jane@example.com", false).Return(nil)

	result, err := f.svc.Decide(context.Background(), "jane@example.com", "tok123", "reject")
	require.NoError(t, err)
	assert.False(t, result.Approved)

	status, err := f.svc.Status(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, status.State)
	f.notifier.AssertExpectations(t)
}

func TestDecide_NoticeFailureDoesNotUnwindDecision(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("DecisionNotice", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrUpstream)

	_, err := f.svc.Decide(context.Background(), "jane@example.com", "tok123", "approve")
	require.NoError(t, err)

	rec, ok := f.approvals.Get("jane@example.com")
	require.True(t, ok)
	assert.True(t, rec.Approved)
}

func TestDecide_LaterDecisionOverwrites(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("DecisionNotice", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Decide(context.Background(), "jane@example.com", "tok123", "approve")
	require.NoError(t, err)
	_, err = f.svc.Decide(context.Background(), "jane@example.com", "tok456", "reject")
	require.NoError(t, err)

	status, _ := f.svc.Status(context.Background(), "jane@example.com")
	assert.Equal(t, domain.StatusRejected, status.State)
}

func TestDecide_MissingParams(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Decide(context.Background(), "", "tok", "approve")
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.svc.Decide(context.Background(), "jane@example.com", "", "approve")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestDecide_UnknownAction(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Decide(context.Background(), "jane@example.com", "tok", "purge")
	require.Error(t, err)
	assert.Equal(t, "Action must be 'approve' or 'reject'", err.Error())
}

func TestDecide_DefaultActionIsApprove(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("DecisionNotice", mock.Anything, "jane@example.com", true).Return(nil)

	result, err := f.svc.Decide(context.Background(), "jane@example.com", "tok", "")
	require.NoError(t, err)
	assert.True(t, result.Approved)
}

func TestStatus_MissingRecordReadsAsPending(t *testing.T) {
	f := newFixture(t)
	status, err := f.svc.Status(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, status.State)
}

// --- Login ---

func TestLogin_AllowListedUser(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.Login(context.Background(), "Owner@Example.com", "portal-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "owner@example.com", result.Email)
	assert.Equal(t, int((8 * time.Hour).Seconds()), result.ExpiresIn)
}

func TestLogin_ApprovedUser(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("DecisionNotice", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	_, err := f.svc.Decide(context.Background(), "jane@example.com", "tok", "approve")
	require.NoError(t, err)

	result, err := f.svc.Login(context.Background(), "jane@example.com", "portal-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Login(context.Background(), "owner@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_NeitherAllowListedNorApproved(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Login(context.Background(), "stranger@example.com", "portal-secret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_RejectedUserCannotLogin(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("DecisionNotice", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	_, err := f.svc.Decide(context.Background(), "jane@example.com", "tok", "reject")
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), "jane@example.com", "portal-secret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnconfiguredSecret(t *testing.T) {
	f := newFixture(t)
	f.svc.authPassword = ""
	_, err := f.svc.Login(context.Background(), "owner@example.com", "anything")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestLogin_VerificationTrackDoesNotGrantAccess(t *testing.T) {
	// Completing the email-code flow alone must not open the portal; login
	// only consults the approval track and the allow-list.
	f := newFixture(t)
	code := register(t, f)
	require.NoError(t, f.svc.Verify(context.Background(), "jane@example.com", code))

	_, err := f.svc.Login(context.Background(), "jane@example.com", "portal-secret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
