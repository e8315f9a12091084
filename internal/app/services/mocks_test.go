package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/repositories"
)

// Func-field mocks: each method delegates to an optional closure so a
// test only wires the calls it cares about.

type mockReportStore struct {
	createFunc       func(ctx context.Context, report *models.ScamReport) error
	getByIDFunc      func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error)
	listFunc         func(ctx context.Context, filter repositories.ReportFilter, offset uint64, limit int) ([]repositories.ReportWithCounts, int64, error)
	updateFunc       func(ctx context.Context, report *models.ScamReport) error
	updateStatusFunc func(ctx context.Context, id int64, status models.ReportStatus) error
	deleteFunc       func(ctx context.Context, id int64) error
}

func (m *mockReportStore) Create(ctx context.Context, report *models.ScamReport) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, report)
	}
	return errors.New("not implemented")
}

func (m *mockReportStore) GetByID(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReportStore) List(ctx context.Context, filter repositories.ReportFilter, offset uint64, limit int) ([]repositories.ReportWithCounts, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, offset, limit)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockReportStore) Update(ctx context.Context, report *models.ScamReport) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, report)
	}
	return errors.New("not implemented")
}

func (m *mockReportStore) UpdateStatus(ctx context.Context, id int64, status models.ReportStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return errors.New("not implemented")
}

func (m *mockReportStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockNotificationStore struct {
	mu      sync.Mutex
	created []*models.Notification

	createFunc func(ctx context.Context, n *models.Notification) error
}

func (m *mockNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, n)
	return nil
}

type broadcastEvent struct {
	name    string
	payload interface{}
	admins  bool
}

type mockBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (m *mockBroadcaster) Broadcast(name string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, broadcastEvent{name: name, payload: payload})
}

func (m *mockBroadcaster) BroadcastAdmins(name string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, broadcastEvent{name: name, payload: payload, admins: true})
}

func (m *mockBroadcaster) named(name string) []broadcastEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []broadcastEvent
	for _, e := range m.events {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

type mockMeTooStore struct {
	insertFunc        func(ctx context.Context, reportID, userID int64) (bool, error)
	deleteFunc        func(ctx context.Context, reportID, userID int64) (bool, error)
	existsFunc        func(ctx context.Context, reportID, userID int64) (bool, error)
	countByReportFunc func(ctx context.Context, reportID int64) (int64, error)
}

func (m *mockMeTooStore) Insert(ctx context.Context, reportID, userID int64) (bool, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, reportID, userID)
	}
	return false, errors.New("not implemented")
}

func (m *mockMeTooStore) Delete(ctx context.Context, reportID, userID int64) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, reportID, userID)
	}
	return false, errors.New("not implemented")
}

func (m *mockMeTooStore) Exists(ctx context.Context, reportID, userID int64) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, reportID, userID)
	}
	return false, errors.New("not implemented")
}

func (m *mockMeTooStore) CountByReport(ctx context.Context, reportID int64) (int64, error) {
	if m.countByReportFunc != nil {
		return m.countByReportFunc(ctx, reportID)
	}
	return 0, errors.New("not implemented")
}

type mockCommentStore struct {
	createFunc           func(ctx context.Context, comment *models.Comment) error
	getByIDFunc          func(ctx context.Context, id int64) (*models.Comment, error)
	listByReportFunc     func(ctx context.Context, reportID int64, status models.CommentStatus, offset uint64, limit int) ([]models.Comment, int64, error)
	listByStatusFunc     func(ctx context.Context, status models.CommentStatus, offset uint64, limit int) ([]models.Comment, int64, error)
	updateStatusFunc     func(ctx context.Context, id int64, status models.CommentStatus) error
	bulkUpdateStatusFunc func(ctx context.Context, ids []int64, status models.CommentStatus) error
	deleteFunc           func(ctx context.Context, id int64) error
}

func (m *mockCommentStore) Create(ctx context.Context, comment *models.Comment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, comment)
	}
	return errors.New("not implemented")
}

func (m *mockCommentStore) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCommentStore) ListByReport(ctx context.Context, reportID int64, status models.CommentStatus, offset uint64, limit int) ([]models.Comment, int64, error) {
	if m.listByReportFunc != nil {
		return m.listByReportFunc(ctx, reportID, status, offset, limit)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockCommentStore) ListByStatus(ctx context.Context, status models.CommentStatus, offset uint64, limit int) ([]models.Comment, int64, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status, offset, limit)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockCommentStore) UpdateStatus(ctx context.Context, id int64, status models.CommentStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return errors.New("not implemented")
}

func (m *mockCommentStore) BulkUpdateStatus(ctx context.Context, ids []int64, status models.CommentStatus) error {
	if m.bulkUpdateStatusFunc != nil {
		return m.bulkUpdateStatusFunc(ctx, ids, status)
	}
	return errors.New("not implemented")
}

func (m *mockCommentStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockAdvertisementStore struct {
	createFunc              func(ctx context.Context, ad *models.Advertisement) error
	getByIDFunc             func(ctx context.Context, id int64) (*models.Advertisement, error)
	listFunc                func(ctx context.Context, offset uint64, limit int) ([]models.Advertisement, int64, error)
	listVisibleFunc         func(ctx context.Context, now time.Time) ([]models.Advertisement, error)
	updateFunc              func(ctx context.Context, ad *models.Advertisement) error
	deleteFunc              func(ctx context.Context, id int64) error
	deactivateExpiredFunc   func(ctx context.Context, now time.Time) ([]models.Advertisement, error)
	listNeedingReminderFunc func(ctx context.Context, now time.Time, days int) ([]models.Advertisement, error)
	markReminderSentFunc    func(ctx context.Context, id int64, days int) error
}

func (m *mockAdvertisementStore) Create(ctx context.Context, ad *models.Advertisement) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, ad)
	}
	return errors.New("not implemented")
}

func (m *mockAdvertisementStore) GetByID(ctx context.Context, id int64) (*models.Advertisement, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAdvertisementStore) List(ctx context.Context, offset uint64, limit int) ([]models.Advertisement, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, offset, limit)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockAdvertisementStore) ListVisible(ctx context.Context, now time.Time) ([]models.Advertisement, error) {
	if m.listVisibleFunc != nil {
		return m.listVisibleFunc(ctx, now)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAdvertisementStore) Update(ctx context.Context, ad *models.Advertisement) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, ad)
	}
	return errors.New("not implemented")
}

func (m *mockAdvertisementStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockAdvertisementStore) DeactivateExpired(ctx context.Context, now time.Time) ([]models.Advertisement, error) {
	if m.deactivateExpiredFunc != nil {
		return m.deactivateExpiredFunc(ctx, now)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAdvertisementStore) ListNeedingReminder(ctx context.Context, now time.Time, days int) ([]models.Advertisement, error) {
	if m.listNeedingReminderFunc != nil {
		return m.listNeedingReminderFunc(ctx, now, days)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAdvertisementStore) MarkReminderSent(ctx context.Context, id int64, days int) error {
	if m.markReminderSentFunc != nil {
		return m.markReminderSentFunc(ctx, id, days)
	}
	return errors.New("not implemented")
}

type sentEmail struct {
	kind    string
	toEmail string
}

type mockEmailService struct {
	mu   sync.Mutex
	sent []sentEmail

	sendVerificationFunc     func(toEmail, toName, token string) error
	sendWelcomeFunc          func(toEmail, toName string) error
	sendPasswordResetFunc    func(toEmail, toName, token string) error
	sendAdExpiryReminderFunc func(toEmail, sponsorName, adTitle string, daysLeft int, endDate time.Time) error
}

func (m *mockEmailService) record(kind, toEmail string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{kind: kind, toEmail: toEmail})
}

func (m *mockEmailService) SendVerificationEmail(toEmail, toName, token string) error {
	if m.sendVerificationFunc != nil {
		return m.sendVerificationFunc(toEmail, toName, token)
	}
	m.record("verification", toEmail)
	return nil
}

func (m *mockEmailService) SendWelcomeEmail(toEmail, toName string) error {
	if m.sendWelcomeFunc != nil {
		return m.sendWelcomeFunc(toEmail, toName)
	}
	m.record("welcome", toEmail)
	return nil
}

func (m *mockEmailService) SendPasswordResetEmail(toEmail, toName, token string) error {
	if m.sendPasswordResetFunc != nil {
		return m.sendPasswordResetFunc(toEmail, toName, token)
	}
	m.record("password-reset", toEmail)
	return nil
}

func (m *mockEmailService) SendAdExpiryReminder(toEmail, sponsorName, adTitle string, daysLeft int, endDate time.Time) error {
	if m.sendAdExpiryReminderFunc != nil {
		return m.sendAdExpiryReminderFunc(toEmail, sponsorName, adTitle, daysLeft, endDate)
	}
	m.record("ad-expiry-reminder", toEmail)
	return nil
}

type mockUserStore struct {
	createFunc           func(ctx context.Context, user *models.User) error
	getByIDFunc          func(ctx context.Context, id int64) (*models.User, error)
	getByEmailFunc       func(ctx context.Context, email string) (*models.User, error)
	emailExistsFunc      func(ctx context.Context, email string) (bool, error)
	updateProfileFunc    func(ctx context.Context, userID int64, firstName, lastName string) error
	updatePasswordFunc   func(ctx context.Context, userID int64, hashedPassword string) error
	updateLastLoginFunc  func(ctx context.Context, userID int64) error
	setEmailVerifiedFunc func(ctx context.Context, userID int64) error
	setActiveFunc        func(ctx context.Context, userID int64, active bool) error
	listFunc             func(ctx context.Context, search string, offset uint64, limit int) ([]models.User, int64, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.emailExistsFunc != nil {
		return m.emailExistsFunc(ctx, email)
	}
	return false, errors.New("not implemented")
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) error {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, userID, firstName, lastName)
	}
	return errors.New("not implemented")
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, userID, hashedPassword)
	}
	return errors.New("not implemented")
}

func (m *mockUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	if m.updateLastLoginFunc != nil {
		return m.updateLastLoginFunc(ctx, userID)
	}
	return nil
}

func (m *mockUserStore) SetEmailVerified(ctx context.Context, userID int64) error {
	if m.setEmailVerifiedFunc != nil {
		return m.setEmailVerifiedFunc(ctx, userID)
	}
	return errors.New("not implemented")
}

func (m *mockUserStore) SetActive(ctx context.Context, userID int64, active bool) error {
	if m.setActiveFunc != nil {
		return m.setActiveFunc(ctx, userID, active)
	}
	return errors.New("not implemented")
}

func (m *mockUserStore) List(ctx context.Context, search string, offset uint64, limit int) ([]models.User, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, search, offset, limit)
	}
	return nil, 0, errors.New("not implemented")
}

type mockRefreshTokenStore struct {
	createFunc           func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	getByTokenFunc       func(ctx context.Context, token string) (*models.RefreshToken, error)
	revokeFunc           func(ctx context.Context, token string) error
	revokeAllForUserFunc func(ctx context.Context, userID int64) error
}

func (m *mockRefreshTokenStore) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, token, expiresAt)
	}
	return nil
}

func (m *mockRefreshTokenStore) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if m.getByTokenFunc != nil {
		return m.getByTokenFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRefreshTokenStore) Revoke(ctx context.Context, token string) error {
	if m.revokeFunc != nil {
		return m.revokeFunc(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenStore) RevokeAllForUser(ctx context.Context, userID int64) error {
	if m.revokeAllForUserFunc != nil {
		return m.revokeAllForUserFunc(ctx, userID)
	}
	return nil
}

type mockVerificationTokenStore struct {
	createFunc        func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	getByTokenFunc    func(ctx context.Context, token string) (*models.VerificationToken, error)
	markUsedFunc      func(ctx context.Context, id int64) error
	deleteForUserFunc func(ctx context.Context, userID int64) error
}

func (m *mockVerificationTokenStore) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, token, expiresAt)
	}
	return nil
}

func (m *mockVerificationTokenStore) GetByToken(ctx context.Context, token string) (*models.VerificationToken, error) {
	if m.getByTokenFunc != nil {
		return m.getByTokenFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockVerificationTokenStore) MarkUsed(ctx context.Context, id int64) error {
	if m.markUsedFunc != nil {
		return m.markUsedFunc(ctx, id)
	}
	return nil
}

func (m *mockVerificationTokenStore) DeleteForUser(ctx context.Context, userID int64) error {
	if m.deleteForUserFunc != nil {
		return m.deleteForUserFunc(ctx, userID)
	}
	return nil
}

type mockPasswordResetTokenStore struct {
	createFunc            func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	getByTokenFunc        func(ctx context.Context, token string) (*models.PasswordResetToken, error)
	markUsedFunc          func(ctx context.Context, id int64) error
	invalidateForUserFunc func(ctx context.Context, userID int64) error
}

func (m *mockPasswordResetTokenStore) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, token, expiresAt)
	}
	return nil
}

func (m *mockPasswordResetTokenStore) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	if m.getByTokenFunc != nil {
		return m.getByTokenFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPasswordResetTokenStore) MarkUsed(ctx context.Context, id int64) error {
	if m.markUsedFunc != nil {
		return m.markUsedFunc(ctx, id)
	}
	return nil
}

func (m *mockPasswordResetTokenStore) InvalidateForUser(ctx context.Context, userID int64) error {
	if m.invalidateForUserFunc != nil {
		return m.invalidateForUserFunc(ctx, userID)
	}
	return nil
}

type mockContentStore struct {
	createFunc    func(ctx context.Context, content *models.Content) error
	getByIDFunc   func(ctx context.Context, id int64) (*models.Content, error)
	getBySlugFunc func(ctx context.Context, slug string) (*models.Content, error)
	listFunc      func(ctx context.Context, contentType, status string, offset uint64, limit int) ([]models.Content, int64, error)
	updateFunc    func(ctx context.Context, content *models.Content) error
	deleteFunc    func(ctx context.Context, id int64) error
}

func (m *mockContentStore) Create(ctx context.Context, content *models.Content) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, content)
	}
	return errors.New("not implemented")
}

func (m *mockContentStore) GetByID(ctx context.Context, id int64) (*models.Content, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContentStore) GetBySlug(ctx context.Context, slug string) (*models.Content, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContentStore) List(ctx context.Context, contentType, status string, offset uint64, limit int) ([]models.Content, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, contentType, status, offset, limit)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockContentStore) Update(ctx context.Context, content *models.Content) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, content)
	}
	return errors.New("not implemented")
}

func (m *mockContentStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}
