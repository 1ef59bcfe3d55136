package notification_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokumhouse/sweets-api/internal/application/notification"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeNotificationRepo struct {
	created  []*entity.Notification
	batchErr error
}

func (f *fakeNotificationRepo) CreateBatch(rows []*entity.Notification) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.created = append(f.created, rows...)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(recipientID string, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) UnreadCount(recipientID string) (int, error) {
	count := 0
	for _, n := range f.created {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAllRead(recipientID string) (int64, error) {
	var flipped int64
	for _, n := range f.created {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			flipped++
		}
	}
	return flipped, nil
}

type fakeProfileRepo struct {
	byRole  map[string][]string // role -> profile IDs
	byFirma map[string][]string // firma ID -> profile IDs
}

func (f *fakeProfileRepo) Create(*entity.Profile) error                  { return nil }
func (f *fakeProfileRepo) GetByID(string) (*entity.Profile, error)       { return nil, nil }
func (f *fakeProfileRepo) FindByEmail(string) (*entity.Profile, error)   { return nil, nil }

func (f *fakeProfileRepo) ListIDsByRoles(roles []string) ([]string, error) {
	var out []string
	for _, role := range roles {
		out = append(out, f.byRole[role]...)
	}
	return out, nil
}

func (f *fakeProfileRepo) ListIDsByFirma(firmaID string) ([]string, error) {
	return f.byFirma[firmaID], nil
}

func newFanout() (*notification.FanoutUseCase, *fakeNotificationRepo, *fakeProfileRepo) {
	notifRepo := &fakeNotificationRepo{}
	profileRepo := &fakeProfileRepo{
		byRole: map[string][]string{
			entity.RoleAdmin: {"admin-1"},
			entity.RoleStaff: {"staff-1", "staff-2"},
		},
		byFirma: map[string][]string{
			"firma-1": {"partner-1", "partner-2"},
		},
	}
	return notification.NewFanoutUseCase(notifRepo, profileRepo), notifRepo, profileRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Send: target resolution and batch write
// ──────────────────────────────────────────────────────────────────────────────

func TestSend_SingleRecipient(t *testing.T) {
	uc, repo, _ := newFanout()

	out, err := uc.Send(notification.SingleRecipient("partner-1"), "new price list", "/catalog")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.Delivered)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "partner-1", repo.created[0].RecipientID)
	assert.Equal(t, "new price list", repo.created[0].Content)
	assert.Equal(t, "/catalog", repo.created[0].Link)
	assert.False(t, repo.created[0].Read, "new notifications start unread")
}

// Every member of the tenant gets their own row with identical content.
func TestSend_TenantWritesOneRowPerProfile(t *testing.T) {
	uc, repo, _ := newFanout()

	out, err := uc.Send(notification.Tenant("firma-1"), "order shipped", "")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Delivered)

	require.Len(t, repo.created, 2)
	recipients := map[string]bool{}
	for _, n := range repo.created {
		recipients[n.RecipientID] = true
		assert.Equal(t, "order shipped", n.Content, "all rows carry the same content")
	}
	assert.True(t, recipients["partner-1"] && recipients["partner-2"],
		"every profile of the firma must receive a row")
}

func TestSend_RoleSetAndBroadcast(t *testing.T) {
	uc, repo, _ := newFanout()

	out, err := uc.Send(notification.RoleSet(entity.RoleStaff), "shift change", "")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Delivered)

	repo.created = nil
	out, err = uc.Send(notification.Broadcast(), "maintenance window", "")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Delivered, "broadcast reaches every admin-capable profile")
}

// A target that resolves to nobody is a success with zero deliveries, not an
// error: an empty firma is a valid state.
func TestSend_EmptyResolutionIsSuccess(t *testing.T) {
	uc, repo, profiles := newFanout()
	profiles.byFirma["firma-empty"] = nil

	out, err := uc.Send(notification.Tenant("firma-empty"), "hello?", "")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 0, out.Delivered)
	assert.Empty(t, repo.created, "no rows are written for an empty resolution")
}

// A tenant target with no firma fails resolution before anything is written.
func TestSend_TenantWithoutFirmaFailsResolution(t *testing.T) {
	uc, repo, _ := newFanout()

	_, err := uc.Send(notification.Tenant(""), "lost message", "")
	assert.ErrorIs(t, err, domain.ErrProfileResolution)
	assert.Empty(t, repo.created, "resolution failure must precede any write")
}

func TestSend_EmptyContentRejected(t *testing.T) {
	uc, _, _ := newFanout()
	_, err := uc.Send(notification.SingleRecipient("partner-1"), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSend_BatchFailureReportsNoSuccess(t *testing.T) {
	uc, repo, _ := newFanout()
	repo.batchErr = errors.New("connection reset")

	out, err := uc.Send(notification.Tenant("firma-1"), "doomed", "")
	require.Error(t, err)
	require.NotNil(t, out, "a failed batch still returns the result envelope")
	assert.False(t, out.Success)
	assert.Zero(t, out.Delivered)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inbox: list, unread count, mark-all-read
// ──────────────────────────────────────────────────────────────────────────────

func TestInbox_UnreadLifecycle(t *testing.T) {
	uc, _, _ := newFanout()

	_, err := uc.Send(notification.SingleRecipient("partner-1"), "first", "")
	require.NoError(t, err)
	_, err = uc.Send(notification.SingleRecipient("partner-1"), "second", "")
	require.NoError(t, err)

	list, err := uc.List("partner-1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Unread)

	flipped, err := uc.MarkAllRead("partner-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, flipped)

	// Idempotent: a second pass flips nothing.
	flipped, err = uc.MarkAllRead("partner-1")
	require.NoError(t, err)
	assert.Zero(t, flipped)

	unread, err := uc.UnreadCount("partner-1")
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestMarkAllRead_RequiresProfile(t *testing.T) {
	uc, _, _ := newFanout()
	_, err := uc.MarkAllRead("")
	assert.ErrorIs(t, err, domain.ErrProfileResolution)
}
