// Package notification implements the fanout service: one logical message is
// resolved to a concrete recipient set at call time and written as one row
// per recipient in a single batch. Delivery is at-least-once; the batch is
// not transactional across recipients.
package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

// Target addressing modes.
const (
	TargetSingle    = "single"
	TargetRoleSet   = "roles"
	TargetTenant    = "tenant"
	TargetBroadcast = "broadcast"
)

// Target is one addressing mode for a fanout call. Construct with the
// helpers below; exactly one mode is set.
type Target struct {
	mode      string
	profileID string
	roles     []string
	firmaID   string
}

// SingleRecipient addresses one profile.
func SingleRecipient(profileID string) Target {
	return Target{mode: TargetSingle, profileID: profileID}
}

// RoleSet addresses every profile whose role is in the set at call time.
func RoleSet(roles ...string) Target {
	return Target{mode: TargetRoleSet, roles: roles}
}

// Tenant addresses every profile of one firma.
func Tenant(firmaID string) Target {
	return Target{mode: TargetTenant, firmaID: firmaID}
}

// Broadcast addresses all admin-capable roles.
func Broadcast() Target {
	return Target{mode: TargetBroadcast, roles: entity.AdminCapableRoles}
}

// Mode returns the addressing mode.
func (t Target) Mode() string { return t.mode }

// FanoutUseCase resolves targets and writes notification rows.
type FanoutUseCase struct {
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
}

// NewFanoutUseCase builds the use case.
func NewFanoutUseCase(notificationRepo repository.NotificationRepository, profileRepo repository.ProfileRepository) *FanoutUseCase {
	return &FanoutUseCase{notificationRepo: notificationRepo, profileRepo: profileRepo}
}

// Send resolves the target synchronously and inserts one row per recipient in
// a single batch write. An empty resolution is success with zero rows; a
// tenant target without a firma fails with ErrProfileResolution before any
// write; a failed batch surfaces as Success=false with the error.
func (uc *FanoutUseCase) Send(target Target, content, link string) (*dto.SendNotificationResponse, error) {
	if content == "" {
		return nil, domain.ErrInvalidInput
	}
	recipients, err := uc.resolve(target)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return &dto.SendNotificationResponse{Success: true, Delivered: 0}, nil
	}

	now := time.Now()
	rows := make([]*entity.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		rows = append(rows, &entity.Notification{
			ID:          uuid.New().String(),
			RecipientID: recipientID,
			Content:     content,
			Link:        link,
			Read:        false,
			CreatedAt:   now,
		})
	}
	if err := uc.notificationRepo.CreateBatch(rows); err != nil {
		return &dto.SendNotificationResponse{Success: false}, err
	}
	return &dto.SendNotificationResponse{Success: true, Delivered: len(rows)}, nil
}

func (uc *FanoutUseCase) resolve(target Target) ([]string, error) {
	switch target.mode {
	case TargetSingle:
		if target.profileID == "" {
			return nil, domain.ErrInvalidInput
		}
		return []string{target.profileID}, nil
	case TargetRoleSet, TargetBroadcast:
		if len(target.roles) == 0 {
			return nil, domain.ErrInvalidInput
		}
		return uc.profileRepo.ListIDsByRoles(target.roles)
	case TargetTenant:
		if target.firmaID == "" {
			return nil, domain.ErrProfileResolution
		}
		return uc.profileRepo.ListIDsByFirma(target.firmaID)
	default:
		return nil, domain.ErrInvalidInput
	}
}

// List returns a recipient's notifications plus their unread count.
func (uc *FanoutUseCase) List(profileID string, limit, offset int) (*dto.NotificationListResponse, error) {
	list, err := uc.notificationRepo.ListByRecipient(profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.notificationRepo.UnreadCount(profileID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.NotificationResponse{
			ID:        n.ID,
			Content:   n.Content,
			Link:      n.Link,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return &dto.NotificationListResponse{
		Items:  items,
		Unread: unread,
		Page:   dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UnreadCount returns the recipient's unread count.
func (uc *FanoutUseCase) UnreadCount(profileID string) (int, error) {
	return uc.notificationRepo.UnreadCount(profileID)
}

// MarkAllRead flips every unread notification of the caller; idempotent.
func (uc *FanoutUseCase) MarkAllRead(profileID string) (int64, error) {
	if profileID == "" {
		return 0, domain.ErrProfileResolution
	}
	return uc.notificationRepo.MarkAllRead(profileID)
}
