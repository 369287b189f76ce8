package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/adapter/adaptertest"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestNotifyUserUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("stores and publishes with defaults", func(t *testing.T) {
		repo := adaptertest.NewNotificationRepository()
		publisher := &adaptertest.NotificationPublisher{}
		uc := NewNotifyUserUseCase(repo, publisher, adaptertest.NewClock(testNow))

		output, err := uc.Execute(context.Background(), NotifyUserInput{UserID: userID, Message: " Welcome "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n := output.Notification
		if n.Message != "Welcome" || n.Type != entity.NotificationTypeInfo || n.Category != entity.NotificationCategoryGeneral {
			t.Errorf("unexpected notification %+v", n)
		}
		if n.IsRead || !n.CreatedAt.Equal(testNow) {
			t.Errorf("expected unread notification created now")
		}
		if len(repo.All()) != 1 || len(publisher.Published()) != 1 {
			t.Errorf("expected notification stored and published")
		}
	})

	t.Run("publish failure still stores", func(t *testing.T) {
		repo := adaptertest.NewNotificationRepository()
		publisher := &adaptertest.NotificationPublisher{Err: errors.New("redis down")}
		uc := NewNotifyUserUseCase(repo, publisher, adaptertest.NewClock(testNow))

		if _, err := uc.Execute(context.Background(), NotifyUserInput{UserID: userID, Message: "hi"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.All()) != 1 {
			t.Errorf("expected notification to be stored")
		}
	})

	t.Run("works without a publisher", func(t *testing.T) {
		repo := adaptertest.NewNotificationRepository()
		uc := NewNotifyUserUseCase(repo, nil, adaptertest.NewClock(testNow))

		if _, err := uc.Execute(context.Background(), NotifyUserInput{UserID: userID, Message: "hi"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	invalid := []struct {
		name  string
		input NotifyUserInput
		code  domainerror.ErrorCode
	}{
		{name: "blank message", input: NotifyUserInput{UserID: userID, Message: "  "}, code: domainerror.ErrCodeNotificationMessageRequired},
		{name: "unknown type", input: NotifyUserInput{UserID: userID, Message: "hi", Type: "panic"}, code: domainerror.ErrCodeInvalidNotificationType},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := adaptertest.NewNotificationRepository()
			uc := NewNotifyUserUseCase(repo, nil, adaptertest.NewClock(testNow))

			_, err := uc.Execute(context.Background(), tt.input)
			var domainErr *domainerror.Error
			if !errors.As(err, &domainErr) || domainErr.Code != tt.code {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
			if len(repo.All()) != 0 {
				t.Errorf("expected nothing stored")
			}
		})
	}
}

func TestNotificationInbox(t *testing.T) {
	userID := uuid.New()
	repo := adaptertest.NewNotificationRepository()
	clock := adaptertest.NewClock(testNow)
	notify := NewNotifyUserUseCase(repo, nil, clock)

	var ids []uuid.UUID
	for _, message := range []string{"first", "second", "third"} {
		output, err := notify.Execute(context.Background(), NotifyUserInput{UserID: userID, Message: message})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, output.Notification.ID)
		clock.Advance(time.Minute)
	}
	if _, err := notify.Execute(context.Background(), NotifyUserInput{UserID: uuid.New(), Message: "other"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := NewListNotificationsUseCase(repo)
	listed, err := list.Execute(context.Background(), ListNotificationsInput{UserID: userID, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed.Notifications) != 2 || listed.Notifications[0].Message != "third" {
		t.Errorf("expected the two newest notifications")
	}
	if listed.UnreadCount != 3 {
		t.Errorf("expected 3 unread, got %d", listed.UnreadCount)
	}

	markOne := NewMarkNotificationReadUseCase(repo)
	read, err := markOne.Execute(context.Background(), MarkNotificationReadInput{UserID: userID, NotificationID: ids[0]})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !read.Notification.IsRead {
		t.Error("expected notification to be read")
	}

	if _, err := markOne.Execute(context.Background(), MarkNotificationReadInput{UserID: uuid.New(), NotificationID: ids[1]}); !domainerror.IsKind(err, domainerror.KindNotFound) {
		t.Errorf("expected not found for another owner, got %v", err)
	}

	all, err := NewMarkAllNotificationsReadUseCase(repo).Execute(context.Background(), MarkAllNotificationsReadInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all.Updated != 2 {
		t.Errorf("expected 2 updated, got %d", all.Updated)
	}

	listed, err = list.Execute(context.Background(), ListNotificationsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listed.UnreadCount != 0 {
		t.Errorf("expected no unread, got %d", listed.UnreadCount)
	}
}
