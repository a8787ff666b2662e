package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"content_mirror/internal/domain"
	"content_mirror/internal/service/mocks"
	"content_mirror/internal/storage/memory"
)

type NotifierTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	campaigner *mocks.MockCampaigner
	memo       *mocks.MockInvalidator
	store      *memory.Store

	notifier *Notifier
}

func (s *NotifierTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.campaigner = mocks.NewMockCampaigner(s.ctrl)
	s.memo = mocks.NewMockInvalidator(s.ctrl)
	s.store = memory.New(func() time.Time { return testNow })

	s.notifier = NewNotifier(s.store, s.campaigner, s.memo, testLogger(), func() time.Time { return testNow })
}

func (s *NotifierTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}

func (s *NotifierTestSuite) seed(items ...domain.Item) {
	s.Require().NoError(s.store.Save(context.Background(), &domain.Collection{
		Kind:         domain.KindPost,
		LastSyncedAt: testNow,
		CreatedAt:    testNow,
		Items:        items,
	}))
}

func (s *NotifierTestSuite) TestNotifyPending_CreatesOncePerItem() {
	ctx := context.Background()
	s.seed(posts(3)...)

	s.campaigner.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item *domain.Item) (string, error) {
			return "cmp-" + item.ID, nil
		}).Times(3)
	s.memo.EXPECT().Invalidate(domain.KindPost).Times(1)

	stats, err := s.notifier.NotifyPending(ctx, domain.KindPost)
	s.Require().NoError(err)
	s.Equal(3, stats.Pending)
	s.Equal(3, stats.Created)

	again, err := s.notifier.NotifyPending(ctx, domain.KindPost)
	s.Require().NoError(err)
	s.Equal(0, again.Pending)
	s.Equal(0, again.Created)

	stored, err := s.store.Load(ctx, domain.KindPost)
	s.Require().NoError(err)
	for _, item := range stored.Items {
		s.True(item.CampaignCreated)
		s.Equal("cmp-"+item.ID, item.CampaignID)
		s.Require().NotNil(item.CampaignCreatedAt)
		s.True(testNow.Equal(*item.CampaignCreatedAt))
	}
}

func (s *NotifierTestSuite) TestNotifyPending_SkipsMarkedItems() {
	ctx := context.Background()
	s.seed(post("A"), post("B"))
	s.Require().NoError(s.store.MarkCampaignCreated(ctx, domain.KindPost, "A", "cmp-A", testNow))

	s.campaigner.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item *domain.Item) (string, error) {
			s.Equal("B", item.ID)
			return "cmp-B", nil
		})
	s.memo.EXPECT().Invalidate(domain.KindPost)

	stats, err := s.notifier.NotifyPending(ctx, domain.KindPost)

	s.Require().NoError(err)
	s.Equal(1, stats.Pending)
	s.Equal(1, stats.Created)
}

func (s *NotifierTestSuite) TestNotifyPending_FailureContinuesWithNextItem() {
	ctx := context.Background()
	s.seed(post("A"), post("B"))

	gomock.InOrder(
		s.campaigner.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return("", errors.New("broker down")),
		s.campaigner.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return("cmp-B", nil),
	)
	s.memo.EXPECT().Invalidate(domain.KindPost)

	stats, err := s.notifier.NotifyPending(ctx, domain.KindPost)

	s.Require().NoError(err)
	s.Equal(1, stats.Errors)
	s.Equal(1, stats.Created)

	stored, err := s.store.Load(ctx, domain.KindPost)
	s.Require().NoError(err)
	s.False(stored.Items[0].CampaignCreated)
	s.True(stored.Items[1].CampaignCreated)
}

func (s *NotifierTestSuite) TestNotifyPending_MarkFailureIsCounted() {
	ctx := context.Background()
	s.seed(post("A"))
	s.store.MarkErr = domain.ErrPersistence

	s.campaigner.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return("cmp-A", nil)

	stats, err := s.notifier.NotifyPending(ctx, domain.KindPost)

	s.Require().NoError(err)
	s.Equal(1, stats.MarkFails)
	s.Equal(0, stats.Created)
}

func (s *NotifierTestSuite) TestNotifyPending_DisabledWithoutCampaigner() {
	s.seed(post("A"))
	notifier := NewNotifier(s.store, nil, nil, testLogger(), nil)

	stats, err := notifier.NotifyPending(context.Background(), domain.KindPost)

	s.Require().NoError(err)
	s.False(notifier.Enabled())
	s.Equal(0, stats.Pending)
}
