package service

import (
	"Plaza/internal/api/config"
	"Plaza/internal/api/dto"
	"Plaza/internal/model"
	"Plaza/internal/pkg/consts"
	"context"
	"sort"
	"testing"
	"time"
)

// fakeNotificationStore is an in-memory stand-in implementing the same
// dedup and counter semantics as the real adapter.
type fakeNotificationStore struct {
	nextID  uint64
	rows    map[uint64]*model.Notification
	failAll bool
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{nextID: 1, rows: make(map[uint64]*model.Notification)}
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *model.Notification) (bool, error) {
	if f.failAll {
		return false, context.DeadlineExceeded
	}
	if n.Kind == consts.NotificationKindLike || n.Kind == consts.NotificationKindFollow {
		cutoff := time.Now().Add(-24 * time.Hour)
		for _, row := range f.rows {
			if row.RecipientID == n.RecipientID && row.ActorID == n.ActorID &&
				row.Kind == n.Kind && targetEq(row.TargetID, n.TargetID) &&
				row.CreatedAt.After(cutoff) {
				return false, nil
			}
		}
	}
	n.ID = f.nextID
	f.nextID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	cp := *n
	f.rows[n.ID] = &cp
	return true, nil
}

func targetEq(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *fakeNotificationStore) DeleteByAction(ctx context.Context, recipientID, actorID uint64, kind string, targetID *uint64) (int64, error) {
	var deleted int64
	for id, row := range f.rows {
		if row.RecipientID == recipientID && row.ActorID == actorID &&
			row.Kind == kind && targetEq(row.TargetID, targetID) {
			delete(f.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeNotificationStore) GetByID(ctx context.Context, id uint64) (*model.Notification, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeNotificationStore) ListPage(ctx context.Context, recipientID uint64, limit, offset int) ([]*model.Notification, error) {
	all := f.byRecipient(recipientID, false)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeNotificationStore) ListUnread(ctx context.Context, recipientID uint64, limit, offset int) ([]*model.Notification, error) {
	all := f.byRecipient(recipientID, true)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeNotificationStore) byRecipient(recipientID uint64, unreadOnly bool) []*model.Notification {
	var res []*model.Notification
	for _, row := range f.rows {
		if row.RecipientID != recipientID {
			continue
		}
		if unreadOnly && row.Read {
			continue
		}
		cp := *row
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res
}

func (f *fakeNotificationStore) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.RecipientID == recipientID && !row.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id, recipientID uint64) (int64, error) {
	row, ok := f.rows[id]
	if !ok || row.RecipientID != recipientID || row.Read {
		return 0, nil
	}
	row.Read = true
	return 1, nil
}

func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, recipientID uint64) (int64, error) {
	var affected int64
	for _, row := range f.rows {
		if row.RecipientID == recipientID && !row.Read {
			row.Read = true
			affected++
		}
	}
	return affected, nil
}

func (f *fakeNotificationStore) Delete(ctx context.Context, id, recipientID uint64) (int64, error) {
	row, ok := f.rows[id]
	if !ok || row.RecipientID != recipientID {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

func (f *fakeNotificationStore) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	var deleted int64
	for id, row := range f.rows {
		if row.CreatedAt.Before(cutoff) {
			delete(f.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeUserStore struct {
	users map[uint64]*model.User
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error) {
	var res []*model.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

type fakePostStore struct {
	posts map[uint64]*model.Post
}

func (f *fakePostStore) CreatePost(ctx context.Context, post *model.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostStore) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostStore) GetPostsByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error) {
	return nil, nil
}

func (f *fakePostStore) UpdatePost(ctx context.Context, post *model.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostStore) DeletePost(ctx context.Context, id uint64) error {
	delete(f.posts, id)
	return nil
}

type pushedEvent struct {
	recipientID uint64
	event       string
	data        any
}

type fakePusher struct {
	events []pushedEvent
	fail   bool
}

func (f *fakePusher) Push(recipientID uint64, event string, data any) error {
	if f.fail {
		return context.DeadlineExceeded
	}
	f.events = append(f.events, pushedEvent{recipientID: recipientID, event: event, data: data})
	return nil
}

func (f *fakePusher) eventsFor(recipientID uint64, event string) []pushedEvent {
	var res []pushedEvent
	for _, e := range f.events {
		if e.recipientID == recipientID && e.event == event {
			res = append(res, e)
		}
	}
	return res
}

func newTestNotificationService(t *testing.T) (NotificationService, *fakeNotificationStore, *fakePusher, *fakePostStore) {
	t.Helper()

	origCfg := config.Cfg
	config.Cfg = &config.Config{NotificationRetention: 30}
	t.Cleanup(func() { config.Cfg = origCfg })

	store := newFakeNotificationStore()
	users := &fakeUserStore{users: map[uint64]*model.User{
		1: {ID: 1, Username: "ana", Nickname: "Ana", AvatarURL: "a.png"},
		2: {ID: 2, Username: "beto", Nickname: "Beto", AvatarURL: "b.png"},
	}}
	posts := &fakePostStore{posts: map[uint64]*model.Post{
		10: {ID: 10, UserID: 2, Content: "hola"},
	}}
	pusher := &fakePusher{}

	svc := NewNotificationService(store, users, posts, pusher)
	return svc, store, pusher, posts
}

func TestLikeUnlikeScenario(t *testing.T) {
	svc, store, pusher, _ := newTestNotificationService(t)
	ctx := context.Background()

	// Actor 1 likes post 10 owned by user 2.
	if err := svc.CreateLikeNotification(ctx, 10, 1); err != nil {
		t.Fatalf("CreateLikeNotification() error = %v", err)
	}

	if got := len(pusher.eventsFor(2, consts.EventNewNotification)); got != 1 {
		t.Errorf("nueva_notificacion pushes = %d, want 1", got)
	}
	counters := pusher.eventsFor(2, consts.EventCounterUpdate)
	if len(counters) != 1 {
		t.Fatalf("actualizar_contador pushes = %d, want 1", len(counters))
	}
	if total := counters[0].data.(dto.UnreadCountDTO).Total; total != 1 {
		t.Errorf("counter payload total = %d, want 1", total)
	}

	// Undo: row removed, one more counter push with total 0, no
	// removal event of any kind.
	if err := svc.RemoveLikeNotification(ctx, 10, 1); err != nil {
		t.Fatalf("RemoveLikeNotification() error = %v", err)
	}
	if len(store.rows) != 0 {
		t.Errorf("stored rows = %d, want 0 after undo", len(store.rows))
	}
	counters = pusher.eventsFor(2, consts.EventCounterUpdate)
	if len(counters) != 2 {
		t.Fatalf("actualizar_contador pushes = %d, want 2", len(counters))
	}
	if total := counters[1].data.(dto.UnreadCountDTO).Total; total != 0 {
		t.Errorf("counter payload total = %d, want 0", total)
	}
	if got := len(pusher.eventsFor(2, consts.EventNewNotification)); got != 1 {
		t.Errorf("nueva_notificacion pushes = %d, want still 1 (no remove event)", got)
	}
}

func TestLikeDeduplication(t *testing.T) {
	svc, store, pusher, _ := newTestNotificationService(t)
	ctx := context.Background()

	if err := svc.CreateLikeNotification(ctx, 10, 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateLikeNotification(ctx, 10, 1); err != nil {
		t.Fatalf("duplicate like must be a silent no-op, got %v", err)
	}

	if len(store.rows) != 1 {
		t.Errorf("stored rows = %d, want 1", len(store.rows))
	}
	if got := len(pusher.eventsFor(2, consts.EventNewNotification)); got != 1 {
		t.Errorf("pushes = %d, want 1 (suppressed duplicate must not push)", got)
	}
}

func TestCommentsAreNotDeduplicated(t *testing.T) {
	svc, store, _, _ := newTestNotificationService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.CreateCommentNotification(ctx, 10, 1); err != nil {
			t.Fatal(err)
		}
	}
	if len(store.rows) != 3 {
		t.Errorf("stored rows = %d, want 3", len(store.rows))
	}
}

func TestSelfActionsNeverNotify(t *testing.T) {
	svc, store, pusher, _ := newTestNotificationService(t)
	ctx := context.Background()

	// Post 10 belongs to user 2; user 2 likes and comments on it.
	if err := svc.CreateLikeNotification(ctx, 10, 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateCommentNotification(ctx, 10, 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateFollowNotification(ctx, 2, 2); err != nil {
		t.Fatal(err)
	}

	if len(store.rows) != 0 {
		t.Errorf("stored rows = %d, want 0", len(store.rows))
	}
	if len(pusher.events) != 0 {
		t.Errorf("pushes = %d, want 0", len(pusher.events))
	}
}

func TestStoreErrorsSurface(t *testing.T) {
	svc, store, _, _ := newTestNotificationService(t)
	store.failAll = true

	if err := svc.CreateLikeNotification(context.Background(), 10, 1); err == nil {
		t.Error("CreateLikeNotification() error = nil, want store error surfaced")
	}
}

func TestPushFailuresAreSwallowed(t *testing.T) {
	svc, store, pusher, _ := newTestNotificationService(t)
	pusher.fail = true

	if err := svc.CreateLikeNotification(context.Background(), 10, 1); err != nil {
		t.Fatalf("push failure must not surface, got %v", err)
	}
	if len(store.rows) != 1 {
		t.Errorf("stored rows = %d, want 1 (write happens before push)", len(store.rows))
	}
}

func TestCounterConsistency(t *testing.T) {
	svc, store, _, _ := newTestNotificationService(t)
	ctx := context.Background()

	if err := svc.CreateLikeNotification(ctx, 10, 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateCommentNotification(ctx, 10, 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateFollowNotification(ctx, 2, 1); err != nil {
		t.Fatal(err)
	}

	count, err := svc.CountUnread(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if count.Total != 3 {
		t.Errorf("CountUnread = %d, want 3", count.Total)
	}

	// Mark one read, then all.
	var anyID uint64
	for id := range store.rows {
		anyID = id
		break
	}
	if err := svc.MarkRead(ctx, 2, anyID); err != nil {
		t.Fatal(err)
	}
	count, _ = svc.CountUnread(ctx, 2)
	if count.Total != 2 {
		t.Errorf("CountUnread after MarkRead = %d, want 2", count.Total)
	}

	if err := svc.MarkAllRead(ctx, 2); err != nil {
		t.Fatal(err)
	}
	count, _ = svc.CountUnread(ctx, 2)
	if count.Total != 0 {
		t.Errorf("CountUnread after MarkAllRead = %d, want 0", count.Total)
	}
}

func TestMarkReadOwnership(t *testing.T) {
	svc, store, _, _ := newTestNotificationService(t)
	ctx := context.Background()

	if err := svc.CreateLikeNotification(ctx, 10, 1); err != nil {
		t.Fatal(err)
	}
	var id uint64
	for rowID := range store.rows {
		id = rowID
	}

	// The actor has no rights over the recipient's notification.
	if err := svc.MarkRead(ctx, 1, id); err != UnauthorizedError {
		t.Errorf("MarkRead by non-owner = %v, want UnauthorizedError", err)
	}
	if err := svc.Delete(ctx, 1, id); err != UnauthorizedError {
		t.Errorf("Delete by non-owner = %v, want UnauthorizedError", err)
	}
	if err := svc.MarkRead(ctx, 2, 9999); err != ErrNotificationMissing {
		t.Errorf("MarkRead unknown id = %v, want ErrNotificationMissing", err)
	}
}

func TestNotificationEnrichment(t *testing.T) {
	svc, _, pusher, _ := newTestNotificationService(t)
	ctx := context.Background()

	if err := svc.CreateLikeNotification(ctx, 10, 1); err != nil {
		t.Fatal(err)
	}

	events := pusher.eventsFor(2, consts.EventNewNotification)
	if len(events) != 1 {
		t.Fatal("expected one push")
	}
	payload, ok := events[0].data.(*dto.NotificationDTO)
	if !ok {
		t.Fatalf("payload type = %T", events[0].data)
	}
	if payload.ActorNickname != "Ana" {
		t.Errorf("ActorNickname = %q, want Ana", payload.ActorNickname)
	}
	if payload.Kind != consts.NotificationKindLike {
		t.Errorf("Kind = %q", payload.Kind)
	}
	if payload.TargetID == nil || *payload.TargetID != 10 {
		t.Errorf("TargetID = %v, want 10", payload.TargetID)
	}

	list, err := svc.GetAll(ctx, 2, 1, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ActorNickname != "Ana" {
		t.Errorf("GetAll enrichment = %+v", list)
	}
}

func TestSweepOld(t *testing.T) {
	svc, store, _, _ := newTestNotificationService(t)
	ctx := context.Background()

	old := &model.Notification{
		RecipientID: 2, ActorID: 1,
		Kind:      consts.NotificationKindGeneric,
		CreatedAt: time.Now().Add(-31 * 24 * time.Hour),
	}
	if _, err := store.Create(ctx, old); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateFollowNotification(ctx, 2, 1); err != nil {
		t.Fatal(err)
	}

	deleted, err := svc.SweepOld(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("SweepOld deleted = %d, want 1", deleted)
	}
	if len(store.rows) != 1 {
		t.Errorf("remaining rows = %d, want 1", len(store.rows))
	}
}
