package matching

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/dateit-app/dateit-backend/internal/usecase/rate"
	"github.com/jmoiron/sqlx"
)

type fakeUserRepo struct {
	users map[int]*domain.User

	suggestionsGender *domain.Gender
	suggestionsLimit  int
	suggestions       []*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = len(r.users) + 1
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]*domain.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(_ context.Context, _ *domain.User) error           { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, _ int) error                    { return nil }

func (r *fakeUserRepo) Suggestions(_ context.Context, _ int, gender *domain.Gender, limit int) ([]*domain.User, error) {
	r.suggestionsGender = gender
	r.suggestionsLimit = limit
	return r.suggestions, nil
}

type likeKeyPair struct{ from, to int }

type fakeLikeRepo struct {
	mu     sync.Mutex
	likes  map[likeKeyPair]bool
	passes map[likeKeyPair]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{
		likes:  make(map[likeKeyPair]bool),
		passes: make(map[likeKeyPair]bool),
	}
}

func (r *fakeLikeRepo) AddLike(_ context.Context, _ *sqlx.Tx, userID, targetID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.likes[likeKeyPair{userID, targetID}] = true
	return nil
}

func (r *fakeLikeRepo) AddPass(_ context.Context, userID, targetID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes[likeKeyPair{userID, targetID}] = true
	return nil
}

func (r *fakeLikeRepo) HasLiked(_ context.Context, _ *sqlx.Tx, userID, targetID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[likeKeyPair{userID, targetID}], nil
}

func (r *fakeLikeRepo) ListLikedIDs(_ context.Context, userID int) ([]int, error) {
	var out []int
	for k := range r.likes {
		if k.from == userID {
			out = append(out, k.to)
		}
	}
	return out, nil
}

func (r *fakeLikeRepo) ListPassedIDs(_ context.Context, userID int) ([]int, error) {
	var out []int
	for k := range r.passes {
		if k.from == userID {
			out = append(out, k.to)
		}
	}
	return out, nil
}

// fakeMatchRepo enforces one record per unordered pair, like the
// database unique index does. The mutex stands in for per-statement
// atomicity so concurrent callers interleave between operations.
type fakeMatchRepo struct {
	mu      sync.Mutex
	db      *sqlx.DB
	matches map[int]*domain.Match
	nextID  int

	// beforeCreate runs right before every Create, letting tests
	// inject a competing writer between retry attempts.
	beforeCreate func()
}

func newFakeMatchRepo(t *testing.T) *fakeMatchRepo {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 64; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}
	t.Cleanup(func() { _ = db.Close() })
	return &fakeMatchRepo{
		db:      sqlx.NewDb(db, "sqlmock"),
		matches: make(map[int]*domain.Match),
		nextID:  1,
	}
}

func (r *fakeMatchRepo) findPair(user1ID, user2ID int) *domain.Match {
	for _, m := range r.matches {
		if (m.User1ID == user1ID && m.User2ID == user2ID) || (m.User1ID == user2ID && m.User2ID == user1ID) {
			return m
		}
	}
	return nil
}

func (r *fakeMatchRepo) Create(_ context.Context, _ *sqlx.Tx, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	if r.findPair(match.User1ID, match.User2ID) != nil {
		return domain.ErrMatchExists
	}
	match.ID = r.nextID
	match.CreatedAt = time.Now()
	r.nextID++
	stored := *match
	r.matches[match.ID] = &stored
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMatchRepo) GetByUsers(_ context.Context, _ *sqlx.Tx, user1ID, user2ID int) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.findPair(user1ID, user2ID)
	if m == nil {
		return nil, domain.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMatchRepo) ListActive(_ context.Context, userID int) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.Status == domain.MatchActive && m.HasUser(userID) {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListPendingFor(_ context.Context, userID int) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.Status == domain.MatchPending && m.User2ID == userID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateStatus(_ context.Context, _ *sqlx.Tx, id int, status domain.MatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m.Status = status
	// Mirrors the SQL: leaving the ended state sheds the end metadata.
	if status != domain.MatchEnded {
		m.EndedBy = nil
		m.EndedAt = nil
	}
	return nil
}

func (r *fakeMatchRepo) End(_ context.Context, id, endedBy int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	if m.Status == domain.MatchEnded {
		return domain.ErrMatchEnded
	}
	now := time.Now()
	m.Status = domain.MatchEnded
	m.EndedBy = &endedBy
	m.EndedAt = &now
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return domain.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) BeginTx(_ context.Context) (*sqlx.Tx, error) {
	return r.db.Beginx()
}

type notifierRecorder struct {
	mu      sync.Mutex
	matched chan *domain.Match
	ended   chan *domain.Match
}

func newNotifierRecorder() *notifierRecorder {
	return &notifierRecorder{
		matched: make(chan *domain.Match, 8),
		ended:   make(chan *domain.Match, 8),
	}
}

func (n *notifierRecorder) NotifyMatch(match *domain.Match)      { n.matched <- match }
func (n *notifierRecorder) NotifyMatchEnded(match *domain.Match) { n.ended <- match }

func waitForMatch(t *testing.T, ch chan *domain.Match) *domain.Match {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a notification, got none")
		return nil
	}
}

func testUsers() (*domain.User, *domain.User) {
	alice := &domain.User{ID: 1, Name: "Alice", Email: "alice@example.com", Gender: domain.GenderFemale, FindGender: domain.GenderMale}
	bob := &domain.User{ID: 2, Name: "Bob", Email: "bob@example.com", Gender: domain.GenderMale, FindGender: domain.GenderFemale}
	return alice, bob
}

func newTestUseCase(t *testing.T) (*MatchingUseCase, *fakeUserRepo, *fakeLikeRepo, *fakeMatchRepo, *notifierRecorder) {
	t.Helper()
	alice, bob := testUsers()
	userRepo := newFakeUserRepo(alice, bob)
	likeRepo := newFakeLikeRepo()
	matchRepo := newFakeMatchRepo(t)
	notifier := newNotifierRecorder()
	uc := NewMatchingUseCase(userRepo, likeRepo, matchRepo, nil, notifier, 20)
	return uc, userRepo, likeRepo, matchRepo, notifier
}

func TestLikeCreatesPendingRequest(t *testing.T) {
	uc, _, _, matchRepo, _ := newTestUseCase(t)
	ctx := context.Background()

	result, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if result.IsMatch {
		t.Fatalf("one-sided like must not complete a match")
	}

	match, err := matchRepo.GetByID(ctx, result.MatchID)
	if err != nil {
		t.Fatalf("load match: %v", err)
	}
	if match.Status != domain.MatchPending {
		t.Fatalf("unexpected status: got %s want %s", match.Status, domain.MatchPending)
	}
	if match.User1ID != 1 || match.User2ID != 2 {
		t.Fatalf("initiator must be user1: got %d/%d", match.User1ID, match.User2ID)
	}

	pending, err := uc.PendingRequests(ctx, 2)
	if err != nil {
		t.Fatalf("pending requests: %v", err)
	}
	if len(pending) != 1 || pending[0].User.ID != 1 {
		t.Fatalf("expected one pending request from user 1, got %+v", pending)
	}
}

func TestMutualLikeActivatesMatch(t *testing.T) {
	uc, _, _, matchRepo, notifier := newTestUseCase(t)
	ctx := context.Background()

	first, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("first like: %v", err)
	}
	second, err := uc.Like(ctx, 2, 1)
	if err != nil {
		t.Fatalf("second like: %v", err)
	}
	if !second.IsMatch {
		t.Fatalf("reciprocal like must complete the match")
	}
	if second.MatchID != first.MatchID {
		t.Fatalf("pair must keep a single record: got %d and %d", first.MatchID, second.MatchID)
	}

	match, err := matchRepo.GetByID(ctx, second.MatchID)
	if err != nil {
		t.Fatalf("load match: %v", err)
	}
	if match.Status != domain.MatchActive {
		t.Fatalf("unexpected status: got %s want %s", match.Status, domain.MatchActive)
	}

	notified := waitForMatch(t, notifier.matched)
	if notified.ID != match.ID {
		t.Fatalf("notification for wrong match: got %d want %d", notified.ID, match.ID)
	}
}

func TestRepeatedLikeIsIdempotent(t *testing.T) {
	uc, _, _, matchRepo, _ := newTestUseCase(t)
	ctx := context.Background()

	first, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("first like: %v", err)
	}
	second, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("repeated like: %v", err)
	}
	if second.IsMatch {
		t.Fatalf("repeated one-sided like must not complete a match")
	}
	if second.MatchID != first.MatchID {
		t.Fatalf("repeated like must reuse the record: got %d and %d", first.MatchID, second.MatchID)
	}
	if len(matchRepo.matches) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(matchRepo.matches))
	}
}

func TestLikeRejectsSelfAndUnknownTarget(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.Like(ctx, 1, 1); !errors.Is(err, domain.ErrSelfAction) {
		t.Fatalf("expected ErrSelfAction, got %v", err)
	}
	if _, err := uc.Like(ctx, 1, 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLikeRetriesWhenConcurrentWriterWins(t *testing.T) {
	uc, _, likeRepo, matchRepo, _ := newTestUseCase(t)
	ctx := context.Background()

	// Simulate user 2 committing a like plus a pending record between
	// this call's lookup and insert. The pair conflict forces a retry,
	// and the second attempt sees the committed row and the reciprocal
	// like, taking the promotion path.
	injected := false
	matchRepo.beforeCreate = func() {
		if injected {
			return
		}
		injected = true
		likeRepo.likes[likeKeyPair{2, 1}] = true
		matchRepo.matches[matchRepo.nextID] = &domain.Match{
			ID:      matchRepo.nextID,
			User1ID: 2,
			User2ID: 1,
			Status:  domain.MatchPending,
		}
		matchRepo.nextID++
	}

	result, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("like with concurrent writer: %v", err)
	}
	if !result.IsMatch {
		t.Fatalf("retry must promote the committed pending record")
	}
	if len(matchRepo.matches) != 1 {
		t.Fatalf("expected exactly one record for the pair, got %d", len(matchRepo.matches))
	}
	match, err := matchRepo.GetByID(ctx, result.MatchID)
	if err != nil {
		t.Fatalf("load match: %v", err)
	}
	if match.Status != domain.MatchActive {
		t.Fatalf("unexpected status after retry: got %s want %s", match.Status, domain.MatchActive)
	}
}

func TestFreshMutualLikesReactivateEndedRecord(t *testing.T) {
	uc, _, likeRepo, matchRepo, _ := newTestUseCase(t)
	ctx := context.Background()

	endedBy := 1
	endedAt := time.Now().Add(-time.Hour)
	matchRepo.matches[7] = &domain.Match{ID: 7, User1ID: 1, User2ID: 2, Status: domain.MatchEnded, EndedBy: &endedBy, EndedAt: &endedAt}
	matchRepo.nextID = 8
	likeRepo.likes[likeKeyPair{2, 1}] = true

	result, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("like on ended record: %v", err)
	}
	if !result.IsMatch || result.MatchID != 7 {
		t.Fatalf("mutual likes must promote the existing record: %+v", result)
	}
	match, _ := matchRepo.GetByID(ctx, 7)
	if match.Status != domain.MatchActive {
		t.Fatalf("unexpected status: got %s want %s", match.Status, domain.MatchActive)
	}
	// Active records carry no end metadata.
	if match.EndedBy != nil || match.EndedAt != nil {
		t.Fatalf("reactivation must clear the end metadata, got ended_by=%v ended_at=%v", match.EndedBy, match.EndedAt)
	}
}

func TestConcurrentMutualLikesKeepSingleRecord(t *testing.T) {
	uc, _, _, matchRepo, notifier := newTestUseCase(t)
	ctx := context.Background()

	const rounds = 8
	errs := make(chan error, rounds*2)
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := uc.Like(ctx, 1, 2); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := uc.Like(ctx, 2, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent like: %v", err)
	}

	if len(matchRepo.matches) != 1 {
		t.Fatalf("expected exactly one record for the pair, got %d", len(matchRepo.matches))
	}
	for _, m := range matchRepo.matches {
		if m.Status != domain.MatchActive {
			t.Fatalf("unexpected final status: got %s want %s", m.Status, domain.MatchActive)
		}
	}
	waitForMatch(t, notifier.matched)
}

func TestPassDoesNotTouchMatchLedger(t *testing.T) {
	uc, _, likeRepo, matchRepo, _ := newTestUseCase(t)
	ctx := context.Background()

	// User 2 already likes user 1; user 1 passing must leave the
	// incoming pending request alone.
	if _, err := uc.Like(ctx, 2, 1); err != nil {
		t.Fatalf("incoming like: %v", err)
	}
	if err := uc.Pass(ctx, 1, 2); err != nil {
		t.Fatalf("pass: %v", err)
	}
	if !likeRepo.passes[likeKeyPair{1, 2}] {
		t.Fatalf("pass must be recorded")
	}
	pending, err := uc.PendingRequests(ctx, 1)
	if err != nil {
		t.Fatalf("pending requests: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pass must not remove the pending request, got %d", len(pending))
	}
	if len(matchRepo.matches) != 1 {
		t.Fatalf("pass must not change the ledger, got %d records", len(matchRepo.matches))
	}
}

func TestAcceptRequiresLikedSideAndPendingStatus(t *testing.T) {
	uc, _, _, matchRepo, notifier := newTestUseCase(t)
	ctx := context.Background()

	result, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("like: %v", err)
	}

	if _, err := uc.Accept(ctx, 1, result.MatchID); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("initiator must not accept their own request, got %v", err)
	}

	match, err := uc.Accept(ctx, 2, result.MatchID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if match.Status != domain.MatchActive {
		t.Fatalf("unexpected status after accept: got %s", match.Status)
	}
	waitForMatch(t, notifier.matched)

	if _, err := uc.Accept(ctx, 2, result.MatchID); !errors.Is(err, domain.ErrNotPending) {
		t.Fatalf("accepting an active match must fail, got %v", err)
	}
	_ = matchRepo
}

func TestRejectDeletesRequestAndAllowsFreshLike(t *testing.T) {
	uc, _, _, matchRepo, _ := newTestUseCase(t)
	ctx := context.Background()

	result, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("like: %v", err)
	}

	if err := uc.Reject(ctx, 1, result.MatchID); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("initiator must not reject their own request, got %v", err)
	}
	if err := uc.Reject(ctx, 2, result.MatchID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if len(matchRepo.matches) != 0 {
		t.Fatalf("reject must delete the record")
	}

	// The like row survives, so a later like reopens a fresh request.
	again, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("like after reject: %v", err)
	}
	if again.MatchID == result.MatchID {
		t.Fatalf("expected a fresh record after reject")
	}
	match, _ := matchRepo.GetByID(ctx, again.MatchID)
	if match.Status != domain.MatchPending {
		t.Fatalf("unexpected status: got %s want %s", match.Status, domain.MatchPending)
	}
}

func TestEndTransitions(t *testing.T) {
	uc, _, _, matchRepo, notifier := newTestUseCase(t)
	ctx := context.Background()

	result, err := uc.Like(ctx, 1, 2)
	if err != nil {
		t.Fatalf("like: %v", err)
	}

	if _, err := uc.End(ctx, 1, result.MatchID); !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("ending a pending record must fail, got %v", err)
	}

	if _, err := uc.Accept(ctx, 2, result.MatchID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	waitForMatch(t, notifier.matched)

	if _, err := uc.End(ctx, 99, result.MatchID); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("stranger must not end the match, got %v", err)
	}

	ended, err := uc.End(ctx, 2, result.MatchID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if ended.Status != domain.MatchEnded {
		t.Fatalf("unexpected status: got %s want %s", ended.Status, domain.MatchEnded)
	}
	if ended.EndedBy == nil || *ended.EndedBy != 2 {
		t.Fatalf("ended_by must record the closer, got %v", ended.EndedBy)
	}
	waitForMatch(t, notifier.ended)

	if _, err := uc.End(ctx, 1, result.MatchID); !errors.Is(err, domain.ErrMatchEnded) {
		t.Fatalf("ended is terminal, got %v", err)
	}
	_ = matchRepo
}

func TestCreateMatchConflictsWithExistingRecord(t *testing.T) {
	uc, _, _, _, notifier := newTestUseCase(t)
	ctx := context.Background()

	match, err := uc.CreateMatch(ctx, 1, 2)
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if match.Status != domain.MatchActive {
		t.Fatalf("unexpected status: got %s want %s", match.Status, domain.MatchActive)
	}
	waitForMatch(t, notifier.matched)

	if _, err := uc.CreateMatch(ctx, 2, 1); !errors.Is(err, domain.ErrMatchExists) {
		t.Fatalf("expected ErrMatchExists for the reversed pair, got %v", err)
	}
}

type fixedWindowStore struct {
	count int64
	ttl   time.Duration
}

func (s *fixedWindowStore) IncrementWindow(_ context.Context, _ string, _ time.Duration) (int64, time.Duration, error) {
	s.count++
	return s.count, s.ttl, nil
}

func TestLikeRateLimited(t *testing.T) {
	alice, bob := testUsers()
	userRepo := newFakeUserRepo(alice, bob)
	likeRepo := newFakeLikeRepo()
	matchRepo := newFakeMatchRepo(t)
	limiter := rate.NewLimiter(&fixedWindowStore{ttl: 42 * time.Second}, 1)
	uc := NewMatchingUseCase(userRepo, likeRepo, matchRepo, limiter, nil, 20)
	ctx := context.Background()

	if _, err := uc.Like(ctx, 1, 2); err != nil {
		t.Fatalf("first like: %v", err)
	}

	_, err := uc.Like(ctx, 1, 2)
	tooFast, ok := IsTooFast(err)
	if !ok {
		t.Fatalf("expected a too-fast error, got %v", err)
	}
	if tooFast.RetryAfter() != 42 {
		t.Fatalf("unexpected retry_after: got %d want 42", tooFast.RetryAfter())
	}
}

func TestSuggestionsGenderFilter(t *testing.T) {
	uc, userRepo, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	bio := "hello"
	userRepo.suggestions = []*domain.User{
		{ID: 2, Name: "Bob", Bio: &bio, Gender: domain.GenderMale},
	}

	profiles, err := uc.Suggestions(ctx, 1)
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if userRepo.suggestionsGender == nil || *userRepo.suggestionsGender != domain.GenderMale {
		t.Fatalf("expected the actor's preference to filter candidates, got %v", userRepo.suggestionsGender)
	}
	if userRepo.suggestionsLimit != 20 {
		t.Fatalf("unexpected cap: got %d want 20", userRepo.suggestionsLimit)
	}
	if len(profiles) != 1 || profiles[0].Name != "Bob" || profiles[0].Bio == nil {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}

	// A preference of everyone disables the gender filter.
	userRepo.users[1].FindGender = domain.FindGenderEveryone
	if _, err := uc.Suggestions(ctx, 1); err != nil {
		t.Fatalf("suggestions for everyone: %v", err)
	}
	if userRepo.suggestionsGender != nil {
		t.Fatalf("expected no gender filter, got %v", *userRepo.suggestionsGender)
	}
}
