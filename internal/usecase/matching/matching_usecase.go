package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/dateit-app/dateit-backend/internal/repository"
	"github.com/dateit-app/dateit-backend/internal/usecase/rate"
	"github.com/dateit-app/dateit-backend/pkg/logger"
	"go.uber.org/zap"
)

// createRetries bounds the conflict-retry loop for concurrent likes on
// the same pair. One retry is enough in practice; a second covers the
// reject-then-relike window.
const createRetries = 3

// TooFastError is returned when a user exceeds the like rate limit.
type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too many likes"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

// Notifier fans match state changes out to live sessions. Delivery is
// best-effort; callers never block on it or observe its failures.
type Notifier interface {
	NotifyMatch(match *domain.Match)
	NotifyMatchEnded(match *domain.Match)
}

type MatchingUseCase struct {
	userRepo  repository.UserRepository
	likeRepo  repository.LikeRepository
	matchRepo repository.MatchRepository
	limiter   *rate.Limiter
	notifier  Notifier

	suggestionCap int
}

func NewMatchingUseCase(
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	matchRepo repository.MatchRepository,
	limiter *rate.Limiter,
	notifier Notifier,
	suggestionCap int,
) *MatchingUseCase {
	if suggestionCap <= 0 {
		suggestionCap = 20
	}
	return &MatchingUseCase{
		userRepo:      userRepo,
		likeRepo:      likeRepo,
		matchRepo:     matchRepo,
		limiter:       limiter,
		notifier:      notifier,
		suggestionCap: suggestionCap,
	}
}

// LikeResult reports whether the call itself completed a match.
type LikeResult struct {
	IsMatch bool `json:"is_match"`
	MatchID int  `json:"match_id,omitempty"`
}

// Like records a one-sided like from actor to target and resolves the
// pair's match record:
//   - reciprocal like, no record: a new active match
//   - reciprocal like, existing record (pending or ended): promoted to active
//   - one-sided, no record: a new pending request with actor as initiator
//   - one-sided, existing record: no change
//
// The lookup-decide-write sequence runs in one transaction; the
// unordered-pair unique index arbitrates concurrent calls, and the
// loser retries against the committed row.
func (uc *MatchingUseCase) Like(ctx context.Context, actorID, targetID int) (*LikeResult, error) {
	if actorID == targetID {
		return nil, domain.ErrSelfAction
	}
	if _, err := uc.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	if uc.limiter != nil {
		retryAfter, allowed, err := uc.limiter.AllowLike(ctx, actorID)
		if err != nil {
			// The limiter is best-effort: a broken redis must not
			// block likes, the pair-unique index keeps state safe.
			logger.L().Warn("like rate limiter unavailable",
				zap.Int("user_id", actorID), zap.Error(err))
		} else if !allowed {
			return nil, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	var result *LikeResult
	var err error
	for attempt := 0; attempt < createRetries; attempt++ {
		result, err = uc.likeOnce(ctx, actorID, targetID)
		if errors.Is(err, domain.ErrMatchExists) {
			// A concurrent insert for the pair won; re-read and apply
			// the update path instead.
			continue
		}
		break
	}
	if err != nil {
		return nil, fmt.Errorf("apply like: %w", err)
	}

	if result.IsMatch && uc.notifier != nil {
		match, lookupErr := uc.matchRepo.GetByID(ctx, result.MatchID)
		if lookupErr == nil {
			go uc.notifier.NotifyMatch(match)
		}
	}
	return result, nil
}

func (uc *MatchingUseCase) likeOnce(ctx context.Context, actorID, targetID int) (*LikeResult, error) {
	tx, err := uc.matchRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := uc.likeRepo.AddLike(ctx, tx, actorID, targetID); err != nil {
		return nil, fmt.Errorf("record like: %w", err)
	}

	reciprocal, err := uc.likeRepo.HasLiked(ctx, tx, targetID, actorID)
	if err != nil {
		return nil, fmt.Errorf("check reciprocal like: %w", err)
	}

	match, err := uc.matchRepo.GetByUsers(ctx, tx, actorID, targetID)
	if err != nil && !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, fmt.Errorf("lookup match: %w", err)
	}
	exists := err == nil

	result := &LikeResult{}
	switch {
	case reciprocal && !exists:
		match = &domain.Match{
			User1ID: actorID,
			User2ID: targetID,
			Status:  domain.MatchActive,
		}
		if err := uc.matchRepo.Create(ctx, tx, match); err != nil {
			return nil, err
		}
		result.IsMatch = true
		result.MatchID = match.ID

	case reciprocal && exists:
		if match.Status != domain.MatchActive {
			if err := uc.matchRepo.UpdateStatus(ctx, tx, match.ID, domain.MatchActive); err != nil {
				return nil, err
			}
			result.IsMatch = true
		}
		result.MatchID = match.ID

	case !reciprocal && !exists:
		match = &domain.Match{
			User1ID: actorID,
			User2ID: targetID,
			Status:  domain.MatchPending,
		}
		if err := uc.matchRepo.Create(ctx, tx, match); err != nil {
			return nil, err
		}
		result.MatchID = match.ID

	default:
		// Repeated like from the same side; the record stays as is.
		result.MatchID = match.ID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit like: %w", err)
	}
	return result, nil
}

// Pass adds target to the actor's passed set. It deliberately does not
// touch the match ledger, so an incoming pending request from target
// stays visible.
func (uc *MatchingUseCase) Pass(ctx context.Context, actorID, targetID int) error {
	if actorID == targetID {
		return domain.ErrSelfAction
	}
	if _, err := uc.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := uc.likeRepo.AddPass(ctx, actorID, targetID); err != nil {
		return fmt.Errorf("record pass: %w", err)
	}
	return nil
}

// SuggestionProfile is the public slice of a candidate user.
type SuggestionProfile struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Age      *int    `json:"age"`
	Bio      *string `json:"bio"`
	PhotoURL *string `json:"photo_url"`
	Gender   string  `json:"gender"`
}

// Suggestions returns candidates the actor has not yet reacted to,
// filtered by the actor's dating preference.
func (uc *MatchingUseCase) Suggestions(ctx context.Context, actorID int) ([]SuggestionProfile, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var gender *domain.Gender
	if actor.FindGender != domain.FindGenderEveryone {
		g := actor.FindGender
		gender = &g
	}

	users, err := uc.userRepo.Suggestions(ctx, actorID, gender, uc.suggestionCap)
	if err != nil {
		return nil, fmt.Errorf("load suggestions: %w", err)
	}

	profiles := make([]SuggestionProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, SuggestionProfile{
			ID:       u.ID,
			Name:     u.Name,
			Age:      u.Age,
			Bio:      u.Bio,
			PhotoURL: u.PhotoURL,
			Gender:   string(u.Gender),
		})
	}
	return profiles, nil
}

// CreateMatch creates an active record directly, bypassing the
// one-sided like flow. Fails if the pair already has a record.
func (uc *MatchingUseCase) CreateMatch(ctx context.Context, actorID, targetID int) (*domain.Match, error) {
	if actorID == targetID {
		return nil, domain.ErrSelfAction
	}
	if _, err := uc.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	tx, err := uc.matchRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := uc.matchRepo.GetByUsers(ctx, tx, actorID, targetID); err == nil {
		return nil, domain.ErrMatchExists
	} else if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, fmt.Errorf("lookup match: %w", err)
	}

	match := &domain.Match{
		User1ID: actorID,
		User2ID: targetID,
		Status:  domain.MatchActive,
	}
	if err := uc.matchRepo.Create(ctx, tx, match); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit match: %w", err)
	}

	if uc.notifier != nil {
		go uc.notifier.NotifyMatch(match)
	}
	return match, nil
}

// MatchSummary pairs a record with the counterpart's public profile.
type MatchSummary struct {
	Match *domain.Match     `json:"match"`
	User  SuggestionProfile `json:"user"`
}

// MyMatches lists the actor's active matches, newest first.
func (uc *MatchingUseCase) MyMatches(ctx context.Context, actorID int) ([]MatchSummary, error) {
	matches, err := uc.matchRepo.ListActive(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return uc.summarize(ctx, actorID, matches), nil
}

// PendingRequests lists pending records where the actor is the liked
// side, i.e. requests the actor may accept or reject.
func (uc *MatchingUseCase) PendingRequests(ctx context.Context, actorID int) ([]MatchSummary, error) {
	matches, err := uc.matchRepo.ListPendingFor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return uc.summarize(ctx, actorID, matches), nil
}

func (uc *MatchingUseCase) summarize(ctx context.Context, actorID int, matches []*domain.Match) []MatchSummary {
	summaries := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.OtherUserID(actorID)
		if !ok {
			continue
		}
		user, err := uc.userRepo.GetByID(ctx, otherID)
		if err != nil {
			logger.L().Warn("match counterpart missing",
				zap.Int("match_id", m.ID), zap.Int("user_id", otherID))
			continue
		}
		summaries = append(summaries, MatchSummary{
			Match: m,
			User: SuggestionProfile{
				ID:       user.ID,
				Name:     user.Name,
				Age:      user.Age,
				Bio:      user.Bio,
				PhotoURL: user.PhotoURL,
				Gender:   string(user.Gender),
			},
		})
	}
	return summaries
}

// GetMatch returns a record to one of its participants.
func (uc *MatchingUseCase) GetMatch(ctx context.Context, actorID, matchID int) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(actorID) {
		return nil, domain.ErrNotParticipant
	}
	return match, nil
}

// Accept promotes a pending request to active. Only the liked side
// (the participant who did not initiate the record) may accept; they
// do not need to have liked back separately.
func (uc *MatchingUseCase) Accept(ctx context.Context, actorID, matchID int) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.User2ID != actorID {
		return nil, domain.ErrNotParticipant
	}
	if match.Status != domain.MatchPending {
		return nil, domain.ErrNotPending
	}
	if err := uc.matchRepo.UpdateStatus(ctx, nil, match.ID, domain.MatchActive); err != nil {
		return nil, err
	}
	match.Status = domain.MatchActive

	if uc.notifier != nil {
		go uc.notifier.NotifyMatch(match)
	}
	return match, nil
}

// Reject deletes a pending request outright, so a later like from the
// original initiator opens a fresh pending record.
func (uc *MatchingUseCase) Reject(ctx context.Context, actorID, matchID int) error {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if match.User2ID != actorID {
		return domain.ErrNotParticipant
	}
	if match.Status != domain.MatchPending {
		return domain.ErrNotPending
	}
	return uc.matchRepo.Delete(ctx, match.ID)
}

// End transitions an active match to its terminal ended state and
// notifies both participants' live sessions.
func (uc *MatchingUseCase) End(ctx context.Context, actorID, matchID int) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(actorID) {
		return nil, domain.ErrNotParticipant
	}
	if match.Status == domain.MatchEnded {
		return nil, domain.ErrMatchEnded
	}
	if match.Status != domain.MatchActive {
		return nil, domain.ErrNotActive
	}
	if err := uc.matchRepo.End(ctx, match.ID, actorID); err != nil {
		return nil, err
	}

	match, err = uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		go uc.notifier.NotifyMatchEnded(match)
	}
	return match, nil
}
