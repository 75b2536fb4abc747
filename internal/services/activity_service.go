package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"
	"taployalty/internal/utils"
	"taployalty/pkg/logger"
)

type ActivityService interface {
	GetFeed(ctx context.Context, merchantID string, filter *models.ActivityFilter) ([]*models.ActivityItem, error)
}

type activityService struct {
	transactionRepo interfaces.TransactionRepository
	redemptionRepo  interfaces.RedemptionRepository
	customerRepo    interfaces.CustomerRepository
	timezone        *time.Location
	logger          *logger.Logger
}

func NewActivityService(
	transactionRepo interfaces.TransactionRepository,
	redemptionRepo interfaces.RedemptionRepository,
	customerRepo interfaces.CustomerRepository,
	timezone *time.Location,
	log *logger.Logger,
) ActivityService {
	if timezone == nil {
		timezone = time.UTC
	}
	return &activityService{
		transactionRepo: transactionRepo,
		redemptionRepo:  redemptionRepo,
		customerRepo:    customerRepo,
		timezone:        timezone,
		logger:          log,
	}
}

// GetFeed merges transactions and redemptions into one feed, filtered,
// enriched with customer names and sorted. Sorting is stable so rows that
// compare equal keep their merge order across requests.
func (s *activityService) GetFeed(ctx context.Context, merchantID string, filter *models.ActivityFilter) ([]*models.ActivityItem, error) {
	if filter == nil {
		filter = &models.ActivityFilter{}
	}

	from, to := s.ResolveBucket(filter.Bucket, filter.From, filter.To, time.Now())

	items := []*models.ActivityItem{}

	if filter.Kind == "" || filter.Kind == models.ActivityKindTransaction {
		transactions, err := s.transactionRepo.ListByMerchant(ctx, merchantID, from, to)
		if err != nil {
			return nil, err
		}
		for _, tx := range transactions {
			items = append(items, &models.ActivityItem{
				ID:         tx.ID.Hex(),
				Kind:       models.ActivityKindTransaction,
				CustomerID: tx.CustomerID,
				Amount:     tx.Amount,
				Points:     tx.PointsEarned,
				Status:     string(tx.Status),
				OccurredAt: tx.CreatedAt,
			})
		}
	}

	if filter.Kind == "" || filter.Kind == models.ActivityKindRedemption {
		redemptions, err := s.redemptionRepo.ListByMerchant(ctx, merchantID, from, to)
		if err != nil {
			return nil, err
		}
		for _, redemption := range redemptions {
			items = append(items, &models.ActivityItem{
				ID:         redemption.ID.Hex(),
				Kind:       models.ActivityKindRedemption,
				CustomerID: redemption.CustomerID,
				Points:     redemption.PointsSpent,
				RewardName: redemption.RewardName,
				Status:     string(redemption.Status),
				OccurredAt: redemption.CreatedAt,
			})
		}
	}

	if err := s.enrichCustomerNames(ctx, merchantID, items); err != nil {
		// Names are decoration; the feed is still useful without them.
		s.logger.WithError(err).WithField("merchant_id", merchantID).
			Warn("failed to enrich activity feed with customer names")
	}

	if filter.Search != "" {
		items = filterBySearch(items, filter.Search)
	}

	sortFeed(items, filter.SortBy, filter.SortOrder)

	return items, nil
}

// ResolveBucket turns a named bucket into [from, to] bounds on calendar-day
// boundaries in the reference timezone. Weeks start Monday. The custom
// bucket passes the caller's bounds through; "all" means unbounded.
func (s *activityService) ResolveBucket(bucket models.DateBucket, customFrom, customTo, now time.Time) (time.Time, time.Time) {
	local := now.In(s.timezone)

	switch bucket {
	case models.BucketToday:
		return utils.StartOfDay(local), utils.EndOfDay(local)

	case models.BucketYesterday:
		yesterday := local.AddDate(0, 0, -1)
		return utils.StartOfDay(yesterday), utils.EndOfDay(yesterday)

	case models.BucketThisWeek:
		return utils.StartOfWeek(local), utils.EndOfWeek(local)

	case models.BucketLastWeek:
		lastWeek := local.AddDate(0, 0, -7)
		return utils.StartOfWeek(lastWeek), utils.EndOfWeek(lastWeek)

	case models.BucketThisMonth:
		return utils.StartOfMonth(local), utils.EndOfMonth(local)

	case models.BucketLastMonth:
		lastMonth := utils.StartOfMonth(local).AddDate(0, 0, -1)
		return utils.StartOfMonth(lastMonth), utils.EndOfMonth(lastMonth)

	case models.BucketCustom:
		to := customTo
		if !to.IsZero() {
			// The upper bound is inclusive of its whole day.
			to = utils.EndOfDay(to.In(s.timezone))
		}
		return customFrom, to

	default:
		return time.Time{}, time.Time{}
	}
}

// enrichCustomerNames resolves display names one fixed-size group at a
// time: each group is looked up as a batch, awaited, and only then does
// the next group start. Keeps the lookup pressure bounded no matter how
// many distinct customers appear in the feed.
func (s *activityService) enrichCustomerNames(ctx context.Context, merchantID string, items []*models.ActivityItem) error {
	var all []string
	for _, item := range items {
		if item.CustomerID != "" {
			all = append(all, item.CustomerID)
		}
	}
	ids := utils.UniqueStrings(all)
	if len(ids) == 0 {
		return nil
	}

	names := make(map[string]string, len(ids))
	for start := 0; start < len(ids); start += utils.ActivityNameBatchSize {
		end := start + utils.ActivityNameBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		resolved, err := s.customerRepo.GetNames(ctx, merchantID, ids[start:end])
		if err != nil {
			return err
		}
		for id, name := range resolved {
			names[id] = name
		}
	}

	for _, item := range items {
		item.CustomerName = names[item.CustomerID]
	}
	return nil
}

func filterBySearch(items []*models.ActivityItem, search string) []*models.ActivityItem {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return items
	}

	filtered := items[:0]
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.CustomerName), needle) ||
			strings.Contains(strings.ToLower(item.RewardName), needle) ||
			strings.Contains(strings.ToLower(item.Status), needle) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// sortFeed orders the merged feed. Defaults to date descending; unknown
// sort keys fall back to the default. Stability matters because both
// sources can emit rows with identical timestamps.
func sortFeed(items []*models.ActivityItem, sortBy, sortOrder string) {
	asc := sortOrder == "asc"

	var less func(a, b *models.ActivityItem) bool
	switch sortBy {
	case "amount":
		less = func(a, b *models.ActivityItem) bool { return a.Amount < b.Amount }
	case "points":
		less = func(a, b *models.ActivityItem) bool { return a.Points < b.Points }
	case "customer":
		less = func(a, b *models.ActivityItem) bool { return a.CustomerName < b.CustomerName }
	default:
		less = func(a, b *models.ActivityItem) bool { return a.OccurredAt.Before(b.OccurredAt) }
	}

	sort.SliceStable(items, func(i, j int) bool {
		if asc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}
