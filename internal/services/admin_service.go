package services

import (
	"context"

	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/internal/repositories"

	log "github.com/sirupsen/logrus"
)

const recentUsers = 10

// UserStats aggregates the admin user list.
type UserStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// UserListing is the admin view of all profiles.
type UserListing struct {
	Users  []models.AdminUser `json:"users"`
	Stats  UserStats          `json:"stats"`
	Recent []models.AdminUser `json:"recent"`
}

// SubscriptionListing is the admin view of subscriptions.
type SubscriptionListing struct {
	Subscriptions []models.Subscription    `json:"subscriptions"`
	Stats         models.SubscriptionStats `json:"stats"`
}

// subscriptionCatalog is illustrative; billing is not tracked.
var subscriptionCatalog = []models.Subscription{
	{
		ID:        "1",
		User:      "Jane Smith",
		Email:     "jane@example.com",
		Plan:      "premium",
		Status:    models.SubscriptionStatusActive,
		StartDate: "2024-01-08",
		EndDate:   "2025-01-08",
		Amount:    "$29.99",
		Price:     29.99,
	},
}

// AdminService backs the admin dashboard.
type AdminService struct {
	users repositories.UserRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(users repositories.UserRepository) *AdminService {
	return &AdminService{users: users}
}

// ListUsers decorates every profile with the default status and tier, since
// neither is stored.
func (s *AdminService) ListUsers(ctx context.Context) (*UserListing, error) {
	profiles, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	listing := &UserListing{Users: make([]models.AdminUser, 0, len(profiles))}
	for _, u := range profiles {
		listing.Users = append(listing.Users, models.AdminUser{
			ID:           u.ID,
			Name:         u.FullName(),
			Email:        u.Email,
			Username:     u.Username,
			Status:       models.UserStatusActive,
			Subscription: models.SubscriptionTierFree,
			JoinDate:     u.CreatedAt.Format("2006-01-02"),
		})
	}
	for _, u := range listing.Users {
		if u.Status == models.UserStatusActive {
			listing.Stats.Active++
		}
	}
	listing.Stats.Total = len(listing.Users)
	listing.Recent = listing.Users[:min(recentUsers, len(listing.Users))]
	return listing, nil
}

// ListSubscriptions returns the illustrative catalog with its aggregates.
func (s *AdminService) ListSubscriptions(_ context.Context) *SubscriptionListing {
	subs := make([]models.Subscription, len(subscriptionCatalog))
	copy(subs, subscriptionCatalog)

	var stats models.SubscriptionStats
	for _, sub := range subs {
		switch sub.Status {
		case models.SubscriptionStatusActive:
			stats.Active++
			stats.Revenue += sub.Price
		case models.SubscriptionStatusCancelled:
			stats.Cancelled++
		}
	}
	return &SubscriptionListing{Subscriptions: subs, Stats: stats}
}

// ToggleUserStatus is accepted but changes nothing: user status is not stored.
func (s *AdminService) ToggleUserStatus(_ context.Context, userID string) {
	log.WithField("user_id", userID).Info("User status toggle requested (not persisted)")
}

// CancelSubscription is accepted but changes nothing.
func (s *AdminService) CancelSubscription(_ context.Context, subscriptionID string) {
	s.logSubscriptionAction("cancel", subscriptionID)
}

// ReactivateSubscription is accepted but changes nothing.
func (s *AdminService) ReactivateSubscription(_ context.Context, subscriptionID string) {
	s.logSubscriptionAction("reactivate", subscriptionID)
}

func (s *AdminService) logSubscriptionAction(action, id string) {
	log.WithFields(log.Fields{"subscription_id": id, "action": action}).
		Infof("Subscription %s requested (not persisted)", action)
}
