package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"oceanlk/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAdmin creates an active admin user with a hashed password.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, models.RoleAdmin)
}

// CreateTestSuperAdmin creates an active super admin user.
func CreateTestSuperAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, models.RoleSuperAdmin)
}

func createUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     fmt.Sprintf("user%d@test.com", nextID()),
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCompany creates an active company with a unique name.
func CreateTestCompany(t *testing.T, db *gorm.DB) *models.Company {
	t.Helper()

	company := &models.Company{
		Name:     fmt.Sprintf("Company %d", nextID()),
		Sector:   "Logistics",
		Tagline:  "Moving things",
		IsActive: true,
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}
	return company
}

// CreateTestJob creates an open job posting for the given company.
func CreateTestJob(t *testing.T, db *gorm.DB, companyID *string) *models.JobPosting {
	t.Helper()

	job := &models.JobPosting{
		CompanyID:      companyID,
		Title:          fmt.Sprintf("Engineer %d", nextID()),
		Department:     "Engineering",
		Location:       "Colombo",
		EmploymentType: models.EmploymentTypeFullTime,
		IsOpen:         true,
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("failed to create test job: %v", err)
	}
	return job
}

// CreateTestMediaAsset creates a published gallery item.
func CreateTestMediaAsset(t *testing.T, db *gorm.DB) *models.MediaAsset {
	t.Helper()

	asset := &models.MediaAsset{
		Type:        models.MediaTypeGallery,
		Title:       fmt.Sprintf("Photo %d", nextID()),
		URL:         "https://cdn.test/photo.jpg",
		IsPublished: true,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test media asset: %v", err)
	}
	return asset
}

// CreateTestLeadershipProfile creates a leadership bio.
func CreateTestLeadershipProfile(t *testing.T, db *gorm.DB) *models.LeadershipProfile {
	t.Helper()

	profile := &models.LeadershipProfile{
		Name:  fmt.Sprintf("Director %d", nextID()),
		Title: "Director",
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test leadership profile: %v", err)
	}
	return profile
}

// CreateTestEvent creates a published event starting tomorrow.
func CreateTestEvent(t *testing.T, db *gorm.DB) *models.Event {
	t.Helper()

	event := &models.Event{
		Title:       fmt.Sprintf("Event %d", nextID()),
		StartsAt:    time.Now().Add(24 * time.Hour),
		IsPublished: true,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateTestStatistic creates a statistic with a unique label.
func CreateTestStatistic(t *testing.T, db *gorm.DB) *models.Statistic {
	t.Helper()

	stat := &models.Statistic{
		Label: fmt.Sprintf("metric_%d", nextID()),
		Value: "42",
	}
	if err := db.Create(stat).Error; err != nil {
		t.Fatalf("failed to create test statistic: %v", err)
	}
	return stat
}

// CreateTestPendingChange creates a PENDING change for the given
// submitter with the given snapshot payload.
func CreateTestPendingChange(t *testing.T, db *gorm.DB, submitterID string,
	entityType models.EntityType, action models.ChangeAction, entityID *string,
	changeData string, originalData *string) *models.PendingChange {
	t.Helper()

	change := &models.PendingChange{
		EntityType:    entityType,
		EntityID:      entityID,
		Action:        action,
		Status:        models.ChangeStatusPending,
		SubmittedByID: submitterID,
		SubmittedAt:   time.Now(),
		ChangeData:    changeData,
		OriginalData:  originalData,
	}
	if err := db.Create(change).Error; err != nil {
		t.Fatalf("failed to create test pending change: %v", err)
	}
	return change
}
