package services

import (
	"encoding/json"
	"testing"

	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
	"oceanlk/internal/testutil"
)

func companySnapshot(t *testing.T, name string) string {
	t.Helper()
	data, err := json.Marshal(models.Company{Name: name, Sector: "Logistics", IsActive: true})
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}
	return string(data)
}

func TestSubmit(t *testing.T) {
	t.Run("create_files_pending_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "New Co"))
		testutil.AssertNoError(t, err)

		if change.Status != models.ChangeStatusPending {
			t.Errorf("expected status PENDING, got %s", change.Status)
		}
		if change.SubmittedByID != admin.ID {
			t.Errorf("expected submitter %s, got %s", admin.ID, change.SubmittedByID)
		}
		if change.OriginalData != nil {
			t.Error("CREATE change should not carry an original snapshot")
		}
		if change.SubmittedAt.IsZero() {
			t.Error("expected submitted_at to be set")
		}

		// Nothing materialized yet.
		var count int64
		db.Model(&models.Company{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no companies before approval, got %d", count)
		}
	})

	t.Run("update_captures_original_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		company := testutil.CreateTestCompany(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionUpdate, &company.ID, companySnapshot(t, "Renamed"))
		testutil.AssertNoError(t, err)

		if change.OriginalData == nil {
			t.Fatal("UPDATE change should capture the prior state")
		}
		var original models.Company
		if err := json.Unmarshal([]byte(*change.OriginalData), &original); err != nil {
			t.Fatalf("original snapshot is not valid JSON: %v", err)
		}
		if original.Name != company.Name {
			t.Errorf("expected original name %q, got %q", company.Name, original.Name)
		}
	})

	t.Run("update_of_missing_entity_fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)

		missing := "00000000-0000-0000-0000-000000000000"
		_, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionUpdate, &missing, companySnapshot(t, "Ghost"))
		testutil.AssertAppError(t, err, "COMPANY_NOT_FOUND")
	})

	t.Run("create_rejects_entity_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)

		id := "some-id"
		_, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, &id, companySnapshot(t, "New Co"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("update_requires_entity_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionUpdate, nil, companySnapshot(t, "New Co"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_malformed_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, "{not json")
		testutil.AssertAppError(t, err, "MALFORMED_SNAPSHOT")
	})
}

func TestPropose(t *testing.T) {
	t.Run("admin_goes_through_review", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)

		result, err := svc.Propose(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "New Co"))
		testutil.AssertNoError(t, err)

		if result.Applied {
			t.Error("admin proposal should not be applied directly")
		}
		if result.Change == nil || result.Change.Status != models.ChangeStatusPending {
			t.Fatalf("expected a PENDING change, got %+v", result.Change)
		}

		var count int64
		db.Model(&models.Company{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no companies before approval, got %d", count)
		}
	})

	t.Run("super_admin_applies_directly", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		super := testutil.CreateTestSuperAdmin(t, db)

		result, err := svc.Propose(super, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "Direct Co"))
		testutil.AssertNoError(t, err)

		if !result.Applied {
			t.Fatal("super admin proposal should be applied directly")
		}
		if result.EntityID == "" {
			t.Fatal("expected the new entity ID")
		}

		var company models.Company
		if err := db.Where("id = ?", result.EntityID).First(&company).Error; err != nil {
			t.Fatalf("expected materialized company: %v", err)
		}
		if company.Name != "Direct Co" {
			t.Errorf("expected name 'Direct Co', got %q", company.Name)
		}

		// No review record left behind.
		var count int64
		db.Model(&models.PendingChange{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no pending changes, got %d", count)
		}
	})

	t.Run("super_admin_delete_applies_directly", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		super := testutil.CreateTestSuperAdmin(t, db)
		company := testutil.CreateTestCompany(t, db)

		result, err := svc.Propose(super, models.EntityTypeCompany, models.ChangeActionDelete, &company.ID, companySnapshot(t, company.Name))
		testutil.AssertNoError(t, err)

		if !result.Applied {
			t.Fatal("expected direct apply")
		}
		var count int64
		db.Model(&models.Company{}).Where("id = ?", company.ID).Count(&count)
		if count != 0 {
			t.Error("expected company to be deleted")
		}
	})
}

func TestApprove(t *testing.T) {
	t.Run("create_materializes_entity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "Approved Co"))
		testutil.AssertNoError(t, err)

		approved, err := svc.Approve(change.ID, super, "looks good")
		testutil.AssertNoError(t, err)

		if approved.Status != models.ChangeStatusApproved {
			t.Errorf("expected status APPROVED, got %s", approved.Status)
		}
		if approved.ReviewedByID == nil || *approved.ReviewedByID != super.ID {
			t.Errorf("expected reviewer %s, got %v", super.ID, approved.ReviewedByID)
		}
		if approved.ReviewedAt == nil {
			t.Error("expected reviewed_at to be set")
		}
		if approved.ReviewComments != "looks good" {
			t.Errorf("expected review comments, got %q", approved.ReviewComments)
		}

		var company models.Company
		if err := db.Where("name = ?", "Approved Co").First(&company).Error; err != nil {
			t.Fatalf("expected materialized company: %v", err)
		}
	})

	t.Run("update_overlays_existing_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)
		company := testutil.CreateTestCompany(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionUpdate, &company.ID, companySnapshot(t, "Renamed Co"))
		testutil.AssertNoError(t, err)

		_, err = svc.Approve(change.ID, super, "")
		testutil.AssertNoError(t, err)

		var updated models.Company
		if err := db.Where("id = ?", company.ID).First(&updated).Error; err != nil {
			t.Fatalf("expected company to survive update: %v", err)
		}
		if updated.Name != "Renamed Co" {
			t.Errorf("expected name 'Renamed Co', got %q", updated.Name)
		}
	})

	t.Run("delete_removes_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)
		company := testutil.CreateTestCompany(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionDelete, &company.ID, companySnapshot(t, company.Name))
		testutil.AssertNoError(t, err)

		_, err = svc.Approve(change.ID, super, "")
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Company{}).Where("id = ?", company.ID).Count(&count)
		if count != 0 {
			t.Error("expected company to be deleted after approval")
		}
	})

	t.Run("failed_materialization_keeps_change_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)
		company := testutil.CreateTestCompany(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionDelete, &company.ID, companySnapshot(t, company.Name))
		testutil.AssertNoError(t, err)

		// Target vanishes before review.
		if err := db.Delete(&models.Company{}, "id = ?", company.ID).Error; err != nil {
			t.Fatalf("failed to delete company: %v", err)
		}

		_, err = svc.Approve(change.ID, super, "")
		testutil.AssertAppError(t, err, "COMPANY_NOT_FOUND")

		reloaded, err := svc.GetByID(change.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Status != models.ChangeStatusPending {
			t.Errorf("expected change to stay PENDING after rollback, got %s", reloaded.Status)
		}
		if reloaded.ReviewedByID != nil {
			t.Error("expected no reviewer after rollback")
		}
	})

	t.Run("second_review_conflicts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "Once Co"))
		testutil.AssertNoError(t, err)

		_, err = svc.Approve(change.ID, super, "")
		testutil.AssertNoError(t, err)

		_, err = svc.Approve(change.ID, super, "")
		testutil.AssertAppError(t, err, "CHANGE_NOT_PENDING")

		_, err = svc.Reject(change.ID, super, "too late")
		testutil.AssertAppError(t, err, "CHANGE_NOT_PENDING")
	})

	t.Run("missing_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		super := testutil.CreateTestSuperAdmin(t, db)

		_, err := svc.Approve("00000000-0000-0000-0000-000000000000", super, "")
		testutil.AssertAppError(t, err, "CHANGE_NOT_FOUND")
	})
}

func TestReject(t *testing.T) {
	t.Run("requires_comment_before_any_write", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "Doomed Co"))
		testutil.AssertNoError(t, err)

		_, err = svc.Reject(change.ID, super, "")
		testutil.AssertAppError(t, err, "EMPTY_REVIEW_COMMENT")

		_, err = svc.Reject(change.ID, super, "   ")
		testutil.AssertAppError(t, err, "EMPTY_REVIEW_COMMENT")

		reloaded, err := svc.GetByID(change.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Status != models.ChangeStatusPending {
			t.Errorf("expected change to stay PENDING, got %s", reloaded.Status)
		}
	})

	t.Run("stamps_reviewer_and_comment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "Doomed Co"))
		testutil.AssertNoError(t, err)

		rejected, err := svc.Reject(change.ID, super, "Budget exceeded")
		testutil.AssertNoError(t, err)

		if rejected.Status != models.ChangeStatusRejected {
			t.Errorf("expected status REJECTED, got %s", rejected.Status)
		}
		if rejected.ReviewComments != "Budget exceeded" {
			t.Errorf("expected comment 'Budget exceeded', got %q", rejected.ReviewComments)
		}
		if rejected.ReviewedByID == nil || *rejected.ReviewedByID != super.ID {
			t.Errorf("expected reviewer %s, got %v", super.ID, rejected.ReviewedByID)
		}

		// Nothing materialized.
		var count int64
		db.Model(&models.Company{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no companies after rejection, got %d", count)
		}
	})
}

func TestListPending(t *testing.T) {
	t.Run("only_pending_ordered_oldest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)

		first, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "First"))
		testutil.AssertNoError(t, err)
		second, err := svc.Submit(admin, models.EntityTypeEvent, models.ChangeActionCreate, nil, `{"title":"Launch","starts_at":"2026-09-10T09:00:00Z"}`)
		testutil.AssertNoError(t, err)
		reviewed, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "Reviewed"))
		testutil.AssertNoError(t, err)
		_, err = svc.Reject(reviewed.ID, super, "no")
		testutil.AssertNoError(t, err)

		queue, err := svc.ListPending(nil, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if queue.TotalItems != 2 {
			t.Fatalf("expected 2 pending changes, got %d", queue.TotalItems)
		}
		if queue.Data[0].ID != first.ID || queue.Data[1].ID != second.ID {
			t.Error("expected changes ordered by submission time, oldest first")
		}
		if queue.Data[0].SubmittedBy == nil {
			t.Error("expected submitter to be preloaded")
		}
	})

	t.Run("entity_type_filter_and_options", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "A"))
		testutil.AssertNoError(t, err)
		_, err = svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "B"))
		testutil.AssertNoError(t, err)
		_, err = svc.Submit(admin, models.EntityTypeStatistic, models.ChangeActionCreate, nil, `{"label":"employees","value":"4200"}`)
		testutil.AssertNoError(t, err)

		company := models.EntityTypeCompany
		queue, err := svc.ListPending(&company, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if queue.TotalItems != 2 {
			t.Errorf("expected 2 company changes, got %d", queue.TotalItems)
		}
		// Filter options span the whole pending set, not the filtered page.
		if len(queue.EntityTypes) != 2 {
			t.Errorf("expected 2 distinct entity types, got %v", queue.EntityTypes)
		}
	})
}

func TestListMySubmissions(t *testing.T) {
	t.Run("own_changes_with_status_counts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		other := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)

		_, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "P"))
		testutil.AssertNoError(t, err)
		approved, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "A"))
		testutil.AssertNoError(t, err)
		_, err = svc.Approve(approved.ID, super, "")
		testutil.AssertNoError(t, err)
		rejected, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "R"))
		testutil.AssertNoError(t, err)
		_, err = svc.Reject(rejected.ID, super, "no")
		testutil.AssertNoError(t, err)
		_, err = svc.Submit(other, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "X"))
		testutil.AssertNoError(t, err)

		list, err := svc.ListMySubmissions(admin.ID, nil, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if list.TotalItems != 3 {
			t.Errorf("expected 3 submissions for admin, got %d", list.TotalItems)
		}
		if list.StatusCounts[models.ChangeStatusPending] != 1 {
			t.Errorf("expected 1 pending, got %d", list.StatusCounts[models.ChangeStatusPending])
		}
		if list.StatusCounts[models.ChangeStatusApproved] != 1 {
			t.Errorf("expected 1 approved, got %d", list.StatusCounts[models.ChangeStatusApproved])
		}
		if list.StatusCounts[models.ChangeStatusRejected] != 1 {
			t.Errorf("expected 1 rejected, got %d", list.StatusCounts[models.ChangeStatusRejected])
		}
	})

	t.Run("status_filter_keeps_full_counts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		super := testutil.CreateTestSuperAdmin(t, db)

		_, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "P"))
		testutil.AssertNoError(t, err)
		rejected, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionCreate, nil, companySnapshot(t, "R"))
		testutil.AssertNoError(t, err)
		_, err = svc.Reject(rejected.ID, super, "no")
		testutil.AssertNoError(t, err)

		status := models.ChangeStatusRejected
		list, err := svc.ListMySubmissions(admin.ID, &status, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if list.TotalItems != 1 {
			t.Errorf("expected 1 rejected submission, got %d", list.TotalItems)
		}
		if list.StatusCounts[models.ChangeStatusPending] != 1 {
			t.Errorf("counts should ignore the filter, expected 1 pending, got %d", list.StatusCounts[models.ChangeStatusPending])
		}
	})
}

func TestDiffService(t *testing.T) {
	t.Run("update_diff_from_stored_snapshots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)
		admin := testutil.CreateTestAdmin(t, db)
		company := testutil.CreateTestCompany(t, db)

		change, err := svc.Submit(admin, models.EntityTypeCompany, models.ChangeActionUpdate, &company.ID, companySnapshot(t, "Renamed Co"))
		testutil.AssertNoError(t, err)

		result, err := svc.Diff(change.ID)
		testutil.AssertNoError(t, err)

		var nameField *struct{ old, new string }
		for _, f := range result.Fields {
			if f.Name == "name" {
				nameField = &struct{ old, new string }{f.OldValue, f.NewValue}
				if !f.Changed {
					t.Error("expected name field to be flagged changed")
				}
			}
			if f.Name == "id" {
				t.Error("id field leaked into diff")
			}
		}
		if nameField == nil {
			t.Fatal("expected a name field in the diff")
		}
		if nameField.old != company.Name || nameField.new != "Renamed Co" {
			t.Errorf("expected %q -> %q, got %q -> %q", company.Name, "Renamed Co", nameField.old, nameField.new)
		}
	})

	t.Run("missing_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPendingChangeService(db)

		_, err := svc.Diff("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "CHANGE_NOT_FOUND")
	})
}

func TestApplierUnknownEntityType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	admin := testutil.CreateTestAdmin(t, db)
	super := testutil.CreateTestSuperAdmin(t, db)
	svc := NewPendingChangeService(db)

	// A row with a type the dispatch does not know, as if written by a
	// newer deployment.
	change := testutil.CreateTestPendingChange(t, db, admin.ID, models.EntityType("WIDGET"), models.ChangeActionCreate, nil, `{"name":"w"}`, nil)

	_, err := svc.Approve(change.ID, super, "")
	testutil.AssertAppError(t, err, "UNKNOWN_ENTITY_TYPE")

	reloaded, err := svc.GetByID(change.ID)
	testutil.AssertNoError(t, err)
	if reloaded.Status != models.ChangeStatusPending {
		t.Errorf("expected change to stay PENDING, got %s", reloaded.Status)
	}
}
