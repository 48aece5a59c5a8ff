package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/resume-builder/internal/apperror"
	"github.com/sakif/resume-builder/internal/model"
)

// createTestResume inserts a resume for userID and fails the test on error.
func createTestResume(t *testing.T, db *DB, userID, fullName string) *model.Resume {
	t.Helper()
	resume := &model.Resume{
		UserID:   userID,
		FullName: fullName,
		Email:    "me@example.com",
		Summary:  "Software engineer",
		Education: []model.EducationEntry{
			{Institution: "X University", Degree: "BSc", Field: "CS", Year: "2020"},
		},
		Experience: []model.ExperienceEntry{
			{JobTitle: "Engineer", Company: "Acme", Start: "2020", End: "2024",
				Responsibilities: "Built things"},
		},
		Skills:   []string{"Go", "SQL"},
		Projects: []model.ProjectEntry{{Name: "resume-builder", URL: "https://example.com"}},
	}
	if err := db.CreateResume(context.Background(), resume); err != nil {
		t.Fatalf("failed to create test resume: %v", err)
	}
	return resume
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestResumeCreate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ann", "ann@example.com")

	resume := createTestResume(t, db, user.ID, "Ann Lee")

	if resume.ID == "" {
		t.Error("CreateResume() did not set resume.ID")
	}
	if resume.CreatedAt.IsZero() {
		t.Error("CreateResume() did not set resume.CreatedAt")
	}
}

func TestResumeCreate_NestedSectionsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ann", "ann@example.com")
	created := createTestResume(t, db, user.ID, "Ann Lee")

	resumes, err := db.ListResumesByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListResumesByUser() error = %v", err)
	}
	if len(resumes) != 1 {
		t.Fatalf("ListResumesByUser() returned %d resumes, want 1", len(resumes))
	}

	got := resumes[0]
	if len(got.Education) != 1 || got.Education[0].Institution != "X University" {
		t.Errorf("Education did not round-trip: %+v", got.Education)
	}
	if len(got.Experience) != 1 || got.Experience[0].Company != "Acme" {
		t.Errorf("Experience did not round-trip: %+v", got.Experience)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "Go" {
		t.Errorf("Skills did not round-trip: %+v", got.Skills)
	}
	if len(got.Projects) != 1 || got.Projects[0].Name != "resume-builder" {
		t.Errorf("Projects did not round-trip: %+v", got.Projects)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}
}

func TestResumeCreate_NilSectionsBecomeEmpty(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ann", "ann@example.com")

	// A resume with no sections at all — stored as "[]", read back as empty
	// (not nil) slices so the JSON response is always an array, never null.
	resume := &model.Resume{UserID: user.ID, FullName: "Bare"}
	if err := db.CreateResume(context.Background(), resume); err != nil {
		t.Fatalf("CreateResume() error = %v", err)
	}

	resumes, err := db.ListResumesByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListResumesByUser() error = %v", err)
	}
	got := resumes[0]
	if got.Education == nil || got.Experience == nil || got.Skills == nil || got.Projects == nil {
		t.Errorf("nil section after round-trip: %+v", got)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestListResumesByUser_OnlyOwnersDocuments(t *testing.T) {
	db := newTestDB(t)
	ann := createTestUser(t, db, "Ann", "ann@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	createTestResume(t, db, ann.ID, "Ann Resume 1")
	createTestResume(t, db, bob.ID, "Bob Resume 1")
	createTestResume(t, db, ann.ID, "Ann Resume 2")

	resumes, err := db.ListResumesByUser(context.Background(), ann.ID)
	if err != nil {
		t.Fatalf("ListResumesByUser() error = %v", err)
	}

	if len(resumes) != 2 {
		t.Fatalf("ListResumesByUser() returned %d resumes, want 2", len(resumes))
	}
	for _, r := range resumes {
		if r.UserID != ann.ID {
			t.Errorf("ListResumesByUser() leaked resume owned by %q", r.UserID)
		}
	}
}

func TestListResumesByUser_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ann", "ann@example.com")

	first := createTestResume(t, db, user.ID, "First")
	// created_at has sub-second precision; a short sleep guarantees ordering
	time.Sleep(5 * time.Millisecond)
	second := createTestResume(t, db, user.ID, "Second")

	resumes, err := db.ListResumesByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListResumesByUser() error = %v", err)
	}
	if len(resumes) != 2 {
		t.Fatalf("ListResumesByUser() returned %d resumes, want 2", len(resumes))
	}
	if resumes[0].ID != second.ID || resumes[1].ID != first.ID {
		t.Errorf("ListResumesByUser() order = [%s, %s], want newest-first [%s, %s]",
			resumes[0].ID, resumes[1].ID, second.ID, first.ID)
	}
}

func TestListResumesByUser_EmptyForNewUser(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ann", "ann@example.com")

	resumes, err := db.ListResumesByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListResumesByUser() error = %v", err)
	}
	if resumes == nil {
		t.Error("ListResumesByUser() returned nil, want empty slice")
	}
	if len(resumes) != 0 {
		t.Errorf("ListResumesByUser() returned %d resumes, want 0", len(resumes))
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestResumeDelete(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ann", "ann@example.com")
	resume := createTestResume(t, db, user.ID, "Ann Lee")

	if err := db.DeleteResume(context.Background(), resume.ID, user.ID); err != nil {
		t.Fatalf("DeleteResume() error = %v", err)
	}

	resumes, _ := db.ListResumesByUser(context.Background(), user.ID)
	if len(resumes) != 0 {
		t.Errorf("resume still present after DeleteResume(): %d remaining", len(resumes))
	}
}

func TestResumeDelete_WrongOwner(t *testing.T) {
	db := newTestDB(t)
	ann := createTestUser(t, db, "Ann", "ann@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	resume := createTestResume(t, db, ann.ID, "Ann Lee")

	// Bob tries to delete Ann's resume by ID. The delete is scoped to the
	// owner, so this must fail as not-found — and Ann's document survives.
	err := db.DeleteResume(context.Background(), resume.ID, bob.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("DeleteResume() error = %v, want ErrNotFound", err)
	}

	resumes, _ := db.ListResumesByUser(context.Background(), ann.ID)
	if len(resumes) != 1 {
		t.Error("cross-owner DeleteResume() removed the document")
	}
}

func TestResumeDelete_NotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Ann", "ann@example.com")

	err := db.DeleteResume(context.Background(), "no-such-resume", user.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("DeleteResume() error = %v, want ErrNotFound", err)
	}
}
