package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/sakif/resume-builder/internal/apperror"
	"github.com/sakif/resume-builder/internal/model"
)

// =========================================================================
// FAKE
// =========================================================================

// fakeResumeRepo is an in-memory repository.ResumeRepository.
// It mirrors the real store's ownership scoping: DeleteResume only matches
// rows where both id and owner line up.
type fakeResumeRepo struct {
	resumes   []model.Resume
	nextID    int
	createErr error
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{nextID: 1}
}

func (f *fakeResumeRepo) CreateResume(ctx context.Context, resume *model.Resume) error {
	if f.createErr != nil {
		return f.createErr
	}
	resume.ID = "resume-" + strconv.Itoa(f.nextID)
	f.nextID++
	resume.CreatedAt = time.Now()
	f.resumes = append(f.resumes, *resume)
	return nil
}

func (f *fakeResumeRepo) ListResumesByUser(ctx context.Context, userID string) ([]model.Resume, error) {
	out := []model.Resume{}
	// newest-first: the fake appends in order, so walk backwards
	for i := len(f.resumes) - 1; i >= 0; i-- {
		if f.resumes[i].UserID == userID {
			out = append(out, f.resumes[i])
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) DeleteResume(ctx context.Context, id, userID string) error {
	for i, r := range f.resumes {
		if r.ID == id && r.UserID == userID {
			f.resumes = append(f.resumes[:i], f.resumes[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("resume", id)
}

func newTestResumeService(repo *fakeResumeRepo) *ResumeService {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewResumeService(repo, logger)
}

// =========================================================================
// SAVE TESTS
// =========================================================================

func TestResumeSave(t *testing.T) {
	repo := newFakeResumeRepo()
	svc := newTestResumeService(repo)

	saved, err := svc.Save(context.Background(), "user-1", &model.Resume{
		FullName: "Ann Lee",
		Skills:   []string{"Go"},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if saved.ID == "" {
		t.Error("Save() did not assign an ID")
	}
	if saved.UserID != "user-1" {
		t.Errorf("Save() owner = %q, want %q", saved.UserID, "user-1")
	}
}

func TestResumeSave_OverridesSpoofedOwner(t *testing.T) {
	repo := newFakeResumeRepo()
	svc := newTestResumeService(repo)

	// The client claims the resume belongs to someone else. The service
	// must discard that and persist under the CALLER's identity.
	saved, err := svc.Save(context.Background(), "user-caller", &model.Resume{
		UserID:   "user-victim",
		FullName: "Spoofer",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if saved.UserID != "user-caller" {
		t.Errorf("Save() persisted owner %q, want the caller %q", saved.UserID, "user-caller")
	}

	victims, _ := svc.List(context.Background(), "user-victim")
	if len(victims) != 0 {
		t.Error("spoofed document appeared under the victim's account")
	}
}

func TestResumeSave_IgnoresClientSuppliedID(t *testing.T) {
	repo := newFakeResumeRepo()
	svc := newTestResumeService(repo)

	saved, err := svc.Save(context.Background(), "user-1", &model.Resume{
		ID:       "client-chosen-id",
		FullName: "Ann",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "client-chosen-id" {
		t.Error("Save() kept the client-supplied ID")
	}
}

func TestResumeSave_NoUser(t *testing.T) {
	svc := newTestResumeService(newFakeResumeRepo())

	_, err := svc.Save(context.Background(), "", &model.Resume{FullName: "Ann"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Save() error = %v, want ErrUnauthorized", err)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestResumeList_OnlyOwnDocuments(t *testing.T) {
	repo := newFakeResumeRepo()
	svc := newTestResumeService(repo)

	mustSave := func(userID, name string) {
		t.Helper()
		if _, err := svc.Save(context.Background(), userID, &model.Resume{FullName: name}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	mustSave("user-ann", "Ann 1")
	mustSave("user-bob", "Bob 1")
	mustSave("user-ann", "Ann 2")

	resumes, err := svc.List(context.Background(), "user-ann")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resumes) != 2 {
		t.Fatalf("List() returned %d resumes, want 2", len(resumes))
	}
	for _, r := range resumes {
		if r.UserID != "user-ann" {
			t.Errorf("List() leaked a resume owned by %q", r.UserID)
		}
	}
	// newest-first
	if resumes[0].FullName != "Ann 2" {
		t.Errorf("List() first item = %q, want newest (%q)", resumes[0].FullName, "Ann 2")
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestResumeDelete(t *testing.T) {
	repo := newFakeResumeRepo()
	svc := newTestResumeService(repo)

	saved, _ := svc.Save(context.Background(), "user-1", &model.Resume{FullName: "Ann"})

	if err := svc.Delete(context.Background(), "user-1", saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	remaining, _ := svc.List(context.Background(), "user-1")
	if len(remaining) != 0 {
		t.Error("resume still listed after Delete()")
	}
}

func TestResumeDelete_OtherUsersDocument(t *testing.T) {
	repo := newFakeResumeRepo()
	svc := newTestResumeService(repo)

	saved, _ := svc.Save(context.Background(), "user-ann", &model.Resume{FullName: "Ann"})

	err := svc.Delete(context.Background(), "user-bob", saved.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}

	// Ann's document must still exist
	resumes, _ := svc.List(context.Background(), "user-ann")
	if len(resumes) != 1 {
		t.Error("cross-owner Delete() removed the document")
	}
}

func TestResumeDelete_EmptyID(t *testing.T) {
	svc := newTestResumeService(newFakeResumeRepo())

	err := svc.Delete(context.Background(), "user-1", "  ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Delete() error = %v, want ErrValidation", err)
	}
}
