package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubBugRepo struct {
	bugs      map[string]*domain.Bug
	nextID    int
	insertErr error
}

func newStubBugRepo() *stubBugRepo {
	return &stubBugRepo{bugs: make(map[string]*domain.Bug)}
}

func (r *stubBugRepo) Insert(_ context.Context, b *domain.Bug) (*domain.Bug, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.nextID++
	clone := *b
	clone.ID = fmt.Sprintf("bug-%d", r.nextID)
	r.bugs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBugRepo) FindByID(_ context.Context, id string) (*domain.Bug, error) {
	b, ok := r.bugs[id]
	if !ok {
		return nil, domain.ErrBugNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBugRepo) FindAll(_ context.Context) ([]*domain.Bug, error) {
	out := make([]*domain.Bug, 0, len(r.bugs))
	for _, b := range r.bugs {
		clone := *b
		out = append(out, &clone)
	}
	// Newest first, mirroring the Mongo sort.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubBugRepo) Replace(_ context.Context, b *domain.Bug) error {
	if _, ok := r.bugs[b.ID]; !ok {
		return domain.ErrBugNotFound
	}
	clone := *b
	r.bugs[b.ID] = &clone
	return nil
}

func (r *stubBugRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bugs[id]; !ok {
		return domain.ErrBugNotFound
	}
	delete(r.bugs, id)
	return nil
}

type stubResolver struct {
	users map[string]domain.UserSummary
}

func newStubResolver(users map[string]domain.UserSummary) *stubResolver {
	return &stubResolver{users: users}
}

func (s *stubResolver) Resolve(_ context.Context, id string) (*domain.UserSummary, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	clone := u
	return &clone, nil
}

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (s *stubRecorder) Record(event domain.ActivityEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *stubRecorder) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Action)
	}
	return out
}

var discardLogger = zerolog.Nop()

func newBugService(repo *stubBugRepo, users map[string]domain.UserSummary) (*BugService, *stubRecorder) {
	rec := &stubRecorder{}
	svc := NewBugService(repo, NewProjector(newStubResolver(users)), rec, discardLogger)
	return svc, rec
}

func testUsers() map[string]domain.UserSummary {
	return map[string]domain.UserSummary{
		"u1": {Name: "Alice", Email: "alice@example.com"},
		"u2": {Name: "Bob", Email: "bob@example.com"},
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestBugService_Create_Defaults(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	view, err := svc.Create(context.Background(), ports.CreateBugInput{
		Title:       "Login fails",
		Description: "steps to reproduce",
	}, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Status != "open" {
		t.Errorf("expected status %q, got %q", "open", view.Status)
	}
	if view.Priority != "medium" {
		t.Errorf("expected priority %q, got %q", "medium", view.Priority)
	}
	if view.CreatedBy == nil || view.CreatedBy.Name != "Alice" {
		t.Errorf("creator not projected: %+v", view.CreatedBy)
	}
	if view.AssignedTo != nil {
		t.Errorf("new bug must be unassigned, got %+v", view.AssignedTo)
	}
	if view.CreatedAt.IsZero() || view.UpdatedAt.IsZero() {
		t.Error("timestamps must be set")
	}

	stored := repo.bugs[view.ID]
	if stored.CreatedBy != "u1" {
		t.Errorf("expected createdBy %q, got %q", "u1", stored.CreatedBy)
	}
}

func TestBugService_Create_PriorityOverride(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	view, err := svc.Create(context.Background(), ports.CreateBugInput{
		Title:       "Login fails",
		Description: "...",
		Priority:    "high",
		Project:     "auth",
		Tags:        []string{"login", "urgent", "login"},
	}, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Priority != "high" {
		t.Errorf("expected priority high, got %q", view.Priority)
	}
	if view.Project != "auth" {
		t.Errorf("expected project auth, got %q", view.Project)
	}
	// Duplicates and order are preserved.
	want := []string{"login", "urgent", "login"}
	if len(view.Tags) != len(want) {
		t.Fatalf("expected %d tags, got %d", len(want), len(view.Tags))
	}
	for i := range want {
		if view.Tags[i] != want[i] {
			t.Errorf("tag %d: expected %q, got %q", i, want[i], view.Tags[i])
		}
	}
}

func TestBugService_Create_MissingFields(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	cases := []ports.CreateBugInput{
		{Title: "", Description: "desc"},
		{Title: "title", Description: ""},
		{Title: "   ", Description: "desc"},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), in, "u1"); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("input %+v: expected ErrValidation, got %v", in, err)
		}
	}
	if len(repo.bugs) != 0 {
		t.Errorf("no bug should be stored, got %d", len(repo.bugs))
	}
}

func TestBugService_Create_InvalidPriority(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	_, err := svc.Create(context.Background(), ports.CreateBugInput{
		Title:       "t",
		Description: "d",
		Priority:    "urgent",
	}, "u1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List / Get
// ---------------------------------------------------------------------------

func seedBug(repo *stubBugRepo, id, title, creator string, createdAt time.Time) {
	repo.bugs[id] = &domain.Bug{
		ID:          id,
		Title:       title,
		Description: "d",
		Status:      domain.StatusOpen,
		Priority:    domain.PriorityMedium,
		CreatedBy:   creator,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestBugService_List_NewestFirst(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedBug(repo, "a", "oldest", "u1", base)
	seedBug(repo, "b", "middle", "u1", base.Add(time.Hour))
	seedBug(repo, "c", "newest", "u1", base.Add(2*time.Hour))

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 bugs, got %d", len(views))
	}
	if views[0].Title != "newest" || views[2].Title != "oldest" {
		t.Errorf("wrong order: %s, %s, %s", views[0].Title, views[1].Title, views[2].Title)
	}

	// Idempotent: repeated calls with no writes return the same sequence.
	again, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range views {
		if views[i].ID != again[i].ID {
			t.Errorf("list not stable at %d: %s vs %s", i, views[i].ID, again[i].ID)
		}
	}
}

func TestBugService_Get_NotFound(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrBugNotFound) {
		t.Fatalf("expected ErrBugNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update (full replace)
// ---------------------------------------------------------------------------

func TestBugService_Update_ReplacesAndClears(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	created, err := svc.Create(context.Background(), ports.CreateBugInput{
		Title:       "original",
		Description: "original desc",
		Priority:    "high",
		Project:     "auth",
		Tags:        []string{"login"},
	}, "u1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Assign(context.Background(), created.ID, "u2", "u1"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	// Replacement payload carries only the required fields: everything else
	// clears or reverts to its default.
	view, err := svc.Update(context.Background(), created.ID, ports.UpdateBugInput{
		Title:       "replaced",
		Description: "replaced desc",
	}, "u2")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if view.Title != "replaced" || view.Description != "replaced desc" {
		t.Errorf("text fields not replaced: %+v", view)
	}
	if view.Status != "open" {
		t.Errorf("status must revert to open, got %q", view.Status)
	}
	if view.Priority != "medium" {
		t.Errorf("priority must revert to medium, got %q", view.Priority)
	}
	if view.Project != "" || len(view.Tags) != 0 {
		t.Errorf("project/tags must clear, got %q / %v", view.Project, view.Tags)
	}
	if view.AssignedTo != nil {
		t.Errorf("assignee must clear, got %+v", view.AssignedTo)
	}
	// createdBy and createdAt survive the replace untouched.
	if view.CreatedBy == nil || view.CreatedBy.Name != "Alice" {
		t.Errorf("createdBy must be immutable, got %+v", view.CreatedBy)
	}
	if !view.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt must be immutable: %v vs %v", view.CreatedAt, created.CreatedAt)
	}
	if view.UpdatedAt.Before(created.UpdatedAt) {
		t.Error("updatedAt must be refreshed")
	}
}

func TestBugService_Update_SetsAllFields(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	created, _ := svc.Create(context.Background(), ports.CreateBugInput{Title: "t", Description: "d"}, "u1")

	view, err := svc.Update(context.Background(), created.ID, ports.UpdateBugInput{
		Title:       "t2",
		Description: "d2",
		Status:      "resolved",
		Priority:    "critical",
		Project:     "ui",
		Tags:        []string{"a", "b"},
		AssignedTo:  "u2",
	}, "u1")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if view.Status != "resolved" || view.Priority != "critical" {
		t.Errorf("enum fields not applied: %s / %s", view.Status, view.Priority)
	}
	if view.AssignedTo == nil || view.AssignedTo.Name != "Bob" {
		t.Errorf("assignee not projected: %+v", view.AssignedTo)
	}
}

func TestBugService_Update_NotFound(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	_, err := svc.Update(context.Background(), "missing", ports.UpdateBugInput{Title: "t", Description: "d"}, "u1")
	if !errors.Is(err, domain.ErrBugNotFound) {
		t.Fatalf("expected ErrBugNotFound, got %v", err)
	}
}

func TestBugService_Update_Validation(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	created, _ := svc.Create(context.Background(), ports.CreateBugInput{Title: "t", Description: "d"}, "u1")

	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateBugInput{Title: "", Description: "d"}, "u1"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty title: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateBugInput{Title: "t", Description: "d", Status: "reopened"}, "u1"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad status: expected ErrValidation, got %v", err)
	}

	// The stored record is untouched by failed updates.
	stored := repo.bugs[created.ID]
	if stored.Title != "t" {
		t.Errorf("stored record mutated by failed update: %q", stored.Title)
	}
}

// ---------------------------------------------------------------------------
// Assign
// ---------------------------------------------------------------------------

func TestBugService_Assign_SetAndClear(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	created, _ := svc.Create(context.Background(), ports.CreateBugInput{Title: "t", Description: "d"}, "u1")

	view, err := svc.Assign(context.Background(), created.ID, "u2", "u1")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if view.AssignedTo == nil || view.AssignedTo.Email != "bob@example.com" {
		t.Errorf("assignee not projected: %+v", view.AssignedTo)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.AssignedTo == nil || got.AssignedTo.Name != "Bob" {
		t.Errorf("assignment not persisted: %+v", got.AssignedTo)
	}

	cleared, err := svc.Assign(context.Background(), created.ID, "", "u1")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if cleared.AssignedTo != nil {
		t.Errorf("expected cleared assignee, got %+v", cleared.AssignedTo)
	}
}

func TestBugService_Assign_UnknownIdentityAccepted(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	created, _ := svc.Create(context.Background(), ports.CreateBugInput{Title: "t", Description: "d"}, "u1")

	// The target is stored as supplied, without existence verification; it
	// simply projects as an unknown user.
	view, err := svc.Assign(context.Background(), created.ID, "ghost-404", "u1")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if view.AssignedTo != nil {
		t.Errorf("unresolvable assignee must project as nil, got %+v", view.AssignedTo)
	}
	if repo.bugs[created.ID].AssignedTo != "ghost-404" {
		t.Errorf("raw identifier must be stored, got %q", repo.bugs[created.ID].AssignedTo)
	}
}

func TestBugService_Assign_NotFound(t *testing.T) {
	repo := newStubBugRepo()
	svc, _ := newBugService(repo, testUsers())

	if _, err := svc.Assign(context.Background(), "missing", "u2", "u1"); !errors.Is(err, domain.ErrBugNotFound) {
		t.Fatalf("expected ErrBugNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestBugService_Delete(t *testing.T) {
	repo := newStubBugRepo()
	svc, rec := newBugService(repo, testUsers())

	created, _ := svc.Create(context.Background(), ports.CreateBugInput{Title: "t", Description: "d"}, "u1")

	// Any authenticated identity may delete any bug; u2 did not create it.
	if err := svc.Delete(context.Background(), created.ID, "u2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.bugs[created.ID]; ok {
		t.Error("bug still stored after delete")
	}
	if err := svc.Delete(context.Background(), created.ID, "u2"); !errors.Is(err, domain.ErrBugNotFound) {
		t.Fatalf("expected ErrBugNotFound on second delete, got %v", err)
	}

	actions := rec.actions()
	if len(actions) != 2 || actions[0] != domain.ActionBugCreated || actions[1] != domain.ActionBugDeleted {
		t.Errorf("unexpected activity trail: %v", actions)
	}
}
