package service

import (
	"errors"
	"testing"
)

func TestProjectCreateSetsCreatorFromToken(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "Ada", "ada@example.com")

	created, err := f.projects.Create(CreateProject{Name: "apollo", Description: "moonshot"}, bearer(t, user.ID))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.CreatorID != user.ID {
		t.Errorf("Create() creator = %d, want %d", created.CreatorID, user.ID)
	}

	// Round trip: the fetched project names the creator and includes
	// it in the member set.
	got, err := f.projects.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.CreatorID != user.ID {
		t.Errorf("Get() creator = %d, want %d", got.CreatorID, user.ID)
	}

	found := false
	for _, m := range got.Members {
		if m.ID == user.ID {
			found = true
		}
	}
	if !found {
		t.Error("Get() member set does not include the creator")
	}
}

func TestProjectCreateTokenErrors(t *testing.T) {
	f := newFixture(t)

	if _, err := f.projects.Create(CreateProject{Name: "x"}, ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("Create() without token error = %v, want ErrMissingToken", err)
	}
	if _, err := f.projects.Create(CreateProject{Name: "x"}, "Bearer not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Create() with garbage token error = %v, want ErrInvalidToken", err)
	}
	if _, err := f.projects.Create(CreateProject{Name: "x"}, "no-space"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Create() with malformed header error = %v, want ErrInvalidToken", err)
	}
}

func TestProjectListInvalidPage(t *testing.T) {
	f := newFixture(t)

	if _, err := f.projects.List(0, 10, nil); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("List(0) error = %v, want ErrInvalidPage", err)
	}
}

func TestProjectListCreatorFilter(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	f.seedProject(t, "apollo", ada.ID)
	f.seedProject(t, "gemini", ada.ID)
	f.seedProject(t, "mercury", bob.ID)

	all, err := f.projects.List(1, 10, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all.Projects) != 3 {
		t.Errorf("List() = %d projects, want 3", len(all.Projects))
	}

	mine, err := f.projects.List(1, 10, &ada.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(mine.Projects) != 2 {
		t.Errorf("List(creator=ada) = %d projects, want 2", len(mine.Projects))
	}
	for _, p := range mine.Projects {
		if p.CreatorID != ada.ID {
			t.Errorf("List(creator=ada) returned project created by %d", p.CreatorID)
		}
	}
}

func TestProjectGetNotFound(t *testing.T) {
	f := newFixture(t)

	if _, err := f.projects.Get(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(999) error = %v, want ErrNotFound", err)
	}
}

func TestProjectUpdate(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	project := f.seedProject(t, "apollo", ada.ID)

	desc := "lunar program"
	got, err := f.projects.Update(project.ID, ProjectPatch{Description: &desc})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Description != "lunar program" {
		t.Errorf("Update() description = %q, want lunar program", got.Description)
	}
	if got.Name != "apollo" {
		t.Errorf("Update() name = %q, want apollo (untouched)", got.Name)
	}
}

func TestProjectDeleteNotFound(t *testing.T) {
	f := newFixture(t)

	if err := f.projects.Delete(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(999) error = %v, want ErrNotFound", err)
	}
}

func TestAddMembersCreatorOnly(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	eve := f.seedUser(t, "Eve", "eve@example.com")
	project := f.seedProject(t, "apollo", ada.ID)

	// A non-creator may not add members, even itself.
	if _, err := f.projects.AddMembers(project.ID, []uint{bob.ID}, bearer(t, bob.ID)); !errors.Is(err, ErrNotCreator) {
		t.Fatalf("AddMembers() by non-creator error = %v, want ErrNotCreator", err)
	}

	got, err := f.projects.AddMembers(project.ID, []uint{bob.ID, eve.ID}, bearer(t, ada.ID))
	if err != nil {
		t.Fatalf("AddMembers() by creator error = %v", err)
	}
	if len(got.Members) != 3 {
		t.Errorf("AddMembers() member count = %d, want 3", len(got.Members))
	}
}

func TestAddMembersIdempotent(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	project := f.seedProject(t, "apollo", ada.ID)

	if _, err := f.projects.AddMembers(project.ID, []uint{bob.ID}, bearer(t, ada.ID)); err != nil {
		t.Fatalf("AddMembers() error = %v", err)
	}

	// Re-adding an existing member (and the creator) is a no-op.
	got, err := f.projects.AddMembers(project.ID, []uint{bob.ID, ada.ID}, bearer(t, ada.ID))
	if err != nil {
		t.Fatalf("AddMembers() error = %v", err)
	}
	if len(got.Members) != 2 {
		t.Errorf("AddMembers() member count = %d, want 2", len(got.Members))
	}
}

func TestAddMembersErrors(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")

	if _, err := f.projects.AddMembers(999, []uint{1}, bearer(t, ada.ID)); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddMembers(999) error = %v, want ErrNotFound", err)
	}
	if _, err := f.projects.AddMembers(1, []uint{1}, ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("AddMembers() without token error = %v, want ErrMissingToken", err)
	}
}
