package service

import (
	"errors"
	"testing"
)

func TestTagCRUD(t *testing.T) {
	f := newFixture(t)

	tag, err := f.tags.Create("urgent")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tag.ID == 0 || tag.Title != "urgent" {
		t.Errorf("Create() = %+v, want stored tag titled urgent", tag)
	}

	title := "blocker"
	got, err := f.tags.Update(tag.ID, TagPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Title != "blocker" {
		t.Errorf("Update() title = %q, want blocker", got.Title)
	}

	if err := f.tags.Delete(tag.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := f.tags.Get(tag.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestTagList(t *testing.T) {
	f := newFixture(t)
	for _, title := range []string{"urgent", "backend", "frontend"} {
		f.seedTag(t, title)
	}

	page, err := f.tags.List(1, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Tags) != 2 || page.CurrentPage != 1 || page.PageSize != 2 {
		t.Errorf("List(1, 2) = %d tags, page %d size %d", len(page.Tags), page.CurrentPage, page.PageSize)
	}

	rest, err := f.tags.List(2, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rest.Tags) != 1 {
		t.Errorf("List(2, 2) = %d tags, want 1", len(rest.Tags))
	}

	if _, err := f.tags.List(-1, 2); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("List(-1) error = %v, want ErrInvalidPage", err)
	}
}

func TestTagNotFound(t *testing.T) {
	f := newFixture(t)

	if _, err := f.tags.Get(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(42) error = %v, want ErrNotFound", err)
	}
	if _, err := f.tags.Update(42, TagPatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(42) error = %v, want ErrNotFound", err)
	}
	if err := f.tags.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(42) error = %v, want ErrNotFound", err)
	}
}
