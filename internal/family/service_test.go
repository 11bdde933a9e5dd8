package family

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sharjeelz/famories/internal/apperr"
	"github.com/sharjeelz/famories/internal/models"
	"github.com/sharjeelz/famories/internal/store"
)

func testService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	s := store.New[models.FamilyMember](filepath.Join(dir, "family.json"))
	photoDir := filepath.Join(dir, "family_photos")
	return NewService(s, photoDir), photoDir
}

func mustCreate(t *testing.T, svc *Service, name, relation string, age int) models.FamilyMember {
	t.Helper()
	m, err := svc.Create(models.FamilyMember{Name: name, Relation: relation, Age: age})
	if err != nil {
		t.Fatalf("Create %s: %v", name, err)
	}
	return m
}

func TestLinkDedupe(t *testing.T) {
	svc, _ := testService(t)
	ana := mustCreate(t, svc, "Ana", "Myself", 30)
	leo := mustCreate(t, svc, "Leo", "Child", 5)

	if err := svc.Link(ana.ID, leo.ID, "parent"); err != nil {
		t.Fatalf("first Link: %v", err)
	}
	if err := svc.Link(ana.ID, leo.ID, "parent"); err != nil {
		t.Fatalf("second Link: %v", err)
	}

	got, _ := svc.Get(ana.ID)
	want := []models.RelationEdge{{To: leo.ID, Type: "parent"}}
	if !reflect.DeepEqual(got.Relations, want) {
		t.Errorf("relations = %+v, want %+v", got.Relations, want)
	}
}

func TestLinkDirectionSensitive(t *testing.T) {
	svc, _ := testService(t)
	ana := mustCreate(t, svc, "Ana", "Myself", 30)
	leo := mustCreate(t, svc, "Leo", "Child", 5)

	// A->B and B->A are distinct edges; nothing enforces symmetry or
	// consistency between them.
	_ = svc.Link(ana.ID, leo.ID, "parent")
	_ = svc.Link(leo.ID, ana.ID, "parent")

	gotAna, _ := svc.Get(ana.ID)
	gotLeo, _ := svc.Get(leo.ID)
	if len(gotAna.Relations) != 1 || len(gotLeo.Relations) != 1 {
		t.Errorf("ana = %+v, leo = %+v", gotAna.Relations, gotLeo.Relations)
	}
}

func TestLinkSameTargetDifferentType(t *testing.T) {
	svc, _ := testService(t)
	ana := mustCreate(t, svc, "Ana", "Myself", 30)
	leo := mustCreate(t, svc, "Leo", "Child", 5)

	_ = svc.Link(ana.ID, leo.ID, "parent")
	_ = svc.Link(ana.ID, leo.ID, "sibling")

	got, _ := svc.Get(ana.ID)
	if len(got.Relations) != 2 {
		t.Errorf("relations = %+v, want 2 edges", got.Relations)
	}
}

func TestLinkErrors(t *testing.T) {
	svc, _ := testService(t)
	ana := mustCreate(t, svc, "Ana", "Myself", 30)

	if err := svc.Link("ghost", ana.ID, "parent"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown source err = %v, want ErrNotFound", err)
	}
	if err := svc.Link(ana.ID, ana.ID, "parent"); err == nil {
		t.Error("self link should fail")
	}
	if err := svc.Link(ana.ID, "any", "uncle"); err == nil {
		t.Error("unknown edge type should fail")
	}
}

func TestGraphDropsDanglingEdges(t *testing.T) {
	svc, _ := testService(t)
	ana := mustCreate(t, svc, "Ana", "Myself", 30)
	leo := mustCreate(t, svc, "Leo", "Child", 5)
	_ = svc.Link(ana.ID, leo.ID, "parent")

	// Deleting Leo leaves Ana's edge dangling in storage.
	if err := svc.Delete(leo.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	nodes, edges, err := svc.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(nodes) != 1 {
		t.Errorf("nodes = %+v, want 1", nodes)
	}
	if len(edges) != 0 {
		t.Errorf("edges = %+v, want none", edges)
	}

	// The stored relation is untouched: the filter is render-only.
	got, _ := svc.Get(ana.ID)
	if len(got.Relations) != 1 {
		t.Errorf("stored relations = %+v, want the dangling edge kept", got.Relations)
	}
}

func TestGraphLabels(t *testing.T) {
	svc, _ := testService(t)
	ana := mustCreate(t, svc, "Ana", "Myself", 30)
	leo := mustCreate(t, svc, "Leo", "Child", 5)
	_ = svc.Link(ana.ID, leo.ID, "parent")

	nodes, edges, _ := svc.Graph()
	if nodes[0].Label != "Ana (Myself)" {
		t.Errorf("label = %q", nodes[0].Label)
	}
	if len(edges) != 1 || edges[0].Type != "parent" || edges[0].From != ana.ID || edges[0].To != leo.ID {
		t.Errorf("edges = %+v", edges)
	}
}

func TestUpdatePreservesRelations(t *testing.T) {
	svc, _ := testService(t)
	ana := mustCreate(t, svc, "Ana", "Myself", 30)
	leo := mustCreate(t, svc, "Leo", "Child", 5)
	_ = svc.Link(ana.ID, leo.ID, "parent")

	// Full-record update carrying the existing edges.
	got, _ := svc.Get(ana.ID)
	got.Name = "Ana Maria"
	if _, err := svc.Update(got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	after, _ := svc.Get(ana.ID)
	if after.Name != "Ana Maria" {
		t.Errorf("name = %q", after.Name)
	}
	if len(after.Relations) != 1 {
		t.Errorf("relations lost on update: %+v", after.Relations)
	}
}

func TestDuplicateNamesAllowed(t *testing.T) {
	svc, _ := testService(t)
	mustCreate(t, svc, "Ana", "Myself", 30)
	mustCreate(t, svc, "Ana", "Cousin", 28)

	members, _ := svc.List()
	if len(members) != 2 {
		t.Errorf("len = %d, want 2 (names are not unique keys)", len(members))
	}
}

func TestSavePhoto(t *testing.T) {
	svc, photoDir := testService(t)
	ana := mustCreate(t, svc, "Ana", "Myself", 30)

	m, err := svc.AttachPhoto(ana.ID, "portrait.jpg", strings.NewReader("jpegdata"))
	if err != nil {
		t.Fatalf("AttachPhoto: %v", err)
	}
	if !strings.HasSuffix(m.Photo, "_portrait.jpg") {
		t.Errorf("photo = %q, want <token>_portrait.jpg", m.Photo)
	}
	data, err := os.ReadFile(filepath.Join(photoDir, m.Photo))
	if err != nil {
		t.Fatalf("read photo: %v", err)
	}
	if string(data) != "jpegdata" {
		t.Errorf("photo content = %q", data)
	}

	// The filename is recorded on the stored member.
	got, _ := svc.Get(ana.ID)
	if got.Photo != m.Photo {
		t.Errorf("stored photo = %q, want %q", got.Photo, m.Photo)
	}
}

func TestSavePhotoStripsPath(t *testing.T) {
	svc, photoDir := testService(t)

	name, err := svc.SavePhoto("../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("SavePhoto: %v", err)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		t.Errorf("unsafe stored name %q", name)
	}
	if _, err := os.Stat(filepath.Join(photoDir, name)); err != nil {
		t.Errorf("photo not under photo dir: %v", err)
	}
}

func TestAttachPhotoUnknownMember(t *testing.T) {
	svc, _ := testService(t)
	if _, err := svc.AttachPhoto("ghost", "p.jpg", strings.NewReader("x")); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
