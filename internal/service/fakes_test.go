package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/templui/resumebook/internal/model"
	"github.com/templui/resumebook/internal/repository"
)

var errFake = errors.New("fake failure")

func quietDiagnostics() *Diagnostics {
	return NewDiagnostics(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeDrive serves canned files. Exports are "<mime>:<id>" so tests can tell
// a conversion from a download.
type fakeDrive struct {
	files map[string]*model.DriveFile
	data  map[string][]byte

	failExport map[string]bool // by target MIME type
	failTrash  bool

	calls   []string
	nextID  int
	live    map[string]string // temporary copy ID -> folder
	trashed []string
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		files:      make(map[string]*model.DriveFile),
		data:       make(map[string][]byte),
		failExport: make(map[string]bool),
		live:       make(map[string]string),
	}
}

func (d *fakeDrive) add(id, name, mimeType string, data []byte) *model.DriveFile {
	f := &model.DriveFile{ID: id, Name: name, MimeType: mimeType}
	d.files[id] = f
	d.data[id] = data
	return f
}

func (d *fakeDrive) File(ctx context.Context, id string) (*model.DriveFile, error) {
	d.calls = append(d.calls, "file:"+id)
	f, ok := d.files[id]
	if !ok {
		return nil, errFake
	}
	return f, nil
}

func (d *fakeDrive) Download(ctx context.Context, id string) ([]byte, error) {
	d.calls = append(d.calls, "download:"+id)
	data, ok := d.data[id]
	if !ok {
		return nil, errFake
	}
	return data, nil
}

func (d *fakeDrive) Export(ctx context.Context, id, mimeType string) ([]byte, error) {
	d.calls = append(d.calls, "export:"+id)
	if d.failExport[mimeType] {
		return nil, errFake
	}
	return []byte(mimeType + ":" + id), nil
}

func (d *fakeDrive) CopyAs(ctx context.Context, id, name, mimeType, folderID string) (string, error) {
	d.calls = append(d.calls, "copy:"+id)
	d.nextID++
	copyID := fmt.Sprintf("copy-%d", d.nextID)
	d.live[copyID] = folderID
	return copyID, nil
}

func (d *fakeDrive) Trash(ctx context.Context, id string) error {
	d.calls = append(d.calls, "trash:"+id)
	if d.failTrash {
		return errFake
	}
	delete(d.live, id)
	d.trashed = append(d.trashed, id)
	return nil
}

type fakeForms struct {
	forms     map[string]*model.Form
	responses map[string][]model.Response
}

func newFakeForms() *fakeForms {
	return &fakeForms{
		forms:     make(map[string]*model.Form),
		responses: make(map[string][]model.Response),
	}
}

func (f *fakeForms) add(id, title string, responses ...model.Response) *model.Form {
	form := &model.Form{ID: id, Title: title}
	f.forms[id] = form
	f.responses[id] = responses
	return form
}

func (f *fakeForms) Form(ctx context.Context, id string) (*model.Form, error) {
	form, ok := f.forms[id]
	if !ok {
		return nil, errFake
	}
	return form, nil
}

func (f *fakeForms) Responses(ctx context.Context, form *model.Form) ([]model.Response, error) {
	return f.responses[form.ID], nil
}

type memStore struct {
	objects  map[string][]byte
	failSave map[string]bool
	deleted  []string
}

func newMemStore() *memStore {
	return &memStore{
		objects:  make(map[string][]byte),
		failSave: make(map[string]bool),
	}
}

func (s *memStore) Save(ctx context.Context, path string, file io.Reader) error {
	if s.failSave[path] {
		return errFake
	}
	var buf bytes.Buffer
	_, err := buf.ReadFrom(file)
	if err != nil {
		return err
	}
	s.objects[path] = buf.Bytes()
	return nil
}

func (s *memStore) Delete(ctx context.Context, path string) error {
	delete(s.objects, path)
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *memStore) URL(path string) string {
	return "mem://" + path
}

type memRuns struct {
	runs       map[string]*model.Run
	assets     []*model.RunAsset
	failCreate bool
}

func newMemRuns() *memRuns {
	return &memRuns{runs: make(map[string]*model.Run)}
}

func (r *memRuns) Create(run *model.Run) error {
	if r.failCreate {
		return errFake
	}
	cp := *run
	r.runs[run.ID] = &cp
	return nil
}

func (r *memRuns) Finish(run *model.Run) error {
	if _, ok := r.runs[run.ID]; !ok {
		return repository.ErrRunNotFound
	}
	cp := *run
	r.runs[run.ID] = &cp
	return nil
}

func (r *memRuns) ByID(id string) (*model.Run, error) {
	run, ok := r.runs[id]
	if !ok {
		return nil, repository.ErrRunNotFound
	}
	return run, nil
}

func (r *memRuns) Recent(limit int) ([]*model.Run, error) {
	var out []*model.Run
	for _, run := range r.runs {
		out = append(out, run)
	}
	return out, nil
}

func (r *memRuns) AddAssets(assets []*model.RunAsset) error {
	r.assets = append(r.assets, assets...)
	return nil
}

func (r *memRuns) Assets(runID string) ([]*model.RunAsset, error) {
	var out []*model.RunAsset
	for _, asset := range r.assets {
		if asset.RunID == runID {
			out = append(out, asset)
		}
	}
	return out, nil
}
