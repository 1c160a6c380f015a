package service

import (
	"context"
	"errors"
	"testing"

	"github.com/templui/resumebook/internal/model"
)

type ingestFixture struct {
	drive    *fakeDrive
	forms    *fakeForms
	diags    *Diagnostics
	ingestor *Ingestor
}

func newIngestFixture() *ingestFixture {
	drive := newFakeDrive()
	forms := newFakeForms()
	diags := quietDiagnostics()
	ingestor := NewIngestor(forms, drive, NewConverter(drive, "tmp-folder"), NewNameNormalizer(diags), diags)
	return &ingestFixture{drive: drive, forms: forms, diags: diags, ingestor: ingestor}
}

func TestIngestCollectsAssets(t *testing.T) {
	fx := newIngestFixture()
	fx.drive.add("f1", "ada.pdf", model.MimePDF, []byte("pdf"))
	fx.drive.add("f2", "grace.docx", model.MimeDocx, []byte("docx"))
	fx.forms.add("form-1", "Spring",
		model.Response{Email: "ada@example.com", FullName: " Ada Lovelace ", FileID: "f1"},
		model.Response{Email: "grace@example.com", FullName: "Grace Hopper", FileID: "f2"},
	)

	state := NewRunState(NewOptOutFilter(nil))
	err := fx.ingestor.Ingest(context.Background(), state, "form-1")
	if err != nil {
		t.Fatal(err)
	}

	if len(state.Originals) != 2 {
		t.Fatalf("expected 2 originals, got %d", len(state.Originals))
	}
	if state.Originals[0].Name != "Ada Lovelace Resume.pdf" || state.Originals[1].Name != "Grace Hopper Resume.docx" {
		t.Errorf("unexpected originals %q, %q", state.Originals[0].Name, state.Originals[1].Name)
	}
	if len(state.Converted) != 1 || state.Converted[0].Name != "Grace Hopper Resume.pdf" {
		t.Errorf("unexpected converted %v", state.Converted)
	}
	if fx.diags.Len() != 0 {
		t.Errorf("unexpected diagnostics %v", fx.diags.Drain())
	}
}

func TestIngestSkipsOptOut(t *testing.T) {
	fx := newIngestFixture()
	fx.drive.add("f1", "ada.pdf", model.MimePDF, []byte("pdf"))
	fx.forms.add("form-1", "Spring",
		model.Response{Email: "ada@example.com", FullName: "ada", FileID: "f1"},
	)

	state := NewRunState(NewOptOutFilter([]string{"ada@example.com"}))
	err := fx.ingestor.Ingest(context.Background(), state, "form-1")
	if err != nil {
		t.Fatal(err)
	}

	if len(state.Originals) != 0 {
		t.Errorf("opted-out response was collected")
	}
	if len(fx.drive.calls) != 0 {
		t.Errorf("opted-out file was touched: %v", fx.drive.calls)
	}
	// Skipped responses get no name processing either
	if fx.diags.Len() != 0 {
		t.Errorf("unexpected diagnostics %v", fx.diags.Drain())
	}
	if len(state.OptOut.Unconsumed()) != 0 {
		t.Error("opt-out not consumed")
	}
}

func TestIngestDuplicates(t *testing.T) {
	fx := newIngestFixture()
	fx.drive.add("f1", "a.pdf", model.MimePDF, []byte("1"))
	fx.drive.add("f2", "b.pdf", model.MimePDF, []byte("2"))
	fx.drive.add("f3", "c.pdf", model.MimePDF, []byte("3"))
	fx.forms.add("form-1", "Spring",
		model.Response{Email: "ada@example.com", FullName: "Ada Lovelace", FileID: "f1"},
		model.Response{Email: "other@example.com", FullName: "Ada Lovelace", FileID: "f2"},
	)
	fx.forms.add("form-2", "Fall",
		model.Response{Email: "ada@example.com", FullName: "Ada King", FileID: "f3"},
	)

	state := NewRunState(NewOptOutFilter(nil))
	for _, id := range []string{"form-1", "form-2"} {
		if err := fx.ingestor.Ingest(context.Background(), state, id); err != nil {
			t.Fatal(err)
		}
	}

	got := kinds(fx.diags.Drain())
	want := []string{model.DiagDuplicateName, model.DiagDuplicateEmail}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("diagnostics = %q, want %q", got, want)
	}
	// Duplicates are advisory: every response is still collected
	if len(state.Originals) != 3 {
		t.Errorf("expected 3 originals, got %d", len(state.Originals))
	}
}

func TestIngestOpenFormWarns(t *testing.T) {
	fx := newIngestFixture()
	fx.drive.add("f1", "a.pdf", model.MimePDF, []byte("1"))
	form := fx.forms.add("form-1", "Spring",
		model.Response{Email: "ada@example.com", FullName: "Ada Lovelace", FileID: "f1"},
	)
	form.AcceptingResponses = true

	state := NewRunState(NewOptOutFilter(nil))
	err := fx.ingestor.Ingest(context.Background(), state, "form-1")
	if err != nil {
		t.Fatal(err)
	}

	diags := fx.diags.Drain()
	if len(diags) != 1 || diags[0].Kind != model.DiagFormOpen || diags[0].Subject != "Spring" {
		t.Errorf("diagnostics = %+v, want one form_open", diags)
	}
	if len(state.Originals) != 1 {
		t.Error("open form should still be processed")
	}
}

func TestIngestUnknownFormStateWarns(t *testing.T) {
	fx := newIngestFixture()
	fx.drive.add("f1", "a.pdf", model.MimePDF, []byte("1"))
	form := fx.forms.add("form-1", "Legacy",
		model.Response{Email: "ada@example.com", FullName: "Ada Lovelace", FileID: "f1"},
	)
	form.AcceptingUnknown = true

	state := NewRunState(NewOptOutFilter(nil))
	err := fx.ingestor.Ingest(context.Background(), state, "form-1")
	if err != nil {
		t.Fatal(err)
	}

	diags := fx.diags.Drain()
	if len(diags) != 1 || diags[0].Kind != model.DiagFormStateUnknown || diags[0].Subject != "Legacy" {
		t.Errorf("diagnostics = %+v, want one form_state_unknown", diags)
	}
}

func TestIngestUnsupportedFormatIsFatal(t *testing.T) {
	fx := newIngestFixture()
	fx.drive.add("f1", "cv.odt", "application/vnd.oasis.opendocument.text", []byte("odt"))
	fx.drive.add("f2", "b.pdf", model.MimePDF, []byte("2"))
	fx.forms.add("form-1", "Spring",
		model.Response{Email: "ada@example.com", FullName: "Ada Lovelace", FileID: "f1"},
		model.Response{Email: "grace@example.com", FullName: "Grace Hopper", FileID: "f2"},
	)

	state := NewRunState(NewOptOutFilter(nil))
	err := fx.ingestor.Ingest(context.Background(), state, "form-1")

	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	for _, call := range fx.drive.calls {
		if call == "file:f2" {
			t.Error("processing continued after a fatal error")
		}
	}
}

func TestIngestUnknownForm(t *testing.T) {
	fx := newIngestFixture()
	err := fx.ingestor.Ingest(context.Background(), NewRunState(NewOptOutFilter(nil)), "missing")
	if !errors.Is(err, errFake) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}
