package rechnung

import (
	"errors"
	"fmt"
	"log"
	"os"
)

// ErrCancelled reports that the user declined a confirmation and the
// operation was aborted with nothing touched. It is a normal outcome, not
// a failure.
var ErrCancelled = errors.New("cancelled by user")

// RenderError reports that the document renderer failed. Prior on-disk
// state is left untouched when it is returned.
type RenderError struct {
	Number Number
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render document for %q: %v", e.Number, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Answer is the result of a modal yes/no/cancel confirmation.
type Answer int

const (
	AnswerYes Answer = iota
	AnswerNo
	AnswerCancel
)

// Confirmer asks the user a blocking yes/no/cancel question. The call
// suspends the flow until the user answers.
type Confirmer interface {
	Confirm(title, message string) Answer
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(title, message string) Answer

func (f ConfirmerFunc) Confirm(title, message string) Answer { return f(title, message) }

// Decision is the outcome of a reconciliation check: the caller may carry
// on with whatever triggered the check, or must stay put.
type Decision int

const (
	Proceed Decision = iota
	Cancelled
)

// DocumentRenderer produces the invoice document at the given path. The
// bundled implementation renders markdown from templates; anything that
// writes a file at the path will do.
type DocumentRenderer interface {
	Render(inv Invoice, s Stammdaten, path string) error
}

// Engine reconciles in-progress form state and finalize requests against
// the record store. All user interaction goes through the Confirmer, so
// the engine itself stays headless.
type Engine struct {
	Store    *Store
	Renderer DocumentRenderer
	Confirm  Confirmer

	// SkipDrafts disables the draft bookkeeping entirely (debug flag of
	// the original program).
	SkipDrafts bool
}

func (e *Engine) confirm(title, message string) Answer {
	if e.Confirm == nil {
		return AnswerNo
	}
	return e.Confirm.Confirm(title, message)
}

// StoreDraftOrProceed decides what to do with an in-progress form snapshot
// before the user navigates away: persist a draft, silently proceed, or
// block the navigation. It is re-entrant and side-effect free unless the
// user asks for the draft to be written.
func (e *Engine) StoreDraftOrProceed(snap *Snapshot) (Decision, error) {
	// No form open, or drafts disabled: nothing to reconcile.
	if snap == nil || e.SkipDrafts {
		return Proceed, nil
	}

	// The settings form has no draft file: pending changes are either
	// saved now or dropped.
	if snap.Form == FormSettings {
		if !snap.SettingsChanged {
			return Proceed, nil
		}
		switch e.confirm("Warnung", "Beim Fortfahren gehen alle Änderungen verloren. Sollen die Änderungen gespeichert werden?") {
		case AnswerYes:
			if snap.SaveSettings != nil {
				if err := snap.SaveSettings(); err != nil {
					return Cancelled, err
				}
			}
			return Proceed, nil
		case AnswerNo:
			return Proceed, nil
		default:
			return Cancelled, nil
		}
	}

	// An empty form is not worth saving.
	if !snap.HasContent() {
		return Proceed, nil
	}

	nr := snap.Number()

	// A finalized invoice wins over any draft.
	if e.Store.DocumentExists(nr) {
		return Proceed, nil
	}

	// An unchanged draft needs no rewrite. Both sides go through the same
	// serializer, so the comparison is exact for both kinds.
	stored, err := e.Store.Draft(nr)
	if err != nil {
		return Cancelled, err
	}
	row := snap.Row()
	if stored != nil && stored.Equal(row) {
		return Proceed, nil
	}

	switch e.confirm("Entwurf", "Soll ein Entwurf gespeichert werden?") {
	case AnswerYes:
		if err := e.Store.WriteDraft(row); err != nil {
			return Cancelled, err
		}
		log.Printf("stored draft for %q", nr)
		return Proceed, nil
	case AnswerNo:
		// Proceed without saving. A stale prior draft, if any, is left
		// alone here on purpose.
		return Proceed, nil
	default:
		return Cancelled, nil
	}
}

// Finalize turns a validated invoice into its three on-disk artifacts: the
// summary row, the rendered document and (by deletion) the draft. It
// returns the document path.
//
// The destructive part runs commit-then-delete: the document is rendered
// to a staging file first, and only once that succeeded is the old state
// removed and replaced. A renderer failure therefore leaves everything as
// it was.
func (e *Engine) Finalize(inv Invoice) (string, error) {
	sd, err := e.Store.LoadStammdaten(inv.Who())
	if err != nil {
		return "", err
	}
	if err := inv.Validate(sd); err != nil {
		return "", err
	}
	row, err := EncodeRow(inv, sd)
	if err != nil {
		return "", err
	}

	nr := inv.Number()
	path := e.Store.DocumentPath(nr)

	existed := e.Store.DocumentExists(nr)
	if existed {
		if e.confirm("Warnung", fmt.Sprintf("Beim Fortfahren wird die Rechnung %s gelöscht/überschrieben!", nr)) != AnswerYes {
			return "", fmt.Errorf("invoice %q not overwritten: %w", nr, ErrCancelled)
		}
	}

	if err := os.MkdirAll(e.Store.yearDir(), 0755); err != nil {
		return "", fmt.Errorf("cannot create directory %q: %w", e.Store.yearDir(), err)
	}

	// Stage the new document next to its final location.
	staged := path + ".tmp"
	if err := e.Renderer.Render(inv, sd, staged); err != nil {
		os.Remove(staged)
		return "", &RenderError{Number: nr, Err: err}
	}

	// The new document is safe on disk: now replace the old state.
	if existed {
		if err := os.Remove(path); err != nil {
			os.Remove(staged)
			return "", fmt.Errorf("cannot remove old document %q: %w", path, err)
		}
	}
	if removed, err := e.Store.RemoveRows(nr); err != nil {
		os.Remove(staged)
		return "", err
	} else if removed > 0 {
		log.Printf("removed %d prior summary row(s) for %q", removed, nr)
	}
	if err := e.Store.AppendRow(row); err != nil {
		os.Remove(staged)
		return "", err
	}
	if err := os.Rename(staged, path); err != nil {
		return "", fmt.Errorf("cannot move document into place %q: %w", path, err)
	}
	if err := e.Store.DeleteDraft(nr); err != nil {
		// The invoice is final; a draft that would not delete is only
		// worth a warning.
		log.Printf("warning: %v", err)
	}
	return path, nil
}

// Remove deletes an invoice entirely: document, summary row and draft,
// after a confirmation when a document exists. Zero matches anywhere is a
// no-op, so removal is idempotent.
func (e *Engine) Remove(nr Number) error {
	path := e.Store.DocumentPath(nr)
	if e.Store.DocumentExists(nr) {
		if e.confirm("Warnung", fmt.Sprintf("Beim Fortfahren wird die Rechnung %s gelöscht!", nr)) != AnswerYes {
			return fmt.Errorf("invoice %q not removed: %w", nr, ErrCancelled)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("cannot remove document %q: %w", path, err)
		}
	}
	if _, err := e.Store.RemoveRows(nr); err != nil {
		return err
	}
	return e.Store.DeleteDraft(nr)
}
