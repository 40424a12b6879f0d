// Package renderer turns invoices and patient records into the markdown
// documents the practice hands out: the two invoice forms and the auxiliary
// privacy and treatment agreements.
package renderer

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/fhfischer/rechnung"
)

// RenderKG renders the KGDocument struct to a markdown string.
func RenderKG(doc *KGDocument) string {
	partials := map[string]string{
		"invoice_address": "invoice_address.md",
		"invoice_footer":  "invoice_footer.md",
	}
	return renderTemplate("kgInvoice", "kg_invoice.md", partials, doc)
}

// RenderHP renders the HPDocument struct to a markdown string.
func RenderHP(doc *HPDocument) string {
	partials := map[string]string{
		"invoice_address": "invoice_address.md",
		"invoice_footer":  "invoice_footer.md",
	}
	return renderTemplate("hpInvoice", "hp_invoice.md", partials, doc)
}

// RenderPrivacy renders the privacy agreement for a patient.
func RenderPrivacy(s rechnung.Stammdaten) string {
	return renderTemplate("privacy", "privacy.md", nil, NewPatient(s))
}

// RenderTherapy renders the treatment agreement for a patient.
func RenderTherapy(s rechnung.Stammdaten) string {
	return renderTemplate("therapy", "therapy.md", nil, NewPatient(s))
}

// Renderer writes invoice documents to disk. It implements
// rechnung.DocumentRenderer for the reconciliation engine.
type Renderer struct {
	// User is printed into every invoice footer.
	User rechnung.UserData
}

// Render builds the document for inv and writes it to path.
func (r *Renderer) Render(inv rechnung.Invoice, s rechnung.Stammdaten, path string) error {
	var content string
	switch v := inv.(type) {
	case rechnung.KGInvoice:
		doc, err := NewKGDocument(v, s, r.User)
		if err != nil {
			return err
		}
		content = RenderKG(doc)
	case rechnung.HPInvoice:
		doc, err := NewHPDocument(v, s, r.User)
		if err != nil {
			return err
		}
		content = RenderHP(doc)
	default:
		return fmt.Errorf("cannot render invoice of type %T", inv)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("cannot write document %q: %w", path, err)
	}
	return nil
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
