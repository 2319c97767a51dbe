package handlers

import "testing"

func TestAllowedDocumentExt(t *testing.T) {
	allowed := []string{"offer.pdf", "scan.JPG", "photo.jpeg", "chart.png", "terms.doc", "terms.DOCX"}
	for _, name := range allowed {
		if !allowedDocumentExt(name) {
			t.Errorf("%q must be accepted", name)
		}
	}

	rejected := []string{"run.exe", "archive.zip", "script.sh", "noextension", "offer.pdf.exe"}
	for _, name := range rejected {
		if allowedDocumentExt(name) {
			t.Errorf("%q must be rejected", name)
		}
	}
}
