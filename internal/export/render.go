package export

import (
	"fmt"
	"html"
	"strings"
)

// renderPDF produces a minimal single-page PDF with the content as one text
// object, byte-for-byte the structure the desktop app emitted.
func renderPDF(content string) []byte {
	safe := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(content)

	pdf := fmt.Sprintf("%%PDF-1.1\n"+
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n"+
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n"+
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n"+
		"4 0 obj\n<< /Length %d >>\nstream\nBT /F1 12 Tf 72 720 Td (%s) Tj ET\nendstream\nendobj\n"+
		"5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n"+
		"xref\n0 6\n"+
		"0000000000 65535 f \n0000000010 00000 n \n0000000061 00000 n \n0000000116 00000 n \n0000000225 00000 n \n0000000334 00000 n \n"+
		"trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n409\n%%%%EOF",
		len(safe)+33, safe)

	return []byte(pdf)
}

// renderWord wraps the content in an HTML shell that word processors open
// as a .doc file.
func renderWord(content string) []byte {
	doc := fmt.Sprintf("<html><head><meta charset=\"utf-8\"></head><body><pre>%s</pre></body></html>",
		html.EscapeString(content))

	return []byte(doc)
}
