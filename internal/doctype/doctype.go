// Package doctype canonicalizes free-text document-type input into the fixed
// set of categories a QR code can be issued for.
package doctype

import "strings"

// The canonical document categories. Anything else is rejected at issuance.
const (
	Contratos  = "contratos"
	Orcamentos = "orcamentos"
	Propostas  = "propostas"
)

var allowed = map[string]bool{
	Contratos:  true,
	Orcamentos: true,
	Propostas:  true,
}

var accentReplacer = strings.NewReplacer(
	"ç", "c",
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "è", "e", "ê", "e",
	"í", "i", "ì", "i", "î", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o",
	"ú", "u", "ù", "u", "û", "u",
)

// Normalize maps free-text input to a canonical lowercase, accent-stripped
// token. It is pure and deterministic; empty input yields an empty string.
func Normalize(t string) string {
	s := strings.ToLower(strings.TrimSpace(t))
	return accentReplacer.Replace(s)
}

// Allowed reports whether t is one of the canonical document categories.
// Callers are expected to pass Normalize output.
func Allowed(t string) bool {
	return allowed[t]
}
