// Package content implements the sales-content filter. The platform is for
// breeding, adoption and friendship, never commerce, so profile text and chat
// messages containing payment vocabulary are rejected before persistence.
//
// The check is a deliberately blunt instrument: case-insensitive substring
// matching against a fixed token list, with no stemming or context awareness.
// False positives are an accepted tradeoff for simplicity and auditability.
package content

import "strings"

// BlockedKeywords is the fixed list of sales/payment tokens, in Portuguese
// and English. Matching is case-insensitive substring containment.
var BlockedKeywords = []string{
	"R$", "$", "vendo", "venda", "valor", "preço", "preco", "pagamento", "pix",
	"cobro", "cobrando", "frete", "parcelado", "entrego", "aceito", "usd", "cash",
}

// FindBlocked reports the first blocked token contained in text, or ("",
// false) when the text is clean.
func FindBlocked(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range BlockedKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}

// IsBlocked reports whether text contains any blocked token.
func IsBlocked(text string) bool {
	_, found := FindBlocked(text)
	return found
}
