package payment

import (
	"net/url"
	"strings"
)

// ===============================
// Redirect contract (PayPal hosted flow)
// ===============================

// Marcadores combinados com as páginas de redirect do backend.
// Não mudar de um lado só.
const (
	successURLMarker = "payment-success"
	cancelURLMarker  = "payment-cancel"
)

type RedirectKind int

const (
	RedirectNone RedirectKind = iota
	RedirectSuccess
	RedirectCancel
)

type RedirectResult struct {
	Kind    RedirectKind
	OrderID string
}

// ClassifyRedirectURL é o único ponto que interpreta a navegação da
// webview. Só as URLs de sucesso e cancelamento encerram o fluxo;
// qualquer redirect intermediário é ignorado.
func ClassifyRedirectURL(raw string) RedirectResult {
	if strings.Contains(raw, successURLMarker) {
		res := RedirectResult{Kind: RedirectSuccess}
		if u, err := url.Parse(raw); err == nil {
			res.OrderID = u.Query().Get("orderId")
		}
		return res
	}

	if strings.Contains(raw, cancelURLMarker) {
		return RedirectResult{Kind: RedirectCancel}
	}

	return RedirectResult{Kind: RedirectNone}
}
