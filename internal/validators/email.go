package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid confere se o domínio do e-mail existe de fato
// (registro MX ou, na falta dele, A/AAAA). Formato já foi validado
// pelo binding do gin.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
