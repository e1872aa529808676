package validators

import "regexp"

// Mesmo padrão aceito pelo app: "$" opcional, letra inicial,
// 2 a 21 caracteres alfanuméricos no total.
var cashtagPattern = regexp.MustCompile(`^\$?[a-zA-Z][a-zA-Z0-9]{1,20}$`)

func IsCashtagValid(cashtag string) bool {
	return cashtagPattern.MatchString(cashtag)
}
