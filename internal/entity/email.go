package entity

import "regexp"

// Só a forma mínima local@dominio.sufixo, sem espaço algum (inclui espaços Unicode); não é RFC 5322.
var emailShape = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

func IsValidEmail(email string) bool {
	return emailShape.MatchString(email)
}
