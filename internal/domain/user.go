package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as informações do usuário carregadas no token emitido pelo front end
type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserActive bool
	UserRoleID int
	jwt.RegisteredClaims
}
