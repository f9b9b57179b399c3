package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const idSize = 12

// GenerateID gera o identificador de uma execução de importação
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idSize)
}
