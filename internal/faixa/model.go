// internal/faixa/model.go
package faixa

import "gorm.io/gorm"

// Faixa é a obra licenciável referenciada pelas propostas.
type Faixa struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ProdutorID      uint    `gorm:"not null;index" json:"produtorId"`
	Titulo          string  `gorm:"size:255;not null" json:"titulo"`
	Artista         string  `gorm:"size:255" json:"artista"`
	DuracaoSegundos int     `json:"duracaoSegundos"`
	ValorSugerido   float64 `gorm:"not null;default:0" json:"valorSugerido"`
	Ativa           bool    `gorm:"not null;default:true" json:"ativa"`
}

// AutoMigrate em algum init:
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Faixa{})
}
