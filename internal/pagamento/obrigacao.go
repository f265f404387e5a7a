package pagamento

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Status possíveis de uma obrigação. As transições Pendente→Pago pertencem à
// cobrança; aqui apenas observamos.
const (
	ObrigacaoPendente = "Pendente"
	ObrigacaoPaga     = "Pago"
)

// ObrigacaoPagamento é o espelho local da obrigação criada no sistema de
// cobrança quando uma proposta é finalizada.
type ObrigacaoPagamento struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	PropostaID     uint       `gorm:"not null;uniqueIndex" json:"propostaId"`
	Valor          float64    `gorm:"not null" json:"valor"`
	Prazo          Prazo      `gorm:"size:20;not null" json:"prazo"`
	DataVencimento time.Time  `gorm:"not null" json:"dataVencimento"`
	Status         string     `gorm:"size:20;not null;default:'Pendente';index" json:"status"`
	DataPagamento  *time.Time `json:"dataPagamento"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// EmAtraso informa se a obrigação está vencida e ainda não paga.
func (o *ObrigacaoPagamento) EmAtraso(agora time.Time) bool {
	return o.Status == ObrigacaoPendente && agora.After(o.DataVencimento)
}

type ObrigacaoRepository interface {
	CriarSeNaoExistir(db *gorm.DB, o *ObrigacaoPagamento) error
	BuscarPorProposta(db *gorm.DB, propostaID uint) (*ObrigacaoPagamento, error)
	MarcarPaga(db *gorm.DB, propostaID uint, dataPagamento time.Time) error
}

type obrigacaoRepositoryImpl struct{}

func NewObrigacaoRepository() ObrigacaoRepository {
	return &obrigacaoRepositoryImpl{}
}

// CriarSeNaoExistir insere a obrigação; conflito no índice único de proposta
// vira no-op (retentativa idempotente).
func (r *obrigacaoRepositoryImpl) CriarSeNaoExistir(db *gorm.DB, o *ObrigacaoPagamento) error {
	if o.Status == "" {
		o.Status = ObrigacaoPendente
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "proposta_id"}},
		DoNothing: true,
	}).Create(o).Error
}

func (r *obrigacaoRepositoryImpl) BuscarPorProposta(db *gorm.DB, propostaID uint) (*ObrigacaoPagamento, error) {
	var o ObrigacaoPagamento
	err := db.Where("proposta_id = ?", propostaID).First(&o).Error
	return &o, err
}

func (r *obrigacaoRepositoryImpl) MarcarPaga(db *gorm.DB, propostaID uint, dataPagamento time.Time) error {
	return db.Model(&ObrigacaoPagamento{}).
		Where("proposta_id = ?", propostaID).
		Updates(map[string]interface{}{
			"status":         ObrigacaoPaga,
			"data_pagamento": &dataPagamento,
		}).Error
}
