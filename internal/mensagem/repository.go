package mensagem

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, m *Mensagem) error
	ListarPorProposta(db *gorm.DB, propostaID uint) ([]Mensagem, error)
	UltimaContraproposta(db *gorm.DB, propostaID uint) (*Mensagem, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, m *Mensagem) error {
	return db.Create(m).Error
}

func (r *repositoryImpl) ListarPorProposta(db *gorm.DB, propostaID uint) ([]Mensagem, error) {
	var mensagens []Mensagem
	err := db.
		Where("proposta_id = ?", propostaID).
		Order("created_at ASC, id ASC").
		Find(&mensagens).Error
	return mensagens, err
}

// UltimaContraproposta devolve a mensagem mais recente que carrega alguma
// revisão de termos, ou nil se nenhuma existe.
func (r *repositoryImpl) UltimaContraproposta(db *gorm.DB, propostaID uint) (*Mensagem, error) {
	var m Mensagem
	err := db.
		Where("proposta_id = ?", propostaID).
		Where("valor_contraproposta IS NOT NULL OR prazo_contraproposta IS NOT NULL OR termos_contraproposta <> ''").
		Order("created_at DESC, id DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
