package licenca

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Emitir(db *gorm.DB, l *Licenca) error
	BuscarPorProposta(db *gorm.DB, propostaID uint) (*Licenca, error)
	ListarPorConta(db *gorm.DB, contaID uint) ([]Licenca, error)
	AtualizarURL(db *gorm.DB, id uint, url string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Emitir grava a licença da proposta; se já existe uma, a emissão anterior
// prevalece (retentativa idempotente).
func (r *repositoryImpl) Emitir(db *gorm.DB, l *Licenca) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "proposta_id"}},
		DoNothing: true,
	}).Create(l).Error
}

func (r *repositoryImpl) BuscarPorProposta(db *gorm.DB, propostaID uint) (*Licenca, error) {
	var l Licenca
	err := db.Where("proposta_id = ?", propostaID).First(&l).Error
	return &l, err
}

func (r *repositoryImpl) ListarPorConta(db *gorm.DB, contaID uint) ([]Licenca, error) {
	var licencas []Licenca
	err := db.
		Where("cliente_id = ? OR produtor_id = ?", contaID, contaID).
		Order("created_at DESC").
		Find(&licencas).Error
	return licencas, err
}

func (r *repositoryImpl) AtualizarURL(db *gorm.DB, id uint, url string) error {
	return db.Model(&Licenca{}).Where("id = ?", id).Update("url", url).Error
}
