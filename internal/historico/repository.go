package historico

import "gorm.io/gorm"

type Repository interface {
	Registrar(db *gorm.DB, r *Registro) error
	ListarPorProposta(db *gorm.DB, propostaID uint) ([]Registro, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Registrar(db *gorm.DB, reg *Registro) error {
	return db.Create(reg).Error
}

func (r *repositoryImpl) ListarPorProposta(db *gorm.DB, propostaID uint) ([]Registro, error) {
	var registros []Registro
	err := db.
		Where("proposta_id = ?", propostaID).
		Order("created_at ASC, id ASC").
		Find(&registros).Error
	return registros, err
}
