package conta

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Conta) error
	BuscarPorID(db *gorm.DB, id uint) (*Conta, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Conta, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Conta) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Conta, error) {
	var c Conta
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Conta, error) {
	var c Conta
	err := db.Where("email = ?", email).First(&c).Error
	return &c, err
}
