package proposta

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Salvar(db *gorm.DB, p *Proposta) error
	BuscarPorID(db *gorm.DB, id uint) (*Proposta, error)
	ListarPorConta(db *gorm.DB, contaID uint) ([]Proposta, error)
	Atualizar(db *gorm.DB, p *Proposta) error
	ComBloqueio(db *gorm.DB, id uint, fn func(tx *gorm.DB, p *Proposta) error) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Proposta) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Proposta, error) {
	var p Proposta
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListarPorConta(db *gorm.DB, contaID uint) ([]Proposta, error) {
	var lista []Proposta
	err := db.
		Where("cliente_id = ? OR produtor_id = ?", contaID, contaID).
		Order("created_at DESC").
		Find(&lista).Error
	return lista, err
}

// Atualizar grava com checagem otimista de versão: se outra requisição
// escreveu no meio do caminho, devolve ErrModificacaoConcorrente.
func (r *repositoryImpl) Atualizar(db *gorm.DB, p *Proposta) error {
	anterior := p.Versao
	p.Versao = anterior + 1
	res := db.Model(&Proposta{}).
		Where("id = ? AND versao = ?", p.ID, anterior).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		p.Versao = anterior
		return ErrModificacaoConcorrente
	}
	return nil
}

// ComBloqueio executa fn dentro de uma transação segurando o bloqueio de
// linha da proposta (SELECT ... FOR UPDATE). É a fronteira de serialização
// por proposta: aceites, recusas e contrapropostas concorrentes passam por
// aqui um de cada vez, e o primeiro a escrever vence.
func (r *repositoryImpl) ComBloqueio(db *gorm.DB, id uint, fn func(tx *gorm.DB, p *Proposta) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var p Proposta
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
			return err
		}
		return fn(tx, &p)
	})
}
