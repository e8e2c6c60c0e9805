package repository

import "github.com/luismorales81/agrocloud-sub002/internal/domain/entity"

// LoteRepository define el puerto de persistencia para Lote.
type LoteRepository interface {
	Create(lote *entity.Lote) error
	GetByID(id string) (*entity.Lote, error)
	Update(lote *entity.Lote) error
	UpdateEstado(id string, estado entity.EstadoLote) error
	List(limit, offset int) ([]*entity.Lote, error)
}
