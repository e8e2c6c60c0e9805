package repository

import "github.com/luismorales81/agrocloud-sub002/internal/domain/entity"

// LaborRepository define el puerto de persistencia para Labor y sus líneas.
type LaborRepository interface {
	Create(labor *entity.Labor) error
	GetByID(id string) (*entity.Labor, error)
	// Update persiste la labor y sus líneas como una unidad.
	Update(labor *entity.Labor) error
	// Delete solo es legal mientras la labor sigue PLANIFICADA.
	Delete(id string) error
	ListByLote(loteID string, limit, offset int) ([]*entity.Labor, error)
	ListByEstado(estado entity.EstadoLabor, limit, offset int) ([]*entity.Labor, error)
	// ListLineasByInsumo devuelve las líneas de insumo de labores completadas,
	// para estadísticas de desvío histórico.
	ListLineasByInsumo(insumoID string) ([]*entity.LaborInsumo, error)
}
