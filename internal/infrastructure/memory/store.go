package memory

import (
	"sync"

	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// Store guarda el estado compartido de los repositorios en memoria. Los repos
// almacenan y devuelven copias, nunca los punteros internos, de modo que una
// instantánea del Store es una copia superficial de sus mapas.
type Store struct {
	mu sync.RWMutex

	insumos     map[string]*entity.Insumo
	movimientos map[string]*entity.MovimientoInventario
	ordenMovs   []string // orden de inserción del libro
	labores     map[string]*entity.Labor
	lotes       map[string]*entity.Lote
	dosis       map[string]*entity.DosisInsumo
	users       map[string]*entity.User
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		insumos:     make(map[string]*entity.Insumo),
		movimientos: make(map[string]*entity.MovimientoInventario),
		labores:     make(map[string]*entity.Labor),
		lotes:       make(map[string]*entity.Lote),
		dosis:       make(map[string]*entity.DosisInsumo),
		users:       make(map[string]*entity.User),
	}
}

// snapshot copia el estado actual. Los valores almacenados son inmutables
// (los repos clonan al guardar y al devolver), así que basta copiar los mapas.
type snapshot struct {
	insumos     map[string]*entity.Insumo
	movimientos map[string]*entity.MovimientoInventario
	ordenMovs   []string
	labores     map[string]*entity.Labor
	lotes       map[string]*entity.Lote
	dosis       map[string]*entity.DosisInsumo
	users       map[string]*entity.User
}

func (s *Store) snapshotLocked() snapshot {
	return snapshot{
		insumos:     copyMap(s.insumos),
		movimientos: copyMap(s.movimientos),
		ordenMovs:   append([]string(nil), s.ordenMovs...),
		labores:     copyMap(s.labores),
		lotes:       copyMap(s.lotes),
		dosis:       copyMap(s.dosis),
		users:       copyMap(s.users),
	}
}

func (s *Store) restoreLocked(sn snapshot) {
	s.insumos = sn.insumos
	s.movimientos = sn.movimientos
	s.ordenMovs = sn.ordenMovs
	s.labores = sn.labores
	s.lotes = sn.lotes
	s.dosis = sn.dosis
	s.users = sn.users
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Clones por entidad. Los campos puntero se copian por valor para que el
// llamador no pueda mutar el estado almacenado.

func cloneInsumo(i *entity.Insumo) *entity.Insumo {
	c := *i
	if i.CarenciaDias != nil {
		v := *i.CarenciaDias
		c.CarenciaDias = &v
	}
	if i.DosisMinimaPorHa != nil {
		v := *i.DosisMinimaPorHa
		c.DosisMinimaPorHa = &v
	}
	if i.DosisMaximaPorHa != nil {
		v := *i.DosisMaximaPorHa
		c.DosisMaximaPorHa = &v
	}
	return &c
}

func cloneMovimiento(m *entity.MovimientoInventario) *entity.MovimientoInventario {
	c := *m
	if m.LaborID != nil {
		v := *m.LaborID
		c.LaborID = &v
	}
	return &c
}

func cloneLabor(l *entity.Labor) *entity.Labor {
	c := *l
	if l.FechaFin != nil {
		v := *l.FechaFin
		c.FechaFin = &v
	}
	if l.FechaAnulacion != nil {
		v := *l.FechaAnulacion
		c.FechaAnulacion = &v
	}
	c.Insumos = append([]entity.LaborInsumo(nil), l.Insumos...)
	c.Maquinaria = append([]entity.LaborMaquinaria(nil), l.Maquinaria...)
	c.ManoObra = append([]entity.LaborManoObra(nil), l.ManoObra...)
	return &c
}

func cloneLote(l *entity.Lote) *entity.Lote {
	c := *l
	return &c
}

func cloneDosis(d *entity.DosisInsumo) *entity.DosisInsumo {
	c := *d
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}
